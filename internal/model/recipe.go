package model

// RecipeCandidate is a recipe as returned by the ingredient search step,
// before enrichment.
type RecipeCandidate struct {
	ID                int      `json:"id"`
	Title             string   `json:"title"`
	Image             string   `json:"image"`
	UsedIngredients   []string `json:"used_ingredients"`
	MissedIngredients []string `json:"missed_ingredients"`
}

// RecipeNutrition holds the per-recipe macros parsed from the enrichment
// lookup. Absent when the lookup fails.
type RecipeNutrition struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
}

// RecipePricing holds per-serving cost data. Absent when the lookup fails or
// the upstream has no price data for the recipe.
type RecipePricing struct {
	CostPerServing float64 `json:"cost_per_serving"`
	Currency       string  `json:"currency"`
	Servings       int     `json:"servings"`
}

// Recipe is an enriched candidate. Nutrition and pricing are optional;
// MacroAlignmentScore is zero when nutrition is absent. Recipes are consumed
// read-only after enrichment and discarded after response serialization.
type Recipe struct {
	RecipeCandidate
	Nutrition           *RecipeNutrition `json:"macronutrients"`
	Pricing             *RecipePricing   `json:"pricing"`
	MacroAlignmentScore int              `json:"macro_alignment_score"`
}

// RecommendationResult is the pipeline's terminal success value, consumed by
// the HTTP layer.
type RecommendationResult struct {
	UserMetrics       UserMetrics `json:"user_metrics"`
	ParsedIngredients []string    `json:"parsed_ingredients"`
	RecipeCount       int         `json:"recipe_count"`
	Recipes           []Recipe    `json:"recipes"`
}
