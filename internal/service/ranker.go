package service

import (
	"math"
	"sort"

	"github.com/platefit/backend/internal/model"
)

// maxRecipes caps the final recommendation list.
const maxRecipes = 8

// ScoreAlignment measures how closely a recipe's macros match the user's
// targets, from 0 (poor) to 100 (perfect). Recipes without nutrition data
// score zero.
func ScoreAlignment(nutrition *model.RecipeNutrition, targets model.MacroTargets) int {
	if nutrition == nil {
		return 0
	}

	proteinDev := relativeDeviation(nutrition.ProteinG, targets.ProteinG)
	carbsDev := relativeDeviation(nutrition.CarbsG, targets.CarbsG)
	fatsDev := relativeDeviation(nutrition.FatsG, targets.FatsG)

	avgDev := (proteinDev + carbsDev + fatsDev) / 3

	score := int(math.Round(100 * math.Max(0, 1-avgDev)))
	if score > 100 {
		score = 100
	}
	return score
}

// relativeDeviation is |actual-target|/target with a floor of 1 on the
// target to avoid division by zero.
func relativeDeviation(actual float64, target int) float64 {
	t := float64(target)
	if t < 1 {
		t = 1
	}
	return math.Abs(actual-t) / t
}

// Rank orders recipes by descending alignment score, then ascending cost per
// serving (missing price sorts last within a score), keeping the original
// discovery order for full ties, and truncates to the top 8.
func Rank(recipes []model.Recipe) []model.Recipe {
	ranked := make([]model.Recipe, len(recipes))
	copy(ranked, recipes)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MacroAlignmentScore != ranked[j].MacroAlignmentScore {
			return ranked[i].MacroAlignmentScore > ranked[j].MacroAlignmentScore
		}
		return costOf(ranked[i]) < costOf(ranked[j])
	})

	if len(ranked) > maxRecipes {
		ranked = ranked[:maxRecipes]
	}
	return ranked
}

func costOf(r model.Recipe) float64 {
	if r.Pricing == nil {
		return math.Inf(1)
	}
	return r.Pricing.CostPerServing
}
