package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/platefit/backend/internal/model"
)

// IngredientExtractor turns free-text preferences and goals into a
// normalized ingredient list via a single LLM call.
type IngredientExtractor struct {
	chat ChatClient
}

// NewIngredientExtractor creates a new IngredientExtractor instance
func NewIngredientExtractor(chat ChatClient) *IngredientExtractor {
	return &IngredientExtractor{chat: chat}
}

// Extract asks the model for a comma-separated ingredient list and
// normalizes it: trimmed, lowercased, deduplicated, allergen-free. Allergen
// tokens are dropped even though the prompt asks the model to exclude them;
// SafetyFilter re-checks the final recipes downstream.
func (e *IngredientExtractor) Extract(ctx context.Context, foodPreferences, dietGoals string, allergies []string) ([]string, error) {
	prompt := buildExtractionPrompt(foodPreferences, dietGoals, allergies)

	raw, err := e.chat.Send(ctx, prompt)
	if err != nil {
		return nil, &model.ExternalServiceError{Service: "llm", Err: err}
	}

	ingredients := parseIngredientList(raw, allergies)
	if len(ingredients) == 0 {
		log.Printf("Extractor produced no usable ingredients from response: %.100s", raw)
		return nil, &model.EmptyExtractionError{Raw: raw}
	}

	return ingredients, nil
}

func buildExtractionPrompt(foodPreferences, dietGoals string, allergies []string) string {
	allergyStr := "none"
	if len(allergies) > 0 {
		allergyStr = strings.Join(allergies, ", ")
	}

	return fmt.Sprintf(`You are a recipe ingredient extractor. The user has provided:

Dietary Goals: %s
Food Preferences: %s
ALLERGIES TO EXCLUDE: %s

Your task:
1. Extract ingredients suitable for the stated goals and preferences
2. ABSOLUTELY DO NOT include any of the allergenic ingredients
3. Return ONLY a comma-separated list of ingredients
4. Example format: "chicken,broccoli,olive oil,garlic"

CRITICAL: Do not include %s in any form. Return ONLY the ingredient list, nothing else.`,
		dietGoals, foodPreferences, allergyStr, allergyStr)
}

// parseIngredientList splits the raw model output on commas and drops empty
// tokens, duplicates, refusal markers, and anything matching an allergen.
func parseIngredientList(raw string, allergies []string) []string {
	var ingredients []string
	seen := make(map[string]bool)

	for _, token := range strings.Split(raw, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" || token == "none" || token == "no ingredients" {
			continue
		}
		if seen[token] || containsAllergen(token, allergies) {
			continue
		}
		seen[token] = true
		ingredients = append(ingredients, token)
	}

	return ingredients
}

// containsAllergen reports whether the text contains any allergen as a
// case-insensitive substring. A naive singular form is also tried so that
// "peanuts" still matches "peanut butter". Partial matches ("nut" in
// "nutmeg") are intentional over-exclusions.
func containsAllergen(text string, allergies []string) bool {
	lower := strings.ToLower(text)
	for _, allergen := range allergies {
		allergen = strings.ToLower(allergen)
		if allergen == "" {
			continue
		}
		if strings.Contains(lower, allergen) {
			return true
		}
		if singular := strings.TrimSuffix(allergen, "s"); singular != "" && strings.Contains(lower, singular) {
			return true
		}
	}
	return false
}
