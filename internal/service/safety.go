package service

import (
	"log"

	"github.com/platefit/backend/internal/model"
)

// FilterAllergens drops every recipe whose title or ingredient names contain
// a user allergen as a case-insensitive substring. The policy is
// deliberately conservative: "nut" excludes "nutmeg". Over-exclusion is
// acceptable; under-exclusion is not.
func FilterAllergens(recipes []model.Recipe, allergies []string) []model.Recipe {
	if len(allergies) == 0 {
		return recipes
	}

	safe := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if recipeContainsAllergen(r, allergies) {
			log.Printf("Filtering out recipe %d (%s): matches an allergen", r.ID, r.Title)
			continue
		}
		safe = append(safe, r)
	}

	return safe
}

func recipeContainsAllergen(r model.Recipe, allergies []string) bool {
	if containsAllergen(r.Title, allergies) {
		return true
	}
	for _, name := range r.UsedIngredients {
		if containsAllergen(name, allergies) {
			return true
		}
	}
	for _, name := range r.MissedIngredients {
		if containsAllergen(name, allergies) {
			return true
		}
	}
	return false
}
