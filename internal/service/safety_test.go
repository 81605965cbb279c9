package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platefit/backend/internal/model"
)

func recipeWith(id int, title string, used, missed []string) model.Recipe {
	return model.Recipe{
		RecipeCandidate: model.RecipeCandidate{
			ID:                id,
			Title:             title,
			UsedIngredients:   used,
			MissedIngredients: missed,
		},
	}
}

func TestFilterAllergens(t *testing.T) {
	t.Run("should drop a recipe whose ingredients contain an allergen", func(t *testing.T) {
		recipes := []model.Recipe{
			recipeWith(1, "Peanut Butter Smoothie", []string{"peanut butter", "banana"}, nil),
			recipeWith(2, "Fruit Salad", []string{"apple", "banana"}, []string{"honey"}),
		}

		safe := FilterAllergens(recipes, []string{"peanuts", "peanut"})

		assert.Len(t, safe, 1)
		assert.Equal(t, 2, safe[0].ID)
	})

	t.Run("should match against the title case-insensitively", func(t *testing.T) {
		recipes := []model.Recipe{
			recipeWith(1, "PEANUT Butter Smoothie", []string{"banana"}, nil),
		}

		safe := FilterAllergens(recipes, []string{"peanut"})

		assert.Empty(t, safe)
	})

	t.Run("should match against missed ingredients", func(t *testing.T) {
		recipes := []model.Recipe{
			recipeWith(1, "Stir Fry", []string{"broccoli"}, []string{"Shellfish stock"}),
		}

		safe := FilterAllergens(recipes, []string{"shellfish"})

		assert.Empty(t, safe)
	})

	t.Run("should match plural allergens against singular ingredient text", func(t *testing.T) {
		recipes := []model.Recipe{
			recipeWith(1, "Peanut Butter Smoothie", []string{"peanut butter", "banana"}, nil),
		}

		safe := FilterAllergens(recipes, []string{"peanuts"})

		assert.Empty(t, safe)
	})

	t.Run("should over-exclude on partial matches", func(t *testing.T) {
		// "nut" matching "nutmeg" is a known false positive; the filter
		// always favors exclusion.
		recipes := []model.Recipe{
			recipeWith(1, "Spiced Cake", []string{"flour", "nutmeg"}, nil),
		}

		safe := FilterAllergens(recipes, []string{"nut"})

		assert.Empty(t, safe)
	})

	t.Run("should pass everything through without allergies", func(t *testing.T) {
		recipes := []model.Recipe{
			recipeWith(1, "Peanut Butter Smoothie", []string{"peanut butter"}, nil),
		}

		safe := FilterAllergens(recipes, nil)

		assert.Len(t, safe, 1)
	})
}
