package model

import (
	"regexp"
	"strings"
)

const (
	minHeightCm = 100
	maxHeightCm = 250
	minWeightKg = 30
	maxWeightKg = 300

	maxAllergies  = 10
	maxFreeText   = 500
	allergenChars = `^[a-z0-9\s\-]+$`
)

var allergenPattern = regexp.MustCompile(allergenChars)

// RecommendationRequest carries the raw, unvalidated fields of a
// recommendation request.
type RecommendationRequest struct {
	HeightCm        int      `json:"height_cm"`
	WeightKg        int      `json:"weight_kg"`
	Allergies       []string `json:"allergies"`
	FoodPreferences string   `json:"food_preferences"`
	DietGoals       string   `json:"diet_goals"`
}

// Validate checks the raw request and returns an immutable UserInput.
func (r RecommendationRequest) Validate() (*UserInput, error) {
	return NewUserInput(r.HeightCm, r.WeightKg, r.Allergies, r.FoodPreferences, r.DietGoals)
}

// UserInput is the validated request for a recommendation. Construct it with
// NewUserInput; once built it is never mutated.
type UserInput struct {
	HeightCm        int
	WeightKg        int
	Allergies       []string
	FoodPreferences string
	DietGoals       string
}

// NewUserInput validates the raw request fields and returns an immutable
// UserInput. Allergies are trimmed, lowercased, and deduplicated. Validation
// happens before any external call is made.
func NewUserInput(heightCm, weightKg int, allergies []string, foodPreferences, dietGoals string) (*UserInput, error) {
	if heightCm < minHeightCm || heightCm > maxHeightCm {
		return nil, &ValidationError{Field: "height_cm", Message: "must be between 100-250 cm"}
	}
	if weightKg < minWeightKg || weightKg > maxWeightKg {
		return nil, &ValidationError{Field: "weight_kg", Message: "must be between 30-300 kg"}
	}

	if len(allergies) > maxAllergies {
		return nil, &ValidationError{Field: "allergies", Message: "must contain at most 10 items"}
	}
	normalized := make([]string, 0, len(allergies))
	seen := make(map[string]bool, len(allergies))
	for _, a := range allergies {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" || seen[a] {
			continue
		}
		if !allergenPattern.MatchString(a) {
			return nil, &ValidationError{Field: "allergies", Message: "only alphanumeric characters, spaces, and hyphens allowed"}
		}
		seen[a] = true
		normalized = append(normalized, a)
	}

	foodPreferences = strings.TrimSpace(foodPreferences)
	if len(foodPreferences) < 1 || len(foodPreferences) > maxFreeText {
		return nil, &ValidationError{Field: "food_preferences", Message: "must be 1-500 characters"}
	}

	dietGoals = strings.TrimSpace(dietGoals)
	if len(dietGoals) < 1 || len(dietGoals) > maxFreeText {
		return nil, &ValidationError{Field: "diet_goals", Message: "must be 1-500 characters"}
	}

	return &UserInput{
		HeightCm:        heightCm,
		WeightKg:        weightKg,
		Allergies:       normalized,
		FoodPreferences: foodPreferences,
		DietGoals:       dietGoals,
	}, nil
}
