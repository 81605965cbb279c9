package service

import (
	"math"
	"strings"

	"github.com/platefit/backend/internal/model"
)

// Kilocalories per gram of each macronutrient.
const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// activityFactor is a fixed moderate-activity multiplier. Sex and age are
// not collected at this layer, so the BMR base is a simplified
// Mifflin-St Jeor estimate.
const activityFactor = 1.5

// macroTier is a named macro split policy. Shares are proportions of TDEE
// and sum to 1.
type macroTier struct {
	name         string
	proteinShare float64
	carbsShare   float64
	fatsShare    float64
}

// macroTiers maps goal classifications to their macro split. This table is
// the single source of truth for the three supported policies.
var macroTiers = map[string]macroTier{
	"weight_loss": {name: "weight_loss", proteinShare: 0.30, carbsShare: 0.40, fatsShare: 0.30},
	"muscle_gain": {name: "muscle_gain", proteinShare: 0.35, carbsShare: 0.45, fatsShare: 0.20},
	"general":     {name: "general", proteinShare: 0.25, carbsShare: 0.50, fatsShare: 0.25},
}

var (
	weightLossKeywords = []string{"weight loss", "lose weight", "lose", "cut", "slim", "lean out", "fat loss"}
	muscleGainKeywords = []string{"muscle", "gain", "bulk", "strength", "build"}
)

// classifyGoals maps free-text diet goals to a macro tier key. Unmatched
// text falls through to the general tier.
func classifyGoals(dietGoals string) string {
	goals := strings.ToLower(dietGoals)
	for _, kw := range weightLossKeywords {
		if strings.Contains(goals, kw) {
			return "weight_loss"
		}
	}
	for _, kw := range muscleGainKeywords {
		if strings.Contains(goals, kw) {
			return "muscle_gain"
		}
	}
	return "general"
}

// ComputeMetrics derives BMI, TDEE, and macro targets from validated user
// input. Pure function; it always returns a value.
func ComputeMetrics(input *model.UserInput) model.UserMetrics {
	heightM := float64(input.HeightCm) / 100
	bmi := float64(input.WeightKg) / (heightM * heightM)

	bmr := 10*float64(input.WeightKg) + 6.25*float64(input.HeightCm) - 5
	tdee := int(math.Round(bmr * activityFactor))

	tier := macroTiers[classifyGoals(input.DietGoals)]

	return model.UserMetrics{
		HeightCm:     input.HeightCm,
		WeightKg:     input.WeightKg,
		BMI:          math.Round(bmi*10) / 10,
		TDEEEstimate: tdee,
		MacroTargets: model.MacroTargets{
			ProteinG: int(float64(tdee) * tier.proteinShare / kcalPerGramProtein),
			CarbsG:   int(float64(tdee) * tier.carbsShare / kcalPerGramCarbs),
			FatsG:    int(float64(tdee) * tier.fatsShare / kcalPerGramFat),
		},
	}
}
