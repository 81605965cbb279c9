package model

// MacroTargets holds daily macronutrient targets in grams.
type MacroTargets struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatsG    int `json:"fats_g"`
}

// UserMetrics is derived from UserInput and recomputed per request. It is
// never persisted.
type UserMetrics struct {
	HeightCm     int          `json:"height_cm"`
	WeightKg     int          `json:"weight_kg"`
	BMI          float64      `json:"bmi"`
	TDEEEstimate int          `json:"tdee_estimate"`
	MacroTargets MacroTargets `json:"macro_targets"`
}
