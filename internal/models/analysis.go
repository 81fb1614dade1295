package models

import "time"

// Analysis is a stored label scan: the OCR text and what the model said about it.
type Analysis struct {
	ID            string    `json:"id"`
	UserEmail     string    `json:"-"`
	ExtractedText string    `json:"extractedText"`
	Reply         string    `json:"reply"`
	Product       string    `json:"product,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// LabelAnalysis mirrors the JSON document the label prompt asks the model for.
type LabelAnalysis struct {
	Product struct {
		Name       string  `json:"name"`
		NetWeightG float64 `json:"net_weight_g"`
		Category   string  `json:"category"`
	} `json:"product"`
	IngredientsAnalysis struct {
		Ingredients []struct {
			Name    string `json:"name"`
			Comment string `json:"comment"`
		} `json:"ingredients"`
		Summary struct {
			CleanLabel         bool   `json:"clean_label"`
			NutritionalQuality string `json:"nutritional_quality"`
		} `json:"summary"`
	} `json:"ingredients_analysis"`
	Nutrition struct {
		PerServing struct {
			ServingSizeG  float64 `json:"serving_size_g"`
			CaloriesKcal  float64 `json:"calories_kcal"`
			CarbsG        float64 `json:"carbs_g"`
			SugarG        float64 `json:"sugar_g"`
			ProteinG      float64 `json:"protein_g"`
			FatG          float64 `json:"fat_g"`
			SaturatedFatG float64 `json:"saturated_fat_g"`
			TransFatG     float64 `json:"trans_fat_g"`
			FiberG        float64 `json:"fiber_g"`
			SodiumMg      float64 `json:"sodium_mg"`
		} `json:"per_serving"`
		EntirePackEstimate struct {
			CaloriesKcal  float64 `json:"calories_kcal"`
			FatG          float64 `json:"fat_g"`
			SaturatedFatG float64 `json:"saturated_fat_g"`
			ProteinG      float64 `json:"protein_g"`
		} `json:"entire_pack_estimate"`
		MacroVerdict string `json:"macro_verdict"`
	} `json:"nutrition"`
	RedFlags           []string `json:"red_flags"`
	ConsumptionVerdict struct {
		ShouldYouEat   string            `json:"should_you_eat"`
		Frequency      map[string]string `json:"frequency"`
		SafeAmountG    string            `json:"safe_amount_g"`
		WhoShouldAvoid []string          `json:"who_should_avoid"`
	} `json:"consumption_verdict"`
	TimingAdvice struct {
		BestTime    []string `json:"best_time"`
		WorstTime   []string `json:"worst_time"`
		BodyEffects []string `json:"body_effects"`
	} `json:"timing_advice"`
	FinalHealthDecision struct {
		Label   string `json:"label"`
		Summary string `json:"summary"`
	} `json:"final_health_decision"`
	TrackerData *TrackerData `json:"tracker_data,omitempty"`
}

// TrackerData is the part of a label analysis that can be logged as a FoodEntry.
type TrackerData struct {
	Food         string  `json:"food"`
	QuantityG    float64 `json:"quantity_g"`
	CaloriesKcal float64 `json:"calories_kcal"`
	ProteinG     float64 `json:"protein_g"`
	CarbsG       float64 `json:"carbs_g"`
	FatG         float64 `json:"fat_g"`
}
