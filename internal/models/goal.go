package models

import "time"

type GoalType string

const (
	GoalLoss        GoalType = "Weight Loss"
	GoalGain        GoalType = "Weight Gain"
	GoalMaintenance GoalType = "Maintenance"
)

type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// WeightGoal is the saved outcome of the weight goal calculator.
type WeightGoal struct {
	CurrentWeight       float64   `json:"currentWeight"`
	TargetWeight        float64   `json:"targetWeight"`
	TimeFrame           int       `json:"timeFrame"`
	ActivityLevel       float64   `json:"activityLevel"`
	MaintenanceCalories float64   `json:"maintenanceCalories"`
	TargetCalories      float64   `json:"targetCalories"`
	DailyCalorieChange  float64   `json:"dailyCalorieChange"`
	GoalType            GoalType  `json:"goalType"`
	WeightChange        string    `json:"weightChange"`
	Recommendation      string    `json:"recommendation"`
	Macros              Macros    `json:"macros"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
