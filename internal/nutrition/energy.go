package nutrition

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"eatwise/internal/models"
)

const (
	kcalPerKgFat = 7700

	DefaultAge    = 25
	DefaultGender = "male"
	DefaultHeight = 170.0

	MinActivity = 1.2
	MaxActivity = 1.9

	proteinPerKg   = 2.0
	fatShare       = 0.28
	kcalPerGramPro = 4
	kcalPerGramCar = 4
	kcalPerGramFat = 9
)

var (
	ErrMissingGoalFields = errors.New("please fill in all fields")
	ErrActivityLevel     = fmt.Errorf("activity level must be between %.1f and %.1f", MinActivity, MaxActivity)
)

// Activity multipliers offered by the goal calculator.
var ActivityLevels = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// BMR is the Mifflin-St Jeor estimate in kcal/day.
func BMR(weightKg, heightCm float64, age int, gender string) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if strings.EqualFold(strings.TrimSpace(gender), "male") {
		return base + 5
	}
	return base - 161
}

// TDEE scales BMR by the activity multiplier and rounds to whole kcal.
func TDEE(bmr, activity float64) float64 {
	return roundHalfUp(bmr * activity)
}

type GoalInput struct {
	CurrentWeight float64 `json:"currentWeight"`
	TargetWeight  float64 `json:"targetWeight"`
	TimeFrame     int     `json:"timeFrame"`
	ActivityLevel float64 `json:"activityLevel"`

	// Filled from the stored profile when available.
	Age    int     `json:"age,omitempty"`
	Gender string  `json:"gender,omitempty"`
	Height float64 `json:"height,omitempty"`
}

func (in GoalInput) withDefaults() GoalInput {
	if in.Age <= 0 {
		in.Age = DefaultAge
	}
	if strings.TrimSpace(in.Gender) == "" {
		in.Gender = DefaultGender
	}
	if in.Height <= 0 {
		in.Height = DefaultHeight
	}
	if in.ActivityLevel == 0 {
		in.ActivityLevel = MinActivity
	}
	return in
}

// PlanGoal turns the calculator inputs into daily calorie and macro targets.
func PlanGoal(in GoalInput) (models.WeightGoal, error) {
	if in.CurrentWeight == 0 || in.TargetWeight == 0 || in.TimeFrame == 0 {
		return models.WeightGoal{}, ErrMissingGoalFields
	}
	if in.CurrentWeight < 0 || in.TargetWeight < 0 || in.TimeFrame < 0 {
		return models.WeightGoal{}, ErrMissingGoalFields
	}
	in = in.withDefaults()
	if in.ActivityLevel < MinActivity || in.ActivityLevel > MaxActivity {
		return models.WeightGoal{}, ErrActivityLevel
	}

	bmr := BMR(in.CurrentWeight, in.Height, in.Age, in.Gender)
	maintenance := TDEE(bmr, in.ActivityLevel)

	change := in.TargetWeight - in.CurrentWeight
	perWeek := change / float64(in.TimeFrame)
	daily := roundHalfUp(perWeek * kcalPerKgFat / 7)
	target := maintenance + daily

	goalType, rec := recommend(change, daily, in.TimeFrame)

	return models.WeightGoal{
		CurrentWeight:       in.CurrentWeight,
		TargetWeight:        in.TargetWeight,
		TimeFrame:           in.TimeFrame,
		ActivityLevel:       in.ActivityLevel,
		MaintenanceCalories: maintenance,
		TargetCalories:      target,
		DailyCalorieChange:  daily,
		GoalType:            goalType,
		WeightChange:        toFixed1(change),
		Recommendation:      rec,
		Macros:              SplitMacros(target, in.CurrentWeight),
	}, nil
}

// SplitMacros gives 2 g protein per kg of body weight, 28% of calories to
// fat and the remainder to carbohydrates.
func SplitMacros(targetCalories, weightKg float64) models.Macros {
	protein := roundHalfUp(weightKg * proteinPerKg)
	fatCal := roundHalfUp(targetCalories * fatShare)
	carbCal := targetCalories - protein*kcalPerGramPro - fatCal
	return models.Macros{
		Protein: protein,
		Carbs:   roundHalfUp(carbCal / kcalPerGramCar),
		Fat:     roundHalfUp(fatCal / kcalPerGramFat),
	}
}

func recommend(change, daily float64, weeks int) (models.GoalType, string) {
	switch {
	case change < -0.5:
		return models.GoalLoss, fmt.Sprintf(
			"To lose %s kg in %d weeks, aim for a %d calorie deficit daily. Combine this with regular exercise and prioritize protein to preserve muscle mass.",
			toFixed1(math.Abs(change)), weeks, int(math.Abs(daily)))
	case change > 0.5:
		return models.GoalGain, fmt.Sprintf(
			"To gain %s kg in %d weeks, aim for a %d calorie surplus daily. Focus on strength training and ensure adequate protein intake for muscle growth.",
			toFixed1(change), weeks, int(daily))
	default:
		return models.GoalMaintenance, "Your goal is to maintain your current weight. Stick to your maintenance calories and focus on body recomposition through consistent training and balanced nutrition."
	}
}

// toFixed1 formats x with one decimal, rounding exact ties away from zero
// where %.1f would round half to even. Only quarters are exact ties.
func toFixed1(x float64) string {
	a := math.Abs(x)
	if q := a * 4; q == math.Trunc(q) {
		a = math.Floor(a*10+0.5) / 10
	}
	if x < 0 {
		a = -a
	}
	return strconv.FormatFloat(a, 'f', 1, 64)
}
