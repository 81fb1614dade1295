package models

import "time"

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

func (m MealType) Valid() bool {
	switch m {
	case "", MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

type EntrySource string

const (
	SourceAnalysis EntrySource = "analysis"
	SourceManual   EntrySource = "manual"
)

// FoodEntry is one item in a user's calorie tracker for a given day.
type FoodEntry struct {
	ID         int64       `json:"id"`
	Food       string      `json:"food"`
	QuantityG  float64     `json:"quantity_g"`
	Calories   float64     `json:"calories"`
	Protein    float64     `json:"protein"`
	Carbs      float64     `json:"carbs"`
	Fat        float64     `json:"fat"`
	MealType   MealType    `json:"mealType,omitempty"`
	Source     EntrySource `json:"source"`
	ConsumedOn string      `json:"consumedOn"`
	Time       string      `json:"time"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// DayLayout formats FoodEntry.ConsumedOn.
const DayLayout = "2006-01-02"
