package nutrition

import (
	"math"

	"eatwise/internal/models"
)

// Targets are the daily goals the tracker measures progress against.
type Targets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

var DefaultTargets = Targets{Calories: 2000, Protein: 150, Carbs: 250, Fat: 65}

// TargetsFor returns the saved goal's targets, or the defaults when goal is nil.
func TargetsFor(goal *models.WeightGoal) Targets {
	if goal == nil {
		return DefaultTargets
	}
	return Targets{
		Calories: roundHalfUp(goal.TargetCalories),
		Protein:  roundHalfUp(goal.Macros.Protein),
		Carbs:    roundHalfUp(goal.Macros.Carbs),
		Fat:      roundHalfUp(goal.Macros.Fat),
	}
}

type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type Progress struct {
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Percent float64 `json:"percent"`
}

func NewProgress(current, target float64) Progress {
	p := Progress{Current: roundHalfUp(current), Target: target}
	if target > 0 {
		p.Percent = math.Min(current/target*100, 100)
		if p.Percent < 0 {
			p.Percent = 0
		}
	}
	return p
}

type FoodCalories struct {
	Food     string  `json:"food"`
	Calories float64 `json:"calories"`
}

type Summary struct {
	Entries  int            `json:"entries"`
	Totals   Totals         `json:"totals"`
	Targets  Targets        `json:"targets"`
	ByFood   []FoodCalories `json:"byFood"`
	Calories Progress       `json:"calorieProgress"`
	Protein  Progress       `json:"proteinProgress"`
	Carbs    Progress       `json:"carbsProgress"`
	Fat      Progress       `json:"fatProgress"`
}

// Sum adds up the macros of every entry.
func Sum(entries []models.FoodEntry) Totals {
	var t Totals
	for _, e := range entries {
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Carbs += e.Carbs
		t.Fat += e.Fat
	}
	return t
}

// Summarize builds the calories page: totals, calories per food in the
// order foods were first logged, and progress against targets.
func Summarize(entries []models.FoodEntry, targets Targets) Summary {
	totals := Sum(entries)

	byFood := make([]FoodCalories, 0, len(entries))
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		if i, ok := index[e.Food]; ok {
			byFood[i].Calories += e.Calories
			continue
		}
		index[e.Food] = len(byFood)
		byFood = append(byFood, FoodCalories{Food: e.Food, Calories: e.Calories})
	}

	return Summary{
		Entries:  len(entries),
		Totals:   totals,
		Targets:  targets,
		ByFood:   byFood,
		Calories: NewProgress(totals.Calories, targets.Calories),
		Protein:  NewProgress(totals.Protein, targets.Protein),
		Carbs:    NewProgress(totals.Carbs, targets.Carbs),
		Fat:      NewProgress(totals.Fat, targets.Fat),
	}
}

// Focus is the "today's focus" card: calories and protein only.
type Focus struct {
	Calories Progress `json:"calories"`
	Protein  Progress `json:"protein"`
}

func TodaysFocus(entries []models.FoodEntry, targets Targets) Focus {
	t := Sum(entries)
	return Focus{
		Calories: NewProgress(t.Calories, targets.Calories),
		Protein:  NewProgress(t.Protein, targets.Protein),
	}
}
