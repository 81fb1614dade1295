package nutrition

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"eatwise/internal/models"
)

const (
	MaxInsights = 5
	MaxSnacks   = 4
	MaxRecipes  = 3
)

var DefaultSnacks = []models.Snack{
	{Name: "Greek Yogurt with Berries", Icon: "🥣", Calories: 150, Protein: 15, Carbs: 20, Fat: 2, Benefit: "High protein, gut-friendly probiotics"},
	{Name: "Handful of Almonds", Icon: "🥜", Calories: 160, Protein: 6, Carbs: 6, Fat: 14, Benefit: "Healthy fats and vitamin E"},
	{Name: "Apple with Peanut Butter", Icon: "🍎", Calories: 180, Protein: 4, Carbs: 25, Fat: 8, Benefit: "Fiber and sustained energy"},
	{Name: "Boiled Eggs", Icon: "🥚", Calories: 140, Protein: 12, Carbs: 1, Fat: 10, Benefit: "Complete protein source"},
}

var DefaultRecipes = []models.Recipe{
	{
		Name:        "Grilled Chicken Salad",
		PrepTime:    "15 min",
		Calories:    350,
		Protein:     35,
		Carbs:       25,
		Fat:         12,
		Ingredients: "Chicken breast, mixed greens, tomatoes, olive oil dressing",
		Benefit:     "High protein, low carb, perfect for weight management",
	},
	{
		Name:        "Quinoa Buddha Bowl",
		PrepTime:    "25 min",
		Calories:    400,
		Protein:     15,
		Carbs:       50,
		Fat:         15,
		Ingredients: "Quinoa, chickpeas, avocado, roasted vegetables",
		Benefit:     "Complete protein, fiber-rich, heart-healthy fats",
	},
	{
		Name:        "Baked Salmon with Veggies",
		PrepTime:    "30 min",
		Calories:    380,
		Protein:     30,
		Carbs:       20,
		Fat:         18,
		Ingredients: "Salmon fillet, broccoli, sweet potato, lemon",
		Benefit:     "Omega-3 rich, anti-inflammatory, brain health",
	},
}

var HealthFacts = []string{
	"Drinking water before meals can help reduce calorie intake by up to 13%!",
	"Eating protein at breakfast can reduce cravings throughout the day.",
	"Dark leafy greens contain vitamins A, C, K and minerals like iron and calcium.",
	"Almonds can help lower bad cholesterol and reduce heart disease risk.",
	"Green tea contains antioxidants that may boost metabolism.",
	"Fiber-rich foods help maintain healthy digestion and blood sugar levels.",
	"Regular meal timing helps regulate your body's metabolism.",
	"Colorful vegetables provide different nutrients - eat the rainbow!",
}

var jsonArray = regexp.MustCompile(`(?s)\[.*\]`)

// decodeArray decodes reply as a JSON array, or the widest [...] span in it.
func decodeArray(reply string, v any) error {
	trimmed := strings.TrimSpace(reply)
	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return nil
	}
	m := jsonArray.FindString(trimmed)
	if m == "" {
		return ErrNoJSON
	}
	if err := json.Unmarshal([]byte(m), v); err != nil {
		return fmt.Errorf("%w: %v", ErrNoJSON, err)
	}
	return nil
}

// ParseInsights reads a JSON array of strings. Replies that carry no array
// are split into their non-blank lines instead.
func ParseInsights(reply string) []string {
	var insights []string
	if err := decodeArray(reply, &insights); err != nil {
		insights = insights[:0]
		for _, line := range strings.Split(reply, "\n") {
			if strings.TrimSpace(line) != "" {
				insights = append(insights, line)
			}
		}
	}
	if len(insights) > MaxInsights {
		insights = insights[:MaxInsights]
	}
	return insights
}

func ParseSnacks(reply string) ([]models.Snack, error) {
	var snacks []models.Snack
	if err := decodeArray(reply, &snacks); err != nil {
		return nil, err
	}
	if len(snacks) > MaxSnacks {
		snacks = snacks[:MaxSnacks]
	}
	return snacks, nil
}

func ParseRecipes(reply string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := decodeArray(reply, &recipes); err != nil {
		return nil, err
	}
	if len(recipes) > MaxRecipes {
		recipes = recipes[:MaxRecipes]
	}
	return recipes, nil
}
