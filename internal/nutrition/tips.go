package nutrition

import "strings"

type Tip struct {
	Condition string `json:"condition"`
	Text      string `json:"text"`
}

var generalTip = Tip{
	Condition: "General Tip",
	Text:      "Aim for 5 servings of fruits and vegetables daily for optimal health!",
}

var conditionTips = []struct {
	keywords []string
	tip      Tip
}{
	{[]string{"diabetes"}, Tip{"Diabetes", "Limit refined sugars and choose complex carbs like whole grains, legumes, and vegetables."}},
	{[]string{"hypertension", "blood pressure"}, Tip{"Hypertension", "Reduce sodium intake. Avoid processed foods and add more potassium-rich foods like bananas."}},
	{[]string{"heart"}, Tip{"Heart Health", "Include omega-3 fatty acids from fish, nuts, and limit saturated fats."}},
}

// Tips returns condition-specific advice for the given diseases followed by
// the general tip, which is always present.
func Tips(diseases []string) []Tip {
	joined := strings.ToLower(strings.Join(diseases, " "))
	tips := make([]Tip, 0, len(conditionTips)+1)
	for _, ct := range conditionTips {
		for _, kw := range ct.keywords {
			if strings.Contains(joined, kw) {
				tips = append(tips, ct.tip)
				break
			}
		}
	}
	return append(tips, generalTip)
}
