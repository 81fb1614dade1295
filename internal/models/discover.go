package models

// Snack is one entry of the condition-aware snack suggestions.
type Snack struct {
	Name     string  `json:"name"`
	Icon     string  `json:"icon"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Benefit  string  `json:"benefit"`
}

type Recipe struct {
	Name        string  `json:"name"`
	PrepTime    string  `json:"prepTime"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Ingredients string  `json:"ingredients"`
	Benefit     string  `json:"benefit"`
}
