package nutrition

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"eatwise/internal/models"
)

var (
	ErrNoJSON             = errors.New("invalid AI response format")
	ErrIncompleteEstimate = errors.New("incomplete nutrition data")
)

var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSON returns reply when it already is a JSON object, otherwise the
// widest {...} span inside it. Models often wrap JSON in prose or fences.
func ExtractJSON(reply string) (string, error) {
	trimmed := strings.TrimSpace(reply)
	if json.Valid([]byte(trimmed)) && strings.HasPrefix(trimmed, "{") {
		return trimmed, nil
	}
	m := jsonObject.FindString(trimmed)
	if m == "" || !json.Valid([]byte(m)) {
		return "", ErrNoJSON
	}
	return m, nil
}

// Estimate is a per-100 g nutrition guess used to pre-fill a manual entry.
type Estimate struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// ParseEstimate reads an auto-fill reply. All four values must be present and
// non-zero; calories are rounded to whole kcal, macros to one decimal.
func ParseEstimate(reply string) (Estimate, error) {
	raw, err := ExtractJSON(reply)
	if err != nil {
		return Estimate{}, err
	}
	var e Estimate
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return Estimate{}, fmt.Errorf("decode estimate: %w", err)
	}
	if e.Calories == 0 || e.Protein == 0 || e.Carbs == 0 || e.Fat == 0 {
		return Estimate{}, ErrIncompleteEstimate
	}
	return Estimate{
		Calories: roundHalfUp(e.Calories),
		Protein:  roundTo(e.Protein, 1),
		Carbs:    roundTo(e.Carbs, 1),
		Fat:      roundTo(e.Fat, 1),
	}, nil
}

// ParseLabelAnalysis decodes the structured label verdict.
func ParseLabelAnalysis(reply string) (*models.LabelAnalysis, error) {
	raw, err := ExtractJSON(reply)
	if err != nil {
		return nil, err
	}
	var a models.LabelAnalysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, fmt.Errorf("decode label analysis: %w", err)
	}
	return &a, nil
}
