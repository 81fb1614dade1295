// Package prompt renders the chat prompts the assistant sends to the model.
package prompt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/template"
)

type Kind string

const (
	LabelAnalysis   Kind = "label_analysis"
	NutritionLookup Kind = "nutrition_lookup"
	ContextQuestion Kind = "context_question"
	SnackQuestion   Kind = "snack_question"
	Insights        Kind = "insights"
	SmartSnacks     Kind = "smart_snacks"
	Recipes         Kind = "recipes"
)

var ErrUnknownKind = errors.New("unknown prompt kind")

type Template struct {
	Name        string
	Description string
	tmpl        *template.Template
}

var funcs = template.FuncMap{
	"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	// JavaScript Math.round
	"round": func(v float64) string { return strconv.FormatFloat(math.Floor(v+0.5), 'f', -1, 64) },
	"join":  strings.Join,
	"conditions": func(d []string) string {
		if len(d) == 0 {
			return "general health"
		}
		return strings.Join(d, ", ")
	},
}

var templates = map[Kind]*Template{
	LabelAnalysis:   mustParse(LabelAnalysis, "Label Analysis", "Structured verdict for OCR text of a food label.", labelAnalysisText),
	NutritionLookup: mustParse(NutritionLookup, "Nutrition Lookup", "Per-100g calorie and macro estimate for a named food.", nutritionLookupText),
	ContextQuestion: mustParse(ContextQuestion, "Context Question", "User question with today's intake and the last analyzed food.", contextQuestionText),
	SnackQuestion:   mustParse(SnackQuestion, "Snack Question", "Snack suggestion after the last analyzed food.", snackQuestionText),
	Insights:        mustParse(Insights, "Insights", "Personalized insights as a JSON array of strings.", insightsText),
	SmartSnacks:     mustParse(SmartSnacks, "Smart Snacks", "Four snacks suited to the user's conditions.", smartSnacksText),
	Recipes:         mustParse(Recipes, "Recipes", "Three recipes suited to the user's conditions.", recipesText),
}

func mustParse(kind Kind, name, description, text string) *Template {
	return &Template{
		Name:        name,
		Description: description,
		tmpl:        template.Must(template.New(string(kind)).Funcs(funcs).Option("missingkey=error").Parse(text)),
	}
}

func Get(kind Kind) (Template, bool) {
	t, ok := templates[kind]
	if !ok {
		return Template{}, false
	}
	return *t, true
}

// Render executes the template registered for kind with data.
func Render(kind Kind, data any) (string, error) {
	t, ok := templates[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	var b strings.Builder
	if err := t.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", kind, err)
	}
	return b.String(), nil
}

// LabelData feeds LabelAnalysis.
type LabelData struct {
	Text string
}

// FoodData feeds NutritionLookup.
type FoodData struct {
	Food string
}

// ContextData feeds ContextQuestion and SnackQuestion.
type ContextData struct {
	Question string
	LastFood string
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// ProfileData feeds Insights, SmartSnacks and Recipes.
type ProfileData struct {
	Name     string
	Age      int
	Diseases []string
	Calories float64
	Protein  float64
}
