// Package nutrition holds the body and energy arithmetic behind the profile,
// goal and tracker pages. Every function here is a fixed formula: no state,
// no I/O.
package nutrition

import (
	"errors"
	"math"
)

var ErrInvalidBody = errors.New("height and weight must be positive")

type BMICategory string

const (
	Underweight BMICategory = "Underweight"
	Normal      BMICategory = "Normal"
	Overweight  BMICategory = "Overweight"
	Obese       BMICategory = "Obese"
)

var bmiDescriptions = map[BMICategory]string{
	Underweight: "Your BMI is below average. Consider consulting a nutritionist for healthy weight gain strategies.",
	Normal:      "Great job! Your BMI falls within the healthy range for your height.",
	Overweight:  "Your BMI is slightly above average. Regular exercise and a balanced diet can help.",
	Obese:       "Your BMI is higher than average. We recommend consulting a healthcare provider for personalized advice.",
}

type BMIResult struct {
	Value       float64     `json:"value"`
	Category    BMICategory `json:"category"`
	Description string      `json:"description"`
}

// BMI returns weight / height² (height in cm) rounded to one decimal.
func BMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, ErrInvalidBody
	}
	m := heightCm / 100
	return roundTo(weightKg/(m*m), 1), nil
}

// ClassifyBMI uses contiguous bands so that values such as 24.9 or 29.95
// always land in a category.
func ClassifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

func AssessBMI(heightCm, weightKg float64) (BMIResult, error) {
	v, err := BMI(heightCm, weightKg)
	if err != nil {
		return BMIResult{}, err
	}
	c := ClassifyBMI(v)
	return BMIResult{Value: v, Category: c, Description: bmiDescriptions[c]}, nil
}

// roundHalfUp matches JavaScript's Math.round: halves go towards +Inf,
// so -2.5 becomes -2 rather than -3.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
