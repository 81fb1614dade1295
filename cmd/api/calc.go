package main

import (
	"encoding/json"
	"fmt"

	"eatwise/internal/nutrition"

	"github.com/spf13/cobra"
)

var (
	bmiHeight float64
	bmiWeight float64

	goalIn nutrition.GoalInput
)

func init() {
	bmiCmd.Flags().Float64Var(&bmiHeight, "height", 0, "height in cm")
	bmiCmd.Flags().Float64Var(&bmiWeight, "weight", 0, "weight in kg")
	_ = bmiCmd.MarkFlagRequired("height")
	_ = bmiCmd.MarkFlagRequired("weight")

	f := goalCmd.Flags()
	f.Float64Var(&goalIn.CurrentWeight, "current", 0, "current weight in kg")
	f.Float64Var(&goalIn.TargetWeight, "target", 0, "target weight in kg")
	f.IntVar(&goalIn.TimeFrame, "weeks", 0, "time frame in weeks")
	f.Float64Var(&goalIn.ActivityLevel, "activity", 1.55, "activity multiplier, 1.2 to 1.9")
	f.IntVar(&goalIn.Age, "age", 0, fmt.Sprintf("age in years (default %d)", nutrition.DefaultAge))
	f.StringVar(&goalIn.Gender, "gender", "", "male or female")
	f.Float64Var(&goalIn.Height, "height", 0, fmt.Sprintf("height in cm (default %g)", nutrition.DefaultHeight))

	rootCmd.AddCommand(bmiCmd, goalCmd)
}

var bmiCmd = &cobra.Command{
	Use:   "bmi",
	Short: "Compute BMI and its category",
	Long: `Compute the body mass index from height and weight.

Examples:
  eatwise bmi --height 170 --weight 65`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := nutrition.AssessBMI(bmiHeight, bmiWeight)
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	},
}

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Plan daily calories and macros for a weight goal",
	Long: `Plan maintenance and target calories plus a macro split.

Examples:
  eatwise goal --current 80 --target 75 --weeks 10 --activity 1.55 --gender male`,
	RunE: func(cmd *cobra.Command, args []string) error {
		goal, err := nutrition.PlanGoal(goalIn)
		if err != nil {
			return err
		}
		return printJSON(cmd, goal)
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
