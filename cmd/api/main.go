// Package main is the eatwise command: the API server plus a few offline
// calculators that share its nutrition code.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// @title                       EatWise API
// @version                     1.0
// @description                 Nutrition co-pilot backend.
// @host                        localhost:5000
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "eatwise",
	Short: "EatWise nutrition co-pilot backend",
	Long: `eatwise serves the EatWise API: accounts and health profiles, food label
analysis (OCR + LLM), the calorie tracker, weight goals and the assistant.

Examples:
  # Run the server with environment configuration
  eatwise serve

  # Run with a YAML config file
  eatwise serve --config config.yaml

  # Compute a BMI without a server
  eatwise bmi --height 170 --weight 65`,
	Version:      version,
	SilenceUsage: true,
}
