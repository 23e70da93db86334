// Package main provides the predictor CLI: the HTTP API server plus offline tools for
// scoring and validating questionnaire files.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "predictor",
	Short:        "Career success predictor",
	Long:         "Scores a self-reported habits and goals questionnaire into a success probability with strengths, weaknesses, recommendations and a study schedule.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
