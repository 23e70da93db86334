package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/success-predictor/internal/types"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print a questionnaire with default answers",
	Long:  "Prints an AssessmentInput JSON document preset with the questionnaire's default habit values. Fill in the text fields and pass it to predict.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTemplate(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(w io.Writer) error {
	data, err := json.MarshalIndent(types.DefaultAssessmentInput(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal template: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
