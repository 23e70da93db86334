package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jonathan/success-predictor/internal/observability"
	"github.com/jonathan/success-predictor/internal/prediction"
	"github.com/jonathan/success-predictor/internal/schemas"
	"github.com/jonathan/success-predictor/internal/types"
	embedded "github.com/jonathan/success-predictor/schemas"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type predictOptions struct {
	Explain bool
	Format  string
	Strict  bool
}

var predictOpts predictOptions

var predictCmd = &cobra.Command{
	Use:   "predict FILE...",
	Short: "Score questionnaire files offline",
	Long: `Validates each AssessmentInput JSON file against the assessment schema, runs the
scoring engine and prints the results in argument order. With --strict every
questionnaire rule is enforced, not only the required fields.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPredict(cmd.Context(), cmd.OutOrStdout(), args, predictOpts)
	},
}

func init() {
	predictCmd.Flags().BoolVarP(&predictOpts.Explain, "explain", "e", false, "Include the per-factor score breakdown")
	predictCmd.Flags().StringVarP(&predictOpts.Format, "format", "f", "text", "Output format: text or json")
	predictCmd.Flags().BoolVar(&predictOpts.Strict, "strict", false, "Enforce every questionnaire rule (ranges, enums, non-empty answers)")
	rootCmd.AddCommand(predictCmd)
}

// predictOutput is one file's entry in JSON output.
type predictOutput struct {
	File       string                 `json:"file"`
	Prediction types.PredictionResult `json:"prediction"`
	Breakdown  *prediction.Breakdown  `json:"breakdown,omitempty"`
}

func runPredict(ctx context.Context, w io.Writer, files []string, opts predictOptions) error {
	if opts.Format != "text" && opts.Format != "json" {
		return fmt.Errorf("unknown format %q: must be text or json", opts.Format)
	}

	outputs := make([]predictOutput, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			in, err := loadAssessment(path, opts.Strict)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			out := predictOutput{File: path, Prediction: prediction.Predict(in)}
			if opts.Explain {
				b := prediction.Explain(in)
				out.Breakdown = &b
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outputs)
	}

	printer := observability.NewPrinter(w)
	for i := range outputs {
		title := strings.ToUpper(filepath.Base(outputs[i].File))
		printer.PrintPrediction(title, &outputs[i].Prediction)
		if outputs[i].Breakdown != nil {
			printer.PrintBreakdown(outputs[i].Breakdown)
		}
	}
	return nil
}

// loadAssessment reads a questionnaire file and checks it the way the prediction
// endpoint would. strict adds the full questionnaire rules.
func loadAssessment(path string, strict bool) (types.AssessmentInput, error) {
	var in types.AssessmentInput

	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("failed to read file: %w", err)
	}
	if err := schemas.ValidateDocument(embedded.Assessment, data); err != nil {
		return in, err
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("failed to unmarshal assessment JSON: %w", err)
	}

	if missing := in.MissingRequiredFields(); len(missing) > 0 {
		return in, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if strict {
		if err := in.Validate(); err != nil {
			return in, err
		}
	}
	return in, nil
}
