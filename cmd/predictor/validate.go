package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jonathan/success-predictor/internal/schemas"
	embedded "github.com/jonathan/success-predictor/schemas"
	"github.com/spf13/cobra"
)

type validateOptions struct {
	Kind       string
	SchemaPath string
}

var validateOpts validateOptions

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate JSON files against the embedded schemas",
	Long: `Checks questionnaire (assessment) or result (prediction) JSON files against their
JSON Schema and reports every violation. --schema validates against a schema file on
disk instead of an embedded one.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout(), args, validateOpts)
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateOpts.Kind, "kind", "k", "assessment", "Document kind: assessment or prediction")
	validateCmd.Flags().StringVarP(&validateOpts.SchemaPath, "schema", "s", "", "Path to a JSON Schema file (overrides --kind)")
	rootCmd.AddCommand(validateCmd)
}

// schemaForKind maps a --kind value to an embedded schema name.
func schemaForKind(kind string) (string, error) {
	switch kind {
	case "assessment":
		return embedded.Assessment, nil
	case "prediction":
		return embedded.PredictionResult, nil
	default:
		return "", fmt.Errorf("unknown kind %q: must be assessment or prediction", kind)
	}
}

// validatorFor returns the per-file check selected by opts.
func validatorFor(opts validateOptions) (func(path string) error, error) {
	if opts.SchemaPath != "" {
		return func(path string) error {
			return schemas.ValidateJSON(opts.SchemaPath, path)
		}, nil
	}

	schemaName, err := schemaForKind(opts.Kind)
	if err != nil {
		return nil, err
	}
	return func(path string) error {
		return schemas.ValidateFile(schemaName, path)
	}, nil
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runValidate(w io.Writer, files []string, opts validateOptions) error {
	check, err := validatorFor(opts)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range files {
		err := check(path)
		if err == nil {
			fmt.Fprintf(w, "✓ %s\n", path)
			continue
		}

		failed++
		var verr *schemas.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(w, "✗ %s\n", path)
			for _, fe := range verr.Errors {
				fmt.Fprintf(w, "    %s: %s\n", fe.Field, fe.Message)
			}
			continue
		}
		fmt.Fprintf(w, "✗ %s: %v\n", path, err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(files))
	}
	return nil
}
