package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Document string            `json:"document"`
	Records  int               `json:"records"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError describes why a document was rejected.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	BackendOptions
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate [document]",
		Short: "Check a document without starting a session",
		Long: `Check that a document is a JSON array of well-formed records.

Every record needs a positive integer BookID, text Title, Author and Genre,
an integer Year (a number or numeric text) and a BorrowedBy list of names.
BookIDs must be unique. Runs the same checks a session runs on load.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, cmd)
		},
	}

	addBackendFlags(cmd, &opts.BackendOptions)

	return cmd
}

func runValidate(opts *ValidateOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := resolveConfig(opts.RootOptions, &opts.BackendOptions, args)
	if err != nil {
		return outputConfigError(formatter, err)
	}
	formatter.SetLevel(opts.logLevel(cfg))

	backend, records, err := loadDocument(cmd.Context(), cfg)
	if err != nil {
		code := loadErrorCode(err)
		switch code {
		case ErrCodeSchema, ErrCodeMalformed, ErrCodeDuplicateID:
			verr := ValidationError{Code: code, Message: err.Error()}
			if pos := loadErrorDetails(err); pos != nil {
				verr.Line = pos.Line
				verr.Column = pos.Column
			}
			return outputValidationErrors(formatter, cfg.Document, []ValidationError{verr})
		default:
			// Documents that cannot be read at all are command errors.
			return outputLoadError(formatter, err)
		}
	}
	defer backend.Close()

	formatter.Debug("document checked", "document", backend.Location(), "records", len(records))
	return outputValidateSuccess(formatter, backend.Location(), len(records))
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, document string, count int) error {
	if formatter.Format == "json" {
		result := ValidationResult{Valid: true, Document: document, Records: count}
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %s is valid (%d records)\n", document, count)
	return nil
}

// outputValidationErrors outputs validation errors.
func outputValidationErrors(formatter *OutputFormatter, document string, errs []ValidationError) error {
	if formatter.Format == "json" {
		result := ValidationResult{
			Valid:    false,
			Document: document,
			Errors:   errs,
		}

		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d, column %d\n", err.Line, err.Column)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
