package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/jsondb/internal/catalog"
	"github.com/roach88/jsondb/internal/config"
	"github.com/roach88/jsondb/internal/schema"
	"github.com/roach88/jsondb/internal/store"
)

// BackendOptions holds the storage flags shared by the document commands.
// Empty values fall back to the config file.
type BackendOptions struct {
	Backend string
	Table   string
}

func addBackendFlags(cmd *cobra.Command, o *BackendOptions) {
	cmd.Flags().StringVar(&o.Backend, "backend", "", "storage backend (json|sqlite), overrides the config file")
	cmd.Flags().StringVar(&o.Table, "table", "", "document name inside a sqlite database, overrides the config file")
}

// resolveConfig applies the positional document argument and the backend
// flags over the config file.
func resolveConfig(root *RootOptions, o *BackendOptions, args []string) (config.Config, error) {
	cfg, err := root.loadConfig()
	if err != nil {
		return cfg, err
	}
	if len(args) > 0 {
		cfg.Document = args[0]
	}
	if o.Backend != "" {
		cfg.Backend = o.Backend
	}
	if o.Table != "" {
		cfg.SQLiteTable = o.Table
	}
	return cfg, cfg.Validate()
}

// openBackend opens the document named by cfg without reading it.
func openBackend(cfg config.Config) (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		b, err := store.OpenSQLite(cfg.Document, cfg.SQLiteTable)
		if err != nil {
			return nil, &store.LoadError{Code: store.LoadCodeUnreadable, Location: cfg.Document, Message: "open database", Err: err}
		}
		return b, nil
	default:
		return store.NewJSONFile(cfg.Document), nil
	}
}

// loadDocument opens the configured backend and reads every record.
// On success the caller owns the backend and must close it.
func loadDocument(ctx context.Context, cfg config.Config) (store.Backend, []catalog.Record, error) {
	backend, err := openBackend(cfg)
	if err != nil {
		return nil, nil, err
	}
	records, err := backend.Load(ctx)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	return backend, records, nil
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeUnreadable  = "E002" // Document or database could not be read
	ErrCodeSchema      = "E003" // Document does not match the record schema
	ErrCodeMalformed   = "E004" // Document could not be decoded
	ErrCodeNotFound    = "E005" // Document not found
	ErrCodeDuplicateID = "E006" // Two records share a BookID
	ErrCodeWriteFailed = "E007" // Document write error
	ErrCodeExists      = "E008" // Import target already holds a document

	ErrCodeInvalidConfig    = "E010" // Config file or flags rejected
	ErrCodeInvalidAttribute = "E011" // Unknown search attribute
	ErrCodeInputClosed      = "E012" // Session input ended before quit
)

// loadErrorCode maps a load failure to its CLI error code.
func loadErrorCode(err error) string {
	var loadErr *store.LoadError
	if !errors.As(err, &loadErr) {
		return ErrCodeGeneric
	}
	switch loadErr.Code {
	case store.LoadCodeUnreadable:
		return ErrCodeUnreadable
	case store.LoadCodeNotFound:
		return ErrCodeNotFound
	case store.LoadCodeSchema:
		return ErrCodeSchema
	case store.LoadCodeMalformed:
		return ErrCodeMalformed
	case store.LoadCodeDuplicateID:
		return ErrCodeDuplicateID
	default:
		return ErrCodeGeneric
	}
}

// SchemaPosition locates a schema violation in the document.
type SchemaPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// loadErrorDetails returns the schema position carried by err, if any.
func loadErrorDetails(err error) *SchemaPosition {
	var schemaErr *schema.Error
	if errors.As(err, &schemaErr) && schemaErr.Line() > 0 {
		return &SchemaPosition{Line: schemaErr.Line(), Column: schemaErr.Pos.Column()}
	}
	return nil
}

// outputCommandError reports a command-level error (exit code 2).
func outputCommandError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputLoadError reports a document that could not be opened or read.
func outputLoadError(formatter *OutputFormatter, err error) error {
	if pos := loadErrorDetails(err); pos != nil {
		return outputCommandError(formatter, loadErrorCode(err), err.Error(), pos)
	}
	return outputCommandError(formatter, loadErrorCode(err), err.Error(), nil)
}

// outputConfigError reports a rejected config file or flag combination.
func outputConfigError(formatter *OutputFormatter, err error) error {
	return outputCommandError(formatter, ErrCodeInvalidConfig, err.Error(), nil)
}
