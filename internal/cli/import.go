package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/jsondb/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Table string
	Force bool
}

// ImportResult is the payload of the import command.
type ImportResult struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Records int    `json:"records"`
}

func (r ImportResult) String() string {
	return fmt.Sprintf("Imported %d records from %s into %s", r.Records, r.Source, r.Target)
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <document.json> <database>",
		Short: "Copy a JSON document into a SQLite database",
		Long: `Validate a JSON document and store it in a SQLite database, so that
sessions can run with --backend sqlite.

The database is created if needed. An existing document with the same
name is only replaced with --force.

Example:
  jsondb import library.json books.db
  jsondb import --table archive old.json books.db --force`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Table, "table", "", "document name inside the database (defaults to the config value)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "replace an existing document")

	return cmd
}

func runImport(opts *ImportOptions, source, database string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := cmd.Context()

	cfg, err := opts.loadConfig()
	if err != nil {
		return outputConfigError(formatter, err)
	}
	formatter.SetLevel(opts.logLevel(cfg))
	table := cfg.SQLiteTable
	if opts.Table != "" {
		table = opts.Table
	}

	records, err := store.NewJSONFile(source).Load(ctx)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	target, err := store.OpenSQLite(database, table)
	if err != nil {
		return outputCommandError(formatter, ErrCodeUnreadable, err.Error(), nil)
	}
	defer target.Close()

	if !opts.Force {
		_, err := target.Load(ctx)
		var loadErr *store.LoadError
		switch {
		case err == nil:
			return outputCommandError(formatter, ErrCodeExists,
				fmt.Sprintf("%s already holds a document; use --force to replace it", target.Location()), nil)
		case errors.As(err, &loadErr) && loadErr.Code == store.LoadCodeNotFound:
		default:
			// The existing row is unreadable; only --force replaces it.
			return outputLoadError(formatter, err)
		}
	}

	if err := target.Save(ctx, records); err != nil {
		return outputCommandError(formatter, ErrCodeWriteFailed, err.Error(), nil)
	}

	formatter.Debug("document imported", "source", source, "target", target.Location(), "records", len(records))
	return formatter.Success(ImportResult{Source: source, Target: target.Location(), Records: len(records)})
}
