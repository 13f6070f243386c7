package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/jsondb/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the jsondb CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "jsondb",
		Short: "jsondb - a small library catalog kept in a JSON document",
		Long: `A single-user record store for a library lending catalog.

Records are loaded from one JSON document, edited in an interactive
session and written back when the session quits.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")

	// Add subcommands
	cmd.AddCommand(NewSessionCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig returns the config file named by --config, or the defaults.
func (o *RootOptions) loadConfig() (config.Config, error) {
	if o.ConfigPath == "" {
		return config.Default(), nil
	}
	return config.Load(o.ConfigPath)
}

// logLevel returns the configured level, or debug under --verbose.
func (o *RootOptions) logLevel(cfg config.Config) slog.Level {
	if o.Verbose {
		return slog.LevelDebug
	}
	return cfg.Level()
}

// formatter builds the output formatter for cmd. Results go to stdout and
// logs to stderr, at the default level until SetLevel applies the config.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return newOutputFormatter(o.Format, cmd.OutOrStdout(), cmd.ErrOrStderr(), o.logLevel(config.Default()), o.Verbose)
}
