package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/jsondb/internal/render"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	BackendOptions
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list [document]",
		Short: "Print every record of a document",
		Long: `Print every record of a document in store order, without starting a session.

The text format is the same table the session prints for show_all.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, args, cmd)
		},
	}

	addBackendFlags(cmd, &opts.BackendOptions)

	return cmd
}

func runList(opts *ListOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := resolveConfig(opts.RootOptions, &opts.BackendOptions, args)
	if err != nil {
		return outputConfigError(formatter, err)
	}
	formatter.SetLevel(opts.logLevel(cfg))

	backend, records, err := loadDocument(cmd.Context(), cfg)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	defer backend.Close()

	formatter.Debug("document loaded", "document", backend.Location(), "records", len(records))

	if opts.Format == "json" {
		return formatter.Success(records)
	}
	return render.NewTable(formatter.Writer).Records(records)
}
