package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/jsondb/internal/catalog"
	"github.com/roach88/jsondb/internal/query"
	"github.com/roach88/jsondb/internal/render"
	"github.com/roach88/jsondb/internal/validate"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	BackendOptions
	By    string
	Value string
}

// SearchResult is the JSON payload of the search command.
type SearchResult struct {
	Attribute string           `json:"attribute"`
	Value     string           `json:"value"`
	Exact     bool             `json:"exact"`
	Records   []catalog.Record `json:"records"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search [document]",
		Short: "Find records by attribute",
		Long: `Find records whose attribute matches a value, without starting a session.

Exact matches (ignoring case and surrounding whitespace) are preferred.
When there are none, single-valued attributes fall back to records that
contain the value or are contained by it.

Example:
  jsondb search --by title --value dune library.json
  jsondb search --by borrowedby --value Ivan --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.By, "by", "", "attribute to search (title|author|genre|year|borrowedby)")
	cmd.Flags().StringVar(&opts.Value, "value", "", "value to look for")
	_ = cmd.MarkFlagRequired("by")
	addBackendFlags(cmd, &opts.BackendOptions)

	return cmd
}

func runSearch(opts *SearchOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	attr, err := validate.Attribute(opts.By, false)
	if err != nil {
		return outputCommandError(formatter, ErrCodeInvalidAttribute, err.Error(), nil)
	}

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

	res := query.Match(records, attr, opts.Value)
	formatter.Debug("query matched", "attribute", attr.Key(), "matched", len(res.Records), "records", len(records), "exact", res.Exact)

	if opts.Format == "json" {
		matched := res.Records
		if matched == nil {
			matched = []catalog.Record{}
		}
		return formatter.Success(SearchResult{
			Attribute: attr.Key(),
			Value:     opts.Value,
			Exact:     res.Exact,
			Records:   matched,
		})
	}

	fmt.Fprintln(formatter.Writer, res.Summary(attr, opts.Value))
	if res.Empty() {
		return nil
	}
	return render.NewTable(formatter.Writer).Records(res.Records)
}
