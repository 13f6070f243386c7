package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/jsondb/internal/session"
)

// SessionOptions holds flags for the session command.
type SessionOptions struct {
	*RootOptions
	BackendOptions
}

// SessionSummary is reported after a session ends.
type SessionSummary struct {
	Document string `json:"document"`
	Records  int    `json:"records"`
	Saved    bool   `json:"saved"`
}

func (s SessionSummary) String() string {
	return fmt.Sprintf("%s: %d records saved", s.Document, s.Records)
}

// NewSessionCommand creates the session command.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "session [document]",
		Short: "Start an interactive session over a document",
		Long: `Load every record of a document and start the interactive command loop.

Commands: create, show_all, search, update, delete, quit.
Changes are only written back by "quit". If input ends before that,
nothing is saved and the command exits with status 1.

Example:
  jsondb session library.json
  jsondb session --backend sqlite --table library books.db`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(opts, args, cmd)
		},
	}

	addBackendFlags(cmd, &opts.BackendOptions)

	return cmd
}

func runSession(opts *SessionOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := resolveConfig(opts.RootOptions, &opts.BackendOptions, args)
	if err != nil {
		return outputConfigError(formatter, err)
	}

	sessionID, err := uuid.NewV7()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to generate session id", err)
	}
	formatter.SetLevel(opts.logLevel(cfg))
	logger := formatter.Logger.With("session", sessionID.String())

	ctx := cmd.Context()
	backend, records, err := loadDocument(ctx, cfg)
	if err != nil {
		logger.Error("load failed", "document", cfg.Document, "error", err)
		return outputLoadError(formatter, err)
	}
	defer func() {
		if closeErr := backend.Close(); closeErr != nil {
			logger.Error("error closing backend", "error", closeErr)
		}
	}()

	s := session.New(records, backend, session.Options{
		In:           cmd.InOrStdin(),
		Out:          cmd.OutOrStdout(),
		Logger:       logger,
		AbortKeyword: cfg.ConfirmKeyword,
	})
	if err := s.Run(ctx); err != nil {
		if errors.Is(err, session.ErrInputClosed) {
			_ = formatter.Error(ErrCodeInputClosed, err.Error(), nil)
			return WrapExitError(ExitFailure, "session ended without saving", err)
		}
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "session failed", err)
	}

	if opts.Format == "json" {
		return formatter.SessionSuccess(sessionID.String(), SessionSummary{
			Document: backend.Location(),
			Records:  len(s.Records()),
			Saved:    true,
		})
	}
	return nil
}
