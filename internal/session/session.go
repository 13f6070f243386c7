package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/jsondb/internal/catalog"
	"github.com/roach88/jsondb/internal/render"
	"github.com/roach88/jsondb/internal/store"
	"github.com/roach88/jsondb/internal/validate"
)

// ErrInputClosed is returned by Run when input ends before quit.
var ErrInputClosed = errors.New("input closed before quit; changes discarded")

// DefaultAbortKeyword cancels a pending delete.
const DefaultAbortKeyword = "back"

// State is the command loop state.
type State int

const (
	StateIdle State = iota
	StateCollectingInput
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCollectingInput:
		return "collecting_input"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Saver persists the record set when the session quits.
type Saver interface {
	Save(ctx context.Context, records []catalog.Record) error
	Location() string
}

// Options configures a Session.
type Options struct {
	In  io.Reader
	Out io.Writer

	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// AbortKeyword cancels a delete at the confirmation prompt. Surrounding
	// whitespace is ignored. Defaults to DefaultAbortKeyword.
	AbortKeyword string
}

// Session is one interactive run over a record set.
type Session struct {
	records *store.RecordStore
	saver   Saver

	in    *bufio.Reader
	out   io.Writer
	table *render.Table

	logger       *slog.Logger
	abortKeyword string

	state     State
	mutations int
}

// New creates a session over records. The session keeps its own copy.
func New(records []catalog.Record, saver Saver, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	// Operator input is trimmed before it is compared with the keyword.
	abort := strings.TrimSpace(opts.AbortKeyword)
	if abort == "" {
		abort = DefaultAbortKeyword
	}
	return &Session{
		records:      store.NewRecordStore(records),
		saver:        saver,
		in:           bufio.NewReader(opts.In),
		out:          opts.Out,
		table:        render.NewTable(opts.Out),
		logger:       logger,
		abortKeyword: abort,
		state:        StateIdle,
	}
}

// State returns the current loop state.
func (s *Session) State() State {
	return s.state
}

// Records returns a copy of the current record set.
func (s *Session) Records() []catalog.Record {
	return s.records.All()
}

// Run executes the command loop until quit succeeds, input ends, or ctx is
// cancelled between commands.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("session started", "document", s.saver.Location(), "records", s.records.Len())
	s.printf("\nJSON DB session started for %s. All changes will be saved after \"quit\" command.\n", s.saver.Location())
	s.printf("Following commands are available: %s.\n\n", strings.Join(CommandNames(), ", "))
	s.rule()

	for s.state != StateTerminated {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.state = StateIdle

		line, err := s.readLine(ctx, "\nEnter a DB action\n\n")
		if err != nil {
			return err
		}

		cmd, ok := lookupCommand(line)
		if !ok {
			s.printf("Error: command %q does not exist. Possible commands: %s\n", line, strings.Join(CommandNames(), ", "))
			continue
		}

		s.logger.Debug("command", "name", cmd.name)
		if err := cmd.run(s, ctx); err != nil {
			return err
		}
	}
	return nil
}

// readLine prints prompt and blocks for one line of input, without its
// line terminator.
func (s *Session) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.printf("%s", prompt)

	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		s.logger.Warn("input closed before quit", "mutations", s.mutations)
		return "", ErrInputClosed
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ask prompts until check accepts the answer. Rejections are reported and
// the prompt repeated; any other error ends the loop.
func ask[T any](ctx context.Context, s *Session, prompt string, check func(string) (T, error)) (T, error) {
	prev := s.state
	s.state = StateCollectingInput
	defer func() { s.state = prev }()

	for {
		line, err := s.readLine(ctx, prompt)
		if err != nil {
			var zero T
			return zero, err
		}

		value, err := check(line)
		if err == nil {
			return value, nil
		}

		var rej *validate.Rejection
		if !errors.As(err, &rej) {
			var zero T
			return zero, err
		}
		s.reportRejection(rej)
	}
}

func (s *Session) reportRejection(rej *validate.Rejection) {
	s.printf("\nError: %s\n", rej.Message)
	if len(rej.Candidates) > 0 {
		s.printf("Existing entries filtered by query:\n")
		s.render(rej.Candidates...)
	}
	s.rule()
}

// internalError reports a mutation that failed after its target was
// validated. The loop continues; the record set is unchanged.
func (s *Session) internalError(op string, err error) {
	s.logger.Error("mutation failed", "op", op, "error", err)
	s.printf("Internal error: %s failed: %v\n", op, err)
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) render(records ...catalog.Record) {
	if err := s.table.Records(records); err != nil {
		s.logger.Error("render failed", "error", err)
	}
}

func (s *Session) rule() {
	if err := s.table.Rule(); err != nil {
		s.logger.Error("render failed", "error", err)
	}
}
