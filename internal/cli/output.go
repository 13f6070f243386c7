package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // document valid, session saved
	ExitFailure      = 1 // invalid document, or a session that ended without saving
	ExitCommandError = 2 // unreadable document, bad config, bad flags
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError returns an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError returns an ExitError wrapping err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the code carried by err, or ExitFailure.
func GetExitCode(err error) int {
	if exitErr := (*ExitError)(nil); errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// CLIResponse is the envelope written for every result under --format json.
// SessionID is only set by the session command.
type CLIResponse struct {
	Status    string    `json:"status"` // "ok" or "error"
	SessionID string    `json:"session_id,omitempty"`
	Data      any       `json:"data,omitempty"`
	Error     *CLIError `json:"error,omitempty"`
}

// CLIError describes a failed command.
type CLIError struct {
	Code    string `json:"code"` // E0xx
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// OutputFormatter writes command results to Writer, as JSON envelopes or as
// the payload's text form. Diagnostics go through Logger instead, so they
// never mix with a JSON result.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
	Logger  *slog.Logger

	level *slog.LevelVar
}

func newOutputFormatter(format string, out, diag io.Writer, initial slog.Level, verbose bool) *OutputFormatter {
	level := new(slog.LevelVar)
	level.Set(initial)
	return &OutputFormatter{
		Format:  format,
		Writer:  out,
		Verbose: verbose,
		Logger:  newLogger(diag, level),
		level:   level,
	}
}

// SetLevel changes the level of Logger. Commands call it once the config
// file has been read.
func (f *OutputFormatter) SetLevel(level slog.Level) {
	if f.level != nil {
		f.level.Set(level)
	}
}

// Debug logs a diagnostic message. A formatter without a Logger drops it.
func (f *OutputFormatter) Debug(msg string, args ...any) {
	if f.Logger != nil {
		f.Logger.Debug(msg, args...)
	}
}

// Success writes a result. In text mode data is printed with its String
// method when it has one.
func (f *OutputFormatter) Success(data any) error {
	return f.write(CLIResponse{Status: "ok", Data: data}, data)
}

// SessionSuccess writes the summary of a saved session.
func (f *OutputFormatter) SessionSuccess(sessionID string, summary SessionSummary) error {
	return f.write(CLIResponse{Status: "ok", SessionID: sessionID, Data: summary}, summary)
}

// Error writes a failed result. A schema position is always shown; other
// details only under --verbose.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return f.write(CLIResponse{Status: "error", Error: &CLIError{Code: code, Message: message, Details: details}}, nil)
	}

	if _, err := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message); err != nil {
		return err
	}
	switch d := details.(type) {
	case nil:
	case *SchemaPosition:
		_, err := fmt.Fprintf(f.Writer, "  at line %d, column %d\n", d.Line, d.Column)
		return err
	case SchemaPosition:
		_, err := fmt.Fprintf(f.Writer, "  at line %d, column %d\n", d.Line, d.Column)
		return err
	default:
		if f.Verbose {
			_, err := fmt.Fprintf(f.Writer, "Details: %v\n", d)
			return err
		}
	}
	return nil
}

func (f *OutputFormatter) write(resp CLIResponse, text any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(resp)
	}
	_, err := fmt.Fprintln(f.Writer, text)
	return err
}
