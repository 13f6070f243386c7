package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/jsondb/internal/catalog"
	"github.com/roach88/jsondb/internal/session"
	"github.com/roach88/jsondb/internal/store"
)

// memorySaver keeps the last saved record set instead of writing it.
type memorySaver struct {
	name    string
	saved   bool
	records []catalog.Record
}

func (m *memorySaver) Save(_ context.Context, records []catalog.Record) error {
	m.saved = true
	m.records = records
	return nil
}

func (m *memorySaver) Location() string {
	return m.name
}

// Run executes a scenario and evaluates its assertions.
//
// Execution errors (an unreadable document) are returned as error.
// Session errors, such as input ending before quit, are recorded in
// Result.RunErr and only fail the scenario when no error assertion
// expects them.
func Run(scenario *Scenario) (*Result, error) {
	location := scenario.Name + ".json"
	records, err := store.DecodeDocument(location, []byte(scenario.Document))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	var out strings.Builder
	saver := &memorySaver{name: location}
	s := session.New(records, saver, session.Options{
		In:           strings.NewReader(strings.Join(scenario.Input, "\n") + "\n"),
		Out:          &out,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		AbortKeyword: scenario.AbortKeyword,
	})

	result := NewResult()
	result.RunErr = s.Run(context.Background())
	result.Output = out.String()
	result.Saved = saver.saved
	if saver.saved {
		result.Records = saver.records
	} else {
		result.Records = s.Records()
	}

	checkAssertions(scenario, result)
	return result, nil
}
