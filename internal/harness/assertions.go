package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/jsondb/internal/catalog"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("Assertion failed: %s\n  Expected: %s\n  Actual: %s", e.Type, e.Expected, e.Actual)
}

// checkAssertions evaluates every assertion and records failures in result.
// An unexpected session error fails the scenario on its own.
func checkAssertions(scenario *Scenario, result *Result) {
	expectsError := false
	for _, a := range scenario.Assertions {
		if a.Type == AssertError {
			expectsError = true
		}
		if err := checkAssertion(a, result); err != nil {
			result.AddError(err.Error())
		}
	}
	if result.RunErr != nil && !expectsError {
		result.AddError(fmt.Sprintf("session ended with unexpected error: %v", result.RunErr))
	}
}

func checkAssertion(a Assertion, result *Result) error {
	switch a.Type {
	case AssertOutputContains:
		return assertOutputContains(result.Output, a.Text)
	case AssertOutputOrder:
		return assertOutputOrder(result.Output, a.Texts)
	case AssertFinalCount:
		return assertFinalCount(result.Records, a.Count)
	case AssertFinalRecord:
		return assertFinalRecord(result.Records, a.ID, a.Expect)
	case AssertFinalAbsent:
		if _, ok := findRecord(result.Records, a.ID); ok {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("no record with BookID %d", a.ID), Actual: "record present"}
		}
		return nil
	case AssertSaved:
		if result.Saved != a.Saved {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("saved=%t", a.Saved), Actual: fmt.Sprintf("saved=%t", result.Saved)}
		}
		return nil
	case AssertError:
		if result.RunErr == nil || !strings.Contains(result.RunErr.Error(), a.Text) {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("error containing %q", a.Text), Actual: fmt.Sprintf("%v", result.RunErr)}
		}
		return nil
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertOutputContains(output, text string) error {
	if strings.Contains(output, text) {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutputContains,
		Expected: fmt.Sprintf("transcript containing %q", text),
		Actual:   "not found in transcript",
	}
}

// assertOutputOrder checks that texts appear in order. They don't need to
// be adjacent.
func assertOutputOrder(output string, texts []string) error {
	rest := output
	for _, text := range texts {
		i := strings.Index(rest, text)
		if i < 0 {
			return &AssertionError{
				Type:     AssertOutputOrder,
				Expected: fmt.Sprintf("%q in order", texts),
				Actual:   fmt.Sprintf("%q missing or out of order", text),
			}
		}
		rest = rest[i+len(text):]
	}
	return nil
}

func assertFinalCount(records []catalog.Record, count int) error {
	if len(records) == count {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalCount,
		Expected: fmt.Sprintf("%d records", count),
		Actual:   fmt.Sprintf("%d records", len(records)),
	}
}

// assertFinalRecord compares the expected document fields of one record.
// Values are compared by their JSON encoding, so a numeric year only
// matches a number and a text year only matches a string.
func assertFinalRecord(records []catalog.Record, id int, expect map[string]interface{}) error {
	rec, ok := findRecord(records, id)
	if !ok {
		return &AssertionError{Type: AssertFinalRecord, Expected: fmt.Sprintf("record with BookID %d", id), Actual: "not found"}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %d: %w", id, err)
	}
	var actual map[string]json.RawMessage
	if err := json.Unmarshal(data, &actual); err != nil {
		return fmt.Errorf("decode record %d: %w", id, err)
	}

	keys := make([]string, 0, len(expect))
	for k := range expect {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, field := range keys {
		want, err := json.Marshal(expect[field])
		if err != nil {
			return fmt.Errorf("encode expected %s: %w", field, err)
		}
		got, ok := actual[field]
		if !ok {
			return &AssertionError{Type: AssertFinalRecord, Expected: fmt.Sprintf("BookID %d has field %s", id, field), Actual: "no such field"}
		}
		if !bytes.Equal(want, got) {
			return &AssertionError{
				Type:     AssertFinalRecord,
				Expected: fmt.Sprintf("BookID %d %s = %s", id, field, want),
				Actual:   string(got),
			}
		}
	}
	return nil
}

func findRecord(records []catalog.Record, id int) (catalog.Record, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return catalog.Record{}, false
}
