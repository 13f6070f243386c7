// Package query resolves an attribute/value pair against a record set.
//
// Matching is two-tiered. A record whose normalised field equals the
// normalised value is an exact match. Failing that, a single-valued field
// that contains the value, or is contained by it, is a similarity match.
// Exact matches always suppress similarity matches. Borrower lists only
// take part in the exact tier.
package query

import (
	"fmt"
	"strings"

	"github.com/roach88/jsondb/internal/catalog"
)

// Result is the outcome of Match. Records are in store order.
type Result struct {
	Records []catalog.Record
	// Exact is true when Records holds exact matches and false when it holds
	// similarity matches (or nothing).
	Exact bool
}

// Empty reports whether nothing matched.
func (r Result) Empty() bool {
	return len(r.Records) == 0
}

// Match scans records for attr == value.
func Match(records []catalog.Record, attr catalog.Attribute, value string) Result {
	want := catalog.Normalize(value)

	var exact, similar []catalog.Record
	for _, rec := range records {
		switch field := attr.Get(rec).(type) {
		case catalog.Text:
			got := catalog.Normalize(string(field))
			switch {
			case got == want:
				exact = append(exact, rec.Clone())
			case strings.Contains(got, want) || strings.Contains(want, got):
				similar = append(similar, rec.Clone())
			}
		case catalog.TextList:
			for _, entry := range field {
				if catalog.Normalize(entry) == want {
					exact = append(exact, rec.Clone())
					break
				}
			}
		}
	}

	if len(exact) > 0 {
		return Result{Records: exact, Exact: true}
	}
	return Result{Records: similar, Exact: false}
}

// Single returns the only record of the result, if there is exactly one.
// Update and delete use it to skip the id prompt.
func (r Result) Single() (catalog.Selection, bool) {
	if len(r.Records) != 1 {
		return catalog.Selection{}, false
	}
	rec := r.Records[0]
	return catalog.Selection{ID: rec.ID, Record: rec.Clone()}, true
}

// Summary describes the result in one line, the way search reports it.
func (r Result) Summary(attr catalog.Attribute, value string) string {
	switch {
	case r.Empty():
		return fmt.Sprintf("Unfortunately, no books were found with parameters %s = %s", attr, value)
	case r.Exact:
		return fmt.Sprintf("Query %s = %s; found the following books:", attr, value)
	default:
		return fmt.Sprintf("Unfortunately, no direct matches were found. Query: %s = %s. Similar results:", attr, value)
	}
}
