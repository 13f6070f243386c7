// Package validate turns raw operator text into typed values.
//
// Every function returns either the sanitised value or a *Rejection. A
// rejection is recoverable: the caller reports it and asks again. No
// function here keeps state or writes output.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/jsondb/internal/catalog"
)

// Rejection reports why a value was refused.
type Rejection struct {
	// Message is shown to the operator before the prompt is repeated.
	Message string

	// Candidates lists the records the operator may choose from (QueryID only).
	Candidates []catalog.Record
}

func (r *Rejection) Error() string {
	return r.Message
}

// IsRejection reports whether err is a validation rejection.
func IsRejection(err error) bool {
	var r *Rejection
	return errors.As(err, &r)
}

func rejectf(format string, args ...any) *Rejection {
	return &Rejection{Message: fmt.Sprintf(format, args...)}
}

// AcceptedKeys lists the attribute keys Attribute accepts, in column order.
func AcceptedKeys(idAllowed bool) []string {
	var keys []string
	for _, a := range catalog.Attributes() {
		if a == catalog.AttrID && !idAllowed {
			continue
		}
		keys = append(keys, a.Key())
	}
	return keys
}

// Attribute resolves an attribute name typed by the operator.
// The id attribute is only accepted when idAllowed is set.
func Attribute(text string, idAllowed bool) (catalog.Attribute, error) {
	key := catalog.Normalize(text)
	attr, ok := catalog.LookupAttribute(key)
	if !ok || (attr == catalog.AttrID && !idAllowed) {
		return 0, rejectf("specified attribute %q does not exist or is not acceptable. Accepted attributes: %s",
			strings.TrimSpace(text), strings.Join(AcceptedKeys(idAllowed), ", "))
	}
	return attr, nil
}

// Year accepts text that parses as an integer.
// The text is stored trimmed but otherwise as typed.
func Year(text string) (catalog.Year, error) {
	trimmed := strings.TrimSpace(text)
	if _, err := strconv.Atoi(trimmed); err != nil {
		return catalog.Year{}, rejectf("a book year must be an integer, got %q", trimmed)
	}
	return catalog.NewYear(trimmed), nil
}

// BorrowedNames splits a comma separated list of names, trimming and
// capitalising each one. Blank input yields an empty, non-nil list; that is
// a valid answer meaning "no borrowers", not a rejection.
func BorrowedNames(text string) ([]string, error) {
	names := []string{}
	for _, segment := range strings.Split(text, ",") {
		name := catalog.Capitalize(segment)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// QueryID picks one record out of candidates by the id the operator typed.
func QueryID(text string, candidates []catalog.Record) (catalog.Selection, error) {
	trimmed := strings.TrimSpace(text)
	id, err := strconv.Atoi(trimmed)
	if err != nil {
		return catalog.Selection{}, &Rejection{
			Message:    fmt.Sprintf("please provide an integer value for a book ID, got %q", trimmed),
			Candidates: candidates,
		}
	}
	for _, rec := range candidates {
		if rec.ID == id {
			return catalog.Selection{ID: id, Record: rec.Clone()}, nil
		}
	}
	return catalog.Selection{}, &Rejection{
		Message:    fmt.Sprintf("an entry with ID %d does not exist in the query. Please enter an existing ID", id),
		Candidates: candidates,
	}
}
