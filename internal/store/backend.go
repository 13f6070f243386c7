package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/jsondb/internal/catalog"
	"github.com/roach88/jsondb/internal/schema"
)

// Backend loads and saves a whole catalog document.
type Backend interface {
	// Load reads the document. Failures are *LoadError.
	Load(ctx context.Context) ([]catalog.Record, error)

	// Save overwrites the document with records, in order.
	Save(ctx context.Context, records []catalog.Record) error

	// Location describes where the document lives, for messages and logs.
	Location() string

	// Close releases resources held by the backend.
	Close() error
}

// LoadCode classifies a load failure.
type LoadCode string

const (
	LoadCodeUnreadable  LoadCode = "UNREADABLE"
	LoadCodeNotFound    LoadCode = "NOT_FOUND"
	LoadCodeSchema      LoadCode = "SCHEMA"
	LoadCodeMalformed   LoadCode = "MALFORMED"
	LoadCodeDuplicateID LoadCode = "DUPLICATE_ID"
)

// LoadError is returned by Backend.Load.
type LoadError struct {
	Code     LoadCode
	Location string
	Message  string
	Err      error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Location, e.Message, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Location, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is a load failure.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// DecodeDocument validates data against the document schema and decodes it.
// location names the document in errors.
func DecodeDocument(location string, data []byte) ([]catalog.Record, error) {
	if err := schema.Validate(location, data); err != nil {
		return nil, &LoadError{Code: LoadCodeSchema, Location: location, Message: "document does not match schema", Err: err}
	}

	var records []catalog.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &LoadError{Code: LoadCodeMalformed, Location: location, Message: "decode records", Err: err}
	}

	seen := make(map[int]bool, len(records))
	for i, r := range records {
		if seen[r.ID] {
			return nil, &LoadError{
				Code:     LoadCodeDuplicateID,
				Location: location,
				Message:  fmt.Sprintf("record %d repeats BookID %d", i, r.ID),
			}
		}
		seen[r.ID] = true
		records[i] = r.Clone()
	}
	if records == nil {
		records = []catalog.Record{}
	}
	return records, nil
}

// EncodeDocument renders records as an indented JSON array.
func EncodeDocument(records []catalog.Record) ([]byte, error) {
	if records == nil {
		records = []catalog.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return append(data, '\n'), nil
}
