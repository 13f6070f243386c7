package store

import (
	"errors"
	"fmt"

	"github.com/roach88/jsondb/internal/catalog"
)

// ErrNotFound is returned when a mutation names an id that is not in the
// record set. Callers validate ids first, so this signals a logic error.
var ErrNotFound = errors.New("record not found")

// RecordStore holds the ordered record set for one session.
// It is not safe for concurrent use; a session owns exactly one.
type RecordStore struct {
	records []catalog.Record
}

// NewRecordStore creates a store holding copies of records, in order.
func NewRecordStore(records []catalog.Record) *RecordStore {
	s := &RecordStore{records: make([]catalog.Record, 0, len(records))}
	for _, r := range records {
		s.records = append(s.records, r.Clone())
	}
	return s
}

// Len returns the number of records.
func (s *RecordStore) Len() int {
	return len(s.records)
}

// All returns copies of all records in store order.
func (s *RecordStore) All() []catalog.Record {
	out := make([]catalog.Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// NextID returns 1 for an empty store, otherwise the largest id plus one.
// Storage order is left untouched.
func (s *RecordStore) NextID() int {
	maxID := 0
	for _, r := range s.records {
		maxID = max(maxID, r.ID)
	}
	return maxID + 1
}

// Create appends a record built from fields and returns it.
func (s *RecordStore) Create(fields catalog.Fields) catalog.Record {
	rec := catalog.NewRecord(s.NextID(), fields)
	s.records = append(s.records, rec)
	return rec.Clone()
}

// Replace swaps every record with the given id for rec.
// rec must carry the same id.
func (s *RecordStore) Replace(id int, rec catalog.Record) error {
	if rec.ID != id {
		return fmt.Errorf("replace %d: record carries id %d", id, rec.ID)
	}
	replaced := 0
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i] = rec.Clone()
			replaced++
		}
	}
	if replaced == 0 {
		return fmt.Errorf("replace %d: %w", id, ErrNotFound)
	}
	return nil
}

// RemoveByID deletes the record with the given id and returns it.
// The remaining records keep their relative order.
func (s *RecordStore) RemoveByID(id int) (catalog.Record, error) {
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return r, nil
		}
	}
	return catalog.Record{}, fmt.Errorf("remove %d: %w", id, ErrNotFound)
}
