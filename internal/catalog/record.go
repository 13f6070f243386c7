package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one catalog entry.
type Record struct {
	ID         int      `json:"BookID"`
	Title      string   `json:"Title"`
	Author     string   `json:"Author"`
	Genre      string   `json:"Genre"`
	Year       Year     `json:"Year"`
	BorrowedBy []string `json:"BorrowedBy"`
}

// Clone returns a deep copy of the record.
// A nil borrower list is normalised to an empty one so it encodes as [].
func (r Record) Clone() Record {
	out := r
	out.BorrowedBy = make([]string, len(r.BorrowedBy))
	copy(out.BorrowedBy, r.BorrowedBy)
	return out
}

// Fields holds the operator-supplied values for a new record.
type Fields struct {
	Title      string
	Author     string
	Genre      string
	Year       Year
	BorrowedBy []string
}

// NewRecord builds a record with the given id from fields.
func NewRecord(id int, f Fields) Record {
	return Record{
		ID:         id,
		Title:      f.Title,
		Author:     f.Author,
		Genre:      f.Genre,
		Year:       f.Year,
		BorrowedBy: f.BorrowedBy,
	}.Clone()
}

// Year is integer-valued text.
//
// Documents may carry the year as a JSON string or a JSON number. Numeric
// records which form was read so that an untouched record encodes back to
// the same JSON.
type Year struct {
	Text    string
	Numeric bool
}

// NewYear creates a year that encodes as a JSON string.
func NewYear(text string) Year {
	return Year{Text: text}
}

// String returns the year text.
func (y Year) String() string {
	return y.Text
}

// Int parses the year text.
func (y Year) Int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(y.Text))
}

// MarshalJSON implements json.Marshaler for Year.
func (y Year) MarshalJSON() ([]byte, error) {
	if y.Numeric {
		if _, err := y.Int(); err != nil {
			return nil, fmt.Errorf("numeric year %q: %w", y.Text, err)
		}
		return []byte(strings.TrimSpace(y.Text)), nil
	}
	return json.Marshal(y.Text)
}

// UnmarshalJSON implements json.Unmarshaler for Year.
// Strings are taken verbatim; numbers must be integers.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty JSON value for year")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year{Text: s}
		return nil
	}
	if _, err := strconv.Atoi(string(data)); err != nil {
		return fmt.Errorf("year %s is not an integer", data)
	}
	*y = Year{Text: string(data), Numeric: true}
	return nil
}

// Selection is a single record chosen out of a query result.
// Updates made to Record must be written back with the store's Replace.
type Selection struct {
	ID     int
	Record Record
}
