package catalog

import (
	"errors"
	"fmt"
)

// Attribute names a searchable or updatable field of a Record.
type Attribute int

const (
	AttrID Attribute = iota
	AttrTitle
	AttrAuthor
	AttrGenre
	AttrYear
	AttrBorrowedBy
)

// ErrImmutableID is returned when an update targets the record id.
var ErrImmutableID = errors.New("BookID cannot be changed")

type attributeSpec struct {
	key   string // operator-facing key, lower case
	field string // document field name
	get   func(Record) FieldValue
	set   func(*Record, FieldValue) error
}

// attributes is built once; indexes match the Attribute constants.
var attributes = []attributeSpec{
	AttrID: {
		key:   "id",
		field: "BookID",
		get:   func(r Record) FieldValue { return Text(fmt.Sprint(r.ID)) },
		set:   func(*Record, FieldValue) error { return ErrImmutableID },
	},
	AttrTitle: {
		key:   "title",
		field: "Title",
		get:   func(r Record) FieldValue { return Text(r.Title) },
		set:   setText(func(r *Record, s string) { r.Title = s }),
	},
	AttrAuthor: {
		key:   "author",
		field: "Author",
		get:   func(r Record) FieldValue { return Text(r.Author) },
		set:   setText(func(r *Record, s string) { r.Author = s }),
	},
	AttrGenre: {
		key:   "genre",
		field: "Genre",
		get:   func(r Record) FieldValue { return Text(r.Genre) },
		set:   setText(func(r *Record, s string) { r.Genre = s }),
	},
	AttrYear: {
		key:   "year",
		field: "Year",
		get:   func(r Record) FieldValue { return Text(r.Year.Text) },
		set:   setText(func(r *Record, s string) { r.Year = NewYear(s) }),
	},
	AttrBorrowedBy: {
		key:   "borrowedby",
		field: "BorrowedBy",
		get: func(r Record) FieldValue {
			return TextList(append([]string(nil), r.BorrowedBy...))
		},
		set: func(r *Record, v FieldValue) error {
			list, ok := v.(TextList)
			if !ok {
				return fmt.Errorf("BorrowedBy expects a name list, got %T", v)
			}
			r.BorrowedBy = append([]string{}, list...)
			return nil
		},
	},
}

// keyAliases maps extra operator spellings onto attributes.
var keyAliases = map[string]Attribute{
	"bookid": AttrID,
}

func setText(assign func(*Record, string)) func(*Record, FieldValue) error {
	return func(r *Record, v FieldValue) error {
		text, ok := v.(Text)
		if !ok {
			return fmt.Errorf("expected text value, got %T", v)
		}
		assign(r, string(text))
		return nil
	}
}

// Attributes returns every attribute in column order.
func Attributes() []Attribute {
	out := make([]Attribute, len(attributes))
	for i := range attributes {
		out[i] = Attribute(i)
	}
	return out
}

// LookupAttribute resolves an operator key ("title", "bookid", ...).
// The key must already be lower case and trimmed.
func LookupAttribute(key string) (Attribute, bool) {
	if a, ok := keyAliases[key]; ok {
		return a, true
	}
	for i, spec := range attributes {
		if spec.key == key {
			return Attribute(i), true
		}
	}
	return 0, false
}

func (a Attribute) valid() bool {
	return a >= 0 && int(a) < len(attributes)
}

// Key returns the operator-facing key.
func (a Attribute) Key() string {
	if !a.valid() {
		return ""
	}
	return attributes[a].key
}

// String returns the document field name.
func (a Attribute) String() string {
	if !a.valid() {
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
	return attributes[a].field
}

// MultiValued reports whether the attribute holds a TextList.
func (a Attribute) MultiValued() bool {
	return a == AttrBorrowedBy
}

// Get reads the attribute from r.
func (a Attribute) Get(r Record) FieldValue {
	return attributes[a].get(r)
}

// Set writes v into r. Setting AttrID always fails with ErrImmutableID.
func (a Attribute) Set(r *Record, v FieldValue) error {
	if !a.valid() {
		return fmt.Errorf("unknown attribute %d", int(a))
	}
	return attributes[a].set(r, v)
}
