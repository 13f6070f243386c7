// Package render prints records as a fixed-width bordered table.
//
// Column widths are fixed per attribute and shared by every table of a
// session. A value wider than its column is cut and ends in "..".
package render

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/roach88/jsondb/internal/catalog"
)

// Ellipsis marks a truncated cell.
const Ellipsis = ".."

// Column is one table column.
type Column struct {
	Attr   catalog.Attribute
	Header string
	Width  int
}

// DefaultColumns is the catalog table layout.
var DefaultColumns = []Column{
	{Attr: catalog.AttrID, Header: "Book ID", Width: 8},
	{Attr: catalog.AttrTitle, Header: "Title", Width: 24},
	{Attr: catalog.AttrAuthor, Header: "Author", Width: 24},
	{Attr: catalog.AttrGenre, Header: "Genre", Width: 16},
	{Attr: catalog.AttrYear, Header: "Year", Width: 5},
	{Attr: catalog.AttrBorrowedBy, Header: "Borrowed by", Width: 20},
}

// Table writes record tables to an output stream.
type Table struct {
	w       io.Writer
	columns []Column
}

// NewTable returns a table writer using DefaultColumns.
func NewTable(w io.Writer) *Table {
	return &Table{w: w, columns: DefaultColumns}
}

// Record prints a single record.
func (t *Table) Record(rec catalog.Record) error {
	return t.Records([]catalog.Record{rec})
}

// Records prints records in the given order. The header is printed even
// when records is empty.
func (t *Table) Records(records []catalog.Record) error {
	var sb strings.Builder
	border := t.border()

	sb.WriteString(border)
	t.writeRow(&sb, t.headers())
	sb.WriteString(border)
	for _, rec := range records {
		t.writeRow(&sb, t.cells(rec))
		sb.WriteString(border)
	}

	_, err := io.WriteString(t.w, sb.String())
	return err
}

// Width returns the printed width of a table line.
func (t *Table) Width() int {
	n := 1
	for _, c := range t.columns {
		n += c.Width + 2
	}
	return n
}

// Rule prints a plain horizontal rule as wide as the table.
func (t *Table) Rule() error {
	_, err := io.WriteString(t.w, strings.Repeat("-", t.Width())+"\n")
	return err
}

func (t *Table) border() string {
	var sb strings.Builder
	sb.WriteByte('+')
	for _, c := range t.columns {
		sb.WriteString(strings.Repeat("-", c.Width+1))
		sb.WriteByte('+')
	}
	sb.WriteByte('\n')
	return sb.String()
}

func (t *Table) headers() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Header
	}
	return out
}

func (t *Table) cells(rec catalog.Record) []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		switch v := c.Attr.Get(rec).(type) {
		case catalog.Text:
			out[i] = string(v)
		case catalog.TextList:
			out[i] = strings.Join(v, ", ")
		}
	}
	return out
}

func (t *Table) writeRow(sb *strings.Builder, values []string) {
	for i, c := range t.columns {
		sb.WriteString("| ")
		sb.WriteString(Cell(values[i], c.Width))
	}
	sb.WriteString("|\n")
}

// Cell fits s into width display columns, padding with spaces or
// truncating with Ellipsis.
func Cell(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, Ellipsis)
	}
	return runewidth.FillRight(s, width)
}
