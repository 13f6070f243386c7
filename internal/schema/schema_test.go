package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsDocument(t *testing.T) {
	doc := `[
  {"BookID": 1, "Title": "Dune", "Author": "Herbert", "Genre": "SF", "Year": "1965", "BorrowedBy": []},
  {"BookID": 2, "Title": "Foundation", "Author": "Asimov", "Genre": "SF", "Year": 1951, "BorrowedBy": ["Ivan"]}
]`
	assert.NoError(t, Validate("library.json", []byte(doc)))
}

func TestValidateAcceptsEmptyDocument(t *testing.T) {
	assert.NoError(t, Validate("library.json", []byte(`[]`)))
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `[{"BookID": 1,`},
		{"object instead of array", `{"BookID": 1}`},
		{"missing field", `[{"BookID": 1, "Title": "Dune", "Author": "Herbert", "Genre": "SF", "Year": "1965"}]`},
		{"zero id", `[{"BookID": 0, "Title": "", "Author": "", "Genre": "", "Year": "1", "BorrowedBy": []}]`},
		{"text year", `[{"BookID": 1, "Title": "", "Author": "", "Genre": "", "Year": "soon", "BorrowedBy": []}]`},
		{"float year", `[{"BookID": 1, "Title": "", "Author": "", "Genre": "", "Year": 19.5, "BorrowedBy": []}]`},
		{"borrower not string", `[{"BookID": 1, "Title": "", "Author": "", "Genre": "", "Year": "1", "BorrowedBy": [3]}]`},
		{"unknown field", `[{"BookID": 1, "Title": "", "Author": "", "Genre": "", "Year": "1", "BorrowedBy": [], "ISBN": "x"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("library.json", []byte(tt.doc))
			require.Error(t, err)

			var schemaErr *Error
			require.ErrorAs(t, err, &schemaErr)
			assert.NotEmpty(t, schemaErr.Message)
		})
	}
}
