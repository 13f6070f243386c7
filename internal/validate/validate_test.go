package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsondb/internal/catalog"
)

func TestAttributeAccepted(t *testing.T) {
	tests := []struct {
		in        string
		idAllowed bool
		want      catalog.Attribute
	}{
		{"title", false, catalog.AttrTitle},
		{"  Author ", false, catalog.AttrAuthor},
		{"GENRE", false, catalog.AttrGenre},
		{"year", false, catalog.AttrYear},
		{"BorrowedBy", false, catalog.AttrBorrowedBy},
		{"id", true, catalog.AttrID},
		{"BookID", true, catalog.AttrID},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Attribute(tt.in, tt.idAllowed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttributeRejected(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		idAllowed bool
	}{
		{"unknown", "publisher", true},
		{"empty", "", false},
		{"id not allowed", "id", false},
		{"bookid not allowed", "bookid", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Attribute(tt.in, tt.idAllowed)
			require.Error(t, err)
			assert.True(t, IsRejection(err))
			assert.Contains(t, err.Error(), "Accepted attributes")
		})
	}
}

func TestAttributeRejectionListsChoices(t *testing.T) {
	_, err := Attribute("isbn", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title, author, genre, year, borrowedby")
	assert.NotContains(t, err.Error(), "id,")

	_, err = Attribute("isbn", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id, title, author, genre, year, borrowedby")
}

func TestYear(t *testing.T) {
	y, err := Year(" 1965 ")
	require.NoError(t, err)
	assert.Equal(t, catalog.NewYear("1965"), y)

	y, err = Year("-44")
	require.NoError(t, err)
	assert.Equal(t, "-44", y.Text)

	for _, bad := range []string{"", "nineteen", "1965.5", "19 65"} {
		_, err := Year(bad)
		require.Error(t, err, "input %q", bad)
		assert.True(t, IsRejection(err))
	}
}

func TestBorrowedNames(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Ivan, Oleg, Dmitriy", []string{"Ivan", "Oleg", "Dmitriy"}},
		{"ivan,  OLEG ", []string{"Ivan", "Oleg"}},
		{"anna", []string{"Anna"}},
		{"Ivan, , Oleg", []string{"Ivan", "Oleg"}},
		{"", []string{}},
		{"   ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := BorrowedNames(tt.in)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryID(t *testing.T) {
	candidates := []catalog.Record{
		{ID: 2, Title: "Dune"},
		{ID: 5, Title: "Dune Messiah"},
	}

	sel, err := QueryID(" 5 ", candidates)
	require.NoError(t, err)
	assert.Equal(t, 5, sel.ID)
	assert.Equal(t, "Dune Messiah", sel.Record.Title)
}

func TestQueryIDRejections(t *testing.T) {
	candidates := []catalog.Record{{ID: 2}, {ID: 5}}

	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{"not a number", "two", "integer value"},
		{"not a candidate", "3", "does not exist"},
		{"empty", "", "integer value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := QueryID(tt.in, candidates)
			require.Error(t, err)

			var rej *Rejection
			require.ErrorAs(t, err, &rej)
			assert.Contains(t, rej.Message, tt.msg)
			assert.Equal(t, candidates, rej.Candidates)
		})
	}
}
