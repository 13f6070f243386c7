package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsondb/internal/catalog"
)

const sampleDocument = `[
  {"BookID": 1, "Title": "Dune", "Author": "Herbert", "Genre": "SF", "Year": "1965", "BorrowedBy": []},
  {"BookID": 2, "Title": "Foundation", "Author": "Asimov", "Genre": "SF", "Year": 1951, "BorrowedBy": ["Ivan", "Oleg"]}
]`

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestJSONFileLoad(t *testing.T) {
	path := writeDocument(t, sampleDocument)

	records, err := NewJSONFile(path).Load(context.Background())
	require.NoError(t, err)

	want := []catalog.Record{
		{ID: 1, Title: "Dune", Author: "Herbert", Genre: "SF", Year: catalog.NewYear("1965"), BorrowedBy: []string{}},
		{ID: 2, Title: "Foundation", Author: "Asimov", Genre: "SF", Year: catalog.Year{Text: "1951", Numeric: true}, BorrowedBy: []string{"Ivan", "Oleg"}},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONFileRoundTripWithoutMutation(t *testing.T) {
	path := writeDocument(t, sampleDocument)
	backend := NewJSONFile(path)
	ctx := context.Background()

	loaded, err := backend.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, backend.Save(ctx, NewRecordStore(loaded).All()))

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, sampleDocument, string(saved))

	reloaded, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, loaded, reloaded)
}

func TestJSONFileSaveEmpty(t *testing.T) {
	path := writeDocument(t, sampleDocument)
	backend := NewJSONFile(path)

	require.NoError(t, backend.Save(context.Background(), nil))

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(saved))
}

func TestJSONFileSaveLeavesNoTempFiles(t *testing.T) {
	path := writeDocument(t, sampleDocument)
	backend := NewJSONFile(path)
	ctx := context.Background()

	records, err := backend.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, backend.Save(ctx, records))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "library.json", entries[0].Name())
}

func TestJSONFileSaveKeepsPermissions(t *testing.T) {
	tests := []struct {
		name string
		mode os.FileMode
	}{
		{"owner_only", 0o600},
		{"group_writable", 0o664},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDocument(t, sampleDocument)
			require.NoError(t, os.Chmod(path, tt.mode))

			require.NoError(t, NewJSONFile(path).Save(context.Background(), nil))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, info.Mode().Perm())
		})
	}
}

func TestJSONFileSaveNewDocumentMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")

	require.NoError(t, NewJSONFile(path).Save(context.Background(), nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestJSONFileLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code LoadCode
	}{
		{"malformed json", `[{"BookID": 1`, LoadCodeSchema},
		{"wrong shape", `{"books": []}`, LoadCodeSchema},
		{"bad year", `[{"BookID": 1, "Title": "", "Author": "", "Genre": "", "Year": "later", "BorrowedBy": []}]`, LoadCodeSchema},
		{"duplicate id", `[
  {"BookID": 1, "Title": "A", "Author": "", "Genre": "", "Year": "1", "BorrowedBy": []},
  {"BookID": 1, "Title": "B", "Author": "", "Genre": "", "Year": "2", "BorrowedBy": []}
]`, LoadCodeDuplicateID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDocument(t, tt.doc)

			_, err := NewJSONFile(path).Load(context.Background())
			require.Error(t, err)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tt.code, loadErr.Code)
			assert.True(t, IsLoadError(err))
		})
	}
}

func TestJSONFileLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := NewJSONFile(path).Load(context.Background())

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, LoadCodeNotFound, loadErr.Code)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncodeDocumentKeepsOrder(t *testing.T) {
	data, err := EncodeDocument(fixtureRecords())
	require.NoError(t, err)

	records, err := DecodeDocument("memory", data)
	require.NoError(t, err)
	assert.Equal(t, fixtureRecords(), records)
}
