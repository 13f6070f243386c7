package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/jsondb/internal/catalog"
	"github.com/roach88/jsondb/internal/store"
)

func sampleRecords() []catalog.Record {
	return []catalog.Record{
		{ID: 1, Title: "Dune", Author: "Herbert", Genre: "SF", Year: catalog.Year{Text: "1965", Numeric: true}, BorrowedBy: []string{}},
		{ID: 2, Title: "Emma", Author: "Austen", Genre: "Novel", Year: catalog.NewYear("1815"), BorrowedBy: []string{"Ivan"}},
	}
}

// writeLibrary writes sampleRecords to a fresh document and returns its path.
func writeLibrary(t *testing.T) string {
	t.Helper()
	data, err := store.EncodeDocument(sampleRecords())
	require.NoError(t, err)
	return writeFile(t, "library.json", string(data))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

type execResult struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with args, feeding stdin to the session.
func execute(t *testing.T, stdin string, args ...string) execResult {
	t.Helper()
	cmd := NewRootCommand()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return execResult{stdout: out.String(), stderr: errOut.String(), err: err}
}
