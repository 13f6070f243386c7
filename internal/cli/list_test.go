package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsondb/internal/catalog"
)

func TestListText(t *testing.T) {
	res := execute(t, "", "list", writeLibrary(t))
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "| Book ID | Title")
	assert.Contains(t, res.stdout, "| 1       | Dune")
	assert.Contains(t, res.stdout, "| 2       | Emma")
}

func TestListJSON(t *testing.T) {
	res := execute(t, "", "--format", "json", "list", writeLibrary(t))
	require.NoError(t, res.err)

	var resp struct {
		Status string           `json:"status"`
		Data   []catalog.Record `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	if diff := cmp.Diff(sampleRecords(), resp.Data); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestListEmptyDocument(t *testing.T) {
	res := execute(t, "", "--format", "json", "list", writeFile(t, "empty.json", "[]"))
	require.NoError(t, res.err)
	assert.JSONEq(t, `{"status":"ok","data":[]}`, res.stdout)
}

func TestListMissingDocument(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	res := execute(t, "", "list", missing)
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
	assert.Contains(t, res.err.Error(), "E005") // ErrCodeNotFound
	assert.Contains(t, res.stdout, "not found")
}

func TestListVerboseLogsToStderr(t *testing.T) {
	res := execute(t, "", "--verbose", "list", writeLibrary(t))
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "document loaded")
	assert.Contains(t, res.stderr, "records=2")
	assert.NotContains(t, res.stdout, "document loaded")
}

func TestListConfigLogLevel(t *testing.T) {
	cfg := writeFile(t, "jsondb.yaml", "log_level: debug\n")

	res := execute(t, "", "--config", cfg, "list", writeLibrary(t))
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "document loaded")
}
