package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jsondb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "library.json", cfg.Document)
	assert.Equal(t, BackendJSON, cfg.Backend)
	assert.Equal(t, "back", cfg.ConfirmKeyword)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
document: books.db
backend: sqlite
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "books.db", cfg.Document)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "library", cfg.SQLiteTable, "unset keys keep defaults")
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadTrimsConfirmKeyword(t *testing.T) {
	cfg, err := Load(writeConfig(t, "confirm_keyword: \" cancel \"\n"))
	require.NoError(t, err)
	assert.Equal(t, "cancel", cfg.ConfirmKeyword)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(writeConfig(t, "documnet: typo.json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
	assert.Contains(t, err.Error(), "documnet")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown backend", func(c *Config) { c.Backend = "postgres" }, `unknown backend "postgres"`},
		{"blank document", func(c *Config) { c.Document = " " }, "document is required"},
		{"sqlite without table", func(c *Config) { c.Backend = BackendSQLite; c.SQLiteTable = "" }, "sqlite_table is required"},
		{"json ignores table", func(c *Config) { c.SQLiteTable = "" }, ""},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, `unknown log level "loud"`},
		{"blank keyword", func(c *Config) { c.ConfirmKeyword = "" }, "confirm_keyword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}
