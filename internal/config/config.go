// Package config loads the optional jsondb configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds session settings. Command-line flags override these values.
type Config struct {
	Document       string `yaml:"document"`
	Backend        string `yaml:"backend"`
	SQLiteTable    string `yaml:"sqlite_table"`
	LogLevel       string `yaml:"log_level"`
	ConfirmKeyword string `yaml:"confirm_keyword"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Document:       "library.json",
		Backend:        BackendJSON,
		SQLiteTable:    "library",
		LogLevel:       "warn",
		ConfirmKeyword: "back",
	}
}

// Load reads a YAML config file over the defaults.
// Keys missing from the file keep their default value; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse YAML: %w", err)
	}
	cfg.ConfirmKeyword = strings.TrimSpace(cfg.ConfirmKeyword)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every setting has a usable value.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Document) == "" {
		return errors.New("document is required")
	}
	switch c.Backend {
	case BackendJSON:
	case BackendSQLite:
		if strings.TrimSpace(c.SQLiteTable) == "" {
			return errors.New("sqlite_table is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown backend %q: must be %s or %s", c.Backend, BackendJSON, BackendSQLite)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if strings.TrimSpace(c.ConfirmKeyword) == "" {
		return errors.New("confirm_keyword must not be blank")
	}
	return nil
}

// Level returns the configured log level. It assumes Validate passed.
func (c Config) Level() slog.Level {
	level, _ := ParseLevel(c.LogLevel)
	return level
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}
