package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/jsondb/internal/catalog"
)

// JSONFile is a Backend over a single JSON document on disk.
type JSONFile struct {
	Path string
}

// NewJSONFile returns a backend for the document at path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{Path: path}
}

// Location returns the document path.
func (f *JSONFile) Location() string {
	return f.Path
}

// Load reads and decodes the whole document.
func (f *JSONFile) Load(ctx context.Context) ([]catalog.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Code: LoadCodeNotFound, Location: f.Path, Message: "document not found", Err: err}
	}
	if err != nil {
		return nil, &LoadError{Code: LoadCodeUnreadable, Location: f.Path, Message: "read document", Err: err}
	}
	return DecodeDocument(f.Path, data)
}

// Save writes records to a temporary file next to the document and renames
// it over the original, so a failed save leaves the old document intact.
func (f *JSONFile) Save(ctx context.Context, records []catalog.Record) (retErr error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeDocument(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", f.Path, err)
	}
	defer func() {
		if retErr != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save %s: write: %w", f.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: close: %w", f.Path, err)
	}
	if err := os.Chmod(tmp.Name(), f.mode()); err != nil {
		return fmt.Errorf("save %s: chmod: %w", f.Path, err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("save %s: rename: %w", f.Path, err)
	}
	return nil
}

// mode returns the permissions of the existing document, or 0644 for a
// new one.
func (f *JSONFile) mode() os.FileMode {
	if info, err := os.Stat(f.Path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}

// Close is a no-op; the file is only open during Load and Save.
func (f *JSONFile) Close() error {
	return nil
}
