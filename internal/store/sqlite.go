package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/jsondb/internal/catalog"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - documents table
const currentSchemaVersion = 1

// SQLiteBackend is a Backend that keeps a catalog document in one row of a
// SQLite database. Several documents can share a database under different
// names, but a session only ever touches one.
type SQLiteBackend struct {
	db   *sql.DB
	path string
	name string
}

// OpenSQLite creates or opens the database at path and selects the
// document called name.
//
// The database is configured with:
//   - WAL mode
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
func OpenSQLite(path, name string) (*SQLiteBackend, error) {
	if name == "" {
		return nil, fmt.Errorf("open sqlite %s: empty document name", path)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteBackend{db: db, path: path, name: name}, nil
}

// Location returns "<path>#<name>".
func (b *SQLiteBackend) Location() string {
	return b.path + "#" + b.name
}

// Load reads the document row and decodes its payload.
func (b *SQLiteBackend) Load(ctx context.Context) ([]catalog.Record, error) {
	var payload []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT payload FROM documents WHERE name = ?`, b.name,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &LoadError{Code: LoadCodeNotFound, Location: b.Location(), Message: "document not found"}
	}
	if err != nil {
		return nil, &LoadError{Code: LoadCodeUnreadable, Location: b.Location(), Message: "query document", Err: err}
	}
	return DecodeDocument(b.Location(), payload)
}

// Save replaces the document row in a single transaction.
func (b *SQLiteBackend) Save(ctx context.Context, records []catalog.Record) (retErr error) {
	payload, err := EncodeDocument(records)
	if err != nil {
		return err
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save %s: begin: %w", b.Location(), err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (name, payload)
		VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload
	`, b.name, payload)
	if err != nil {
		return fmt.Errorf("save %s: %w", b.Location(), err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save %s: commit: %w", b.Location(), err)
	}
	return nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and records the schema
// version. This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}
