// Package storage implements persistent storage with SQLite.
// No direct DB access allowed outside this package.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("object not found in storage")

var schema = `
	CREATE TABLE IF NOT EXISTS cache (
		key TEXT PRIMARY KEY NOT NULL,
		value BLOB NOT NULL,
		expires_at DATETIME
	);
	CREATE INDEX IF NOT EXISTS cache_expires_at_idx ON cache (expires_at);
`

// Storage provides access to the app's database.
type Storage struct {
	db *sql.DB
}

// New returns a new Storage.
func New(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// InitDB opens the database for a DSN and applies the schema.
func InitDB(dsn string) (*sql.DB, error) {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite3", dsn+sep+"_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dsn, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
