// Package testutil contains helpers for tests which need a database.
package testutil

import (
	"database/sql"

	"github.com/mkoiev/gridpeek/internal/app/storage"
)

// NewDBInMemory creates and returns a database in memory for tests.
func NewDBInMemory() (*sql.DB, *storage.Storage) {
	db, err := storage.InitDB(":memory:")
	if err != nil {
		panic(err)
	}
	// one connection only, or the pool would hand out separate empty DBs
	db.SetMaxOpenConns(1)
	return db, storage.New(db)
}

// MustTruncateTables removes all rows from all tables.
func MustTruncateTables(db *sql.DB) {
	if _, err := db.Exec("DELETE FROM cache"); err != nil {
		panic(err)
	}
}
