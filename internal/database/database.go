package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBPath returns the default path of the local database
func DBPath() string {
	return filepath.Join("data", "surf-spots.db")
}

// Open opens (creating if needed) the SQLite database at dbPath and ensures
// its schema. Use ":memory:" for a throwaway database.
func Open(dbPath string) (*sql.DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// An in-memory database exists per connection
	db.SetMaxOpenConns(1)

	if dbPath != ":memory:" {
		_, _ = db.Exec("PRAGMA journal_mode=WAL")
		_, _ = db.Exec("PRAGMA synchronous=NORMAL")
	}

	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the location_fixes table if it does not exist.
// Safe to call repeatedly; existing rows are kept.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS location_fixes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			acquired_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_location_fixes_source ON location_fixes(source, acquired_at);
	`)
	if err != nil {
		return fmt.Errorf("creating location_fixes table: %w", err)
	}

	return nil
}
