// Package store provides SQLite-backed caching of per-file extraction
// reports. The store lives in .specmap/specmap.db; files whose content hash
// is unchanged since the last run reuse the stored report instead of being
// re-extracted.
package store

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store manages the .specmap/specmap.db database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the store database inside the given .specmap
// directory. It initializes the schema if the database is new.
func Open(configDir string) (*Store, error) {
	dbPath := filepath.Join(configDir, "specmap.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	store := &Store{db: db, dbPath: dbPath}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Clear removes all cached reports and file index entries.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM reports; DELETE FROM file_index;")
	if err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}

// Path returns the path of the backing database file.
func (s *Store) Path() string {
	return s.dbPath
}

// initSchema creates the tables if they do not exist.
func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS file_index (
			file_path  TEXT PRIMARY KEY,
			scan_hash  TEXT NOT NULL,
			scanned_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS reports (
			file_path   TEXT PRIMARY KEY,
			report_json TEXT NOT NULL
		);
	`)
	return err
}
