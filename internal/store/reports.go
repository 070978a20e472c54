package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hargabyte/specmap/internal/extract"
)

// GetReport retrieves the cached report for a file if its stored content
// hash matches hash. The second result is false on a miss (unknown file,
// stale hash, or undecodable payload).
func (s *Store) GetReport(path, hash string) (*extract.FileReport, bool, error) {
	var storedHash string
	err := s.db.QueryRow("SELECT scan_hash FROM file_index WHERE file_path = ?", path).Scan(&storedHash)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get file hash %s: %w", path, err)
	}
	if storedHash != hash {
		return nil, false, nil
	}

	var payload string
	err = s.db.QueryRow("SELECT report_json FROM reports WHERE file_path = ?", path).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get report %s: %w", path, err)
	}

	report := &extract.FileReport{}
	if err := json.Unmarshal([]byte(payload), report); err != nil {
		// Stale or corrupt payload; treat as a miss so the file is
		// re-extracted and the entry overwritten.
		return nil, false, nil
	}
	return report, true, nil
}

// PutReport stores the report for a file along with its content hash.
func (s *Store) PutReport(path, hash string, report *extract.FileReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", path, err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO file_index (file_path, scan_hash, scanned_at)
		VALUES (?, ?, ?)`,
		path, hash, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("set file scanned %s: %w", path, err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO reports (file_path, report_json)
		VALUES (?, ?)`,
		path, string(payload),
	)
	if err != nil {
		return fmt.Errorf("store report %s: %w", path, err)
	}
	return nil
}

// Forget removes a file's cached report and index entry.
func (s *Store) Forget(path string) error {
	if _, err := s.db.Exec("DELETE FROM reports WHERE file_path = ?", path); err != nil {
		return fmt.Errorf("forget report %s: %w", path, err)
	}
	if _, err := s.db.Exec("DELETE FROM file_index WHERE file_path = ?", path); err != nil {
		return fmt.Errorf("forget file %s: %w", path, err)
	}
	return nil
}
