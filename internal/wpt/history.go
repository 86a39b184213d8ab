// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wpt

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store records sync runs in a small SQLite database so a pipeline can
// audit when the pin moved and to which commit.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the history database at path, creating the
// schema and any missing parent directories.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS sync_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hash TEXT NOT NULL,
		fetched_at TEXT NOT NULL,
		files_updated INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SyncRecord is one recorded sync run.
type SyncRecord struct {
	ID           int64
	Hash         string
	FetchedAt    time.Time
	FilesUpdated int
}

// Record stores one sync run with the current time.
func (s *Store) Record(hash string, filesUpdated int) error {
	_, err := s.db.Exec(
		`INSERT INTO sync_history (hash, fetched_at, files_updated) VALUES (?, ?, ?)`,
		hash, time.Now().UTC().Format(time.RFC3339), filesUpdated,
	)
	if err != nil {
		return fmt.Errorf("recording sync: %w", err)
	}
	return nil
}

// Recent returns up to limit sync runs, newest first.
func (s *Store) Recent(limit int) ([]SyncRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, hash, fetched_at, files_updated FROM sync_history ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []SyncRecord
	for rows.Next() {
		var r SyncRecord
		var fetched string
		if err := rows.Scan(&r.ID, &r.Hash, &fetched, &r.FilesUpdated); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, fetched); parseErr == nil {
			r.FetchedAt = t
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history rows: %w", err)
	}
	return records, nil
}
