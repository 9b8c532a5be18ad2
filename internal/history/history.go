// Package history records completed downloads in a local SQLite database so
// past grabs can be listed without rescanning the output directory.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"reelgrab/internal/media"
)

const schema = `
CREATE TABLE IF NOT EXISTS downloads (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	shortcode     TEXT NOT NULL,
	owner         TEXT NOT NULL DEFAULT '',
	file_path     TEXT NOT NULL,
	source_url    TEXT NOT NULL DEFAULT '',
	downloaded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_downloads_shortcode ON downloads(shortcode);
`

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open creates the database (and its parent directory) if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add appends a download record.
func (s *Store) Add(rec media.DownloadRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO downloads (shortcode, owner, file_path, source_url, downloaded_at) VALUES (?, ?, ?, ?, ?)`,
		rec.Shortcode, rec.Owner, rec.FilePath, rec.SourceURL, rec.DownloadedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting history record: %w", err)
	}
	return nil
}

// Recent returns the newest records, most recent first.
func (s *Store) Recent(limit int) ([]media.DownloadRecord, error) {
	rows, err := s.db.Query(
		`SELECT shortcode, owner, file_path, source_url, downloaded_at FROM downloads ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []media.DownloadRecord
	for rows.Next() {
		var rec media.DownloadRecord
		var at string
		if err := rows.Scan(&rec.Shortcode, &rec.Owner, &rec.FilePath, &rec.SourceURL, &at); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		rec.DownloadedAt, _ = time.Parse(time.RFC3339, at)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return records, nil
}

// Seen reports whether a shortcode was downloaded before.
func (s *Store) Seen(shortcode string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM downloads WHERE shortcode = ?`, shortcode).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying history: %w", err)
	}
	return n > 0, nil
}
