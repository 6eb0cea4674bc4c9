// Package history records URL checks in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Required for sqlite driver
	_ "modernc.org/sqlite"
)

// Entry is one recorded check.
type Entry struct {
	ID        int64
	CheckedAt time.Time
	Endpoint  string
	Status    string
	ExpiresAt time.Time
}

// Store persists check entries.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS checks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	checked_at INTEGER NOT NULL,
	endpoint TEXT NOT NULL,
	status TEXT NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_checks_checked_at ON checks (checked_at);
`

// DefaultPath returns the history database location under the user cache
// directory, e.g. ~/.cache/presign/history.db on Linux.
func DefaultPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolving cache dir: %w", err)
	}
	return filepath.Join(cacheDir, "presign", "history.db"), nil
}

// Open opens the history database at path, creating the file and its
// parent directory if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one check. Timestamps are stored as Unix seconds.
func (s *Store) Append(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO checks (checked_at, endpoint, status, expires_at) VALUES (?, ?, ?, ?)`,
		e.CheckedAt.Unix(), e.Endpoint, e.Status, e.ExpiresAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("recording check: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, checked_at, endpoint, status, expires_at FROM checks ORDER BY checked_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			checkedAt int64
			expiresAt int64
		)
		if err := rows.Scan(&e.ID, &checkedAt, &e.Endpoint, &e.Status, &expiresAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.CheckedAt = time.Unix(checkedAt, 0).UTC()
		e.ExpiresAt = time.Unix(expiresAt, 0).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history rows: %w", err)
	}
	return entries, nil
}
