// Package resultscache persists scan-root summaries to a local sqlite
// database, so `qdirstat scan --recent` has something to read. It uses
// the modernc.org/sqlite driver with WAL journaling, synchronous=NORMAL
// and a 5s busy timeout.
package resultscache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Summary is one completed scan's top-level result.
type Summary struct {
	RootPath   string
	TotalSize  int64
	FileCount  int64
	ScannedAt  time.Time
	DurationMS int64
}

// Cache wraps the sqlite-backed summary store.
type Cache struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS scan_summaries (
    root_path TEXT PRIMARY KEY,
    total_size INTEGER NOT NULL,
    file_count INTEGER NOT NULL,
    scanned_at INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL
);
`

// Open creates (or reuses) the results database under the user's cache
// directory.
func Open() (*Cache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("resultscache: cache directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("resultscache: create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "qdirstat.db"))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	db.Exec(`PRAGMA journal_mode=WAL;`)
	db.Exec(`PRAGMA synchronous=NORMAL;`)
	db.Exec(`PRAGMA busy_timeout=5000;`)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("resultscache: create schema: %w", err)
	}

	return &Cache{db: db}, nil
}

func cacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "qdirstat"), nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Put records or replaces a scan summary for s.RootPath.
func (c *Cache) Put(s Summary) error {
	_, err := c.db.Exec(`
		INSERT INTO scan_summaries (root_path, total_size, file_count, scanned_at, duration_ms)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(root_path) DO UPDATE SET
			total_size = excluded.total_size,
			file_count = excluded.file_count,
			scanned_at = excluded.scanned_at,
			duration_ms = excluded.duration_ms
	`, s.RootPath, s.TotalSize, s.FileCount, s.ScannedAt.Unix(), s.DurationMS)
	return err
}

// Get returns the most recent summary recorded for rootPath, if any.
func (c *Cache) Get(rootPath string) (*Summary, error) {
	var s Summary
	var scannedUnix int64
	err := c.db.QueryRow(`
		SELECT root_path, total_size, file_count, scanned_at, duration_ms
		FROM scan_summaries WHERE root_path = ?
	`, rootPath).Scan(&s.RootPath, &s.TotalSize, &s.FileCount, &scannedUnix, &s.DurationMS)
	if err != nil {
		return nil, err
	}
	s.ScannedAt = time.Unix(scannedUnix, 0)
	return &s, nil
}

// Recent returns up to limit recorded summaries, most recently scanned first.
func (c *Cache) Recent(limit int) ([]Summary, error) {
	rows, err := c.db.Query(`
		SELECT root_path, total_size, file_count, scanned_at, duration_ms
		FROM scan_summaries ORDER BY scanned_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		var scannedUnix int64
		if err := rows.Scan(&s.RootPath, &s.TotalSize, &s.FileCount, &scannedUnix, &s.DurationMS); err != nil {
			return nil, err
		}
		s.ScannedAt = time.Unix(scannedUnix, 0)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a recorded summary for rootPath, if present.
func (c *Cache) Delete(rootPath string) error {
	_, err := c.db.Exec("DELETE FROM scan_summaries WHERE root_path = ?", rootPath)
	return err
}
