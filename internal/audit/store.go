// Package audit keeps a local record of every admin command dispatched
// from this machine: which endpoint, when, and how it went. The server
// is the source of truth for state; this log only answers "what did I
// run".
package audit

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/adminapi"
	_ "modernc.org/sqlite"
)

//go:embed migrations/001_initial_schema.sql
var migrationV1 string

// Entry is one recorded command.
type Entry struct {
	ID        string
	Endpoint  string
	Success   bool
	Detail    string
	CreatedAt time.Time
}

// Store is the SQLite-backed audit log.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the audit database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating audit directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}
	if _, err := db.Exec(migrationV1); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating audit database: %w", err)
	}
	return &Store{db: db}, nil
}

// Record appends one command outcome.
func (s *Store) Record(ctx context.Context, out adminapi.Outcome) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO commands (id, endpoint, success, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), out.Endpoint, boolToInt(out.Success), out.Detail, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("recording command: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, endpoint, success, detail, created_at FROM commands ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var success int
		if err := rows.Scan(&e.ID, &e.Endpoint, &success, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		e.Success = success != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
