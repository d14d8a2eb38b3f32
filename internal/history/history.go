// Package history keeps a local SQLite log of analysis results so a user can
// follow how a resume's score changes across edits.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/jonathan/ats-analyzer/internal/types"
)

// DefaultListLimit caps List when the caller passes limit <= 0
const DefaultListLimit = 20

// timeLayout is fixed width so created_at sorts lexically in time order
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id                  TEXT PRIMARY KEY,
	label               TEXT NOT NULL DEFAULT '',
	resume_path         TEXT NOT NULL DEFAULT '',
	total_score         INTEGER NOT NULL,
	has_job_description INTEGER NOT NULL,
	critical_count      INTEGER NOT NULL,
	warning_count       INTEGER NOT NULL,
	result              TEXT NOT NULL,
	created_at          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_label_created ON analyses (label, created_at);
`

var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
}

// Error wraps a failed history operation.
type Error struct {
	Op    string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("history %s: %v", e.Op, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Entry is one recorded analysis.
type Entry struct {
	ID                string          `json:"id"`
	Label             string          `json:"label,omitempty"`
	ResumePath        string          `json:"resume_path,omitempty"`
	TotalScore        int             `json:"total_score"`
	HasJobDescription bool            `json:"has_job_description"`
	CriticalCount     int             `json:"critical_count"`
	WarningCount      int             `json:"warning_count"`
	Result            json.RawMessage `json:"result"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Store is a SQLite-backed history file.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the history database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, &Error{Op: "mkdir", Cause: err}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &Error{Op: "open", Cause: err}
	}
	// pragmas are per connection; one connection keeps them in force
	db.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, &Error{Op: p, Cause: err}
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &Error{Op: "create schema", Cause: err}
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores result under label and returns the new entry.
func (s *Store) Record(ctx context.Context, label, resumePath string, result *types.ATSResult) (*Entry, error) {
	if result == nil {
		return nil, &Error{Op: "record", Cause: errors.New("result is nil")}
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, &Error{Op: "record", Cause: err}
	}

	counts := result.CountBySeverity()
	entry := &Entry{
		ID:                uuid.New().String(),
		Label:             label,
		ResumePath:        resumePath,
		TotalScore:        result.TotalScore,
		HasJobDescription: result.Breakdown.JobMatch != nil,
		CriticalCount:     counts[types.SeverityCritical],
		WarningCount:      counts[types.SeverityWarning],
		Result:            data,
		CreatedAt:         s.now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, label, resume_path, total_score, has_job_description,
			critical_count, warning_count, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Label, entry.ResumePath, entry.TotalScore, entry.HasJobDescription,
		entry.CriticalCount, entry.WarningCount, string(entry.Result), entry.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, &Error{Op: "record", Cause: err}
	}

	return entry, nil
}

// List returns up to limit entries, newest first. An empty label lists all labels.
func (s *Store) List(ctx context.Context, label string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT id, label, resume_path, total_score, has_job_description,
			critical_count, warning_count, result, created_at
		 FROM analyses`
	args := []any{}
	if label != "" {
		query += ` WHERE label = ?`
		args = append(args, label)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &Error{Op: "list", Cause: err}
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, &Error{Op: "list", Cause: err}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Op: "list", Cause: err}
	}

	return entries, nil
}

// Latest returns the newest entry for label, or nil when there is none.
func (s *Store) Latest(ctx context.Context, label string) (*Entry, error) {
	entries, err := s.List(ctx, label, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e         Entry
		result    string
		createdAt string
	)
	err := rows.Scan(&e.ID, &e.Label, &e.ResumePath, &e.TotalScore, &e.HasJobDescription,
		&e.CriticalCount, &e.WarningCount, &result, &createdAt)
	if err != nil {
		return Entry{}, err
	}

	e.Result = json.RawMessage(result)
	e.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return Entry{}, fmt.Errorf("bad created_at %q: %w", createdAt, err)
	}
	return e, nil
}
