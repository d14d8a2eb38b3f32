// Package db provides PostgreSQL storage for analysis reports and cached job descriptions.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS ats_reports (
	id                  UUID PRIMARY KEY,
	label               TEXT NOT NULL DEFAULT '',
	total_score         INTEGER NOT NULL CHECK (total_score BETWEEN 0 AND 100),
	has_job_description BOOLEAN NOT NULL DEFAULT FALSE,
	job_description     TEXT,
	job_url             TEXT,
	result              JSONB NOT NULL,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_ats_reports_label_created ON ats_reports (label, created_at DESC);

CREATE TABLE IF NOT EXISTS job_descriptions (
	url              TEXT PRIMARY KEY,
	platform         TEXT NOT NULL DEFAULT 'unknown',
	cleaned_text     TEXT NOT NULL,
	content_hash     TEXT NOT NULL,
	fetched_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expires_at       TIMESTAMPTZ NOT NULL,
	last_accessed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping verifies the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// EnsureSchema creates the tables this package uses if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
