package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Job Description Cache
// -----------------------------------------------------------------------------

// GetFreshJobDescription returns the cached text for url if it has not expired,
// touching its last access time. It returns nil when nothing fresh is cached.
func (db *DB) GetFreshJobDescription(ctx context.Context, url string) (*JobDescription, error) {
	var j JobDescription

	err := db.pool.QueryRow(ctx,
		`UPDATE job_descriptions SET last_accessed_at = NOW()
		 WHERE url = $1 AND expires_at > NOW()
		 RETURNING url, platform, cleaned_text, content_hash, fetched_at, expires_at, last_accessed_at`,
		url,
	).Scan(&j.URL, &j.Platform, &j.CleanedText, &j.ContentHash, &j.FetchedAt, &j.ExpiresAt, &j.LastAccessed)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job description: %w", err)
	}
	return &j, nil
}

// UpsertJobDescription caches cleaned job text, replacing any earlier entry for the URL
func (db *DB) UpsertJobDescription(ctx context.Context, input JobDescriptionInput) (*JobDescription, error) {
	ttl := input.TTL
	if ttl <= 0 {
		ttl = DefaultJobDescriptionCacheTTL
	}
	platform := input.Platform
	if platform == "" {
		platform = "unknown"
	}

	j := JobDescription{
		URL:         input.URL,
		Platform:    platform,
		CleanedText: input.CleanedText,
		ContentHash: HashJobContent(input.CleanedText),
		ExpiresAt:   time.Now().Add(ttl),
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_descriptions (url, platform, cleaned_text, content_hash, fetched_at, expires_at)
		 VALUES ($1, $2, $3, $4, NOW(), $5)
		 ON CONFLICT (url) DO UPDATE SET
		     platform = $2,
		     cleaned_text = $3,
		     content_hash = $4,
		     fetched_at = NOW(),
		     expires_at = $5,
		     last_accessed_at = NOW()
		 RETURNING fetched_at, expires_at, last_accessed_at`,
		j.URL, j.Platform, j.CleanedText, j.ContentHash, j.ExpiresAt,
	).Scan(&j.FetchedAt, &j.ExpiresAt, &j.LastAccessed)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert job description: %w", err)
	}

	return &j, nil
}
