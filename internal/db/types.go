package db

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// DefaultJobDescriptionCacheTTL is how long before a fetched job description is considered stale
const DefaultJobDescriptionCacheTTL = 24 * time.Hour

// List bounds for ListReports
const (
	DefaultReportLimit = 50
	MaxReportLimit     = 100
)

// Report is a stored analysis result
type Report struct {
	ID                uuid.UUID       `json:"id"`
	Label             string          `json:"label,omitempty"`
	TotalScore        int             `json:"total_score"`
	HasJobDescription bool            `json:"has_job_description"`
	JobDescription    *string         `json:"job_description,omitempty"`
	JobURL            *string         `json:"job_url,omitempty"`
	Result            json.RawMessage `json:"result,omitempty"` // omitted by ListReports
	CreatedAt         time.Time       `json:"created_at"`
}

// ReportInput is what SaveReport persists
type ReportInput struct {
	Label          string
	JobDescription string
	JobURL         string
	Result         *types.ATSResult
}

// ListReportsOptions filters ListReports
type ListReportsOptions struct {
	Label    string
	MinScore *int
	Limit    int
	Offset   int
}

// JobDescription is a cached job posting's cleaned text
type JobDescription struct {
	URL          string    `json:"url"`
	Platform     string    `json:"platform"`
	CleanedText  string    `json:"cleaned_text"`
	ContentHash  string    `json:"content_hash"`
	FetchedAt    time.Time `json:"fetched_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	LastAccessed time.Time `json:"last_accessed_at"`
}

// JobDescriptionInput is what UpsertJobDescription caches
type JobDescriptionInput struct {
	URL         string
	Platform    string
	CleanedText string
	TTL         time.Duration // <= 0 uses DefaultJobDescriptionCacheTTL
}

// IsExpired reports whether the cached text should be re-fetched
func (j *JobDescription) IsExpired() bool {
	return time.Now().After(j.ExpiresAt)
}

// HashJobContent creates a SHA256 hash of job description text for deduplication
func HashJobContent(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

func normalizeLimit(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultReportLimit
	}
	if limit > MaxReportLimit {
		limit = MaxReportLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func nullIfEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
