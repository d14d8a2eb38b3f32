package ingestion

import (
	"time"

	"github.com/jonathan/ats-analyzer/internal/db"
)

// Where a job description came from
const (
	SourceFile  = "file"
	SourceURL   = "url"
	SourceCache = "cache"
)

// Metadata describes an ingested job description
type Metadata struct {
	Source    string `json:"source"`
	Path      string `json:"path,omitempty"`
	URL       string `json:"url,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Timestamp string `json:"timestamp"` // RFC3339
	Hash      string `json:"hash"`      // SHA256 hex of the cleaned text
	Chars     int    `json:"chars"`
}

// NewMetadata stamps content with the current time and its hash
func NewMetadata(content, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      db.HashJobContent(content),
		Chars:     len(content),
	}
}
