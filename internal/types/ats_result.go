// Package types provides type definitions for structured data used throughout the ATS analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// Severity classifies an issue.
type Severity string

const (
	// SeverityCritical marks a problem that blocks ATS parsing or scoring
	SeverityCritical Severity = "critical"
	// SeverityWarning marks an improvement opportunity
	SeverityWarning Severity = "warning"
	// SeveritySuccess marks a passed check
	SeveritySuccess Severity = "success"
)

// Issue is a single actionable finding. ID is a stable short code for tests and tracing.
type Issue struct {
	ID         string   `json:"id"`
	Type       Severity `json:"type"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// CategoryResult is the outcome of one category analyzer. 0 <= Score <= MaxScore.
type CategoryResult struct {
	Score    int     `json:"score"`
	MaxScore int     `json:"maxScore"`
	Issues   []Issue `json:"issues"`
}

// DensityStatus classifies a keyword density.
type DensityStatus string

const (
	DensityLow     DensityStatus = "low"
	DensityOptimal DensityStatus = "optimal"
	DensityHigh    DensityStatus = "high"
)

// KeywordDensityEntry reports how often one job keyword appears in the resume.
type KeywordDensityEntry struct {
	Keyword string        `json:"keyword"`
	Count   int           `json:"count"`
	Density float64       `json:"density"` // percent of resume words
	Status  DensityStatus `json:"status"`
}

// Breakdown holds every category result. JobMatch is nil without a job description.
type Breakdown struct {
	Contact       CategoryResult  `json:"contact"`
	Structure     CategoryResult  `json:"structure"`
	Content       CategoryResult  `json:"content"`
	Skills        CategoryResult  `json:"skills"`
	ParsingSafety CategoryResult  `json:"parsingSafety"`
	JobMatch      *CategoryResult `json:"jobMatch,omitempty"`
}

// ATSResult is the complete analysis of one resume.
type ATSResult struct {
	TotalScore     int                   `json:"totalScore"`
	Breakdown      Breakdown             `json:"breakdown"`
	Issues         []Issue               `json:"issues"`
	KeywordDensity []KeywordDensityEntry `json:"keywordDensity,omitempty"`
}

// MarshalJSON keeps keywordDensity present whenever it was computed, even when
// the job description yielded no keywords, and omits it otherwise.
func (r ATSResult) MarshalJSON() ([]byte, error) {
	type alias ATSResult

	var density json.RawMessage
	if r.KeywordDensity != nil {
		b, err := json.Marshal(r.KeywordDensity)
		if err != nil {
			return nil, err
		}
		density = b
	}

	return json.Marshal(struct {
		alias
		KeywordDensity json.RawMessage `json:"keywordDensity,omitempty"`
	}{alias: alias(r), KeywordDensity: density})
}

// CountBySeverity tallies the flattened issues by type.
func (r *ATSResult) CountBySeverity() map[Severity]int {
	counts := map[Severity]int{
		SeverityCritical: 0,
		SeverityWarning:  0,
		SeveritySuccess:  0,
	}
	for _, issue := range r.Issues {
		counts[issue.Type]++
	}
	return counts
}

// HasCritical reports whether any issue is critical.
func (r *ATSResult) HasCritical() bool {
	for _, issue := range r.Issues {
		if issue.Type == SeverityCritical {
			return true
		}
	}
	return false
}
