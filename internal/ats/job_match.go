package ats

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/keywords"
	"github.com/jonathan/ats-analyzer/internal/lexicon"
	"github.com/jonathan/ats-analyzer/internal/types"
)

const (
	jobMatchMaxScore = 100
	// MatchKeywords is how many top job-description keywords are matched against the resume
	MatchKeywords      = 20
	strongMatchScore   = 80
	partialMatchScore  = 50
	maxMissingReported = 5
)

// AnalyzeJobMatch measures how many of the job description's top keywords
// appear anywhere in the resume text. The score is the matched share of the
// keywords actually extracted, so short descriptions can still reach 100.
//
// Matching is a plain substring test on resumeText. With JSONSerializer the
// text includes field names such as "skills", "education", "location" and
// "description", so job keywords equal to those always match; analyze with
// TextSerializer when that matters.
func AnalyzeJobMatch(resumeText, jobDescription string) types.CategoryResult {
	result := types.CategoryResult{MaxScore: jobMatchMaxScore, Issues: []types.Issue{}}

	top := keywords.TopKeywords(jobDescription, MatchKeywords)
	if len(top) == 0 {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "jm-no-keywords",
			Type:       types.SeverityCritical,
			Message:    "No usable keywords found in the job description",
			Suggestion: "Paste the full job posting, including responsibilities and requirements",
		})
		return result
	}

	lower := strings.ToLower(resumeText)
	var missing []string
	for _, kw := range top {
		if !strings.Contains(lower, kw) {
			missing = append(missing, kw)
		}
	}
	matched := len(top) - len(missing)
	result.Score = int(math.Round(float64(matched) / float64(len(top)) * 100))

	if result.Score >= strongMatchScore {
		result.Issues = append(result.Issues, types.Issue{
			ID:      "jm-strong",
			Type:    types.SeveritySuccess,
			Message: fmt.Sprintf("Strong keyword match: %d of %d job keywords found", matched, len(top)),
		})
		return result
	}

	reported := missing
	if len(reported) > maxMissingReported {
		reported = reported[:maxMissingReported]
	}
	suggestion := fmt.Sprintf("Work these keywords into your experience or skills where accurate: %s", strings.Join(reported, ", "))
	if hints := synonymHints(resumeText, reported); len(hints) > 0 {
		suggestion += fmt.Sprintf(". You may already cover some under another name (%s); use the posting's wording", strings.Join(hints, "; "))
	}

	if result.Score >= partialMatchScore {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "jm-partial",
			Type:       types.SeverityWarning,
			Message:    fmt.Sprintf("Partial keyword match: %d of %d job keywords found", matched, len(top)),
			Suggestion: suggestion,
		})
	} else {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "jm-weak",
			Type:       types.SeverityCritical,
			Message:    fmt.Sprintf("Weak keyword match: only %d of %d job keywords found", matched, len(top)),
			Suggestion: suggestion,
		})
	}

	return result
}

// synonymHints pairs missing keywords with a synonym the resume already uses, e.g. "js -> javascript"
func synonymHints(resumeText string, missing []string) []string {
	var hints []string
	for _, kw := range missing {
		for _, syn := range lexicon.Synonyms(kw) {
			if keywords.CountWord(resumeText, syn) > 0 {
				hints = append(hints, syn+" -> "+kw)
				break
			}
		}
	}
	return hints
}
