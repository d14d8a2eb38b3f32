package keywords

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/types"
)

const (
	// DensityKeywords is how many top job keywords the density report covers
	DensityKeywords = 5
	// lowDensityPercent and highDensityPercent bound the optimal band
	lowDensityPercent  = 1.0
	highDensityPercent = 4.0
)

// Density measures how often the top job-description keywords occur in the
// resume text, relative to the resume's total word count.
func Density(resumeText, jobDescription string) []types.KeywordDensityEntry {
	top := TopKeywords(jobDescription, DensityKeywords)
	totalWords := len(strings.Fields(resumeText))

	entries := make([]types.KeywordDensityEntry, 0, len(top))
	for _, kw := range top {
		count := CountWord(resumeText, kw)

		density := 0.0
		if totalWords > 0 {
			density = float64(count) / float64(totalWords) * 100
		}

		entries = append(entries, types.KeywordDensityEntry{
			Keyword: kw,
			Count:   count,
			Density: math.Round(density*100) / 100,
			Status:  densityStatus(density),
		})
	}

	return entries
}

// CountWord counts case-insensitive, word-boundary occurrences of word in text.
func CountWord(text, word string) int {
	if word == "" {
		return 0
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	return len(re.FindAllStringIndex(text, -1))
}

func densityStatus(density float64) types.DensityStatus {
	switch {
	case density < lowDensityPercent:
		return types.DensityLow
	case density > highDensityPercent:
		return types.DensityHigh
	default:
		return types.DensityOptimal
	}
}
