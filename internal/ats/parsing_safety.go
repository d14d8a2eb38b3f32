package ats

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/lexicon"
	"github.com/jonathan/ats-analyzer/internal/types"
)

const (
	parsingSafetyMaxScore = 20
	glyphPoints           = 10
	spacingPoints         = 10
)

// alignmentPattern flags runs of 4+ whitespace characters. Legitimately
// formatted text can trip it too. It runs on the serialized resume, so with
// JSONSerializer tabs and newlines arrive escaped (\t, \n) and only literal
// spaces count; TextSerializer keeps them raw.
var alignmentPattern = regexp.MustCompile(`\s{4,}`)

// AnalyzeParsingSafety scans the serialized resume for characters and
// layout that commonly break ATS parsers.
func AnalyzeParsingSafety(resumeText string) types.CategoryResult {
	result := types.CategoryResult{MaxScore: parsingSafetyMaxScore, Issues: []types.Issue{}}

	if glyphs := foundGlyphs(resumeText); len(glyphs) > 0 {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "ps-glyphs",
			Type:       types.SeverityWarning,
			Message:    fmt.Sprintf("Non-standard symbols found: %s", strings.Join(glyphs, " ")),
			Suggestion: "Use plain hyphens or standard bullets; decorative symbols are often dropped or garbled by parsers",
		})
	} else {
		result.Score += glyphPoints
		result.Issues = append(result.Issues, types.Issue{
			ID:      "ps-glyphs-ok",
			Type:    types.SeveritySuccess,
			Message: "No problematic symbols found",
		})
	}

	if alignmentPattern.MatchString(resumeText) {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "ps-spacing",
			Type:       types.SeverityWarning,
			Message:    "Runs of consecutive spaces or tabs found",
			Suggestion: "Avoid aligning text with spaces or tabs; parsers may merge or split fields unexpectedly",
		})
	} else {
		result.Score += spacingPoints
		result.Issues = append(result.Issues, types.Issue{
			ID:      "ps-spacing-ok",
			Type:    types.SeveritySuccess,
			Message: "No manual alignment detected",
		})
	}

	return result
}

// foundGlyphs returns each unsafe glyph present in text, in table order
func foundGlyphs(text string) []string {
	var found []string
	for _, g := range lexicon.UnsafeGlyphs() {
		if strings.ContainsRune(text, g) {
			found = append(found, string(g))
		}
	}
	return found
}
