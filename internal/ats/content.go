package ats

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/lexicon"
	"github.com/jonathan/ats-analyzer/internal/types"
)

const (
	contentMaxScore = 40

	strongVerbRatio = 0.70
	mixedVerbRatio  = 0.40
	verbPoints      = 15
	mixedVerbPoints = 8

	strongMetricRatio = 0.30
	metricPoints      = 15
	someMetricPoints  = 8

	repetitionPoints = 5
	// maxOpenerRepeats is how often one opening word may appear before it counts as repetitive
	maxOpenerRepeats = 2

	clichePoints       = 5
	maxClichesReported = 3
	maxWeakVerbsNamed  = 3
)

var (
	// metricPattern matches quantified impact: 40%, $2M, 10k, 500+, 3x
	metricPattern    = regexp.MustCompile(`(?i)\d+%|\$\d+|\d+k|\d+\+|\d+x`)
	nonLetterPattern = regexp.MustCompile(`[^a-z]`)
)

// AnalyzeContent scores the experience bullets: action verbs, metrics,
// repetitive openers and clichés. Only an empty bullet list short-circuits.
func AnalyzeContent(resume *types.ResumeSnapshot) types.CategoryResult {
	result := types.CategoryResult{MaxScore: contentMaxScore, Issues: []types.Issue{}}

	bullets := resume.Bullets()
	if len(bullets) == 0 {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "cnt-empty",
			Type:       types.SeverityCritical,
			Message:    "No experience bullet points found",
			Suggestion: "Describe each role with 3-5 bullet points that start with an action verb and show measurable results",
		})
		return result
	}

	openers := make([]string, len(bullets))
	for i, b := range bullets {
		openers[i] = firstWord(b)
	}

	verbScore, verbIssue := checkActionVerbs(openers)
	result.Score += verbScore
	result.Issues = append(result.Issues, verbIssue)

	metricScore, metricIssue := checkMetrics(bullets)
	result.Score += metricScore
	result.Issues = append(result.Issues, metricIssue)

	if repeated := repeatedOpeners(openers); len(repeated) > 0 {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "cnt-repetition",
			Type:       types.SeverityWarning,
			Message:    fmt.Sprintf("Repetitive bullet openers: %s", strings.Join(repeated, ", ")),
			Suggestion: "Vary your opening verbs so each bullet reads as a distinct achievement",
		})
	} else {
		result.Score += repetitionPoints
	}

	if found := findCliches(bullets); len(found) > 0 {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "cnt-cliches",
			Type:       types.SeverityWarning,
			Message:    fmt.Sprintf("Clichéd phrases found: %s", strings.Join(found, ", ")),
			Suggestion: "Replace buzzwords with concrete evidence of what you accomplished",
		})
	} else {
		result.Score += clichePoints
	}

	return result
}

// firstWord returns the bullet's first word lower-cased with everything but letters removed
func firstWord(bullet string) string {
	fields := strings.Fields(bullet)
	if len(fields) == 0 {
		return ""
	}
	return nonLetterPattern.ReplaceAllString(strings.ToLower(fields[0]), "")
}

func checkActionVerbs(openers []string) (int, types.Issue) {
	strong := 0
	var weak []string
	seenWeak := make(map[string]bool)
	for _, w := range openers {
		if lexicon.IsActionVerb(w) {
			strong++
			continue
		}
		if lexicon.IsWeakVerb(w) && !seenWeak[w] && len(weak) < maxWeakVerbsNamed {
			seenWeak[w] = true
			weak = append(weak, w)
		}
	}

	ratio := float64(strong) / float64(len(openers))
	percent := int(math.Round(ratio * 100))

	suggestion := "Start each bullet with a strong action verb such as led, built, reduced or launched"
	if len(weak) > 0 {
		suggestion = fmt.Sprintf("Replace weak openers (%s) with strong action verbs such as led, built, reduced or launched",
			strings.Join(weak, ", "))
	}

	switch {
	case ratio >= strongVerbRatio:
		return verbPoints, types.Issue{
			ID:      "cnt-verbs-strong",
			Type:    types.SeveritySuccess,
			Message: fmt.Sprintf("%d%% of bullets start with strong action verbs", percent),
		}
	case ratio >= mixedVerbRatio:
		return mixedVerbPoints, types.Issue{
			ID:         "cnt-verbs-mixed",
			Type:       types.SeverityWarning,
			Message:    fmt.Sprintf("Only %d%% of bullets start with strong action verbs", percent),
			Suggestion: suggestion,
		}
	default:
		return 0, types.Issue{
			ID:         "cnt-verbs-weak",
			Type:       types.SeverityCritical,
			Message:    fmt.Sprintf("Few bullets start with action verbs (%d%%)", percent),
			Suggestion: suggestion,
		}
	}
}

func checkMetrics(bullets []string) (int, types.Issue) {
	quantified := 0
	for _, b := range bullets {
		if metricPattern.MatchString(b) {
			quantified++
		}
	}
	ratio := float64(quantified) / float64(len(bullets))

	switch {
	case ratio >= strongMetricRatio:
		return metricPoints, types.Issue{
			ID:      "cnt-metrics-strong",
			Type:    types.SeveritySuccess,
			Message: fmt.Sprintf("%d of %d bullets include measurable results", quantified, len(bullets)),
		}
	case ratio > 0:
		return someMetricPoints, types.Issue{
			ID:         "cnt-metrics-some",
			Type:       types.SeverityWarning,
			Message:    fmt.Sprintf("Only %d of %d bullets include measurable results", quantified, len(bullets)),
			Suggestion: "Quantify more achievements with percentages, dollar amounts, counts or multipliers",
		}
	default:
		return 0, types.Issue{
			ID:         "cnt-metrics-none",
			Type:       types.SeverityCritical,
			Message:    "No bullets include measurable results",
			Suggestion: "Add numbers such as \"reduced latency by 40%\" or \"managed a $2M budget\"",
		}
	}
}

// repeatedOpeners returns words used to open more than maxOpenerRepeats bullets, in first-use order
func repeatedOpeners(openers []string) []string {
	counts := make(map[string]int)
	var order []string
	for _, w := range openers {
		if w == "" {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	var repeated []string
	for _, w := range order {
		if counts[w] > maxOpenerRepeats {
			repeated = append(repeated, w)
		}
	}
	return repeated
}

func findCliches(bullets []string) []string {
	text := strings.ToLower(strings.Join(bullets, " "))

	var found []string
	for _, phrase := range lexicon.Cliches() {
		if strings.Contains(text, phrase) {
			found = append(found, phrase)
			if len(found) == maxClichesReported {
				break
			}
		}
	}
	return found
}
