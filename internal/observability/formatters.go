// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/history"
	"github.com/jonathan/ats-analyzer/internal/keywords"
	"github.com/jonathan/ats-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// barWidth is the number of cells in a category score bar
	barWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// scoreBar renders score/max as a fixed-width bar
func scoreBar(score, maxScore int) string {
	filled := 0
	if maxScore > 0 {
		filled = score * barWidth / maxScore
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintResult outputs the total score and per-category breakdown.
func (p *Printer) PrintResult(label string, result *types.ATSResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total score: %d/100\n\n", result.TotalScore))

	rows := []struct {
		name string
		cat  *types.CategoryResult
	}{
		{"Contact", &result.Breakdown.Contact},
		{"Structure", &result.Breakdown.Structure},
		{"Content", &result.Breakdown.Content},
		{"Skills", &result.Breakdown.Skills},
		{"Parsing safety", &result.Breakdown.ParsingSafety},
		{"Job match", result.Breakdown.JobMatch},
	}
	for _, row := range rows {
		if row.cat == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("%-15s %s %3d/%d\n", row.name, scoreBar(row.cat.Score, row.cat.MaxScore), row.cat.Score, row.cat.MaxScore))
	}

	counts := result.CountBySeverity()
	sb.WriteString(fmt.Sprintf("\n%d critical, %d warnings, %d passed",
		counts[types.SeverityCritical], counts[types.SeverityWarning], counts[types.SeveritySuccess]))

	title := "ATS SCORE"
	if label != "" {
		title += " · " + label
	}
	p.printBox(title, sb.String())
}

// PrintIssues outputs issues grouped by severity, critical first. Passed
// checks are only counted.
func (p *Printer) PrintIssues(issues []types.Issue) {
	groups := map[types.Severity][]types.Issue{}
	for _, issue := range issues {
		groups[issue.Type] = append(groups[issue.Type], issue)
	}

	if len(groups[types.SeverityCritical]) == 0 && len(groups[types.SeverityWarning]) == 0 {
		p.printBox("✓ NO ISSUES FOUND", fmt.Sprintf("All %d checks passed", len(groups[types.SeveritySuccess])))
		return
	}

	var sb strings.Builder
	for _, sev := range []types.Severity{types.SeverityCritical, types.SeverityWarning} {
		group := groups[sev]
		if len(group) == 0 {
			continue
		}
		marker := "✗"
		if sev == types.SeverityWarning {
			marker = "!"
		}
		sb.WriteString(fmt.Sprintf("%s (%d):\n", strings.ToUpper(string(sev)), len(group)))
		for _, issue := range group {
			sb.WriteString(fmt.Sprintf("  %s %s\n", marker, issue.Message))
			if issue.Suggestion != "" {
				sb.WriteString(fmt.Sprintf("    → %s\n", issue.Suggestion))
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("%d checks passed", len(groups[types.SeveritySuccess])))

	p.printBox("ISSUES", sb.String())
}

// PrintKeywordDensity outputs how often each top job keyword appears in the resume.
func (p *Printer) PrintKeywordDensity(entries []types.KeywordDensityEntry) {
	if entries == nil {
		return
	}
	if len(entries) == 0 {
		p.printBox("KEYWORD DENSITY", "No keywords found in the job description")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-24s %5s %8s  %s\n", "Keyword", "Count", "Density", "Status"))
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%-24s %5d %7.2f%%  %s\n", truncate(e.Keyword, 24), e.Count, e.Density, e.Status))
	}

	p.printBox("KEYWORD DENSITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywords outputs ranked job keywords with their counts.
func (p *Printer) PrintKeywords(terms []keywords.Term) {
	if len(terms) == 0 {
		p.printBox("JOB KEYWORDS", "No keywords found")
		return
	}

	var sb strings.Builder
	for i, term := range terms {
		sb.WriteString(fmt.Sprintf("%2d. %-30s %4d\n", i+1, truncate(term.Keyword, 30), term.Count))
	}
	p.printBox(fmt.Sprintf("JOB KEYWORDS (%d)", len(terms)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoreDelta compares a new score with the previous recorded one for a label.
func (p *Printer) PrintScoreDelta(previous *history.Entry, current int) {
	if previous == nil {
		return
	}

	delta := current - previous.TotalScore
	var trend string
	switch {
	case delta > 0:
		trend = fmt.Sprintf("▲ +%d", delta)
	case delta < 0:
		trend = fmt.Sprintf("▼ %d", delta)
	default:
		trend = "= no change"
	}

	content := fmt.Sprintf("Previous: %d (%s)\nCurrent:  %d\nChange:   %s",
		previous.TotalScore, previous.CreatedAt.Local().Format("2006-01-02 15:04"), current, trend)
	p.printBox("SCORE HISTORY", content)
}

// PrintHistory outputs recorded analyses, newest first.
func (p *Printer) PrintHistory(entries []history.Entry) {
	if len(entries) == 0 {
		p.printBox("HISTORY", "No analyses recorded")
		return
	}

	var sb strings.Builder
	for _, e := range entries {
		label := e.Label
		if label == "" {
			label = "-"
		}
		job := " "
		if e.HasJobDescription {
			job = "J"
		}
		sb.WriteString(fmt.Sprintf("%s  %-16s %3d %s  %d✗ %d!\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"), truncate(label, 16), e.TotalScore, job,
			e.CriticalCount, e.WarningCount))
	}
	p.printBox(fmt.Sprintf("HISTORY (%d)", len(entries)), strings.TrimSuffix(sb.String(), "\n"))
}
