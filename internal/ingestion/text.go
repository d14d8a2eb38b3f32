// Package ingestion loads job description text from files or job board URLs
// and normalizes it for keyword extraction.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	innerWhitespace = regexp.MustCompile(`[ \t\f\v]+`)
	extraBlankLines = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes line endings, collapses runs of spaces inside each
// line, trims every line and keeps at most one blank line between paragraphs.
// Bullet and heading markers are left in place.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(innerWhitespace.ReplaceAllString(line, " "))
	}

	result := strings.Join(lines, "\n")
	result = extraBlankLines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// ReadJobDescription reads a job description file and returns its cleaned text.
func ReadJobDescription(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("job description file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read job description: %w", err)
	}

	cleaned := CleanText(string(content))
	meta := NewMetadata(cleaned, SourceFile)
	meta.Path = path
	return cleaned, meta, nil
}
