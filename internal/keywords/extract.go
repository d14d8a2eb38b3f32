// Package keywords extracts keyword frequencies from free text and measures
// how densely job keywords appear in a resume.
package keywords

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/lexicon"
)

// minTokenLength is the shortest token kept; anything of length <= 2 is noise
const minTokenLength = 3

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Term is a keyword with its occurrence count.
type Term struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Extract tokenizes text into a case-insensitive keyword frequency map.
// Non-word characters are removed (not replaced), so "node.js" becomes "nodejs".
func Extract(text string) map[string]int {
	_, counts := tokenize(text)
	return counts
}

// Rank orders every extracted keyword by count descending. Ties keep the
// order in which the keywords first appear in text.
func Rank(text string) []Term {
	order, counts := tokenize(text)
	terms := make([]Term, len(order))
	for i, kw := range order {
		terms[i] = Term{Keyword: kw, Count: counts[kw]}
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Count > terms[j].Count
	})
	return terms
}

// TopKeywords returns at most n keywords from text, most frequent first.
func TopKeywords(text string, n int) []string {
	if n <= 0 {
		return nil
	}
	ranked := Rank(text)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]string, len(ranked))
	for i, t := range ranked {
		out[i] = t.Keyword
	}
	return out
}

// tokenize returns keywords in first-occurrence order along with their counts
func tokenize(text string) ([]string, map[string]int) {
	counts := make(map[string]int)
	var order []string

	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(text), "")
	for _, token := range whitespacePattern.Split(cleaned, -1) {
		if len(token) < minTokenLength || lexicon.IsStopWord(token) {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	return order, counts
}
