package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/ats-analyzer/internal/types"
)

func TestAnalyzeStructure(t *testing.T) {
	exp := []types.Experience{{Company: "Acme"}}
	edu := []types.Education{{Institution: "MIT"}}
	skills := []types.Skill{{Name: "Go"}}

	tests := []struct {
		name      string
		resume    types.ResumeSnapshot
		wantScore int
		wantIDs   []string
	}{
		{
			name:      "all sections",
			resume:    types.ResumeSnapshot{Experience: exp, Education: edu, Skills: skills},
			wantScore: 20,
			wantIDs:   []string{"str-complete"},
		},
		{
			name:      "nothing",
			resume:    types.ResumeSnapshot{},
			wantScore: 0,
			wantIDs:   []string{"str-experience-missing", "str-education-missing", "str-skills-missing"},
		},
		{
			name:      "experience only",
			resume:    types.ResumeSnapshot{Experience: exp},
			wantScore: 8,
			wantIDs:   []string{"str-education-missing", "str-skills-missing"},
		},
		{
			name:      "missing experience",
			resume:    types.ResumeSnapshot{Education: edu, Skills: skills},
			wantScore: 12,
			wantIDs:   []string{"str-experience-missing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeStructure(&tt.resume)

			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, 20, got.MaxScore)
			assert.Equal(t, tt.wantIDs, issueIDs(got.Issues))
		})
	}
}

func TestAnalyzeStructure_ExperienceMissingIsCritical(t *testing.T) {
	got := AnalyzeStructure(&types.ResumeSnapshot{})

	issue, ok := findIssue(got.Issues, "str-experience-missing")
	assert.True(t, ok)
	assert.Equal(t, types.SeverityCritical, issue.Type)

	issue, ok = findIssue(got.Issues, "str-skills-missing")
	assert.True(t, ok)
	assert.Equal(t, types.SeverityWarning, issue.Type)
}
