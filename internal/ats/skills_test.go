package ats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-analyzer/internal/types"
)

func resumeWithSkills(names ...string) *types.ResumeSnapshot {
	skills := make([]types.Skill, len(names))
	for i, n := range names {
		skills[i] = types.Skill{Name: n}
	}
	return &types.ResumeSnapshot{Skills: skills}
}

func TestAnalyzeSkills(t *testing.T) {
	tests := []struct {
		name      string
		skills    []string
		wantScore int
		wantIDs   []string
	}{
		{
			name:      "no skills",
			skills:    nil,
			wantScore: 0,
			wantIDs:   []string{"skl-empty"},
		},
		{
			name:      "soft heavy with untouched cluster",
			skills:    []string{"Communication", "Leadership", "Go"},
			wantScore: 10,
			wantIDs:   []string{"skl-soft-heavy"},
		},
		{
			name:      "duplicates and partial cluster",
			skills:    []string{"React", "react", "TypeScript"},
			wantScore: 20,
			wantIDs:   []string{"skl-balance-ok", "skl-dup", "skl-cluster-react"},
		},
		{
			name:      "complete clusters clamp to max",
			skills:    []string{"Docker", "Kubernetes", "Helm", "Terraform", "CI/CD", "Linux"},
			wantScore: 20,
			wantIDs:   []string{"skl-balance-ok"},
		},
		{
			name:      "soft heavy plus complete cluster bonus",
			skills:    []string{"Figma", "Sketch", "Prototyping", "User Research", "Empathy", "Creativity", "Patience"},
			wantScore: 15,
			wantIDs:   []string{"skl-soft-heavy"},
		},
		{
			name:      "ratio of exactly 0.4 is balanced",
			skills:    []string{"Leadership", "Teamwork", "Excel", "Tableau", "Figma"},
			wantScore: 20,
			wantIDs:   []string{"skl-balance-ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeSkills(resumeWithSkills(tt.skills...))

			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, 20, got.MaxScore)
			assert.Equal(t, tt.wantIDs, issueIDs(got.Issues))
		})
	}
}

func TestAnalyzeSkills_DuplicateAlwaysReported(t *testing.T) {
	for _, skills := range [][]string{
		{"React", "react"},
		{"Communication", "COMMUNICATION", "Leadership"},
		{"Go", " go ", "Docker"},
	} {
		got := AnalyzeSkills(resumeWithSkills(skills...))
		issue, ok := findIssue(got.Issues, "skl-dup")
		require.True(t, ok, "skills %v", skills)
		assert.Equal(t, types.SeverityWarning, issue.Type)
	}
}

func TestAnalyzeSkills_ClusterSuggestionCap(t *testing.T) {
	got := AnalyzeSkills(resumeWithSkills("React", "TypeScript", "Angular", "Vue", "JavaScript"))

	var clusterIDs []string
	for _, issue := range got.Issues {
		if strings.HasPrefix(issue.ID, "skl-cluster-") {
			clusterIDs = append(clusterIDs, issue.ID)
		}
	}
	assert.Equal(t, []string{"skl-cluster-react", "skl-cluster-angular"}, clusterIDs)
}

func TestAnalyzeSkills_ClusterSuggestionNamesThree(t *testing.T) {
	got := AnalyzeSkills(resumeWithSkills("React", "TypeScript"))

	issue, ok := findIssue(got.Issues, "skl-cluster-react")
	require.True(t, ok)
	assert.Equal(t, types.SeverityWarning, issue.Type)
	assert.Contains(t, issue.Suggestion, "javascript, redux, html")
	assert.NotContains(t, issue.Suggestion, "css")
}

func TestClusterSlug(t *testing.T) {
	assert.Equal(t, "node-js", clusterSlug("node.js"))
	assert.Equal(t, "machine-learning", clusterSlug("machine learning"))
	assert.Equal(t, "go", clusterSlug("Go"))
}
