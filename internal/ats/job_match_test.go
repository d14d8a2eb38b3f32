package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-analyzer/internal/types"
)

func TestAnalyzeJobMatch(t *testing.T) {
	tests := []struct {
		name      string
		resume    string
		jd        string
		wantScore int
		wantID    string
		wantType  types.Severity
	}{
		{
			name:      "every keyword present",
			resume:    "Deployed Kubernetes clusters with Terraform, wrote Golang services",
			jd:        "Kubernetes, Terraform and Golang",
			wantScore: 100,
			wantID:    "jm-strong",
			wantType:  types.SeveritySuccess,
		},
		{
			name:      "half present",
			resume:    "kubernetes terraform",
			jd:        "Kubernetes Terraform Ansible Prometheus",
			wantScore: 50,
			wantID:    "jm-partial",
			wantType:  types.SeverityWarning,
		},
		{
			name:      "quarter present",
			resume:    "kubernetes",
			jd:        "Kubernetes Terraform Ansible Prometheus",
			wantScore: 25,
			wantID:    "jm-weak",
			wantType:  types.SeverityCritical,
		},
		{
			name:      "substring match counts",
			resume:    "Built microservices in golang",
			jd:        "service lang",
			wantScore: 100,
			wantID:    "jm-strong",
			wantType:  types.SeveritySuccess,
		},
		{
			name:      "no usable keywords",
			resume:    "anything",
			jd:        "the and of to",
			wantScore: 0,
			wantID:    "jm-no-keywords",
			wantType:  types.SeverityCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeJobMatch(tt.resume, tt.jd)

			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, 100, got.MaxScore)
			require.Len(t, got.Issues, 1)
			assert.Equal(t, tt.wantID, got.Issues[0].ID)
			assert.Equal(t, tt.wantType, got.Issues[0].Type)
		})
	}
}

func TestAnalyzeJobMatch_TopTwentyOnly(t *testing.T) {
	// 20 repeated keywords outrank 5 single mentions that the resume does not contain
	jd := ""
	resume := ""
	for _, kw := range []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet",
		"kilo", "lima", "mike", "november", "oscar", "papa", "quebec", "romeo", "sierra", "tango",
	} {
		jd += kw + " " + kw + " "
		resume += kw + " "
	}
	jd += "uniform victor whiskey xray yankee"

	got := AnalyzeJobMatch(resume, jd)
	assert.Equal(t, 100, got.Score)
}

func TestAnalyzeJobMatch_MissingKeywordsListed(t *testing.T) {
	got := AnalyzeJobMatch("nothing relevant", "alpha bravo charlie delta echo foxtrot golf hotel")

	require.Len(t, got.Issues, 1)
	issue := got.Issues[0]
	assert.Equal(t, "jm-weak", issue.ID)
	assert.Contains(t, issue.Suggestion, "alpha, bravo, charlie, delta, echo")
	assert.NotContains(t, issue.Suggestion, "foxtrot")
}

func TestAnalyzeJobMatch_SynonymHint(t *testing.T) {
	got := AnalyzeJobMatch("Operated k8s clusters for payments", "Kubernetes payments")

	require.Len(t, got.Issues, 1)
	assert.Equal(t, 50, got.Score)
	assert.Contains(t, got.Issues[0].Suggestion, "k8s -> kubernetes")
}

func TestAnalyze_JobMatchSeesJSONFieldNames(t *testing.T) {
	empty := &types.ResumeSnapshot{}
	jd := "Kubernetes skills, PostgreSQL education"

	result, err := Analyze(empty, jd)
	require.NoError(t, err)
	require.NotNil(t, result.Breakdown.JobMatch)
	assert.Equal(t, 50, result.Breakdown.JobMatch.Score, "skills and education match the JSON keys")
	assert.Equal(t, []string{"jm-partial"}, issueIDs(result.Breakdown.JobMatch.Issues))

	result, err = Analyze(empty, jd, WithSerializer(TextSerializer))
	require.NoError(t, err)
	require.NotNil(t, result.Breakdown.JobMatch)
	assert.Equal(t, 0, result.Breakdown.JobMatch.Score)
	assert.Equal(t, []string{"jm-weak"}, issueIDs(result.Breakdown.JobMatch.Issues))
}
