package ats

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-analyzer/internal/schemas"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// completeResume scores full marks on every category without a job description
func completeResume() *types.ResumeSnapshot {
	return &types.ResumeSnapshot{
		PersonalInfo: types.PersonalInfo{
			FullName: "Jane Doe",
			Email:    "jane.doe@example.com",
			Phone:    "(555) 123-4567",
			Location: "Austin, TX",
			LinkedIn: "linkedin.com/in/janedoe",
		},
		Experience: []types.Experience{
			{
				Company:   "Acme",
				Position:  "Senior Engineer",
				StartDate: "2020-01",
				Current:   true,
				Description: []string{
					"Led migration of 12 services to Kubernetes, cutting deploy time by 40%",
					"Built a billing pipeline processing 2M events daily, raising revenue 15%",
					"Reduced API latency by 35% through caching and query tuning",
				},
			},
		},
		Education: []types.Education{
			{Institution: "University of Texas", Degree: "BS", Field: "Computer Science"},
		},
		Skills: []types.Skill{
			{Name: "Go", Category: "technical"},
			{Name: "PostgreSQL", Category: "technical"},
		},
	}
}

func issueIDs(issues []types.Issue) []string {
	ids := make([]string, len(issues))
	for i, issue := range issues {
		ids[i] = issue.ID
	}
	return ids
}

func findIssue(issues []types.Issue, id string) (types.Issue, bool) {
	for _, issue := range issues {
		if issue.ID == id {
			return issue, true
		}
	}
	return types.Issue{}, false
}

func assertCategoryBounds(t *testing.T, name string, c types.CategoryResult) {
	t.Helper()
	assert.GreaterOrEqual(t, c.Score, 0, "%s score below zero", name)
	assert.LessOrEqual(t, c.Score, c.MaxScore, "%s score above max", name)
	assert.NotNil(t, c.Issues, "%s issues should be non-nil", name)
}

func TestAnalyze_CompleteResumeWithoutJob(t *testing.T) {
	result, err := Analyze(completeResume(), "")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.TotalScore, 85)
	assert.False(t, result.HasCritical(), "unexpected critical issues: %v", issueIDs(result.Issues))
	assert.Nil(t, result.Breakdown.JobMatch)
	assert.Nil(t, result.KeywordDensity)

	assert.Equal(t, 20, result.Breakdown.Contact.Score)
	assert.Equal(t, 20, result.Breakdown.Structure.Score)
	assert.Equal(t, 40, result.Breakdown.Content.Score)
	assert.Equal(t, 20, result.Breakdown.Skills.Score)
	assert.Equal(t, 20, result.Breakdown.ParsingSafety.Score)
	assert.Equal(t, 100, result.TotalScore)
}

func TestAnalyze_EmptyResume(t *testing.T) {
	result, err := Analyze(&types.ResumeSnapshot{}, "")
	require.NoError(t, err)

	for name, c := range map[string]types.CategoryResult{
		"contact":   result.Breakdown.Contact,
		"structure": result.Breakdown.Structure,
	} {
		assert.Equal(t, 0, c.Score, name)
		require.NotEmpty(t, c.Issues, name)
		for _, issue := range c.Issues {
			assert.NotEqual(t, types.SeveritySuccess, issue.Type, "%s emitted success issue %s", name, issue.ID)
		}
	}

	assert.Equal(t, 0, result.Breakdown.Content.Score)
	assert.Equal(t, 0, result.Breakdown.Skills.Score)
	assert.Equal(t, 20, result.Breakdown.ParsingSafety.Score)
	assert.Equal(t, 10, result.TotalScore)
}

func TestAnalyze_JobDescriptionPresence(t *testing.T) {
	tests := []struct {
		name    string
		jd      string
		wantJob bool
	}{
		{name: "absent", jd: ""},
		{name: "whitespace only", jd: "  \n\t  "},
		{name: "supplied", jd: "Kubernetes migration engineer with billing pipeline background", wantJob: true},
		{name: "only stop words", jd: "the and with", wantJob: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Analyze(completeResume(), tt.jd)
			require.NoError(t, err)

			data, err := json.Marshal(result)
			require.NoError(t, err)
			var decoded map[string]any
			require.NoError(t, json.Unmarshal(data, &decoded))
			breakdown := decoded["breakdown"].(map[string]any)

			_, hasJobMatch := breakdown["jobMatch"]
			_, hasDensity := decoded["keywordDensity"]
			assert.Equal(t, tt.wantJob, hasJobMatch)
			assert.Equal(t, tt.wantJob, hasDensity)
			assert.Equal(t, tt.wantJob, result.Breakdown.JobMatch != nil)
			assert.Equal(t, tt.wantJob, result.KeywordDensity != nil)
		})
	}
}

func TestAnalyze_AllJobKeywordsPresent(t *testing.T) {
	jd := "Kubernetes migration, billing pipeline, caching, latency and revenue"

	result, err := Analyze(completeResume(), jd)
	require.NoError(t, err)
	require.NotNil(t, result.Breakdown.JobMatch)

	assert.Equal(t, 100, result.Breakdown.JobMatch.Score)
	_, ok := findIssue(result.Breakdown.JobMatch.Issues, "jm-strong")
	assert.True(t, ok)
	assert.Equal(t, 100, result.TotalScore)
	assert.Len(t, result.KeywordDensity, 5)
}

func TestAnalyze_IssuesFlattenedInCategoryOrder(t *testing.T) {
	result, err := Analyze(completeResume(), "Terraform and Kubernetes")
	require.NoError(t, err)

	b := result.Breakdown
	var want []types.Issue
	want = append(want, b.Contact.Issues...)
	want = append(want, b.Structure.Issues...)
	want = append(want, b.Content.Issues...)
	want = append(want, b.Skills.Issues...)
	want = append(want, b.ParsingSafety.Issues...)
	want = append(want, b.JobMatch.Issues...)

	assert.Equal(t, want, result.Issues)
}

func TestAnalyze_DoesNotMutateInput(t *testing.T) {
	resume := completeResume()
	_, err := Analyze(resume, "Go developer with Kubernetes")
	require.NoError(t, err)
	assert.Equal(t, completeResume(), resume)
}

func TestAnalyze_Deterministic(t *testing.T) {
	jd := "Senior Go engineer. Kubernetes, Terraform, AWS, PostgreSQL, gRPC. Kubernetes on AWS."
	first, err := Analyze(completeResume(), jd)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := Analyze(completeResume(), jd)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAnalyze_InvalidInput(t *testing.T) {
	_, err := Analyze(nil, "")
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))

	resume := completeResume()
	resume.Skills = append(resume.Skills, types.Skill{Name: ""})
	_, err = Analyze(resume, "")
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))

	resume = completeResume()
	resume.Skills = append(resume.Skills, types.Skill{Name: "   "})
	_, err = Analyze(resume, "")
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))

	_, err = DecodeResume([]byte(`{"skills": [{"name": " "}]}`))
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
}

func TestAnalyze_SerializerOptions(t *testing.T) {
	result, err := Analyze(completeResume(), "", WithSerializer(TextSerializer))
	require.NoError(t, err)
	assert.Equal(t, 20, result.Breakdown.ParsingSafety.Score)

	failing := func(*types.ResumeSnapshot) (string, error) {
		return "", errors.New("boom")
	}
	_, err = Analyze(completeResume(), "", WithSerializer(failing))
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
	assert.Contains(t, err.Error(), "boom")

	// nil keeps the default serializer
	result, err = Analyze(completeResume(), "", WithSerializer(nil))
	require.NoError(t, err)
	assert.Equal(t, 100, result.TotalScore)
}

func TestAnalyze_ScoresStayInBounds(t *testing.T) {
	weak := &types.ResumeSnapshot{
		PersonalInfo: types.PersonalInfo{Email: "not-an-email", Phone: "123"},
		Experience: []types.Experience{{
			Company: "Shop",
			Description: []string{
				"Helped    customers ★ daily",
				"Worked as a team player",
				"Worked on the register",
				"Worked weekends",
			},
		}},
		Skills: []types.Skill{{Name: "Communication"}, {Name: "communication"}, {Name: "Teamwork"}},
	}

	jds := []string{"", "Retail associate, register, inventory, customers, weekends", "the"}
	for _, resume := range []*types.ResumeSnapshot{completeResume(), weak, {}} {
		for _, jd := range jds {
			result, err := Analyze(resume, jd)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, result.TotalScore, 0)
			assert.LessOrEqual(t, result.TotalScore, 100)
			b := result.Breakdown
			assertCategoryBounds(t, "contact", b.Contact)
			assertCategoryBounds(t, "structure", b.Structure)
			assertCategoryBounds(t, "content", b.Content)
			assertCategoryBounds(t, "skills", b.Skills)
			assertCategoryBounds(t, "parsingSafety", b.ParsingSafety)
			if b.JobMatch != nil {
				assertCategoryBounds(t, "jobMatch", *b.JobMatch)
			}
		}
	}
}

func TestAnalyze_ResultMatchesSchema(t *testing.T) {
	for _, jd := range []string{"", "Go engineer with Kubernetes and Terraform", "the"} {
		result, err := Analyze(completeResume(), jd)
		require.NoError(t, err)

		data, err := json.Marshal(result)
		require.NoError(t, err)
		assert.NoError(t, schemas.ValidateResult(data), "jd %q", jd)
	}
}

func TestDecodeResume(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantError bool
		check     func(t *testing.T, r *types.ResumeSnapshot)
	}{
		{
			name: "valid",
			doc: `{"personalInfo": {"email": "a@b.co", "linkedin": "in/a"},
				"experience": [{"company": "Acme", "description": ["Led things"]}],
				"skills": [{"name": "Go"}]}`,
			check: func(t *testing.T, r *types.ResumeSnapshot) {
				assert.Equal(t, "a@b.co", r.PersonalInfo.Email)
				assert.Equal(t, "in/a", r.PersonalInfo.LinkedIn)
				assert.Equal(t, []string{"Led things"}, r.Bullets())
				assert.Equal(t, []string{"Go"}, r.SkillNames())
			},
		},
		{
			name: "empty object",
			doc:  `{}`,
			check: func(t *testing.T, r *types.ResumeSnapshot) {
				assert.Empty(t, r.Experience)
			},
		},
		{name: "skills wrong type", doc: `{"skills": "Go"}`, wantError: true},
		{name: "empty skill name", doc: `{"skills": [{"name": ""}]}`, wantError: true},
		{name: "malformed", doc: `{"skills": [`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume, err := DecodeResume([]byte(tt.doc))
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, IsInvalidInput(err))
				return
			}
			require.NoError(t, err)
			tt.check(t, resume)
		})
	}
}

func TestInvalidInputError(t *testing.T) {
	cause := errors.New("bad shape")
	err := &InvalidInputError{Message: "resume rejected", Cause: cause}

	assert.Equal(t, "invalid input: resume rejected: bad shape", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invalid input: nil", (&InvalidInputError{Message: "nil"}).Error())
	assert.False(t, IsInvalidInput(cause))
}
