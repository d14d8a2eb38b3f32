package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/ats-analyzer/internal/types"
)

func TestAnalyzeContact(t *testing.T) {
	tests := []struct {
		name      string
		info      types.PersonalInfo
		wantScore int
		wantIDs   []string
	}{
		{
			name: "complete",
			info: types.PersonalInfo{
				Email:    "jane.doe@example.com",
				Phone:    "+1 (555) 123-4567",
				Location: "Austin, TX",
				LinkedIn: "linkedin.com/in/janedoe",
			},
			wantScore: 20,
			wantIDs:   []string{"ct-email-ok", "ct-phone-ok", "ct-location-ok", "ct-linkedin-ok"},
		},
		{
			name:      "empty",
			info:      types.PersonalInfo{},
			wantScore: 0,
			wantIDs:   []string{"ct-email-invalid", "ct-phone-invalid", "ct-location-missing", "ct-linkedin-missing"},
		},
		{
			name: "email without tld and short phone",
			info: types.PersonalInfo{
				Email:    "jane@example",
				Phone:    "555-1234",
				Location: "Remote",
				LinkedIn: "linkedin.com/in/jane",
			},
			wantScore: 6,
			wantIDs:   []string{"ct-email-invalid", "ct-phone-invalid", "ct-location-ok", "ct-linkedin-ok"},
		},
		{
			name: "whitespace location and linkedin count as missing",
			info: types.PersonalInfo{
				Email:    "  jane@example.com ",
				Phone:    "5551234567",
				Location: "   ",
				LinkedIn: "\t",
			},
			wantScore: 14,
			wantIDs:   []string{"ct-email-ok", "ct-phone-ok", "ct-location-missing", "ct-linkedin-missing"},
		},
		{
			name:      "email with spaces inside",
			info:      types.PersonalInfo{Email: "jane doe@example.com"},
			wantScore: 0,
			wantIDs:   []string{"ct-email-invalid", "ct-phone-invalid", "ct-location-missing", "ct-linkedin-missing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeContact(&types.ResumeSnapshot{PersonalInfo: tt.info})

			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, 20, got.MaxScore)
			assert.Equal(t, tt.wantIDs, issueIDs(got.Issues))
		})
	}
}

func TestAnalyzeContact_Severities(t *testing.T) {
	got := AnalyzeContact(&types.ResumeSnapshot{})

	want := map[string]types.Severity{
		"ct-email-invalid":    types.SeverityCritical,
		"ct-phone-invalid":    types.SeverityCritical,
		"ct-location-missing": types.SeverityWarning,
		"ct-linkedin-missing": types.SeverityWarning,
	}
	for _, issue := range got.Issues {
		assert.Equal(t, want[issue.ID], issue.Type, issue.ID)
		assert.NotEmpty(t, issue.Suggestion, issue.ID)
	}
}
