package ats

import (
	"regexp"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/types"
)

const (
	contactMaxScore = 20
	emailPoints     = 8
	phonePoints     = 6
	locationPoints  = 4
	linkedInPoints  = 2
	minPhoneDigits  = 10
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitPattern = regexp.MustCompile(`\D`)
)

// AnalyzeContact scores the contact block. Every check emits exactly one issue.
func AnalyzeContact(resume *types.ResumeSnapshot) types.CategoryResult {
	info := resume.PersonalInfo
	result := types.CategoryResult{MaxScore: contactMaxScore, Issues: []types.Issue{}}

	if emailPattern.MatchString(strings.TrimSpace(info.Email)) {
		result.Score += emailPoints
		result.Issues = append(result.Issues, types.Issue{
			ID:      "ct-email-ok",
			Type:    types.SeveritySuccess,
			Message: "Email address is present and well formed",
		})
	} else {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "ct-email-invalid",
			Type:       types.SeverityCritical,
			Message:    "Email address is missing or invalid",
			Suggestion: "Add a professional email address (e.g. firstname.lastname@example.com)",
		})
	}

	if len(nonDigitPattern.ReplaceAllString(info.Phone, "")) >= minPhoneDigits {
		result.Score += phonePoints
		result.Issues = append(result.Issues, types.Issue{
			ID:      "ct-phone-ok",
			Type:    types.SeveritySuccess,
			Message: "Phone number is present",
		})
	} else {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "ct-phone-invalid",
			Type:       types.SeverityCritical,
			Message:    "Phone number is missing or too short",
			Suggestion: "Include a full phone number with area code (at least 10 digits)",
		})
	}

	if strings.TrimSpace(info.Location) != "" {
		result.Score += locationPoints
		result.Issues = append(result.Issues, types.Issue{
			ID:      "ct-location-ok",
			Type:    types.SeveritySuccess,
			Message: "Location is present",
		})
	} else {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "ct-location-missing",
			Type:       types.SeverityWarning,
			Message:    "Location is missing",
			Suggestion: "Add your city and state or region; many recruiters filter candidates by location",
		})
	}

	if strings.TrimSpace(info.LinkedIn) != "" {
		result.Score += linkedInPoints
		result.Issues = append(result.Issues, types.Issue{
			ID:      "ct-linkedin-ok",
			Type:    types.SeveritySuccess,
			Message: "LinkedIn profile is linked",
		})
	} else {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "ct-linkedin-missing",
			Type:       types.SeverityWarning,
			Message:    "No LinkedIn profile",
			Suggestion: "Adding a LinkedIn URL is a bonus that recruiters often check",
		})
	}

	return result
}
