package ats

import (
	"fmt"

	"github.com/jonathan/ats-analyzer/internal/lexicon"
	"github.com/jonathan/ats-analyzer/internal/types"
)

const (
	structureMaxScore = 20
	experiencePoints  = 8
	educationPoints   = 6
	skillsPoints      = 6
)

// AnalyzeStructure checks that the core sections exist. It reports only the
// missing sections, plus one success when all of them are present.
func AnalyzeStructure(resume *types.ResumeSnapshot) types.CategoryResult {
	result := types.CategoryResult{MaxScore: structureMaxScore, Issues: []types.Issue{}}

	hasExperience := len(resume.Experience) > 0
	hasEducation := len(resume.Education) > 0
	hasSkills := len(resume.Skills) > 0

	if hasExperience {
		result.Score += experiencePoints
	} else {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "str-experience-missing",
			Type:       types.SeverityCritical,
			Message:    fmt.Sprintf("No %s section", lexicon.SectionExperience),
			Suggestion: "Add at least one position; ATS ranking relies heavily on work history",
		})
	}

	if hasEducation {
		result.Score += educationPoints
	} else {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "str-education-missing",
			Type:       types.SeverityWarning,
			Message:    fmt.Sprintf("No %s section", lexicon.SectionEducation),
			Suggestion: "List degrees, certifications or relevant coursework",
		})
	}

	if hasSkills {
		result.Score += skillsPoints
	} else {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "str-skills-missing",
			Type:       types.SeverityWarning,
			Message:    fmt.Sprintf("No %s section", lexicon.SectionSkills),
			Suggestion: "Add a dedicated skills section; it is the first place keyword filters look",
		})
	}

	if hasExperience && hasEducation && hasSkills {
		result.Issues = append(result.Issues, types.Issue{
			ID:   "str-complete",
			Type: types.SeveritySuccess,
			Message: fmt.Sprintf("All standard sections present (%s, %s, %s)",
				lexicon.SectionExperience, lexicon.SectionEducation, lexicon.SectionSkills),
		})
	}

	return result
}
