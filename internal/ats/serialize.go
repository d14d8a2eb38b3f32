package ats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/lexicon"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// Serializer flattens a resume into a single text blob for regex scanning.
// Implementations must be deterministic and preserve case.
type Serializer func(resume *types.ResumeSnapshot) (string, error)

// JSONSerializer renders the resume as compact JSON. HTML characters are not
// escaped so the text matches what the user typed.
func JSONSerializer(resume *types.ResumeSnapshot) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resume); err != nil {
		return "", fmt.Errorf("failed to serialize resume: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// TextSerializer renders only the resume's values under canonical section
// headings, which keeps JSON keys out of keyword matching.
func TextSerializer(resume *types.ResumeSnapshot) (string, error) {
	var sections []string

	info := resume.PersonalInfo
	contact := joinNonEmpty(" | ", info.Email, info.Phone, info.Location, info.LinkedIn, info.Website, info.GitHub)
	if header := joinNonEmpty("\n", info.FullName, contact); header != "" {
		sections = append(sections, header)
	}

	if strings.TrimSpace(info.Summary) != "" {
		sections = append(sections, lexicon.SectionSummary+"\n"+strings.TrimSpace(info.Summary))
	}

	if len(resume.Experience) > 0 {
		var sb strings.Builder
		sb.WriteString(lexicon.SectionExperience)
		for _, exp := range resume.Experience {
			sb.WriteString("\n")
			sb.WriteString(joinNonEmpty(", ", exp.Position, exp.Company, exp.Location))
			if dates := dateRange(exp.StartDate, exp.EndDate, exp.Current); dates != "" {
				sb.WriteString(" (" + dates + ")")
			}
			for _, line := range exp.Description {
				if line = strings.TrimSpace(line); line != "" {
					sb.WriteString("\n- " + line)
				}
			}
		}
		sections = append(sections, sb.String())
	}

	if len(resume.Education) > 0 {
		var sb strings.Builder
		sb.WriteString(lexicon.SectionEducation)
		for _, edu := range resume.Education {
			sb.WriteString("\n")
			sb.WriteString(joinNonEmpty(", ", edu.Degree, edu.Field, edu.Institution))
			if dates := dateRange(edu.StartDate, edu.EndDate, false); dates != "" {
				sb.WriteString(" (" + dates + ")")
			}
			if edu.GPA != "" {
				sb.WriteString(" GPA " + edu.GPA)
			}
		}
		sections = append(sections, sb.String())
	}

	if len(resume.Skills) > 0 {
		sections = append(sections, lexicon.SectionSkills+"\n"+strings.Join(resume.SkillNames(), ", "))
	}

	if len(resume.Projects) > 0 {
		var sb strings.Builder
		sb.WriteString(lexicon.SectionProjects)
		for _, p := range resume.Projects {
			sb.WriteString("\n")
			sb.WriteString(joinNonEmpty(": ", p.Name, strings.TrimSpace(p.Description)))
			if len(p.Technologies) > 0 {
				sb.WriteString(" [" + strings.Join(p.Technologies, ", ") + "]")
			}
			if p.Link != "" {
				sb.WriteString(" " + p.Link)
			}
		}
		sections = append(sections, sb.String())
	}

	return strings.Join(sections, "\n\n"), nil
}

// SerializerByName resolves "json" or "text".
func SerializerByName(name string) (Serializer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSONSerializer, nil
	case "text":
		return TextSerializer, nil
	default:
		return nil, fmt.Errorf("unknown serializer %q (want json or text)", name)
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func dateRange(start, end string, current bool) string {
	if current {
		end = "Present"
	}
	return joinNonEmpty(" - ", start, end)
}
