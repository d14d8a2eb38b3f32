// Package types provides type definitions for structured data used throughout the ATS analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// validate is shared; validator.Validate caches struct metadata and is safe for concurrent use
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// ResumeSnapshot is a point-in-time view of a resume, consumed once per analysis.
type ResumeSnapshot struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Experience   []Experience `json:"experience" validate:"dive"`
	Education    []Education  `json:"education" validate:"dive"`
	Skills       []Skill      `json:"skills" validate:"dive"`
	Projects     []Project    `json:"projects,omitempty" validate:"dive"`
}

// PersonalInfo holds contact details and the optional summary.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// Experience is a single work-experience entry. Description holds its bullet lines.
type Experience struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Current     bool     `json:"current,omitempty"`
	Description []string `json:"description"`
}

// Education is a single education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// Skill is a named skill with an optional category (e.g. "technical", "soft").
type Skill struct {
	Name     string `json:"name" validate:"required,notblank"`
	Category string `json:"category,omitempty"`
}

// Project is an optional side or portfolio project.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Link         string   `json:"link,omitempty"`
}

// Validate checks the snapshot's shape. Missing optional data is not an error;
// only non-conforming entries (such as a skill without a name) are.
func (r *ResumeSnapshot) Validate() error {
	return validate.Struct(r)
}

// Bullets flattens every experience entry's description lines, in entry order.
// Blank lines are skipped.
func (r *ResumeSnapshot) Bullets() []string {
	var bullets []string
	for _, exp := range r.Experience {
		for _, line := range exp.Description {
			if strings.TrimSpace(line) == "" {
				continue
			}
			bullets = append(bullets, line)
		}
	}
	return bullets
}

// SkillNames returns the names of all skills, in order.
func (r *ResumeSnapshot) SkillNames() []string {
	names := make([]string, len(r.Skills))
	for i, s := range r.Skills {
		names[i] = s.Name
	}
	return names
}
