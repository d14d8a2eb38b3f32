package ats

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/keywords"
	"github.com/jonathan/ats-analyzer/internal/schemas"
	"github.com/jonathan/ats-analyzer/internal/types"
)

type options struct {
	serializer Serializer
}

// Option configures Analyze.
type Option func(*options)

// WithSerializer replaces the default JSON serializer used for text scans.
func WithSerializer(s Serializer) Option {
	return func(o *options) {
		if s != nil {
			o.serializer = s
		}
	}
}

// Analyze scores a resume, optionally against a job description. A blank job
// description is treated as absent: no job match and no keyword density.
// Analyze never mutates resume and keeps no state between calls.
func Analyze(resume *types.ResumeSnapshot, jobDescription string, opts ...Option) (*types.ATSResult, error) {
	if resume == nil {
		return nil, &InvalidInputError{Message: "resume is nil"}
	}
	if err := resume.Validate(); err != nil {
		return nil, &InvalidInputError{Message: "resume does not match the expected shape", Cause: err}
	}

	o := options{serializer: JSONSerializer}
	for _, opt := range opts {
		opt(&o)
	}

	text, err := o.serializer(resume)
	if err != nil {
		return nil, &InvalidInputError{Message: "resume could not be serialized", Cause: err}
	}

	breakdown := types.Breakdown{
		Contact:       AnalyzeContact(resume),
		Structure:     AnalyzeStructure(resume),
		Content:       AnalyzeContent(resume),
		Skills:        AnalyzeSkills(resume),
		ParsingSafety: AnalyzeParsingSafety(text),
	}

	result := &types.ATSResult{}
	if strings.TrimSpace(jobDescription) != "" {
		jobMatch := AnalyzeJobMatch(text, jobDescription)
		breakdown.JobMatch = &jobMatch
		result.KeywordDensity = keywords.Density(text, jobDescription)
	}

	result.Breakdown = breakdown
	result.TotalScore = TotalScore(&breakdown)
	result.Issues = FlattenIssues(&breakdown)

	return result, nil
}

// DecodeResume parses raw JSON into a snapshot, rejecting documents that do
// not conform to the resume schema.
func DecodeResume(data []byte) (*types.ResumeSnapshot, error) {
	if err := schemas.ValidateResume(data); err != nil {
		return nil, &InvalidInputError{Message: "resume JSON does not match the resume schema", Cause: err}
	}

	var resume types.ResumeSnapshot
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, &InvalidInputError{Message: "failed to decode resume JSON", Cause: err}
	}

	if err := resume.Validate(); err != nil {
		return nil, &InvalidInputError{Message: "resume does not match the expected shape", Cause: err}
	}

	return &resume, nil
}
