package ats

import (
	"math"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// Weights are percentage weights per category; each set sums to 100.
type Weights struct {
	Contact       float64
	Structure     float64
	Content       float64
	Skills        float64
	ParsingSafety float64
	JobMatch      float64
}

var (
	// WeightsWithJob applies when a job description was supplied.
	WeightsWithJob = Weights{Contact: 5, Structure: 10, Content: 25, Skills: 20, ParsingSafety: 10, JobMatch: 30}
	// WeightsWithoutJob applies otherwise; job match carries no weight.
	WeightsWithoutJob = Weights{Contact: 15, Structure: 15, Content: 35, Skills: 25, ParsingSafety: 10}
)

// WeightsFor picks the weight set matching the breakdown.
func WeightsFor(b *types.Breakdown) Weights {
	if b.JobMatch != nil {
		return WeightsWithJob
	}
	return WeightsWithoutJob
}

// TotalScore combines category scores into a weighted 0..100 total.
func TotalScore(b *types.Breakdown) int {
	w := WeightsFor(b)

	total := weighted(b.Contact, w.Contact) +
		weighted(b.Structure, w.Structure) +
		weighted(b.Content, w.Content) +
		weighted(b.Skills, w.Skills) +
		weighted(b.ParsingSafety, w.ParsingSafety)
	if b.JobMatch != nil {
		total += weighted(*b.JobMatch, w.JobMatch)
	}

	return max(0, min(100, int(math.Round(total))))
}

func weighted(c types.CategoryResult, weight float64) float64 {
	if c.MaxScore <= 0 {
		return 0
	}
	return float64(c.Score) / float64(c.MaxScore) * weight
}

// FlattenIssues concatenates category issues in the fixed order contact,
// structure, content, skills, parsing safety, job match.
func FlattenIssues(b *types.Breakdown) []types.Issue {
	issues := make([]types.Issue, 0)
	issues = append(issues, b.Contact.Issues...)
	issues = append(issues, b.Structure.Issues...)
	issues = append(issues, b.Content.Issues...)
	issues = append(issues, b.Skills.Issues...)
	issues = append(issues, b.ParsingSafety.Issues...)
	if b.JobMatch != nil {
		issues = append(issues, b.JobMatch.Issues...)
	}
	return issues
}
