package ats

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/ats-analyzer/internal/lexicon"
	"github.com/jonathan/ats-analyzer/internal/types"
)

const (
	skillsMaxScore     = 20
	softHeavyRatio     = 0.40
	softHeavyPoints    = 10
	balancedPoints     = 20
	clusterBonusPoints = 5
	// maxClusterSuggestions limits cluster hints per analysis; later clusters are skipped
	maxClusterSuggestions = 2
	maxMissingNamed       = 3
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// AnalyzeSkills scores the skills list on hard/soft balance and rewards
// complete skill clusters. Duplicates are reported without affecting score.
func AnalyzeSkills(resume *types.ResumeSnapshot) types.CategoryResult {
	result := types.CategoryResult{MaxScore: skillsMaxScore, Issues: []types.Issue{}}

	names := resume.SkillNames()
	if len(names) == 0 {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "skl-empty",
			Type:       types.SeverityWarning,
			Message:    "No skills listed",
			Suggestion: "List the tools, languages and technologies you use; keyword filters match against them first",
		})
		return result
	}

	have := make(map[string]bool, len(names))
	soft := 0
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		have[key] = true
		if lexicon.IsSoftSkill(key) {
			soft++
		}
	}

	score := 0
	softRatio := float64(soft) / float64(len(names))
	if softRatio > softHeavyRatio {
		score += softHeavyPoints
		result.Issues = append(result.Issues, types.Issue{
			ID:         "skl-soft-heavy",
			Type:       types.SeverityWarning,
			Message:    fmt.Sprintf("%d of %d skills are soft skills", soft, len(names)),
			Suggestion: "Rebalance toward hard skills and demonstrate soft skills through your experience bullets instead",
		})
	} else {
		score += balancedPoints
		result.Issues = append(result.Issues, types.Issue{
			ID:      "skl-balance-ok",
			Type:    types.SeveritySuccess,
			Message: "Good balance of hard and soft skills",
		})
	}

	if len(have) != len(names) {
		result.Issues = append(result.Issues, types.Issue{
			ID:         "skl-dup",
			Type:       types.SeverityWarning,
			Message:    fmt.Sprintf("%d duplicate skill entries", len(names)-len(have)),
			Suggestion: "Remove repeated skills; listing the same skill twice wastes space without adding keyword weight",
		})
	}

	suggested := 0
	for _, cluster := range lexicon.SkillClusters() {
		if !have[cluster.Trigger] {
			continue
		}

		var missing []string
		for _, rel := range cluster.Related {
			if !have[rel] {
				missing = append(missing, rel)
			}
		}

		switch {
		case len(missing) == 0:
			score += clusterBonusPoints
		case len(missing) < len(cluster.Related) && suggested < maxClusterSuggestions:
			suggested++
			if len(missing) > maxMissingNamed {
				missing = missing[:maxMissingNamed]
			}
			result.Issues = append(result.Issues, types.Issue{
				ID:         "skl-cluster-" + clusterSlug(cluster.Trigger),
				Type:       types.SeverityWarning,
				Message:    fmt.Sprintf("You list %s; related skills are missing", cluster.Trigger),
				Suggestion: fmt.Sprintf("Consider adding %s if you have used them", strings.Join(missing, ", ")),
			})
		}
	}

	result.Score = min(score, skillsMaxScore)
	return result
}

func clusterSlug(trigger string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(trigger), "-"), "-")
}
