package training

import (
	"strings"
	"time"
)

// GapAnalysis compares held skills with a target skill set
type GapAnalysis struct {
	TotalTargetSkills  int       `json:"totalTargetSkills"`
	MatchingSkills     []string  `json:"matchingSkills"`
	MissingSkills      []string  `json:"missingSkills"`
	CoveragePercentage float64   `json:"coveragePercentage"`
	PriorityGaps       []string  `json:"priorityGaps"`
	AnalyzedAt         time.Time `json:"analyzedAt"`
}

// AnalyzeGaps matches target skills against held skills case-insensitively.
// Coverage is 100 when there is no target.
func (e *Engine) AnalyzeGaps(current, target []string) GapAnalysis {
	held := make(map[string]bool, len(current))
	for _, s := range current {
		held[normalizeSkill(s)] = true
	}

	a := GapAnalysis{
		TotalTargetSkills: len(target),
		MatchingSkills:    []string{},
		MissingSkills:     []string{},
		AnalyzedAt:        e.now(),
	}
	for _, t := range target {
		if held[normalizeSkill(t)] {
			a.MatchingSkills = append(a.MatchingSkills, t)
		} else {
			a.MissingSkills = append(a.MissingSkills, t)
		}
	}

	a.CoveragePercentage = 100
	if len(target) > 0 {
		a.CoveragePercentage = round1(float64(len(a.MatchingSkills)) / float64(len(target)) * 100)
	}

	a.PriorityGaps = a.MissingSkills
	if len(a.PriorityGaps) > 3 {
		a.PriorityGaps = a.PriorityGaps[:3]
	}
	return a
}

// MissingAcross collects the skills required by any of requirements that the
// consultant lacks. Names are compared case-insensitively and each missing
// skill is reported once, with the spelling of its first occurrence.
func MissingAcross(current []string, requirements ...[]string) []string {
	held := make(map[string]bool, len(current))
	for _, s := range current {
		held[normalizeSkill(s)] = true
	}

	seen := make(map[string]bool)
	missing := []string{}
	for _, req := range requirements {
		for _, skill := range req {
			key := normalizeSkill(skill)
			if key == "" || held[key] || seen[key] {
				continue
			}
			seen[key] = true
			missing = append(missing, strings.TrimSpace(skill))
		}
	}
	return missing
}

// MatchScore is the percentage of required skills the consultant holds, one decimal
func MatchScore(current, required []string) float64 {
	if len(required) == 0 {
		return 0
	}
	held := make(map[string]bool, len(current))
	for _, s := range current {
		held[normalizeSkill(s)] = true
	}
	matched := 0
	for _, r := range required {
		if held[normalizeSkill(r)] {
			matched++
		}
	}
	return round1(float64(matched) / float64(len(required)) * 100)
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
