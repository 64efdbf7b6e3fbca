package reports

import (
	"sort"
	"strings"

	"github.com/yigit/benchtrack/internal/app/models"
)

const (
	marketSkillsConsidered = 10
	missingSkillsReported  = 5
)

// SkillDemand is a skill and the number of open opportunities asking for it
type SkillDemand struct {
	Skill  string `json:"skill"`
	Demand int    `json:"marketDemand"`
}

type Insights struct {
	MissingHighDemandSkills []SkillDemand `json:"missingHighDemandSkills"`
	CareerLevel             string        `json:"careerLevel"`
	CareerRecommendations   []string      `json:"nextLevelRequirements"`
	ImprovementSuggestions  []string      `json:"improvementSuggestions,omitempty"`
	TargetSuccessRate       float64       `json:"targetSuccessRate"`
}

// BuildInsights compares the consultant against open market demand and
// suggests next steps for their career level and success rate
func BuildInsights(c models.Consultant, skills *SkillsAnalysis, successRate float64, open []models.Opportunity) *Insights {
	held := make(map[string]bool)
	if skills != nil {
		for _, entries := range skills.ByCategory {
			for _, e := range entries {
				held[strings.ToLower(e.Name)] = true
			}
		}
	}

	return &Insights{
		MissingHighDemandSkills: MissingHighDemand(held, open),
		CareerLevel:             CareerLevel(c.ExperienceYears),
		CareerRecommendations:   careerRecommendations(c.ExperienceYears),
		ImprovementSuggestions:  ImprovementSuggestions(successRate),
		TargetSuccessRate:       min(successRate+20, 100),
	}
}

// MissingHighDemand ranks skills required by open opportunities and keeps
// the top ones the consultant does not hold
func MissingHighDemand(held map[string]bool, open []models.Opportunity) []SkillDemand {
	demand := make(map[string]int)
	for _, o := range open {
		for _, s := range o.RequiredSkills {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				demand[s]++
			}
		}
	}

	ranked := make([]SkillDemand, 0, len(demand))
	for _, k := range sortedKeys(demand) {
		ranked = append(ranked, SkillDemand{Skill: k, Demand: demand[k]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Demand > ranked[j].Demand })
	if len(ranked) > marketSkillsConsidered {
		ranked = ranked[:marketSkillsConsidered]
	}

	missing := []SkillDemand{}
	for _, d := range ranked {
		if !held[d.Skill] {
			missing = append(missing, d)
		}
		if len(missing) == missingSkillsReported {
			break
		}
	}
	return missing
}

// CareerLevel buckets years of experience at 2 and 5
func CareerLevel(years int) string {
	switch {
	case years < 2:
		return "junior"
	case years < 5:
		return "mid"
	default:
		return "senior"
	}
}

func careerRecommendations(years int) []string {
	switch CareerLevel(years) {
	case "junior":
		return []string{
			"Focus on building foundational technical skills",
			"Seek mentorship opportunities",
			"Contribute to open-source projects",
		}
	case "mid":
		return []string{
			"Develop leadership and communication skills",
			"Take on project management responsibilities",
			"Expand technical expertise in emerging technologies",
		}
	default:
		return []string{
			"Consider architectural and strategic roles",
			"Mentor junior developers",
			"Develop business and domain expertise",
		}
	}
}

// ImprovementSuggestions picks advice by placement success rate
func ImprovementSuggestions(successRate float64) []string {
	switch {
	case successRate < 30:
		return []string{
			"Review and optimize your application approach",
			"Enhance your skill profile with in-demand technologies",
			"Consider specialized training or certifications",
		}
	case successRate < 60:
		return []string{
			"Target opportunities that better match your skill set",
			"Improve your application response time",
			"Develop additional complementary skills",
		}
	default:
		return []string{
			"Maintain your excellent performance",
			"Consider higher-level or specialized roles",
			"Share your expertise through mentoring",
		}
	}
}
