package training

import (
	"math"
	"sort"
	"strings"
	"time"
)

const (
	maxRecommendations = 10
	maxLearningPaths   = 3
	summaryWindow      = 5
)

// Priority buckets a recommendation score
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Request describes the consultant a recommendation run is for
type Request struct {
	ConsultantID    int64    `json:"consultantId,omitempty"`
	Name            string   `json:"name,omitempty"`
	Skills          []string `json:"skills"`
	MissingSkills   []string `json:"missingSkills"`
	TargetSkills    []string `json:"targetSkills,omitempty"`
	ExperienceLevel string   `json:"experienceLevel,omitempty"`
	ExperienceYears int      `json:"experienceYears,omitempty"`
}

// Recommendation is one scored catalog program
type Recommendation struct {
	TrainingID             string     `json:"trainingId"`
	Title                  string     `json:"title"`
	Provider               string     `json:"provider"`
	Category               string     `json:"category"`
	DurationHours          int        `json:"durationHours"`
	Difficulty             Difficulty `json:"difficulty"`
	Cost                   float64    `json:"cost"`
	CertificationAvailable bool       `json:"certificationAvailable"`
	CertificationName      string     `json:"certificationName"`
	SkillsCovered          []string   `json:"skillsCovered"`
	Prerequisites          []string   `json:"prerequisites"`
	URL                    string     `json:"url"`
	Rating                 float64    `json:"rating"`
	Score                  float64    `json:"recommendationScore"`
	Priority               Priority   `json:"priority"`
	MarketDemand           int        `json:"marketDemand"`
	CareerImpact           Impact     `json:"careerImpact"`
	Reason                 string     `json:"reason"`
	EstimatedROI           string     `json:"estimatedRoi"`
	AddressesGaps          []string   `json:"addressesGaps"`
}

// PathStep is one program inside a learning path
type PathStep struct {
	Step          int        `json:"step"`
	TrainingID    string     `json:"trainingId"`
	Title         string     `json:"title"`
	DurationHours int        `json:"durationHours"`
	Difficulty    Difficulty `json:"difficulty"`
	Certification bool       `json:"certification"`
}

// LearningPath orders the programs that teach one missing skill
type LearningPath struct {
	SkillFocus         string     `json:"skillFocus"`
	TotalDurationHours int        `json:"totalDurationHours"`
	TotalCost          float64    `json:"totalCost"`
	Progression        []PathStep `json:"progression"`
}

// Summary aggregates a recommendation run
type Summary struct {
	TotalRecommendations int     `json:"totalRecommendations"`
	HighPriority         int     `json:"highPriority"`
	WithCertification    int     `json:"withCertification"`
	EstimatedTotalHours  int     `json:"estimatedTotalHours"`
	EstimatedTotalCost   float64 `json:"estimatedTotalCost"`
}

// Result is the output of Recommend
type Result struct {
	ConsultantID    int64            `json:"consultantId,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
	LearningPaths   []LearningPath   `json:"learningPaths"`
	Summary         Summary          `json:"summary"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}

// Engine runs the recommendation pipeline over a catalog
type Engine struct {
	catalog *Catalog
	now     func() time.Time
}

// NewEngine creates an engine; a nil catalog means the built-in one
func NewEngine(catalog *Catalog) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Engine{catalog: catalog, now: time.Now}
}

// WithClock replaces the time source, used for dated plans in tests
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Catalog exposes the engine's catalog
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Recommend scores every program covering at least one missing skill. A
// program reached through several gaps is listed once. An empty catalog or no
// missing skills gives an empty result.
func (e *Engine) Recommend(req Request) Result {
	byID := make(map[string]int)
	var all []Recommendation

	for _, gap := range req.MissingSkills {
		gap = strings.TrimSpace(gap)
		if gap == "" {
			continue
		}
		for _, p := range e.catalog.ForSkill(gap) {
			if idx, ok := byID[p.ID]; ok {
				all[idx].AddressesGaps = append(all[idx].AddressesGaps, gap)
				continue
			}
			score := Score(p, req.ExperienceLevel)
			byID[p.ID] = len(all)
			all = append(all, Recommendation{
				TrainingID:             p.ID,
				Title:                  p.Title,
				Provider:               p.Provider,
				Category:               p.Category,
				DurationHours:          p.DurationHours,
				Difficulty:             p.Difficulty,
				Cost:                   p.Cost,
				CertificationAvailable: p.Certification,
				CertificationName:      p.CertName,
				SkillsCovered:          p.Skills,
				Prerequisites:          p.Prerequisites,
				URL:                    p.URL,
				Rating:                 p.Rating,
				Score:                  score,
				Priority:               PriorityFor(score),
				MarketDemand:           p.MarketDemand,
				CareerImpact:           p.CareerImpact,
				Reason:                 Reason(p, gap),
				EstimatedROI:           ROI(p),
				AddressesGaps:          []string{gap},
			})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})

	result := Result{
		ConsultantID:    req.ConsultantID,
		Recommendations: []Recommendation{},
		LearningPaths:   learningPaths(all, req.MissingSkills),
		GeneratedAt:     e.now(),
	}

	for i, r := range all {
		if i < maxRecommendations {
			result.Recommendations = append(result.Recommendations, r)
		}
		if r.Priority == PriorityHigh {
			result.Summary.HighPriority++
		}
		if r.CertificationAvailable {
			result.Summary.WithCertification++
		}
		if i < summaryWindow {
			result.Summary.EstimatedTotalHours += r.DurationHours
			result.Summary.EstimatedTotalCost += r.Cost
		}
	}
	result.Summary.TotalRecommendations = len(all)
	result.Summary.EstimatedTotalCost = round2(result.Summary.EstimatedTotalCost)

	return result
}

// Score weighs market demand (30), rating (20), level fit (20), career
// impact (15) and cost efficiency (15), rounded to one decimal.
func Score(p Program, experienceLevel string) float64 {
	score := float64(p.MarketDemand) / 100 * 30
	score += p.Rating / 5 * 20

	switch diff := abs(p.Difficulty.rank() - experienceRank(experienceLevel)); diff {
	case 0:
		score += 20
	case 1:
		score += 15
	default:
		score += 5
	}

	switch strings.ToLower(string(p.CareerImpact)) {
	case "high":
		score += 15
	case "low":
		score += 5
	default:
		score += 10
	}

	switch {
	case p.Cost == 0:
		score += 15
	case p.Cost <= 100:
		score += 12
	case p.Cost <= 200:
		score += 8
	default:
		score += 3
	}

	return math.Round(score*10) / 10
}

// PriorityFor buckets a score
func PriorityFor(score float64) Priority {
	switch {
	case score >= 80:
		return PriorityHigh
	case score >= 60:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Reason explains a recommendation using at most three factors
func Reason(p Program, gap string) string {
	var reasons []string
	if p.MarketDemand > 85 {
		reasons = append(reasons, "high market demand")
	}
	if p.Certification {
		reasons = append(reasons, "industry-recognized certification")
	}
	if p.Cost == 0 {
		reasons = append(reasons, "free course")
	}
	if p.Rating >= 4.5 {
		reasons = append(reasons, "highly rated")
	}
	for _, s := range p.Skills {
		if strings.EqualFold(s, gap) {
			reasons = append(reasons, "directly addresses "+gap+" skill gap")
			break
		}
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "relevant to your career goals")
	}
	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return "Recommended due to " + strings.Join(reasons, ", ")
}

// ROI estimates the return of a program from impact and demand
func ROI(p Program) string {
	switch {
	case p.CareerImpact == ImpactHigh && p.MarketDemand > 85:
		return "Very High"
	case p.CareerImpact == ImpactHigh || p.MarketDemand > 75:
		return "High"
	case p.CareerImpact == ImpactMedium || p.MarketDemand > 60:
		return "Medium"
	default:
		return "Low"
	}
}

// ExperienceLevelForYears maps years of experience onto junior/intermediate/senior
func ExperienceLevelForYears(years int) string {
	switch {
	case years < 3:
		return "junior"
	case years < 6:
		return "intermediate"
	default:
		return "senior"
	}
}

func experienceRank(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "junior":
		return 1
	case "senior":
		return 3
	default:
		return 2
	}
}

// learningPaths groups recommendations by the missing skill they cover
// verbatim. Only skills with more than one program form a path.
func learningPaths(recs []Recommendation, missing []string) []LearningPath {
	wanted := make(map[string]bool, len(missing))
	for _, m := range missing {
		wanted[strings.ToLower(strings.TrimSpace(m))] = true
	}

	var order []string
	groups := make(map[string][]Recommendation)
	for _, r := range recs {
		for _, skill := range r.SkillsCovered {
			if !wanted[strings.ToLower(skill)] {
				continue
			}
			if _, ok := groups[skill]; !ok {
				order = append(order, skill)
			}
			groups[skill] = append(groups[skill], r)
		}
	}

	paths := []LearningPath{}
	for _, skill := range order {
		group := groups[skill]
		if len(group) < 2 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Difficulty.rank() < group[j].Difficulty.rank()
		})

		path := LearningPath{SkillFocus: skill}
		for i, r := range group {
			path.TotalDurationHours += r.DurationHours
			path.TotalCost += r.Cost
			path.Progression = append(path.Progression, PathStep{
				Step:          i + 1,
				TrainingID:    r.TrainingID,
				Title:         r.Title,
				DurationHours: r.DurationHours,
				Difficulty:    r.Difficulty,
				Certification: r.CertificationAvailable,
			})
		}
		path.TotalCost = round2(path.TotalCost)
		paths = append(paths, path)
		if len(paths) == maxLearningPaths {
			break
		}
	}
	return paths
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
