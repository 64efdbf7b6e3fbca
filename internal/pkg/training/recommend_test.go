package training

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProgram(t *testing.T, id string) Program {
	t.Helper()
	p, ok := DefaultCatalog().Get(id)
	require.True(t, ok, "program %s missing from catalog", id)
	return p
}

func TestScore_DefaultCatalog(t *testing.T) {
	want := map[string]float64{
		"aws_solutions_architect": 90.7,
		"azure_fundamentals":      87.8,
		"kubernetes_fundamentals": 87.8,
		"nodejs_complete":         91.3,
		"react_complete":          93.8,
		"python_data_science":     92.1,
		"postgresql_mastery":      86.4,
		"mongodb_developer":       80.2,
		"machine_learning_basics": 97.8,
		"ai_for_everyone":         83.1,
	}
	for id, score := range want {
		assert.Equal(t, score, Score(mustProgram(t, id), "intermediate"), id)
	}
}

func TestScore_LevelMismatch(t *testing.T) {
	azure := mustProgram(t, "azure_fundamentals")

	// Beginner program: exact match for juniors, one step off for intermediates
	assert.Equal(t, 92.8, Score(azure, "junior"))
	assert.Equal(t, 87.8, Score(azure, "intermediate"))
	assert.Equal(t, 77.8, Score(azure, "senior"))
	// unknown levels score as intermediate
	assert.Equal(t, 87.8, Score(azure, "principal"))
}

func TestScore_CostAndImpactTiers(t *testing.T) {
	base := Program{MarketDemand: 0, Rating: 0, Difficulty: Intermediate, CareerImpact: ImpactLow}

	for cost, want := range map[float64]float64{0: 40, 100: 37, 200: 33, 250: 28} {
		p := base
		p.Cost = cost
		assert.Equal(t, want, Score(p, "intermediate"), "cost %v", cost)
	}

	p := base
	p.Cost = 500
	p.CareerImpact = "Unrated"
	assert.Equal(t, 33.0, Score(p, "intermediate"))
}

func TestPriorityFor(t *testing.T) {
	assert.Equal(t, PriorityHigh, PriorityFor(80))
	assert.Equal(t, PriorityMedium, PriorityFor(79.9))
	assert.Equal(t, PriorityMedium, PriorityFor(60))
	assert.Equal(t, PriorityLow, PriorityFor(59.9))
}

func TestReason(t *testing.T) {
	assert.Equal(t,
		"Recommended due to high market demand, industry-recognized certification, free course",
		Reason(mustProgram(t, "machine_learning_basics"), "Python"))
	assert.Equal(t,
		"Recommended due to free course, highly rated, directly addresses PostgreSQL skill gap",
		Reason(mustProgram(t, "postgresql_mastery"), "PostgreSQL"))
	assert.Equal(t,
		"Recommended due to industry-recognized certification, directly addresses NoSQL skill gap",
		Reason(mustProgram(t, "mongodb_developer"), "NoSQL"))
	assert.Equal(t,
		"Recommended due to relevant to your career goals",
		Reason(Program{Cost: 10, Skills: []string{"COBOL"}}, "Mainframe"))
}

func TestROI(t *testing.T) {
	assert.Equal(t, "Very High", ROI(mustProgram(t, "aws_solutions_architect")))
	assert.Equal(t, "High", ROI(mustProgram(t, "postgresql_mastery")))
	assert.Equal(t, "High", ROI(Program{CareerImpact: ImpactHigh, MarketDemand: 10}))
	assert.Equal(t, "Medium", ROI(Program{CareerImpact: ImpactMedium, MarketDemand: 50}))
	assert.Equal(t, "Medium", ROI(Program{CareerImpact: ImpactLow, MarketDemand: 61}))
	assert.Equal(t, "Low", ROI(Program{CareerImpact: ImpactLow, MarketDemand: 50}))
}

func TestRecommend_RankingAndLearningPath(t *testing.T) {
	engine := NewEngine(nil)

	res := engine.Recommend(Request{
		ConsultantID:    7,
		Skills:          []string{"Go"},
		MissingSkills:   []string{"Python"},
		ExperienceLevel: "intermediate",
	})

	require.Len(t, res.Recommendations, 2)
	assert.Equal(t, int64(7), res.ConsultantID)
	assert.Equal(t, "machine_learning_basics", res.Recommendations[0].TrainingID)
	assert.Equal(t, "python_data_science", res.Recommendations[1].TrainingID)
	assert.Equal(t, PriorityHigh, res.Recommendations[0].Priority)
	assert.Equal(t, "Very High", res.Recommendations[0].EstimatedROI)

	require.Len(t, res.LearningPaths, 1)
	path := res.LearningPaths[0]
	assert.Equal(t, "Python", path.SkillFocus)
	assert.Equal(t, 115, path.TotalDurationHours)
	assert.Equal(t, 49.0, path.TotalCost)
	require.Len(t, path.Progression, 2)
	assert.Equal(t, 1, path.Progression[0].Step)
	assert.Equal(t, "machine_learning_basics", path.Progression[0].TrainingID)

	assert.Equal(t, Summary{
		TotalRecommendations: 2,
		HighPriority:         2,
		WithCertification:    2,
		EstimatedTotalHours:  115,
		EstimatedTotalCost:   49,
	}, res.Summary)
}

func TestRecommend_ProgramListedOncePerRun(t *testing.T) {
	res := NewEngine(nil).Recommend(Request{MissingSkills: []string{"Docker", "Kubernetes"}})

	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, "kubernetes_fundamentals", res.Recommendations[0].TrainingID)
	assert.Equal(t, []string{"Docker", "Kubernetes"}, res.Recommendations[0].AddressesGaps)
	assert.Empty(t, res.LearningPaths)

	// summary totals count the program once, not once per gap
	k8s := mustProgram(t, "kubernetes_fundamentals")
	assert.Equal(t, 1, res.Summary.TotalRecommendations)
	assert.Equal(t, k8s.DurationHours, res.Summary.EstimatedTotalHours)
	assert.Equal(t, k8s.Cost, res.Summary.EstimatedTotalCost)
}

func TestRecommend_LearningPathSortedByDifficulty(t *testing.T) {
	catalog := NewCatalog([]Program{
		{ID: "adv", Category: "x", Difficulty: Advanced, Skills: []string{"Rust"}, MarketDemand: 99, Rating: 5, CareerImpact: ImpactHigh},
		{ID: "beg", Category: "x", Difficulty: Beginner, Skills: []string{"Rust"}, MarketDemand: 10, Rating: 1, CareerImpact: ImpactLow, Cost: 500},
	})

	res := NewEngine(catalog).Recommend(Request{MissingSkills: []string{"rust"}, ExperienceLevel: "senior"})

	require.Len(t, res.Recommendations, 2)
	assert.Equal(t, "adv", res.Recommendations[0].TrainingID)
	require.Len(t, res.LearningPaths, 1)
	assert.Equal(t, "beg", res.LearningPaths[0].Progression[0].TrainingID)
	assert.Equal(t, "adv", res.LearningPaths[0].Progression[1].TrainingID)
}

func TestRecommend_CapsAtTen(t *testing.T) {
	var programs []Program
	for i := 0; i < 12; i++ {
		programs = append(programs, Program{
			ID:            fmt.Sprintf("p%02d", i),
			Category:      "bulk",
			Difficulty:    Intermediate,
			Skills:        []string{"Go"},
			DurationHours: 10,
			Cost:          1,
			MarketDemand:  50 + i,
			Rating:        4,
			CareerImpact:  ImpactMedium,
		})
	}

	res := NewEngine(NewCatalog(programs)).Recommend(Request{MissingSkills: []string{"Go"}})

	assert.Len(t, res.Recommendations, 10)
	assert.Equal(t, "p11", res.Recommendations[0].TrainingID)
	assert.Equal(t, 12, res.Summary.TotalRecommendations)
	assert.Equal(t, 50, res.Summary.EstimatedTotalHours)
	assert.Equal(t, 5.0, res.Summary.EstimatedTotalCost)
	assert.Len(t, res.LearningPaths, 1)
}

func TestRecommend_EmptyInputs(t *testing.T) {
	res := NewEngine(nil).Recommend(Request{})
	assert.Empty(t, res.Recommendations)
	assert.NotNil(t, res.Recommendations)
	assert.Empty(t, res.LearningPaths)
	assert.Zero(t, res.Summary.TotalRecommendations)

	res = NewEngine(NewCatalog(nil)).Recommend(Request{MissingSkills: []string{"AWS"}})
	assert.Empty(t, res.Recommendations)
}

func TestExperienceLevelForYears(t *testing.T) {
	assert.Equal(t, "junior", ExperienceLevelForYears(0))
	assert.Equal(t, "intermediate", ExperienceLevelForYears(3))
	assert.Equal(t, "senior", ExperienceLevelForYears(6))
}

func TestRecommend_GeneratedAtUsesClock(t *testing.T) {
	fixed := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	res := NewEngine(nil).WithClock(func() time.Time { return fixed }).Recommend(Request{})
	assert.Equal(t, fixed, res.GeneratedAt)
}
