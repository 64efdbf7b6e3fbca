package training

import (
	"fmt"
	"math"
	"time"
)

const (
	planHoursPerWeek   = 10.0
	planPhaseGapWeeks  = 2
	milestoneWeeks     = 8
	minPlanMonths      = 3
	planTrainingWindow = 5
	maxMilestones      = 5
)

// Phase is one training slot in a development timeline
type Phase struct {
	Phase         int      `json:"phase"`
	TrainingTitle string   `json:"trainingTitle"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	DurationWeeks int      `json:"durationWeeks"`
	SkillsGained  []string `json:"skillsGained"`
}

// Milestone is a checkpoint for mastering one skill
type Milestone struct {
	MilestoneID     int      `json:"milestoneId"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	TargetDate      string   `json:"targetDate"`
	SuccessCriteria []string `json:"successCriteria"`
}

// Metric is a measurable plan goal
type Metric struct {
	Target      string `json:"target"`
	Metric      string `json:"metric"`
	Measurement string `json:"measurement"`
}

// Plan is a complete skill development plan
type Plan struct {
	ConsultantID            int64             `json:"consultantId,omitempty"`
	PlanTitle               string            `json:"planTitle"`
	CurrentLevel            string            `json:"currentLevel"`
	TargetLevel             string            `json:"targetLevel"`
	SkillGapAnalysis        GapAnalysis       `json:"skillGapAnalysis"`
	RecommendedTrainings    []Recommendation  `json:"recommendedTrainings"`
	LearningPaths           []LearningPath    `json:"learningPaths"`
	Timeline                []Phase           `json:"timeline"`
	Milestones              []Milestone       `json:"milestones"`
	SuccessMetrics          map[string]Metric `json:"successMetrics"`
	EstimatedDurationMonths int               `json:"estimatedDurationMonths"`
	TotalInvestment         float64           `json:"totalInvestment"`
	CreatedAt               time.Time         `json:"createdAt"`
}

// DevelopmentPlan analyzes gaps towards req.TargetSkills and lays out the
// top recommendations as a dated plan.
func (e *Engine) DevelopmentPlan(req Request) Plan {
	now := e.now()
	gaps := e.AnalyzeGaps(req.Skills, req.TargetSkills)

	recReq := req
	recReq.MissingSkills = gaps.MissingSkills
	recs := e.Recommend(recReq)

	top := recs.Recommendations
	if len(top) > planTrainingWindow {
		top = top[:planTrainingWindow]
	}

	name := req.Name
	if name == "" {
		name = "Consultant"
	}

	return Plan{
		ConsultantID:            req.ConsultantID,
		PlanTitle:               "Skill Development Plan for " + name,
		CurrentLevel:            AssessLevel(req.ExperienceYears, len(req.Skills)),
		TargetLevel:             "Advanced",
		SkillGapAnalysis:        gaps,
		RecommendedTrainings:    top,
		LearningPaths:           recs.LearningPaths,
		Timeline:                timeline(now, top),
		Milestones:              milestones(now, gaps.MissingSkills),
		SuccessMetrics:          successMetrics(len(req.TargetSkills)),
		EstimatedDurationMonths: planMonths(top),
		TotalInvestment:         recs.Summary.EstimatedTotalCost,
		CreatedAt:               now,
	}
}

// AssessLevel grades a consultant from experience and breadth of skills
func AssessLevel(experienceYears, skillCount int) string {
	switch {
	case experienceYears < 2 || skillCount < 5:
		return "Beginner"
	case experienceYears < 5 || skillCount < 12:
		return "Intermediate"
	default:
		return "Advanced"
	}
}

// timeline starts each training two weeks after the previous one and gives
// it hours/10 weeks of study.
func timeline(now time.Time, recs []Recommendation) []Phase {
	phases := []Phase{}
	for i, r := range recs {
		start := now.AddDate(0, 0, i*planPhaseGapWeeks*7)
		weeks := float64(r.DurationHours) / planHoursPerWeek
		end := start.Add(time.Duration(weeks * float64(7*24*time.Hour)))
		phases = append(phases, Phase{
			Phase:         i + 1,
			TrainingTitle: r.Title,
			StartDate:     start.Format("2006-01-02"),
			EndDate:       end.Format("2006-01-02"),
			DurationWeeks: int(math.Round(weeks)),
			SkillsGained:  r.SkillsCovered,
		})
	}
	return phases
}

func milestones(now time.Time, missing []string) []Milestone {
	out := []Milestone{}
	for i, skill := range missing {
		if i == maxMilestones {
			break
		}
		out = append(out, Milestone{
			MilestoneID: i + 1,
			Title:       "Master " + skill,
			Description: fmt.Sprintf("Complete training and demonstrate proficiency in %s", skill),
			TargetDate:  now.AddDate(0, 0, (i+1)*milestoneWeeks*7).Format("2006-01-02"),
			SuccessCriteria: []string{
				fmt.Sprintf("Complete relevant %s training course", skill),
				fmt.Sprintf("Pass %s assessment with 80%%+ score", skill),
				fmt.Sprintf("Apply %s in a real project", skill),
			},
		})
	}
	return out
}

func successMetrics(targetCount int) map[string]Metric {
	return map[string]Metric{
		"skillAcquisition": {
			Target:      fmt.Sprintf("%d", targetCount),
			Metric:      "Number of new skills mastered",
			Measurement: "Completed training + practical application",
		},
		"certificationGoals": {
			Target:      "2-3 industry certifications",
			Metric:      "Professional certifications earned",
			Measurement: "Valid certificates obtained",
		},
		"projectApplication": {
			Target:      "Apply skills in real projects",
			Metric:      "Practical skill demonstration",
			Measurement: "Project portfolio updates",
		},
		"marketReadiness": {
			Target:      "80%+ skill match for target roles",
			Metric:      "Job market competitiveness",
			Measurement: "Opportunity matching score",
		},
	}
}

// planMonths assumes ten study hours a week and four weeks a month, with a
// three month floor.
func planMonths(recs []Recommendation) int {
	hours := 0
	for _, r := range recs {
		hours += r.DurationHours
	}
	months := int(math.Round(float64(hours) / planHoursPerWeek / 4))
	if months < minPlanMonths {
		return minPlanMonths
	}
	return months
}
