// Package reports builds consultant reports from data already loaded by the
// caller. Nothing here touches the database.
package reports

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/yigit/benchtrack/internal/app/models"
)

// Type selects which sections a report carries
type Type string

const (
	TypeComprehensive Type = "comprehensive"
	TypePerformance   Type = "performance"
	TypeSkills        Type = "skills"
	TypeOpportunities Type = "opportunities"
)

// ParseType maps a query value to a Type. Empty means comprehensive.
func ParseType(value string) (Type, bool) {
	switch t := Type(strings.ToLower(strings.TrimSpace(value))); t {
	case "":
		return TypeComprehensive, true
	case TypeComprehensive, TypePerformance, TypeSkills, TypeOpportunities:
		return t, true
	default:
		return "", false
	}
}

// AppliedOpportunity pairs an application with the opportunity it targets.
// Opportunity may be nil when it was deleted.
type AppliedOpportunity struct {
	Application models.Application
	Opportunity *models.Opportunity
}

// Input is everything a report is computed from
type Input struct {
	Consultant        models.Consultant
	Applications      []AppliedOpportunity
	Attendance        []models.AttendanceRecord
	Resume            *models.ResumeAnalysis
	OpenOpportunities []models.Opportunity
	Now               time.Time
}

// Report is a generated consultant report. Sections not selected by the
// report type are nil.
type Report struct {
	Type        Type                 `json:"reportType"`
	GeneratedAt time.Time            `json:"generatedAt"`
	Overview    Overview             `json:"consultantOverview"`
	Skills      *SkillsAnalysis      `json:"skillsAnalysis,omitempty"`
	Opportunity *OpportunityAnalysis `json:"opportunitiesAnalysis,omitempty"`
	Performance *Performance         `json:"performanceMetrics,omitempty"`
	Attendance  *AttendanceAnalysis  `json:"attendanceAnalysis,omitempty"`
	Resume      *ResumeSection       `json:"resumeAnalysis,omitempty"`
	Insights    *Insights            `json:"insights,omitempty"`
}

type Overview struct {
	ConsultantID       int64   `json:"consultantId"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	PrimarySkill       *string `json:"primarySkill,omitempty"`
	ExperienceYears    int     `json:"experienceYears"`
	Status             string  `json:"status"`
	ResumeStatus       string  `json:"resumeStatus"`
	TrainingStatus     string  `json:"trainingStatus"`
	OpportunitiesCount int     `json:"opportunitiesCount"`
}

// Generate builds the report of the given type
func Generate(t Type, in Input) *Report {
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	c := in.Consultant
	report := &Report{
		Type:        t,
		GeneratedAt: in.Now,
		Overview: Overview{
			ConsultantID:       c.ID,
			Name:               c.Name,
			Email:              c.Email,
			PrimarySkill:       c.PrimarySkill,
			ExperienceYears:    c.ExperienceYears,
			Status:             string(c.Status),
			ResumeStatus:       c.ResumeStatus,
			TrainingStatus:     c.TrainingStatus,
			OpportunitiesCount: c.OpportunitiesCount,
		},
	}

	switch t {
	case TypePerformance:
		report.Performance = AnalyzePerformance(c, in.Applications)
		report.Attendance = AnalyzeAttendance(in.Attendance)
	case TypeSkills:
		report.Skills = AnalyzeSkills(c.Skills)
		report.Insights = BuildInsights(c, report.Skills, 0, in.OpenOpportunities)
		report.Insights.ImprovementSuggestions = nil
	case TypeOpportunities:
		report.Opportunity = AnalyzeOpportunities(in.Applications)
		report.Performance = AnalyzePerformance(c, in.Applications)
	default:
		report.Type = TypeComprehensive
		report.Skills = AnalyzeSkills(c.Skills)
		report.Opportunity = AnalyzeOpportunities(in.Applications)
		report.Performance = AnalyzePerformance(c, in.Applications)
		report.Attendance = AnalyzeAttendance(in.Attendance)
		report.Resume = SummarizeResume(in.Resume)
		report.Insights = BuildInsights(c, report.Skills, report.Performance.SuccessRate, in.OpenOpportunities)
	}
	return report
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
