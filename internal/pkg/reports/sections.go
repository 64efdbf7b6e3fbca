package reports

import (
	"sort"
	"strings"
	"time"

	"github.com/yigit/benchtrack/internal/app/models"
)

// SkillEntry is one skill as shown in a report
type SkillEntry struct {
	Name        string   `json:"name"`
	Proficiency string   `json:"proficiency"`
	Source      string   `json:"source"`
	IsPrimary   bool     `json:"isPrimary"`
	Confidence  *float64 `json:"confidence,omitempty"`
}

type SkillsAnalysis struct {
	TotalSkills             int                     `json:"totalSkills"`
	ByCategory              map[string][]SkillEntry `json:"skillsByCategory"`
	Sources                 map[string]int          `json:"skillSources"`
	ProficiencyDistribution map[string]int          `json:"proficiencyDistribution"`
	PrimarySkills           []string                `json:"primarySkills"`
	CategoryCount           int                     `json:"skillDiversity"`
}

// AnalyzeSkills groups skills by category and counts proficiency levels
func AnalyzeSkills(skills []models.ConsultantSkill) *SkillsAnalysis {
	out := &SkillsAnalysis{
		TotalSkills: len(skills),
		ByCategory:  make(map[string][]SkillEntry),
		Sources:     make(map[string]int),
		ProficiencyDistribution: map[string]int{
			"beginner":     0,
			"intermediate": 0,
			"advanced":     0,
			"expert":       0,
		},
		PrimarySkills: []string{},
	}

	for _, s := range skills {
		category := string(s.Category)
		if category == "" {
			category = "other"
		}
		out.ByCategory[category] = append(out.ByCategory[category], SkillEntry{
			Name:        s.SkillName,
			Proficiency: s.Proficiency,
			Source:      s.Source,
			IsPrimary:   s.IsPrimary,
			Confidence:  s.Confidence,
		})

		source := s.Source
		if source == "" {
			source = "unknown"
		}
		out.Sources[source]++

		level := strings.ToLower(s.Proficiency)
		if level == "" {
			level = models.DefaultProficiency
		}
		if _, ok := out.ProficiencyDistribution[level]; ok {
			out.ProficiencyDistribution[level]++
		}

		if s.IsPrimary {
			out.PrimarySkills = append(out.PrimarySkills, s.SkillName)
		}
	}
	out.CategoryCount = len(out.ByCategory)
	return out
}

// MonthCount is the number of applications submitted in a month (YYYY-MM)
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type RecentApplication struct {
	OpportunityTitle string    `json:"opportunityTitle"`
	Client           *string   `json:"client,omitempty"`
	Status           string    `json:"status"`
	AppliedAt        time.Time `json:"appliedAt"`
	MatchScore       float64   `json:"matchScore"`
	RequiredSkills   []string  `json:"requiredSkills"`
}

type OpportunityAnalysis struct {
	TotalApplications int                 `json:"totalApplications"`
	StatusBreakdown   map[string]int      `json:"statusBreakdown"`
	Accepted          int                 `json:"successfulApplications"`
	Pending           int                 `json:"pendingApplications"`
	Declined          int                 `json:"declinedApplications"`
	SuccessRate       float64             `json:"successRate"`
	MonthlyTrend      []MonthCount        `json:"monthlyTrend"`
	Recent            []RecentApplication `json:"recentApplications"`
}

const recentApplications = 10

// AnalyzeOpportunities breaks applications down by status and month
func AnalyzeOpportunities(apps []AppliedOpportunity) *OpportunityAnalysis {
	out := &OpportunityAnalysis{
		TotalApplications: len(apps),
		StatusBreakdown:   make(map[string]int),
		MonthlyTrend:      []MonthCount{},
		Recent:            []RecentApplication{},
	}

	sorted := make([]AppliedOpportunity, len(apps))
	copy(sorted, apps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Application.AppliedAt.After(sorted[j].Application.AppliedAt)
	})

	months := make(map[string]int)
	for _, a := range sorted {
		status := a.Application.Status
		out.StatusBreakdown[string(status)]++
		switch status {
		case models.ApplicationAccepted:
			out.Accepted++
		case models.ApplicationPending:
			out.Pending++
		case models.ApplicationDeclined:
			out.Declined++
		}
		months[a.Application.AppliedAt.Format("2006-01")]++

		if len(out.Recent) < recentApplications && a.Opportunity != nil {
			out.Recent = append(out.Recent, RecentApplication{
				OpportunityTitle: a.Opportunity.Title,
				Client:           a.Opportunity.Client,
				Status:           string(status),
				AppliedAt:        a.Application.AppliedAt,
				MatchScore:       a.Application.MatchScore,
				RequiredSkills:   a.Opportunity.RequiredSkills,
			})
		}
	}

	for _, m := range sortedKeys(months) {
		out.MonthlyTrend = append(out.MonthlyTrend, MonthCount{Month: m, Count: months[m]})
	}
	out.SuccessRate = percent(out.Accepted, out.TotalApplications)
	return out
}

type Performance struct {
	SuccessRate         float64 `json:"opportunitySuccessRate"`
	SkillUtilization    float64 `json:"skillUtilizationRate"`
	MarketScore         float64 `json:"marketCompetitivenessScore"`
	ProfileCompleteness float64 `json:"profileCompleteness"`
	Applications        int     `json:"totalOpportunitiesApplied"`
	Placements          int     `json:"successfulPlacements"`
	SkillsUsed          int     `json:"skillsActivelyUsed"`
	ActivityLevel       string  `json:"activityLevel"`
}

// AnalyzePerformance scores placement success and how much of the
// consultant's skill set the applied opportunities actually asked for
func AnalyzePerformance(c models.Consultant, apps []AppliedOpportunity) *Performance {
	held := make(map[string]bool, len(c.Skills))
	for _, s := range c.Skills {
		held[strings.ToLower(s.SkillName)] = true
	}

	accepted := 0
	used := make(map[string]bool)
	for _, a := range apps {
		if a.Application.Status == models.ApplicationAccepted {
			accepted++
		}
		if a.Opportunity == nil {
			continue
		}
		for _, req := range a.Opportunity.RequiredSkills {
			if key := strings.ToLower(req); held[key] {
				used[key] = true
			}
		}
	}

	p := &Performance{
		SuccessRate:         percent(accepted, len(apps)),
		SkillUtilization:    percent(len(used), len(held)),
		ProfileCompleteness: ProfileCompleteness(c),
		Applications:        len(apps),
		Placements:          accepted,
		SkillsUsed:          len(used),
	}
	p.MarketScore = round1(min((p.SuccessRate+p.SkillUtilization)/2, 100))

	switch {
	case len(apps) > 10:
		p.ActivityLevel = "high"
	case len(apps) > 5:
		p.ActivityLevel = "medium"
	default:
		p.ActivityLevel = "low"
	}
	return p
}

// ProfileCompleteness is the share of eight profile fields that are filled in
func ProfileCompleteness(c models.Consultant) float64 {
	checks := []bool{
		c.Name != "",
		c.Email != "",
		c.PrimarySkill != nil && *c.PrimarySkill != "",
		c.ExperienceYears > 0,
		c.Status != "",
		c.ResumeStatus == models.ResumeStatusUpdated,
		c.TrainingStatus != "",
		c.OpportunitiesCount > 0,
	}
	filled := 0
	for _, ok := range checks {
		if ok {
			filled++
		}
	}
	return percent(filled, len(checks))
}

type DayPattern struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Total   int `json:"total"`
}

type AttendanceAnalysis struct {
	HasData        bool                  `json:"hasAttendanceData"`
	TotalDays      int                   `json:"periodDays"`
	PresentDays    int                   `json:"presentDays"`
	AbsentDays     int                   `json:"absentDays"`
	HalfDays       int                   `json:"halfDays"`
	LeaveDays      int                   `json:"leaveDays"`
	HoursWorked    float64               `json:"totalHoursWorked"`
	AttendanceRate float64               `json:"attendanceRate"`
	WeekdayPattern map[string]DayPattern `json:"weeklyPatterns,omitempty"`
	Consistency    string                `json:"consistency,omitempty"`
}

// AnalyzeAttendance counts a half day as half a present day
func AnalyzeAttendance(records []models.AttendanceRecord) *AttendanceAnalysis {
	if len(records) == 0 {
		return &AttendanceAnalysis{}
	}

	out := &AttendanceAnalysis{
		HasData:        true,
		TotalDays:      len(records),
		WeekdayPattern: make(map[string]DayPattern),
	}
	for _, r := range records {
		switch r.Status {
		case models.AttendancePresent:
			out.PresentDays++
		case models.AttendanceAbsent:
			out.AbsentDays++
		case models.AttendanceHalfDay:
			out.HalfDays++
		case models.AttendanceLeave:
			out.LeaveDays++
		}
		if r.HoursWorked != nil {
			out.HoursWorked += *r.HoursWorked
		}

		day, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			continue
		}
		pattern := out.WeekdayPattern[day.Weekday().String()]
		pattern.Total++
		if r.Status == models.AttendancePresent {
			pattern.Present++
		} else {
			pattern.Absent++
		}
		out.WeekdayPattern[day.Weekday().String()] = pattern
	}

	out.HoursWorked = round1(out.HoursWorked)
	out.AttendanceRate = round1((float64(out.PresentDays) + float64(out.HalfDays)*0.5) / float64(out.TotalDays) * 100)
	out.Consistency = Consistency(out.AttendanceRate)
	return out
}

// Consistency labels an attendance rate
func Consistency(rate float64) string {
	switch {
	case rate >= 90:
		return "Excellent"
	case rate >= 75:
		return "Good"
	default:
		return "Needs Improvement"
	}
}

type ResumeSection struct {
	HasResume    bool      `json:"hasResume"`
	FileName     string    `json:"fileName,omitempty"`
	UploadedAt   time.Time `json:"uploadDate,omitempty"`
	Skills       []string  `json:"extractedSkills,omitempty"`
	Competencies []string  `json:"extractedCompetencies,omitempty"`
	Roles        []string  `json:"identifiedRoles,omitempty"`
	Summary      string    `json:"summary,omitempty"`
	Confidence   float64   `json:"confidenceScore,omitempty"`
	Quality      string    `json:"resumeQuality,omitempty"`
}

// SummarizeResume reports the latest stored resume analysis
func SummarizeResume(a *models.ResumeAnalysis) *ResumeSection {
	if a == nil {
		return &ResumeSection{}
	}
	quality := "needs_improvement"
	switch {
	case a.Confidence > 0.85:
		quality = "excellent"
	case a.Confidence > 0.7:
		quality = "good"
	}
	return &ResumeSection{
		HasResume:    true,
		FileName:     a.FileName,
		UploadedAt:   a.CreatedAt,
		Skills:       a.Skills,
		Competencies: a.SoftSkills,
		Roles:        a.Roles,
		Summary:      a.Summary,
		Confidence:   a.Confidence,
		Quality:      quality,
	}
}
