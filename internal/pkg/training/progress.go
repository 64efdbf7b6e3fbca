package training

import (
	"time"
)

const (
	studyHoursPerWeek   = 5.0
	defaultProgramHours = 40
)

// ProgressUpdate is a progress report for an enrollment
type ProgressUpdate struct {
	EnrollmentID       int64   `json:"enrollmentId"`
	ProgressPercentage float64 `json:"progressPercentage"`
	Milestone          string  `json:"milestone,omitempty"`
	TimeSpentHours     float64 `json:"timeSpentHours"`
	TotalDurationHours int     `json:"totalDurationHours,omitempty"`
}

// Progress is the interpreted state of an enrollment
type Progress struct {
	EnrollmentID        int64     `json:"enrollmentId"`
	CurrentProgress     float64   `json:"currentProgress"`
	Milestone           string    `json:"milestone,omitempty"`
	TimeSpentHours      float64   `json:"timeSpentHours"`
	Status              string    `json:"status"`
	NextMilestone       string    `json:"nextMilestone"`
	EstimatedCompletion string    `json:"estimatedCompletion"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// TrackProgress interprets a progress update
func (e *Engine) TrackProgress(u ProgressUpdate) Progress {
	now := e.now()
	return Progress{
		EnrollmentID:        u.EnrollmentID,
		CurrentProgress:     u.ProgressPercentage,
		Milestone:           u.Milestone,
		TimeSpentHours:      u.TimeSpentHours,
		Status:              ProgressStatus(u.ProgressPercentage),
		NextMilestone:       NextMilestone(u.ProgressPercentage),
		EstimatedCompletion: EstimateCompletion(now, u.ProgressPercentage, u.TotalDurationHours),
		UpdatedAt:           now,
	}
}

// ProgressStatus buckets a completion percentage
func ProgressStatus(pct float64) string {
	switch {
	case pct <= 0:
		return "not_started"
	case pct < 25:
		return "getting_started"
	case pct < 50:
		return "progressing_well"
	case pct < 75:
		return "more_than_halfway"
	case pct < 100:
		return "nearly_complete"
	default:
		return "completed"
	}
}

// NextMilestone names the next checkpoint for a completion percentage
func NextMilestone(pct float64) string {
	switch {
	case pct < 25:
		return "Complete first quarter of course"
	case pct < 50:
		return "Reach halfway point"
	case pct < 75:
		return "Complete three quarters"
	case pct < 100:
		return "Complete final assessments"
	default:
		return "Course completed!"
	}
}

// EstimateCompletion projects a finish date (YYYY-MM-DD) at five study hours
// per week. totalHours <= 0 falls back to a 40 hour program.
func EstimateCompletion(from time.Time, pct float64, totalHours int) string {
	if pct >= 100 {
		return "Completed"
	}
	if totalHours <= 0 {
		totalHours = defaultProgramHours
	}
	if pct < 0 {
		pct = 0
	}
	remainingHours := (100 - pct) / 100 * float64(totalHours)
	weeks := remainingHours / studyHoursPerWeek
	return from.Add(time.Duration(weeks * float64(7*24*time.Hour))).Format("2006-01-02")
}
