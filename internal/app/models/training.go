package models

import "time"

// EnrollmentStatus tracks a consultant through a training program
type EnrollmentStatus string

const (
	EnrollmentEnrolled   EnrollmentStatus = "enrolled"
	EnrollmentInProgress EnrollmentStatus = "in_progress"
	EnrollmentCompleted  EnrollmentStatus = "completed"
	EnrollmentDropped    EnrollmentStatus = "dropped"
)

// EnrollmentStatusForProgress derives the status from a 0..100 progress value
func EnrollmentStatusForProgress(progress float64) EnrollmentStatus {
	switch {
	case progress >= 100:
		return EnrollmentCompleted
	case progress > 0:
		return EnrollmentInProgress
	default:
		return EnrollmentEnrolled
	}
}

// TrainingEnrollment links a consultant to a catalog program
type TrainingEnrollment struct {
	ID           int64            `json:"id" db:"id"`
	ConsultantID int64            `json:"consultantId" db:"consultant_id"`
	ProgramID    string           `json:"programId" db:"program_id" example:"kubernetes_fundamentals"`
	ProgramName  string           `json:"programName" db:"program_name" example:"Kubernetes Fundamentals"`
	Category     string           `json:"category" db:"category" example:"cloud_computing"`
	Status       EnrollmentStatus `json:"status" db:"status" example:"in_progress"`
	Progress     float64          `json:"progress" db:"progress" example:"40"`
	HoursSpent   float64          `json:"hoursSpent" db:"hours_spent" example:"12"`
	EnrolledAt   time.Time        `json:"enrolledAt" db:"enrolled_at"`
	StartedAt    *time.Time       `json:"startedAt,omitempty" db:"started_at"`
	CompletedAt  *time.Time       `json:"completedAt,omitempty" db:"completed_at"`
	UpdatedAt    time.Time        `json:"updatedAt" db:"updated_at"`
}
