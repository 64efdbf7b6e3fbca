package models

import "time"

// Notification types
const (
	NotificationResumeUploaded   = "resume_uploaded"
	NotificationApplication      = "application_submitted"
	NotificationApplicationReply = "application_reviewed"
	NotificationTrainingComplete = "training_completed"
)

// Notification is an admin-facing event record
type Notification struct {
	ID           int64     `json:"id" db:"id"`
	Type         string    `json:"type" db:"type" example:"resume_uploaded"`
	Title        string    `json:"title" db:"title"`
	Message      string    `json:"message" db:"message"`
	ConsultantID *int64    `json:"consultantId,omitempty" db:"consultant_id"`
	IsRead       bool      `json:"isRead" db:"is_read"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
