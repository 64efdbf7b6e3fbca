package models

// RoleType defines the user role type
type RoleType string

const (
	RoleConsultant RoleType = "consultant"
	RoleAdmin      RoleType = "admin"
)

// Valid reports whether r is a known role
func (r RoleType) Valid() bool {
	return r == RoleConsultant || r == RoleAdmin
}

// ConsultantStatus is the bench state of a consultant
type ConsultantStatus string

const (
	// ConsultantAvailable means the consultant is on the bench
	ConsultantAvailable   ConsultantStatus = "available"
	ConsultantActive      ConsultantStatus = "active"
	ConsultantTraining    ConsultantStatus = "training"
	ConsultantUnavailable ConsultantStatus = "unavailable"
)

func (s ConsultantStatus) Valid() bool {
	switch s {
	case ConsultantAvailable, ConsultantActive, ConsultantTraining, ConsultantUnavailable:
		return true
	}
	return false
}

const (
	AvailabilityAvailable = "available"
	AvailabilityBusy      = "busy"
)

const (
	ResumeStatusPending = "pending"
	ResumeStatusUpdated = "updated"
)

const (
	TrainingStatusNotStarted = "not_started"
	TrainingStatusInProgress = "in_progress"
	TrainingStatusCompleted  = "completed"
)

// SkillCategory separates technical and soft skills
type SkillCategory string

const (
	SkillTechnical SkillCategory = "technical"
	SkillSoft      SkillCategory = "soft"
)

const (
	SkillSourceManual = "manual"
	SkillSourceResume = "resume"
)

const DefaultProficiency = "intermediate"
