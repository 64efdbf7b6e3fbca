package models

import "time"

// OpportunityStatus is the lifecycle state of an opportunity
type OpportunityStatus string

const (
	OpportunityOpen      OpportunityStatus = "open"
	OpportunityFilled    OpportunityStatus = "filled"
	OpportunityCancelled OpportunityStatus = "cancelled"
)

func (s OpportunityStatus) Valid() bool {
	return s == OpportunityOpen || s == OpportunityFilled || s == OpportunityCancelled
}

// Opportunity is a project posting consultants can apply to
type Opportunity struct {
	ID                 int64             `json:"id" db:"id" example:"1"`
	Title              string            `json:"title" db:"title" example:"Payments platform migration"`
	Description        *string           `json:"description,omitempty" db:"description"`
	Client             *string           `json:"client,omitempty" db:"client" example:"Acme Bank"`
	RequiredSkills     []string          `json:"requiredSkills" db:"required_skills"`
	ExperienceRequired int               `json:"experienceRequired" db:"experience_required" example:"3"`
	ExperienceLevel    *string           `json:"experienceLevel,omitempty" db:"experience_level" example:"intermediate"`
	Location           *string           `json:"location,omitempty" db:"location"`
	Duration           *string           `json:"duration,omitempty" db:"duration" example:"6 months"`
	Budget             *float64          `json:"budget,omitempty" db:"budget"`
	Positions          int               `json:"positions" db:"positions" example:"1"`
	StartDate          *time.Time        `json:"startDate,omitempty" db:"start_date"`
	EndDate            *time.Time        `json:"endDate,omitempty" db:"end_date"`
	Status             OpportunityStatus `json:"status" db:"status" example:"open"`
	CreatedBy          *int64            `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt          time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time         `json:"updatedAt" db:"updated_at"`
}

// ApplicationStatus is the review state of an application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationDeclined ApplicationStatus = "declined"
)

// Application is a consultant's application to an opportunity
type Application struct {
	ID            string            `json:"id" db:"id" example:"app_3_9f86d081"`
	OpportunityID int64             `json:"opportunityId" db:"opportunity_id"`
	ConsultantID  int64             `json:"consultantId" db:"consultant_id"`
	Status        ApplicationStatus `json:"status" db:"status" example:"pending"`
	CoverLetter   *string           `json:"coverLetter,omitempty" db:"cover_letter"`
	MatchScore    float64           `json:"matchScore" db:"match_score" example:"66.7"`
	AppliedAt     time.Time         `json:"appliedAt" db:"applied_at"`
	ReviewedAt    *time.Time        `json:"reviewedAt,omitempty" db:"reviewed_at"`
	ReviewedBy    *int64            `json:"reviewedBy,omitempty" db:"reviewed_by"`

	ConsultantName  string `json:"consultantName,omitempty"`
	ConsultantEmail string `json:"consultantEmail,omitempty"`
}

// Assignment places a consultant on an opportunity after acceptance
type Assignment struct {
	ID            int64      `json:"id" db:"id"`
	ConsultantID  int64      `json:"consultantId" db:"consultant_id"`
	OpportunityID int64      `json:"opportunityId" db:"opportunity_id"`
	ApplicationID string     `json:"applicationId" db:"application_id"`
	Status        string     `json:"status" db:"status" example:"active"`
	StartDate     time.Time  `json:"startDate" db:"start_date"`
	EndDate       *time.Time `json:"endDate,omitempty" db:"end_date"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
}

const AssignmentActive = "active"
