package dto

import (
	"time"

	"github.com/yigit/benchtrack/internal/app/models"
)

// CreateOpportunityRequest creates an opportunity
type CreateOpportunityRequest struct {
	Title              string     `json:"title" binding:"required,min=3,max=200" example:"Payments platform migration"`
	Description        string     `json:"description" binding:"omitempty,max=5000"`
	Client             string     `json:"client" binding:"omitempty,max=200" example:"Acme Bank"`
	RequiredSkills     []string   `json:"requiredSkills" binding:"omitempty,dive,min=1,max=100" example:"Go,Kubernetes"`
	ExperienceRequired int        `json:"experienceRequired" binding:"min=0,max=60" example:"3"`
	ExperienceLevel    string     `json:"experienceLevel" binding:"omitempty,oneof=junior intermediate senior" example:"intermediate"`
	Location           string     `json:"location" binding:"omitempty,max=200" example:"Remote"`
	Duration           string     `json:"duration" binding:"omitempty,max=100" example:"6 months"`
	Budget             *float64   `json:"budget" binding:"omitempty,min=0"`
	Positions          int        `json:"positions" binding:"omitempty,min=1,max=100" example:"2"`
	StartDate          *time.Time `json:"startDate"`
	EndDate            *time.Time `json:"endDate"`
	Status             string     `json:"status" binding:"omitempty,oneof=open filled cancelled" example:"open"`
}

// UpdateOpportunityRequest updates the provided fields
type UpdateOpportunityRequest struct {
	Title              *string    `json:"title" binding:"omitempty,min=3,max=200"`
	Description        *string    `json:"description" binding:"omitempty,max=5000"`
	Client             *string    `json:"client" binding:"omitempty,max=200"`
	RequiredSkills     *[]string  `json:"requiredSkills"`
	ExperienceRequired *int       `json:"experienceRequired" binding:"omitempty,min=0,max=60"`
	ExperienceLevel    *string    `json:"experienceLevel" binding:"omitempty,oneof=junior intermediate senior"`
	Location           *string    `json:"location" binding:"omitempty,max=200"`
	Duration           *string    `json:"duration" binding:"omitempty,max=100"`
	Budget             *float64   `json:"budget" binding:"omitempty,min=0"`
	Positions          *int       `json:"positions" binding:"omitempty,min=1,max=100"`
	StartDate          *time.Time `json:"startDate"`
	EndDate            *time.Time `json:"endDate"`
	Status             *string    `json:"status" binding:"omitempty,oneof=open filled cancelled"`
}

// ApplyRequest submits an application. Consultants may omit ConsultantID
// and apply as themselves.
type ApplyRequest struct {
	ConsultantID int64  `json:"consultantId" binding:"omitempty,min=1" example:"4"`
	CoverLetter  string `json:"coverLetter" binding:"omitempty,max=5000"`
}

// OpportunityWithApplications is an opportunity with its applicants
type OpportunityWithApplications struct {
	*models.Opportunity
	Applications  []*models.Application `json:"applications"`
	AcceptedCount int                   `json:"acceptedCount" example:"1"`
}

// DecisionResponse is returned after accepting or declining
type DecisionResponse struct {
	Application *models.Application `json:"application"`
	Assignment  *models.Assignment  `json:"assignment,omitempty"`
	Message     string              `json:"message" example:"Application accepted successfully"`
}

// ConsultantMatch ranks one consultant against an opportunity
type ConsultantMatch struct {
	ConsultantID    int64    `json:"consultantId" example:"4"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Status          string   `json:"status" example:"available"`
	ExperienceYears int      `json:"experienceYears"`
	MatchScore      float64  `json:"matchScore" example:"66.7"`
	MatchingSkills  []string `json:"matchingSkills"`
	MissingSkills   []string `json:"missingSkills"`
}

// MatchResponse lists ranked consultants for an opportunity
type MatchResponse struct {
	OpportunityID  int64             `json:"opportunityId"`
	Title          string            `json:"title"`
	RequiredSkills []string          `json:"requiredSkills"`
	Matches        []ConsultantMatch `json:"matches"`
}
