package dto

import (
	"github.com/yigit/benchtrack/internal/app/models"
)

// CreateConsultantRequest creates a consultant profile
type CreateConsultantRequest struct {
	Name            string   `json:"name" binding:"required,min=2,max=100" example:"Priya Raman"`
	Email           string   `json:"email" binding:"required,email" example:"priya@bench.example"`
	Phone           string   `json:"phone" binding:"omitempty,max=30" example:"+1 555 0100"`
	Department      string   `json:"department" binding:"omitempty,max=100" example:"Engineering"`
	PrimarySkill    string   `json:"primarySkill" binding:"omitempty,max=100" example:"Go"`
	ExperienceYears int      `json:"experienceYears" binding:"min=0,max=60" example:"4"`
	Status          string   `json:"status" binding:"omitempty,oneof=available active training unavailable" example:"available"`
	Skills          []string `json:"skills" binding:"omitempty,dive,min=1,max=100" example:"Go,PostgreSQL"`
	SoftSkills      []string `json:"softSkills" binding:"omitempty,dive,min=1,max=100" example:"Communication"`
}

// UpdateConsultantRequest updates the provided fields. Skills and
// SoftSkills replace the stored skill set when either is present.
type UpdateConsultantRequest struct {
	Name            *string   `json:"name" binding:"omitempty,min=2,max=100"`
	Email           *string   `json:"email" binding:"omitempty,email"`
	Phone           *string   `json:"phone" binding:"omitempty,max=30"`
	Department      *string   `json:"department" binding:"omitempty,max=100"`
	PrimarySkill    *string   `json:"primarySkill" binding:"omitempty,max=100"`
	ExperienceYears *int      `json:"experienceYears" binding:"omitempty,min=0,max=60"`
	Status          *string   `json:"status" binding:"omitempty,oneof=available active training unavailable"`
	Availability    *string   `json:"availability" binding:"omitempty,oneof=available busy"`
	Skills          *[]string `json:"skills"`
	SoftSkills      *[]string `json:"softSkills"`
}

// ConsultantListResponse is a page of consultants
type ConsultantListResponse struct {
	Consultants []*models.Consultant `json:"consultants"`
	Pagination  PaginationInfo       `json:"pagination"`
}

// CreatedResponse acknowledges a create with the new id
type CreatedResponse struct {
	ID      int64  `json:"id" example:"12"`
	Message string `json:"message" example:"Consultant created successfully"`
}

// WorkflowStep is one step of the consultant onboarding checklist
type WorkflowStep struct {
	ID         string `json:"id" example:"resume"`
	Label      string `json:"label" example:"Resume Updated"`
	Completed  bool   `json:"completed"`
	InProgress bool   `json:"inProgress"`
}

// ConsultantDashboardResponse is the consultant's own dashboard
type ConsultantDashboardResponse struct {
	ConsultantID       int64                `json:"consultantId" example:"4"`
	Name               string               `json:"name"`
	Email              string               `json:"email"`
	Status             string               `json:"status" example:"available"`
	ResumeStatus       string               `json:"resumeStatus" example:"updated"`
	AttendanceRate     float64              `json:"attendanceRate" example:"86.7"`
	OpportunitiesCount int                  `json:"opportunitiesCount" example:"2"`
	TrainingProgress   string               `json:"trainingProgress" example:"in_progress"`
	ActiveAssignments  []*models.Assignment `json:"activeAssignments"`
	WorkflowSteps      []WorkflowStep       `json:"workflowSteps"`
}

// DashboardMetricsResponse is the admin overview
type DashboardMetricsResponse struct {
	TotalConsultants    int64 `json:"totalConsultants" example:"25"`
	BenchConsultants    int64 `json:"benchConsultants" example:"9"`
	ActiveAssignments   int64 `json:"activeAssignments" example:"14"`
	OngoingProjects     int64 `json:"ongoingProjects" example:"14"`
	ReportsGenerated    int64 `json:"reportsGenerated" example:"31"`
	OpenOpportunities   int64 `json:"openOpportunities" example:"6"`
	PendingApplications int64 `json:"pendingApplications" example:"4"`
}
