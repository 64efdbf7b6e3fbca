package dto

import (
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/pkg/training"
)

// EnrollRequest enrolls a consultant in a catalog program
type EnrollRequest struct {
	ProgramID string `json:"programId" binding:"required" example:"kubernetes_fundamentals"`
}

// ProgressRequest reports progress on an enrollment
type ProgressRequest struct {
	Progress   *float64 `json:"progress" binding:"required,min=0,max=100" example:"40"`
	HoursSpent *float64 `json:"hoursSpent" binding:"omitempty,min=0" example:"12"`
	Milestone  string   `json:"milestone" binding:"omitempty,max=200"`
}

// ProgressResponse is the updated enrollment plus its interpretation
type ProgressResponse struct {
	Enrollment *models.TrainingEnrollment `json:"enrollment"`
	Progress   training.Progress          `json:"progress"`
}

// SkillGap is one skill missing for open opportunities
type SkillGap struct {
	Skill         string   `json:"skill" example:"Kubernetes"`
	Opportunities []string `json:"opportunities"`
	Priority      string   `json:"priority" example:"High"`
}

// TrainingMetrics summarizes a consultant's training
type TrainingMetrics struct {
	SkillsToDevelop   int     `json:"skillsToDevelop"`
	ActiveTrainings   int     `json:"activeTrainings"`
	CompletedTraining int     `json:"completedTrainings"`
	AverageProgress   float64 `json:"averageProgress"`
	HoursSpent        float64 `json:"hoursSpent"`
	OpenOpportunities int     `json:"openOpportunities"`
}

// TrainingDashboardResponse is the consultant training overview
type TrainingDashboardResponse struct {
	ConsultantID    int64                        `json:"consultantId"`
	CurrentSkills   []string                     `json:"currentSkills"`
	MissingSkills   []SkillGap                   `json:"missingSkills"`
	Recommendations []training.Recommendation    `json:"recommendations"`
	LearningPaths   []training.LearningPath      `json:"learningPaths"`
	Enrollments     []*models.TrainingEnrollment `json:"enrollments"`
	Metrics         TrainingMetrics              `json:"metrics"`
}
