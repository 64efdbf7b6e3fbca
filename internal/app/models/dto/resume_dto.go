package dto

import (
	"time"

	"github.com/yigit/benchtrack/internal/pkg/resume"
)

// ResumeUploadResponse is returned after a resume upload
type ResumeUploadResponse struct {
	ConsultantID int64           `json:"consultantId" example:"4"`
	FileName     string          `json:"fileName" example:"priya_cv.pdf"`
	FileURL      string          `json:"fileUrl" example:"/uploads/resumes/4_0b9e.pdf"`
	Message      string          `json:"message" example:"Resume uploaded and analyzed successfully"`
	Analysis     resume.Analysis `json:"analysis"`
}

// ResumeAnalysisResponse is the stored analysis of the latest resume
type ResumeAnalysisResponse struct {
	ConsultantID int64     `json:"consultantId" example:"4"`
	FileName     string    `json:"fileName"`
	Skills       []string  `json:"skills"`
	Competencies []string  `json:"competencies"`
	Roles        []string  `json:"roles"`
	Summary      string    `json:"aiSummary"`
	Feedback     string    `json:"aiFeedback"`
	Suggestions  []string  `json:"aiSuggestions"`
	Confidence   float64   `json:"confidenceScore" example:"0.85"`
	Mode         string    `json:"mode" example:"keyword"`
	AnalyzedAt   time.Time `json:"analyzedAt"`
}
