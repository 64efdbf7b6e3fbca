package models

import "time"

// ResumeAnalysis is the stored outcome of analyzing an uploaded resume
type ResumeAnalysis struct {
	ID             int64     `json:"id" db:"id"`
	ConsultantID   int64     `json:"consultantId" db:"consultant_id"`
	FileName       string    `json:"fileName" db:"file_name"`
	FilePath       string    `json:"filePath" db:"file_path"`
	Skills         []string  `json:"skills" db:"skills"`
	SoftSkills     []string  `json:"softSkills" db:"soft_skills"`
	Roles          []string  `json:"roles" db:"roles"`
	Summary        string    `json:"summary" db:"summary"`
	Feedback       string    `json:"feedback" db:"feedback"`
	Suggestions    []string  `json:"suggestions" db:"suggestions"`
	Confidence     float64   `json:"confidence" db:"confidence"`
	Mode           string    `json:"mode" db:"mode" example:"keyword"`
	ExtractedChars int       `json:"extractedChars" db:"extracted_chars"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
