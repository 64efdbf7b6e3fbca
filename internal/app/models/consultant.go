package models

import "time"

// Consultant is a person profile tracked on the bench
type Consultant struct {
	ID                 int64            `json:"id" db:"id" example:"1"`
	UserID             *int64           `json:"userId,omitempty" db:"user_id"`
	Name               string           `json:"name" db:"name" example:"Priya Raman"`
	Email              string           `json:"email" db:"email" example:"priya@bench.example"`
	Phone              *string          `json:"phone,omitempty" db:"phone"`
	Department         *string          `json:"department,omitempty" db:"department"`
	PrimarySkill       *string          `json:"primarySkill,omitempty" db:"primary_skill" example:"Go"`
	ExperienceYears    int              `json:"experienceYears" db:"experience_years" example:"4"`
	Status             ConsultantStatus `json:"status" db:"status" example:"available"`
	Availability       string           `json:"availability" db:"availability" example:"available"`
	ResumeStatus       string           `json:"resumeStatus" db:"resume_status" example:"pending"`
	ResumePath         *string          `json:"resumePath,omitempty" db:"resume_path"`
	AISummary          *string          `json:"aiSummary,omitempty" db:"ai_summary"`
	AttendanceRate     float64          `json:"attendanceRate" db:"attendance_rate" example:"92.5"`
	TrainingStatus     string           `json:"trainingStatus" db:"training_status" example:"not_started"`
	OpportunitiesCount int              `json:"opportunitiesCount" db:"opportunities_count" example:"2"`
	BenchStartDate     *time.Time       `json:"benchStartDate,omitempty" db:"bench_start_date"`
	CreatedAt          time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time        `json:"updatedAt" db:"updated_at"`

	Skills []ConsultantSkill `json:"skills,omitempty"`
}

// TechnicalSkillNames returns the names of technical skills in stored order
func (c *Consultant) TechnicalSkillNames() []string {
	return c.skillNames(SkillTechnical)
}

// SoftSkillNames returns the names of soft skills in stored order
func (c *Consultant) SoftSkillNames() []string {
	return c.skillNames(SkillSoft)
}

func (c *Consultant) skillNames(category SkillCategory) []string {
	names := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		if s.Category == category {
			names = append(names, s.SkillName)
		}
	}
	return names
}

// ConsultantSkill is one skill held by a consultant
type ConsultantSkill struct {
	ID              int64         `json:"id" db:"id"`
	ConsultantID    int64         `json:"consultantId" db:"consultant_id"`
	SkillName       string        `json:"skillName" db:"skill_name" example:"Kubernetes"`
	Category        SkillCategory `json:"category" db:"category" example:"technical"`
	Proficiency     string        `json:"proficiency" db:"proficiency" example:"intermediate"`
	YearsExperience *float64      `json:"yearsExperience,omitempty" db:"years_experience"`
	IsPrimary       bool          `json:"isPrimary" db:"is_primary"`
	Source          string        `json:"source" db:"source" example:"manual"`
	Confidence      *float64      `json:"confidence,omitempty" db:"confidence"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
}

// ConsultantFilter narrows consultant listings
type ConsultantFilter struct {
	Status       *ConsultantStatus
	PrimarySkill *string
	Search       *string
	Page         int
	PageSize     int
}
