package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/repositories"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/helpers"
)

const goodAttendanceRate = 80.0

// ConsultantService manages consultant profiles and their dashboard
type ConsultantService interface {
	CreateConsultant(ctx context.Context, req *dto.CreateConsultantRequest) (*models.Consultant, error)
	GetConsultant(ctx context.Context, id int64) (*models.Consultant, error)
	ListConsultants(ctx context.Context, filter models.ConsultantFilter) (*dto.ConsultantListResponse, error)
	UpdateConsultant(ctx context.Context, id int64, req *dto.UpdateConsultantRequest) (*models.Consultant, error)
	DeleteConsultant(ctx context.Context, id int64) error
	GetDashboard(ctx context.Context, id int64) (*dto.ConsultantDashboardResponse, error)
	GetDashboardByEmail(ctx context.Context, email string) (*dto.ConsultantDashboardResponse, error)
}

type consultantServiceImpl struct {
	consultantRepo  repositories.IConsultantRepository
	applicationRepo repositories.IApplicationRepository
	logger          zerolog.Logger
}

// NewConsultantService creates a new ConsultantService
func NewConsultantService(
	consultantRepo repositories.IConsultantRepository,
	applicationRepo repositories.IApplicationRepository,
	logger zerolog.Logger,
) ConsultantService {
	return &consultantServiceImpl{
		consultantRepo:  consultantRepo,
		applicationRepo: applicationRepo,
		logger:          logger,
	}
}

// NewBenchConsultant returns a consultant with the defaults of a fresh bench
// profile
func NewBenchConsultant(name, emailAddr string) *models.Consultant {
	now := time.Now()
	return &models.Consultant{
		Name:           name,
		Email:          emailAddr,
		Status:         models.ConsultantAvailable,
		Availability:   models.AvailabilityAvailable,
		ResumeStatus:   models.ResumeStatusPending,
		TrainingStatus: models.TrainingStatusNotStarted,
		BenchStartDate: &now,
		Skills:         []models.ConsultantSkill{},
	}
}

// BuildManualSkills turns skill names into manual skill rows, skipping blanks
// and case-insensitive duplicates
func BuildManualSkills(technical, soft []string) []models.ConsultantSkill {
	seen := make(map[string]bool)
	skills := []models.ConsultantSkill{}
	add := func(names []string, category models.SkillCategory) {
		for _, name := range names {
			name = strings.TrimSpace(name)
			key := strings.ToLower(name)
			if name == "" || seen[key] {
				continue
			}
			seen[key] = true
			skills = append(skills, models.ConsultantSkill{
				SkillName:   name,
				Category:    category,
				Proficiency: models.DefaultProficiency,
				Source:      models.SkillSourceManual,
			})
		}
	}
	add(technical, models.SkillTechnical)
	add(soft, models.SkillSoft)
	return skills
}

// CreateConsultant creates a consultant profile with its manual skills
func (s *consultantServiceImpl) CreateConsultant(ctx context.Context, req *dto.CreateConsultantRequest) (*models.Consultant, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	c := NewBenchConsultant(name, strings.ToLower(strings.TrimSpace(req.Email)))
	c.Phone = helpers.NilIfEmpty(req.Phone)
	c.Department = helpers.NilIfEmpty(req.Department)
	c.PrimarySkill = helpers.NilIfEmpty(req.PrimarySkill)
	c.ExperienceYears = req.ExperienceYears
	if req.Status != "" {
		status := models.ConsultantStatus(req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, req.Status)
		}
		c.Status = status
	}
	c.Skills = BuildManualSkills(req.Skills, req.SoftSkills)
	markPrimary(c.Skills, c.PrimarySkill)

	if err := s.consultantRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("consultantID", c.ID).Str("email", c.Email).Msg("Consultant created")
	return c, nil
}

func markPrimary(skills []models.ConsultantSkill, primary *string) {
	if primary == nil {
		return
	}
	for i := range skills {
		if strings.EqualFold(skills[i].SkillName, *primary) {
			skills[i].IsPrimary = true
		}
	}
}

// GetConsultant returns a consultant with its skills
func (s *consultantServiceImpl) GetConsultant(ctx context.Context, id int64) (*models.Consultant, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: consultant ID must be positive", apperrors.ErrValidationFailed)
	}
	return s.consultantRepo.GetByID(ctx, id)
}

// ListConsultants returns a filtered page of consultants
func (s *consultantServiceImpl) ListConsultants(ctx context.Context, filter models.ConsultantFilter) (*dto.ConsultantListResponse, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, *filter.Status)
	}

	consultants, total, err := s.consultantRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultants: %w", err)
	}
	return &dto.ConsultantListResponse{
		Consultants: consultants,
		Pagination:  helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// UpdateConsultant applies the provided fields. When skills or soft skills
// are given the manual skill set is rebuilt; the side that was not given is
// carried over from the stored profile.
func (s *consultantServiceImpl) UpdateConsultant(ctx context.Context, id int64, req *dto.UpdateConsultantRequest) (*models.Consultant, error) {
	c, err := s.consultantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		c.Phone = helpers.NilIfEmpty(*req.Phone)
	}
	if req.Department != nil {
		c.Department = helpers.NilIfEmpty(*req.Department)
	}
	if req.PrimarySkill != nil {
		c.PrimarySkill = helpers.NilIfEmpty(*req.PrimarySkill)
	}
	if req.ExperienceYears != nil {
		c.ExperienceYears = *req.ExperienceYears
	}
	if req.Status != nil {
		status := models.ConsultantStatus(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, *req.Status)
		}
		c.Status = status
	}
	if req.Availability != nil {
		c.Availability = *req.Availability
	}

	var manual []models.ConsultantSkill
	if req.Skills != nil || req.SoftSkills != nil {
		technical := manualSkillNames(c.Skills, models.SkillTechnical)
		soft := manualSkillNames(c.Skills, models.SkillSoft)
		if req.Skills != nil {
			technical = *req.Skills
		}
		if req.SoftSkills != nil {
			soft = *req.SoftSkills
		}
		manual = BuildManualSkills(technical, soft)
		markPrimary(manual, c.PrimarySkill)
	}

	if err := s.consultantRepo.Update(ctx, c, manual); err != nil {
		return nil, err
	}
	return s.consultantRepo.GetByID(ctx, id)
}

func manualSkillNames(skills []models.ConsultantSkill, category models.SkillCategory) []string {
	names := []string{}
	for _, sk := range skills {
		if sk.Category == category && sk.Source == models.SkillSourceManual {
			names = append(names, sk.SkillName)
		}
	}
	return names
}

// DeleteConsultant removes a consultant profile
func (s *consultantServiceImpl) DeleteConsultant(ctx context.Context, id int64) error {
	if err := s.consultantRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("consultantID", id).Msg("Consultant deleted")
	return nil
}

// GetDashboard builds the consultant's own dashboard
func (s *consultantServiceImpl) GetDashboard(ctx context.Context, id int64) (*dto.ConsultantDashboardResponse, error) {
	c, err := s.consultantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.dashboard(ctx, c)
}

// GetDashboardByEmail builds the dashboard of the consultant with email
func (s *consultantServiceImpl) GetDashboardByEmail(ctx context.Context, emailAddr string) (*dto.ConsultantDashboardResponse, error) {
	emailAddr = strings.TrimSpace(emailAddr)
	if emailAddr == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}
	c, err := s.consultantRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	return s.dashboard(ctx, c)
}

func (s *consultantServiceImpl) dashboard(ctx context.Context, c *models.Consultant) (*dto.ConsultantDashboardResponse, error) {
	assignments, err := s.applicationRepo.ListActiveAssignments(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	return &dto.ConsultantDashboardResponse{
		ConsultantID:       c.ID,
		Name:               c.Name,
		Email:              c.Email,
		Status:             string(c.Status),
		ResumeStatus:       c.ResumeStatus,
		AttendanceRate:     c.AttendanceRate,
		OpportunitiesCount: c.OpportunitiesCount,
		TrainingProgress:   c.TrainingStatus,
		ActiveAssignments:  assignments,
		WorkflowSteps:      WorkflowSteps(c),
	}, nil
}

// WorkflowSteps derives the four onboarding steps from the profile
func WorkflowSteps(c *models.Consultant) []dto.WorkflowStep {
	return []dto.WorkflowStep{
		{ID: "resume", Label: "Resume Updated", Completed: c.ResumeStatus == models.ResumeStatusUpdated},
		{ID: "attendance", Label: "Attendance Reported", Completed: c.AttendanceRate > goodAttendanceRate},
		{ID: "opportunities", Label: "Opportunities Applied", Completed: c.OpportunitiesCount > 0},
		{
			ID:         "training",
			Label:      "Training Completed",
			Completed:  c.TrainingStatus == models.TrainingStatusCompleted,
			InProgress: c.TrainingStatus == models.TrainingStatusInProgress,
		},
	}
}
