package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/repositories"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/training"
)

// TrainingService ties the recommendation engine to stored consultants,
// opportunities and enrollments
type TrainingService interface {
	Catalog(category string) training.Listing
	GetDashboard(ctx context.Context, consultantID int64) (*dto.TrainingDashboardResponse, error)
	Recommendations(ctx context.Context, consultantID int64) (*training.Result, error)
	SkillGaps(ctx context.Context, consultantID int64, target []string) (*training.GapAnalysis, error)
	DevelopmentPlan(ctx context.Context, consultantID int64, target []string) (*training.Plan, error)
	Enroll(ctx context.Context, consultantID int64, programID string) (*models.TrainingEnrollment, error)
	ListEnrollments(ctx context.Context, consultantID int64) ([]*models.TrainingEnrollment, error)
	UpdateProgress(ctx context.Context, enrollmentID int64, req *dto.ProgressRequest) (*dto.ProgressResponse, error)
}

type trainingServiceImpl struct {
	consultantRepo  repositories.IConsultantRepository
	opportunityRepo repositories.IOpportunityRepository
	trainingRepo    repositories.ITrainingRepository
	engine          *training.Engine
	notifications   NotificationService
	logger          zerolog.Logger
	now             func() time.Time
}

// NewTrainingService creates a new TrainingService
func NewTrainingService(
	consultantRepo repositories.IConsultantRepository,
	opportunityRepo repositories.IOpportunityRepository,
	trainingRepo repositories.ITrainingRepository,
	engine *training.Engine,
	notifications NotificationService,
	logger zerolog.Logger,
) TrainingService {
	return &trainingServiceImpl{
		consultantRepo:  consultantRepo,
		opportunityRepo: opportunityRepo,
		trainingRepo:    trainingRepo,
		engine:          engine,
		notifications:   notifications,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *trainingServiceImpl) Catalog(category string) training.Listing {
	return s.engine.Catalog().List(category)
}

// GetDashboard gathers everything the training page shows for a consultant
func (s *trainingServiceImpl) GetDashboard(ctx context.Context, consultantID int64) (*dto.TrainingDashboardResponse, error) {
	consultant, err := s.consultantRepo.GetByID(ctx, consultantID)
	if err != nil {
		return nil, err
	}
	open, err := s.openOpportunities(ctx)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.trainingRepo.ListEnrollments(ctx, consultantID)
	if err != nil {
		return nil, err
	}

	current := skillNames(consultant)
	gaps := SkillGapsFor(current, open)
	missing := make([]string, len(gaps))
	for i, g := range gaps {
		missing[i] = g.Skill
	}
	result := s.engine.Recommend(recommendationRequest(consultant, missing))

	return &dto.TrainingDashboardResponse{
		ConsultantID:    consultant.ID,
		CurrentSkills:   current,
		MissingSkills:   gaps,
		Recommendations: result.Recommendations,
		LearningPaths:   result.LearningPaths,
		Enrollments:     enrollments,
		Metrics:         TrainingMetricsFor(enrollments, len(missing), len(open)),
	}, nil
}

func (s *trainingServiceImpl) Recommendations(ctx context.Context, consultantID int64) (*training.Result, error) {
	consultant, err := s.consultantRepo.GetByID(ctx, consultantID)
	if err != nil {
		return nil, err
	}
	missing, err := s.missingForOpenOpportunities(ctx, consultant)
	if err != nil {
		return nil, err
	}
	result := s.engine.Recommend(recommendationRequest(consultant, missing))
	return &result, nil
}

// SkillGaps compares the consultant with target, or with the skills open
// opportunities require when no target is given
func (s *trainingServiceImpl) SkillGaps(ctx context.Context, consultantID int64, target []string) (*training.GapAnalysis, error) {
	consultant, err := s.consultantRepo.GetByID(ctx, consultantID)
	if err != nil {
		return nil, err
	}
	target, err = s.resolveTarget(ctx, target)
	if err != nil {
		return nil, err
	}
	gaps := s.engine.AnalyzeGaps(skillNames(consultant), target)
	return &gaps, nil
}

func (s *trainingServiceImpl) DevelopmentPlan(ctx context.Context, consultantID int64, target []string) (*training.Plan, error) {
	consultant, err := s.consultantRepo.GetByID(ctx, consultantID)
	if err != nil {
		return nil, err
	}
	target, err = s.resolveTarget(ctx, target)
	if err != nil {
		return nil, err
	}
	req := recommendationRequest(consultant, nil)
	req.TargetSkills = target
	plan := s.engine.DevelopmentPlan(req)
	return &plan, nil
}

// Enroll starts a catalog program. A consultant holds at most one active
// enrollment per program.
func (s *trainingServiceImpl) Enroll(ctx context.Context, consultantID int64, programID string) (*models.TrainingEnrollment, error) {
	program, ok := s.engine.Catalog().Get(strings.TrimSpace(programID))
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTrainingProgramNotFound, programID)
	}
	if _, err := s.consultantRepo.GetByID(ctx, consultantID); err != nil {
		return nil, err
	}

	enrollment := &models.TrainingEnrollment{
		ConsultantID: consultantID,
		ProgramID:    program.ID,
		ProgramName:  program.Title,
		Category:     program.Category,
		Status:       models.EnrollmentEnrolled,
	}
	if err := s.trainingRepo.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("consultantID", consultantID).Str("programID", program.ID).Msg("Consultant enrolled in training")
	return enrollment, nil
}

func (s *trainingServiceImpl) ListEnrollments(ctx context.Context, consultantID int64) ([]*models.TrainingEnrollment, error) {
	if _, err := s.consultantRepo.GetByID(ctx, consultantID); err != nil {
		return nil, err
	}
	return s.trainingRepo.ListEnrollments(ctx, consultantID)
}

// UpdateProgress records progress, derives the enrollment status and rolls
// the result up into the consultant's training status
func (s *trainingServiceImpl) UpdateProgress(ctx context.Context, enrollmentID int64, req *dto.ProgressRequest) (*dto.ProgressResponse, error) {
	if req.Progress == nil || *req.Progress < 0 || *req.Progress > 100 {
		return nil, fmt.Errorf("%w: progress must be between 0 and 100", apperrors.ErrValidationFailed)
	}

	enrollment, err := s.trainingRepo.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status == models.EnrollmentDropped {
		return nil, apperrors.NewConflictError("enrollment was dropped")
	}
	wasCompleted := enrollment.Status == models.EnrollmentCompleted

	now := s.now()
	enrollment.Progress = *req.Progress
	if req.HoursSpent != nil {
		enrollment.HoursSpent = *req.HoursSpent
	}
	enrollment.Status = models.EnrollmentStatusForProgress(enrollment.Progress)
	if enrollment.Status != models.EnrollmentEnrolled && enrollment.StartedAt == nil {
		enrollment.StartedAt = &now
	}
	if enrollment.Status == models.EnrollmentCompleted {
		if enrollment.CompletedAt == nil {
			enrollment.CompletedAt = &now
		}
	} else {
		enrollment.CompletedAt = nil
	}

	if err := s.trainingRepo.UpdateProgress(ctx, enrollment); err != nil {
		return nil, err
	}

	totalHours := 0
	if program, ok := s.engine.Catalog().Get(enrollment.ProgramID); ok {
		totalHours = program.DurationHours
	}
	progress := s.engine.TrackProgress(training.ProgressUpdate{
		EnrollmentID:       enrollment.ID,
		ProgressPercentage: enrollment.Progress,
		Milestone:          req.Milestone,
		TimeSpentHours:     enrollment.HoursSpent,
		TotalDurationHours: totalHours,
	})

	if err := s.rollUpStatus(ctx, enrollment.ConsultantID); err != nil {
		s.logger.Warn().Err(err).Int64("consultantID", enrollment.ConsultantID).Msg("Could not refresh training status")
	}

	if enrollment.Status == models.EnrollmentCompleted && !wasCompleted {
		cid := enrollment.ConsultantID
		if _, err := s.notifications.Notify(ctx, models.NotificationTrainingComplete, "Training completed",
			fmt.Sprintf("Consultant %d completed %s", cid, enrollment.ProgramName), &cid); err != nil {
			s.logger.Warn().Err(err).Int64("enrollmentID", enrollment.ID).Msg("Could not record training notification")
		}
	}

	return &dto.ProgressResponse{Enrollment: enrollment, Progress: progress}, nil
}

func (s *trainingServiceImpl) rollUpStatus(ctx context.Context, consultantID int64) error {
	enrollments, err := s.trainingRepo.ListEnrollments(ctx, consultantID)
	if err != nil {
		return err
	}
	return s.consultantRepo.UpdateTrainingStatus(ctx, consultantID, TrainingStatusFor(enrollments))
}

// TrainingStatusFor summarizes enrollments: all programs completed means
// completed, any started or completed program otherwise means in_progress.
// Dropped enrollments are ignored.
func TrainingStatusFor(enrollments []*models.TrainingEnrollment) string {
	active, completed := 0, 0
	for _, e := range enrollments {
		switch e.Status {
		case models.EnrollmentDropped:
			continue
		case models.EnrollmentInProgress:
			return models.TrainingStatusInProgress
		case models.EnrollmentCompleted:
			completed++
		}
		active++
	}
	switch {
	case active > 0 && completed == active:
		return models.TrainingStatusCompleted
	case completed > 0:
		return models.TrainingStatusInProgress
	}
	return models.TrainingStatusNotStarted
}

// SkillGapsFor lists the skills open opportunities require that the
// consultant lacks, with the titles requiring each one
func SkillGapsFor(current []string, open []*models.Opportunity) []dto.SkillGap {
	requirements := make([][]string, len(open))
	for i, o := range open {
		requirements[i] = o.RequiredSkills
	}
	missing := training.MissingAcross(current, requirements...)

	gaps := make([]dto.SkillGap, 0, len(missing))
	for _, skill := range missing {
		gap := dto.SkillGap{Skill: skill, Opportunities: []string{}}
		for _, o := range open {
			for _, req := range o.RequiredSkills {
				if strings.EqualFold(strings.TrimSpace(req), skill) {
					gap.Opportunities = append(gap.Opportunities, o.Title)
					break
				}
			}
		}
		gap.Priority = gapPriority(len(gap.Opportunities))
		gaps = append(gaps, gap)
	}
	return gaps
}

func gapPriority(demand int) string {
	switch {
	case demand >= 3:
		return string(training.PriorityHigh)
	case demand == 2:
		return string(training.PriorityMedium)
	default:
		return string(training.PriorityLow)
	}
}

// TrainingMetricsFor aggregates enrollment progress
func TrainingMetricsFor(enrollments []*models.TrainingEnrollment, skillsToDevelop, openOpportunities int) dto.TrainingMetrics {
	m := dto.TrainingMetrics{SkillsToDevelop: skillsToDevelop, OpenOpportunities: openOpportunities}
	var total float64
	counted := 0
	for _, e := range enrollments {
		if e.Status == models.EnrollmentDropped {
			continue
		}
		counted++
		total += e.Progress
		m.HoursSpent += e.HoursSpent
		switch e.Status {
		case models.EnrollmentCompleted:
			m.CompletedTraining++
		default:
			m.ActiveTrainings++
		}
	}
	if counted > 0 {
		m.AverageProgress = math.Round(total/float64(counted)*10) / 10
	}
	return m
}

func (s *trainingServiceImpl) openOpportunities(ctx context.Context) ([]*models.Opportunity, error) {
	status := models.OpportunityOpen
	return s.opportunityRepo.List(ctx, &status)
}

func (s *trainingServiceImpl) missingForOpenOpportunities(ctx context.Context, c *models.Consultant) ([]string, error) {
	open, err := s.openOpportunities(ctx)
	if err != nil {
		return nil, err
	}
	requirements := make([][]string, len(open))
	for i, o := range open {
		requirements[i] = o.RequiredSkills
	}
	return training.MissingAcross(skillNames(c), requirements...), nil
}

func (s *trainingServiceImpl) resolveTarget(ctx context.Context, target []string) ([]string, error) {
	target = CleanSkills(target)
	if len(target) > 0 {
		return target, nil
	}
	open, err := s.openOpportunities(ctx)
	if err != nil {
		return nil, err
	}
	requirements := make([][]string, len(open))
	for i, o := range open {
		requirements[i] = o.RequiredSkills
	}
	return training.MissingAcross(nil, requirements...), nil
}

func recommendationRequest(c *models.Consultant, missing []string) training.Request {
	return training.Request{
		ConsultantID:    c.ID,
		Name:            c.Name,
		Skills:          skillNames(c),
		MissingSkills:   missing,
		ExperienceLevel: training.ExperienceLevelForYears(c.ExperienceYears),
		ExperienceYears: c.ExperienceYears,
	}
}
