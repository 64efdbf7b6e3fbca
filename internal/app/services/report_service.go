package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/repositories"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/metrics"
	"github.com/yigit/benchtrack/internal/pkg/reports"
)

// ReportService builds consultant reports from stored data
type ReportService interface {
	GenerateReport(ctx context.Context, consultantID int64, reportType string) (*reports.Report, error)
}

type reportServiceImpl struct {
	consultantRepo  repositories.IConsultantRepository
	opportunityRepo repositories.IOpportunityRepository
	applicationRepo repositories.IApplicationRepository
	attendanceRepo  repositories.IAttendanceRepository
	resumeRepo      repositories.IResumeRepository
	logger          zerolog.Logger
	now             func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	consultantRepo repositories.IConsultantRepository,
	opportunityRepo repositories.IOpportunityRepository,
	applicationRepo repositories.IApplicationRepository,
	attendanceRepo repositories.IAttendanceRepository,
	resumeRepo repositories.IResumeRepository,
	logger zerolog.Logger,
) ReportService {
	return &reportServiceImpl{
		consultantRepo:  consultantRepo,
		opportunityRepo: opportunityRepo,
		applicationRepo: applicationRepo,
		attendanceRepo:  attendanceRepo,
		resumeRepo:      resumeRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// GenerateReport loads the consultant's history and computes the sections
// selected by reportType. An empty type means comprehensive.
func (s *reportServiceImpl) GenerateReport(ctx context.Context, consultantID int64, reportType string) (*reports.Report, error) {
	t, ok := reports.ParseType(reportType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown report type %q", apperrors.ErrValidationFailed, reportType)
	}

	consultant, err := s.consultantRepo.GetByID(ctx, consultantID)
	if err != nil {
		return nil, err
	}

	opportunities, err := s.opportunityRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.Opportunity, len(opportunities))
	open := make([]models.Opportunity, 0, len(opportunities))
	for _, o := range opportunities {
		byID[o.ID] = o
		if o.Status == models.OpportunityOpen {
			open = append(open, *o)
		}
	}

	apps, err := s.applicationRepo.ListByConsultant(ctx, consultantID)
	if err != nil {
		return nil, err
	}
	applied := make([]reports.AppliedOpportunity, 0, len(apps))
	for _, a := range apps {
		applied = append(applied, reports.AppliedOpportunity{Application: *a, Opportunity: byID[a.OpportunityID]})
	}

	var attendance []models.AttendanceRecord
	if consultant.UserID != nil {
		attendance, err = s.attendanceRepo.List(ctx, models.AttendanceFilter{UserID: consultant.UserID})
		if err != nil {
			return nil, err
		}
	}

	analysis, err := s.resumeRepo.GetLatest(ctx, consultantID)
	if err != nil && !errors.Is(err, apperrors.ErrResumeNotAnalyzed) {
		return nil, err
	}

	report := reports.Generate(t, reports.Input{
		Consultant:        *consultant,
		Applications:      applied,
		Attendance:        attendance,
		Resume:            analysis,
		OpenOpportunities: open,
		Now:               s.now(),
	})
	metrics.RecordReport(string(t))

	s.logger.Info().Int64("consultantID", consultantID).Str("type", string(t)).Msg("Consultant report generated")
	return report, nil
}
