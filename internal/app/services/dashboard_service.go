package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/repositories"
)

const healthCheckTimeout = 3 * time.Second

// BreakerState reports the state of a circuit breaker
type BreakerState interface {
	State() string
}

// DashboardService serves the admin overview and the health probe
type DashboardService interface {
	GetMetrics(ctx context.Context) (*dto.DashboardMetricsResponse, error)
	Health(ctx context.Context) (*dto.HealthResponse, bool)
}

type dashboardServiceImpl struct {
	dashboardRepo  repositories.IDashboardRepository
	consultantRepo repositories.IConsultantRepository
	extractor      BreakerState
	logger         zerolog.Logger
}

// NewDashboardService creates a new DashboardService. extractor may be nil.
func NewDashboardService(
	dashboardRepo repositories.IDashboardRepository,
	consultantRepo repositories.IConsultantRepository,
	extractor BreakerState,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardServiceImpl{
		dashboardRepo:  dashboardRepo,
		consultantRepo: consultantRepo,
		extractor:      extractor,
		logger:         logger,
	}
}

func (s *dashboardServiceImpl) GetMetrics(ctx context.Context) (*dto.DashboardMetricsResponse, error) {
	c, err := s.dashboardRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardMetricsResponse{
		TotalConsultants:    c.TotalConsultants,
		BenchConsultants:    c.BenchConsultants,
		ActiveAssignments:   c.ActiveAssignments,
		OngoingProjects:     c.ActiveAssignments,
		ReportsGenerated:    c.ResumeAnalyses,
		OpenOpportunities:   c.OpenOpportunities,
		PendingApplications: c.PendingApplications,
	}, nil
}

// Health pings the database and counts consultants. The bool is false when
// the service is unhealthy.
func (s *dashboardServiceImpl) Health(ctx context.Context) (*dto.HealthResponse, bool) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	resp := &dto.HealthResponse{Status: "healthy", Database: "connected", Timestamp: time.Now()}
	if s.extractor != nil {
		resp.ResumeExtractor = s.extractor.State()
	}

	if err := s.dashboardRepo.Ping(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Health check database ping failed")
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		return resp, false
	}

	count, err := s.consultantRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Health check consultant count failed")
		resp.Status = "unhealthy"
		resp.Database = "error"
		return resp, false
	}
	resp.ConsultantCount = count
	return resp, true
}
