package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/pkg/logger"
)

// DashboardCounts are the raw numbers behind the admin dashboard
type DashboardCounts struct {
	TotalConsultants    int64
	BenchConsultants    int64
	ActiveAssignments   int64
	ResumeAnalyses      int64
	OpenOpportunities   int64
	PendingApplications int64
}

// IDashboardRepository reads aggregate counts
type IDashboardRepository interface {
	Counts(ctx context.Context) (*DashboardCounts, error)
	Ping(ctx context.Context) error
}

// DashboardRepository runs the aggregate queries of the admin dashboard
type DashboardRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{
		db: pool,
		sb: newStatementBuilder(),
	}
}

// Counts gathers every dashboard count in a single round trip
func (r *DashboardRepository) Counts(ctx context.Context) (*DashboardCounts, error) {
	sql, args, err := r.sb.Select().
		Column("(SELECT COUNT(*) FROM consultants) AS total_consultants").
		Column(squirrel.Expr("(SELECT COUNT(*) FROM consultants WHERE status = ?) AS bench_consultants",
			models.ConsultantAvailable)).
		Column(squirrel.Expr("(SELECT COUNT(*) FROM consultant_assignments WHERE status = ?) AS active_assignments",
			models.AssignmentActive)).
		Column("(SELECT COUNT(*) FROM resume_analyses) AS resume_analyses").
		Column(squirrel.Expr("(SELECT COUNT(*) FROM opportunities WHERE status = ?) AS open_opportunities",
			models.OpportunityOpen)).
		Column(squirrel.Expr("(SELECT COUNT(*) FROM opportunity_applications WHERE status = ?) AS pending_applications",
			models.ApplicationPending)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building dashboard counts SQL")
		return nil, fmt.Errorf("failed to build dashboard counts query: %w", err)
	}

	var c DashboardCounts
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&c.TotalConsultants, &c.BenchConsultants, &c.ActiveAssignments,
		&c.ResumeAnalyses, &c.OpenOpportunities, &c.PendingApplications,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing dashboard counts query")
		return nil, fmt.Errorf("error loading dashboard counts: %w", err)
	}
	return &c, nil
}

// Ping checks database connectivity
func (r *DashboardRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
