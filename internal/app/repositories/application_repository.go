package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/db"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/dberrors"
	"github.com/yigit/benchtrack/internal/pkg/logger"
)

// IApplicationRepository defines application and assignment persistence
type IApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	ListByOpportunities(ctx context.Context, opportunityIDs []int64) (map[int64][]*models.Application, error)
	ListByConsultant(ctx context.Context, consultantID int64) ([]*models.Application, error)
	Accept(ctx context.Context, id string, reviewerID int64) (*models.Application, *models.Assignment, error)
	Decline(ctx context.Context, id string, reviewerID int64) (*models.Application, error)
	ListActiveAssignments(ctx context.Context, consultantID int64) ([]*models.Assignment, error)
}

var applicationColumns = []string{
	"a.id", "a.opportunity_id", "a.consultant_id", "a.status", "a.cover_letter", "a.match_score",
	"a.applied_at", "a.reviewed_at", "a.reviewed_by", "c.name", "c.email",
}

// ApplicationRepository handles opportunity applications and the assignments
// created when they are accepted
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: pool,
		sb: newStatementBuilder(),
	}
}

func scanApplication(row rowScanner) (*models.Application, error) {
	var a models.Application
	err := row.Scan(
		&a.ID, &a.OpportunityID, &a.ConsultantID, &a.Status, &a.CoverLetter, &a.MatchScore,
		&a.AppliedAt, &a.ReviewedAt, &a.ReviewedBy, &a.ConsultantName, &a.ConsultantEmail,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) selectApplications() squirrel.SelectBuilder {
	return r.sb.Select(applicationColumns...).
		From("opportunity_applications a").
		Join("consultants c ON c.id = a.consultant_id")
}

// Create inserts a pending application and bumps the consultant's
// opportunities_count in the same transaction
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		app.AppliedAt = time.Now()
		sql, args, err := r.sb.Insert("opportunity_applications").
			Columns("id", "opportunity_id", "consultant_id", "status", "cover_letter", "match_score", "applied_at").
			Values(app.ID, app.OpportunityID, app.ConsultantID, app.Status, app.CoverLetter, app.MatchScore, app.AppliedAt).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create application SQL")
			return fmt.Errorf("failed to build create application query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsDuplicateConstraintError(err, "uq_application_consultant") {
				return apperrors.ErrAlreadyApplied
			}
			if dberrors.IsForeignKeyError(err) {
				return apperrors.ErrOpportunityNotFound
			}
			logger.Error().Err(err).Str("applicationID", app.ID).Msg("Error executing create application query")
			return fmt.Errorf("error creating application: %w", err)
		}

		sql, args, err = r.sb.Update("consultants").
			Set("opportunities_count", squirrel.Expr("opportunities_count + 1")).
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"id": app.ConsultantID}).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building increment opportunities SQL")
			return fmt.Errorf("failed to build increment opportunities query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Int64("consultantID", app.ConsultantID).Msg("Error executing increment opportunities query")
			return fmt.Errorf("error updating opportunities count: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	return r.getOne(ctx, r.db, id, false)
}

func (r *ApplicationRepository) getOne(ctx context.Context, q querier, id string, forUpdate bool) (*models.Application, error) {
	query := r.selectApplications().Where(squirrel.Eq{"a.id": id})
	if forUpdate {
		query = query.Suffix("FOR UPDATE OF a")
	}
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get application SQL")
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	app, err := scanApplication(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Str("applicationID", id).Msg("Error scanning application row")
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}
	return app, nil
}

// ListByOpportunities groups the applications of the given opportunities
func (r *ApplicationRepository) ListByOpportunities(ctx context.Context, opportunityIDs []int64) (map[int64][]*models.Application, error) {
	out := make(map[int64][]*models.Application, len(opportunityIDs))
	if len(opportunityIDs) == 0 {
		return out, nil
	}

	apps, err := r.list(ctx, r.selectApplications().
		Where(squirrel.Eq{"a.opportunity_id": opportunityIDs}).
		OrderBy("a.applied_at DESC"))
	if err != nil {
		return nil, err
	}
	for _, a := range apps {
		out[a.OpportunityID] = append(out[a.OpportunityID], a)
	}
	return out, nil
}

// ListByConsultant returns a consultant's applications newest first
func (r *ApplicationRepository) ListByConsultant(ctx context.Context, consultantID int64) ([]*models.Application, error) {
	return r.list(ctx, r.selectApplications().
		Where(squirrel.Eq{"a.consultant_id": consultantID}).
		OrderBy("a.applied_at DESC"))
}

func (r *ApplicationRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Application, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list applications SQL")
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list applications query")
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// Accept marks a pending application accepted, creates the assignment, moves
// the consultant off the bench and fills the opportunity once its accepted
// count reaches the number of positions
func (r *ApplicationRepository) Accept(ctx context.Context, id string, reviewerID int64) (*models.Application, *models.Assignment, error) {
	var (
		app        *models.Application
		assignment *models.Assignment
	)

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		app, err = r.review(ctx, tx, id, models.ApplicationAccepted, reviewerID)
		if err != nil {
			return err
		}

		now := time.Now()
		assignment = &models.Assignment{
			ConsultantID:  app.ConsultantID,
			OpportunityID: app.OpportunityID,
			ApplicationID: app.ID,
			Status:        models.AssignmentActive,
			StartDate:     now,
			CreatedAt:     now,
		}
		sql, args, err := r.sb.Insert("consultant_assignments").
			Columns("consultant_id", "opportunity_id", "application_id", "status", "start_date", "created_at").
			Values(assignment.ConsultantID, assignment.OpportunityID, assignment.ApplicationID,
				assignment.Status, assignment.StartDate, assignment.CreatedAt).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create assignment SQL")
			return fmt.Errorf("failed to build create assignment query: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&assignment.ID); err != nil {
			logger.Error().Err(err).Str("applicationID", id).Msg("Error executing create assignment query")
			return fmt.Errorf("error creating assignment: %w", err)
		}

		sql, args, err = r.sb.Update("consultants").
			Set("status", models.ConsultantActive).
			Set("availability", models.AvailabilityBusy).
			Set("updated_at", now).
			Where(squirrel.Eq{"id": app.ConsultantID}).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building update consultant status SQL")
			return fmt.Errorf("failed to build update consultant status query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Int64("consultantID", app.ConsultantID).Msg("Error executing update consultant status query")
			return fmt.Errorf("error updating consultant status: %w", err)
		}

		opp, err := getOpportunity(ctx, tx, r.sb, app.OpportunityID, true)
		if err != nil {
			return err
		}
		accepted, err := countRows(ctx, tx, r.sb.Select("COUNT(*)").From("opportunity_applications").
			Where(squirrel.Eq{"opportunity_id": app.OpportunityID, "status": models.ApplicationAccepted}))
		if err != nil {
			return err
		}
		if accepted < int64(opp.Positions) || opp.Status != models.OpportunityOpen {
			return nil
		}

		sql, args, err = r.sb.Update("opportunities").
			Set("status", models.OpportunityFilled).
			Set("updated_at", now).
			Where(squirrel.Eq{"id": opp.ID}).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building fill opportunity SQL")
			return fmt.Errorf("failed to build fill opportunity query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Int64("opportunityID", opp.ID).Msg("Error executing fill opportunity query")
			return fmt.Errorf("error filling opportunity: %w", err)
		}
		logger.Info().Int64("opportunityID", opp.ID).Int64("accepted", accepted).Msg("Opportunity filled")
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return app, assignment, nil
}

// Decline marks a pending application declined
func (r *ApplicationRepository) Decline(ctx context.Context, id string, reviewerID int64) (*models.Application, error) {
	var app *models.Application
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		app, err = r.review(ctx, tx, id, models.ApplicationDeclined, reviewerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// review locks the application row and moves it out of pending
func (r *ApplicationRepository) review(ctx context.Context, tx pgx.Tx, id string, status models.ApplicationStatus, reviewerID int64) (*models.Application, error) {
	app, err := r.getOne(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}
	if app.Status != models.ApplicationPending {
		return nil, apperrors.ErrApplicationNotPending
	}

	now := time.Now()
	sql, args, err := r.sb.Update("opportunity_applications").
		Set("status", status).
		Set("reviewed_at", now).
		Set("reviewed_by", reviewerID).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building review application SQL")
		return nil, fmt.Errorf("failed to build review application query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("applicationID", id).Msg("Error executing review application query")
		return nil, fmt.Errorf("error reviewing application: %w", err)
	}

	app.Status = status
	app.ReviewedAt = &now
	app.ReviewedBy = &reviewerID
	return app, nil
}

// ListActiveAssignments returns the active assignments of a consultant
func (r *ApplicationRepository) ListActiveAssignments(ctx context.Context, consultantID int64) ([]*models.Assignment, error) {
	sql, args, err := r.sb.Select("id", "consultant_id", "opportunity_id", "application_id", "status",
		"start_date", "end_date", "created_at").
		From("consultant_assignments").
		Where(squirrel.Eq{"consultant_id": consultantID, "status": models.AssignmentActive}).
		OrderBy("start_date DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list assignments SQL")
		return nil, fmt.Errorf("failed to build list assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("consultantID", consultantID).Msg("Error executing list assignments query")
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}
	defer rows.Close()

	out := []*models.Assignment{}
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.ID, &a.ConsultantID, &a.OpportunityID, &a.ApplicationID, &a.Status,
			&a.StartDate, &a.EndDate, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning assignment: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
