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
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/logger"
)

// IOpportunityRepository defines opportunity persistence
type IOpportunityRepository interface {
	Create(ctx context.Context, o *models.Opportunity) error
	GetByID(ctx context.Context, id int64) (*models.Opportunity, error)
	List(ctx context.Context, status *models.OpportunityStatus) ([]*models.Opportunity, error)
	Update(ctx context.Context, o *models.Opportunity) error
	Delete(ctx context.Context, id int64) error
}

var opportunityColumns = []string{
	"id", "title", "description", "client", "required_skills", "experience_required",
	"experience_level", "location", "duration", "budget", "positions", "start_date",
	"end_date", "status", "created_by", "created_at", "updated_at",
}

// OpportunityRepository handles opportunity rows
type OpportunityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOpportunityRepository creates a new OpportunityRepository
func NewOpportunityRepository(pool *pgxpool.Pool) *OpportunityRepository {
	return &OpportunityRepository{
		db: pool,
		sb: newStatementBuilder(),
	}
}

func scanOpportunity(row rowScanner) (*models.Opportunity, error) {
	var o models.Opportunity
	err := row.Scan(
		&o.ID, &o.Title, &o.Description, &o.Client, &o.RequiredSkills, &o.ExperienceRequired,
		&o.ExperienceLevel, &o.Location, &o.Duration, &o.Budget, &o.Positions, &o.StartDate,
		&o.EndDate, &o.Status, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if o.RequiredSkills == nil {
		o.RequiredSkills = []string{}
	}
	return &o, nil
}

// Create inserts an opportunity
func (r *OpportunityRepository) Create(ctx context.Context, o *models.Opportunity) error {
	now := time.Now()
	if o.RequiredSkills == nil {
		o.RequiredSkills = []string{}
	}

	sql, args, err := r.sb.Insert("opportunities").
		Columns("title", "description", "client", "required_skills", "experience_required",
			"experience_level", "location", "duration", "budget", "positions", "start_date",
			"end_date", "status", "created_by", "created_at", "updated_at").
		Values(o.Title, o.Description, o.Client, o.RequiredSkills, o.ExperienceRequired,
			o.ExperienceLevel, o.Location, o.Duration, o.Budget, o.Positions, o.StartDate,
			o.EndDate, o.Status, o.CreatedBy, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create opportunity SQL")
		return fmt.Errorf("failed to build create opportunity query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&o.ID); err != nil {
		logger.Error().Err(err).Str("title", o.Title).Msg("Error executing create opportunity query")
		return fmt.Errorf("error creating opportunity: %w", err)
	}
	o.CreatedAt = now
	o.UpdatedAt = now
	return nil
}

// GetByID retrieves an opportunity by ID
func (r *OpportunityRepository) GetByID(ctx context.Context, id int64) (*models.Opportunity, error) {
	return getOpportunity(ctx, r.db, r.sb, id, false)
}

func getOpportunity(ctx context.Context, q querier, sb squirrel.StatementBuilderType, id int64, forUpdate bool) (*models.Opportunity, error) {
	query := sb.Select(opportunityColumns...).From("opportunities").Where(squirrel.Eq{"id": id})
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get opportunity SQL")
		return nil, fmt.Errorf("failed to build get opportunity query: %w", err)
	}

	o, err := scanOpportunity(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOpportunityNotFound
		}
		logger.Error().Err(err).Int64("opportunityID", id).Msg("Error scanning opportunity row")
		return nil, fmt.Errorf("error retrieving opportunity: %w", err)
	}
	return o, nil
}

// List returns opportunities newest first, optionally filtered by status
func (r *OpportunityRepository) List(ctx context.Context, status *models.OpportunityStatus) ([]*models.Opportunity, error) {
	query := r.sb.Select(opportunityColumns...).From("opportunities").OrderBy("created_at DESC", "id DESC")
	if status != nil {
		query = query.Where(squirrel.Eq{"status": *status})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list opportunities SQL")
		return nil, fmt.Errorf("failed to build list opportunities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list opportunities query")
		return nil, fmt.Errorf("error listing opportunities: %w", err)
	}
	defer rows.Close()

	out := []*models.Opportunity{}
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning opportunity row")
			return nil, fmt.Errorf("error scanning opportunity: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating opportunities: %w", err)
	}
	return out, nil
}

// Update writes every editable column of o
func (r *OpportunityRepository) Update(ctx context.Context, o *models.Opportunity) error {
	o.UpdatedAt = time.Now()
	sql, args, err := r.sb.Update("opportunities").
		SetMap(map[string]interface{}{
			"title":               o.Title,
			"description":         o.Description,
			"client":              o.Client,
			"required_skills":     o.RequiredSkills,
			"experience_required": o.ExperienceRequired,
			"experience_level":    o.ExperienceLevel,
			"location":            o.Location,
			"duration":            o.Duration,
			"budget":              o.Budget,
			"positions":           o.Positions,
			"start_date":          o.StartDate,
			"end_date":            o.EndDate,
			"status":              o.Status,
			"updated_at":          o.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update opportunity SQL")
		return fmt.Errorf("failed to build update opportunity query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("opportunityID", o.ID).Msg("Error executing update opportunity query")
		return fmt.Errorf("error updating opportunity: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOpportunityNotFound
	}
	return nil
}

// Delete removes an opportunity and, by cascade, its applications
func (r *OpportunityRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("opportunities").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete opportunity SQL")
		return fmt.Errorf("failed to build delete opportunity query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("opportunityID", id).Msg("Error executing delete opportunity query")
		return fmt.Errorf("error deleting opportunity: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOpportunityNotFound
	}
	return nil
}
