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
	"github.com/yigit/benchtrack/internal/pkg/dberrors"
	"github.com/yigit/benchtrack/internal/pkg/logger"
)

// ITrainingRepository defines training enrollment persistence
type ITrainingRepository interface {
	CreateEnrollment(ctx context.Context, e *models.TrainingEnrollment) error
	GetEnrollment(ctx context.Context, id int64) (*models.TrainingEnrollment, error)
	ListEnrollments(ctx context.Context, consultantID int64) ([]*models.TrainingEnrollment, error)
	UpdateProgress(ctx context.Context, e *models.TrainingEnrollment) error
}

var enrollmentColumns = []string{
	"id", "consultant_id", "program_id", "program_name", "category", "status", "progress",
	"hours_spent", "enrolled_at", "started_at", "completed_at", "updated_at",
}

// TrainingRepository handles training enrollments
type TrainingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTrainingRepository creates a new TrainingRepository
func NewTrainingRepository(pool *pgxpool.Pool) *TrainingRepository {
	return &TrainingRepository{
		db: pool,
		sb: newStatementBuilder(),
	}
}

func scanEnrollment(row rowScanner) (*models.TrainingEnrollment, error) {
	var e models.TrainingEnrollment
	err := row.Scan(&e.ID, &e.ConsultantID, &e.ProgramID, &e.ProgramName, &e.Category, &e.Status,
		&e.Progress, &e.HoursSpent, &e.EnrolledAt, &e.StartedAt, &e.CompletedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEnrollment enrolls a consultant; an existing non-dropped enrollment
// in the same program is a conflict
func (r *TrainingRepository) CreateEnrollment(ctx context.Context, e *models.TrainingEnrollment) error {
	now := time.Now()
	e.EnrolledAt = now
	e.UpdatedAt = now
	if e.Status == "" {
		e.Status = models.EnrollmentEnrolled
	}

	sql, args, err := r.sb.Insert("training_enrollments").
		Columns("consultant_id", "program_id", "program_name", "category", "status", "progress",
			"hours_spent", "enrolled_at", "updated_at").
		Values(e.ConsultantID, e.ProgramID, e.ProgramName, e.Category, e.Status, e.Progress,
			e.HoursSpent, e.EnrolledAt, e.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create enrollment SQL")
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_active_enrollment") {
			return apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrConsultantNotFound
		}
		logger.Error().Err(err).Int64("consultantID", e.ConsultantID).Str("programID", e.ProgramID).
			Msg("Error executing create enrollment query")
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// GetEnrollment retrieves an enrollment by ID
func (r *TrainingRepository) GetEnrollment(ctx context.Context, id int64) (*models.TrainingEnrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns...).From("training_enrollments").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get enrollment SQL")
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	e, err := scanEnrollment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		logger.Error().Err(err).Int64("enrollmentID", id).Msg("Error scanning enrollment row")
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return e, nil
}

// ListEnrollments returns a consultant's enrollments newest first
func (r *TrainingRepository) ListEnrollments(ctx context.Context, consultantID int64) ([]*models.TrainingEnrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns...).From("training_enrollments").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		OrderBy("enrolled_at DESC", "id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list enrollments SQL")
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("consultantID", consultantID).Msg("Error executing list enrollments query")
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	out := []*models.TrainingEnrollment{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning enrollment: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpdateProgress writes status, progress, hours and milestone timestamps
func (r *TrainingRepository) UpdateProgress(ctx context.Context, e *models.TrainingEnrollment) error {
	e.UpdatedAt = time.Now()
	sql, args, err := r.sb.Update("training_enrollments").
		Set("status", e.Status).
		Set("progress", e.Progress).
		Set("hours_spent", e.HoursSpent).
		Set("started_at", e.StartedAt).
		Set("completed_at", e.CompletedAt).
		Set("updated_at", e.UpdatedAt).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update enrollment SQL")
		return fmt.Errorf("failed to build update enrollment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", e.ID).Msg("Error executing update enrollment query")
		return fmt.Errorf("error updating enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}
