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
	"github.com/yigit/benchtrack/internal/pkg/attendancebot"
	"github.com/yigit/benchtrack/internal/pkg/dberrors"
	"github.com/yigit/benchtrack/internal/pkg/helpers"
	"github.com/yigit/benchtrack/internal/pkg/logger"
)

// IAttendanceRepository defines attendance persistence
type IAttendanceRepository interface {
	Create(ctx context.Context, rec *models.AttendanceRecord) error
	GetByID(ctx context.Context, id int64) (*models.AttendanceRecord, error)
	Update(ctx context.Context, rec *models.AttendanceRecord) error
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	RefreshAttendanceRate(ctx context.Context, userID int64, since string) (float64, error)
}

var attendanceColumns = []string{
	"r.id", "r.user_id", "to_char(r.date, 'YYYY-MM-DD')", "r.status", "r.check_in", "r.check_out",
	"r.hours_worked", "r.notes", "r.location", "r.created_at", "r.updated_at", "u.name",
}

// AttendanceRepository handles attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: pool,
		sb: newStatementBuilder(),
	}
}

func selectAttendance(sb squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return sb.Select(attendanceColumns...).
		From("attendance_records r").
		Join("users u ON u.id = r.user_id")
}

func scanAttendance(row rowScanner) (models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.Status, &rec.CheckIn, &rec.CheckOut,
		&rec.HoursWorked, &rec.Notes, &rec.Location, &rec.CreatedAt, &rec.UpdatedAt, &rec.UserName,
	)
	return rec, err
}

func parseDateParam(value string) (time.Time, error) {
	t, err := helpers.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	return t, nil
}

// Create inserts a record; a second record for the same user and day is a conflict
func (r *AttendanceRepository) Create(ctx context.Context, rec *models.AttendanceRecord) error {
	date, err := parseDateParam(rec.Date)
	if err != nil {
		return err
	}

	now := time.Now()
	sql, args, err := r.sb.Insert("attendance_records").
		Columns("user_id", "date", "status", "check_in", "check_out", "hours_worked", "notes", "location",
			"created_at", "updated_at").
		Values(rec.UserID, date, rec.Status, rec.CheckIn, rec.CheckOut, rec.HoursWorked, rec.Notes, rec.Location,
			now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create attendance SQL")
		return fmt.Errorf("failed to build create attendance query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&rec.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_attendance_user_date") {
			return apperrors.ErrAttendanceExists
		}
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", rec.UserID).Str("date", rec.Date).Msg("Error executing create attendance query")
		return fmt.Errorf("error creating attendance record: %w", err)
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return nil
}

// GetByID retrieves an attendance record by ID
func (r *AttendanceRepository) GetByID(ctx context.Context, id int64) (*models.AttendanceRecord, error) {
	sql, args, err := selectAttendance(r.sb).Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get attendance SQL")
		return nil, fmt.Errorf("failed to build get attendance query: %w", err)
	}

	rec, err := scanAttendance(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		logger.Error().Err(err).Int64("attendanceID", id).Msg("Error scanning attendance row")
		return nil, fmt.Errorf("error retrieving attendance record: %w", err)
	}
	return &rec, nil
}

// Update writes the mutable columns of rec
func (r *AttendanceRepository) Update(ctx context.Context, rec *models.AttendanceRecord) error {
	rec.UpdatedAt = time.Now()
	sql, args, err := r.sb.Update("attendance_records").
		Set("status", rec.Status).
		Set("check_in", rec.CheckIn).
		Set("check_out", rec.CheckOut).
		Set("hours_worked", rec.HoursWorked).
		Set("notes", rec.Notes).
		Set("location", rec.Location).
		Set("updated_at", rec.UpdatedAt).
		Where(squirrel.Eq{"id": rec.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update attendance SQL")
		return fmt.Errorf("failed to build update attendance query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("attendanceID", rec.ID).Msg("Error executing update attendance query")
		return fmt.Errorf("error updating attendance record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}
	return nil
}

// List returns records matching filter, newest day first
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	query, err := applyAttendanceFilter(selectAttendance(r.sb), filter)
	if err != nil {
		return nil, err
	}
	return listAttendance(ctx, r.db, query.OrderBy("r.date DESC", "u.name"))
}

func applyAttendanceFilter(query squirrel.SelectBuilder, filter models.AttendanceFilter) (squirrel.SelectBuilder, error) {
	if filter.UserID != nil {
		query = query.Where(squirrel.Eq{"r.user_id": *filter.UserID})
	}
	if filter.Status != nil {
		query = query.Where(squirrel.Eq{"r.status": *filter.Status})
	}
	if filter.From != "" {
		from, err := parseDateParam(filter.From)
		if err != nil {
			return query, err
		}
		query = query.Where(squirrel.GtOrEq{"r.date": from})
	}
	if filter.To != "" {
		to, err := parseDateParam(filter.To)
		if err != nil {
			return query, err
		}
		query = query.Where(squirrel.LtOrEq{"r.date": to})
	}
	return query, nil
}

func listAttendance(ctx context.Context, q querier, query squirrel.SelectBuilder) ([]models.AttendanceRecord, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list attendance SQL")
		return nil, fmt.Errorf("failed to build list attendance query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list attendance query")
		return nil, fmt.Errorf("error listing attendance: %w", err)
	}
	defer rows.Close()

	records := []models.AttendanceRecord{}
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning attendance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RefreshAttendanceRate recomputes the attendance rate of the consultant
// linked to userID over records dated on or after since. Half days count as
// present. Users without a consultant profile are left alone.
func (r *AttendanceRepository) RefreshAttendanceRate(ctx context.Context, userID int64, since string) (float64, error) {
	from, err := parseDateParam(since)
	if err != nil {
		return 0, err
	}

	sql, args, err := r.sb.Select(
		"COUNT(*) FILTER (WHERE status IN ('present', 'half_day'))",
		"COUNT(*)",
	).
		From("attendance_records").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": from}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building attendance rate SQL")
		return 0, fmt.Errorf("failed to build attendance rate query: %w", err)
	}

	var present, total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&present, &total); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing attendance rate query")
		return 0, fmt.Errorf("error computing attendance rate: %w", err)
	}

	rate := attendancebot.Rate(int(present), int(total))

	sql, args, err = r.sb.Update("consultants").
		Set("attendance_rate", rate).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update attendance rate SQL")
		return 0, fmt.Errorf("failed to build update attendance rate query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update attendance rate query")
		return 0, fmt.Errorf("error updating attendance rate: %w", err)
	}
	return rate, nil
}
