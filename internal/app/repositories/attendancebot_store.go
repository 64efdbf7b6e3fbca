package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/pkg/attendancebot"
	"github.com/yigit/benchtrack/internal/pkg/logger"
)

// AttendanceBotStore serves the attendance chatbot from the users and
// attendance_records tables
type AttendanceBotStore struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

var _ attendancebot.Store = (*AttendanceBotStore)(nil)

// NewAttendanceBotStore creates a new AttendanceBotStore
func NewAttendanceBotStore(pool *pgxpool.Pool) *AttendanceBotStore {
	return &AttendanceBotStore{
		db: pool,
		sb: newStatementBuilder(),
	}
}

// FindPersonByName looks up a consultant user by partial name. An exact
// match wins over a partial one. Returns nil when nobody matches.
func (s *AttendanceBotStore) FindPersonByName(ctx context.Context, name string) (*attendancebot.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	sql, args, err := s.sb.Select("id", "name", "email").
		From("users").
		Where(squirrel.Eq{"role": models.RoleConsultant, "is_active": true}).
		Where(squirrel.ILike{"name": "%" + name + "%"}).
		OrderByClause("(LOWER(name) = LOWER(?)) DESC", name).
		OrderBy("name").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find person SQL")
		return nil, fmt.Errorf("failed to build find person query: %w", err)
	}

	var p attendancebot.Person
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&p.UserID, &p.Name, &p.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("name", name).Msg("Error executing find person query")
		return nil, fmt.Errorf("error finding person: %w", err)
	}
	return &p, nil
}

// ListPeople returns every active consultant user
func (s *AttendanceBotStore) ListPeople(ctx context.Context) ([]attendancebot.Person, error) {
	sql, args, err := s.sb.Select("id", "name", "email").
		From("users").
		Where(squirrel.Eq{"role": models.RoleConsultant, "is_active": true}).
		OrderBy("name").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list people SQL")
		return nil, fmt.Errorf("failed to build list people query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list people query")
		return nil, fmt.Errorf("error listing people: %w", err)
	}
	defer rows.Close()

	people := []attendancebot.Person{}
	for rows.Next() {
		var p attendancebot.Person
		if err := rows.Scan(&p.UserID, &p.Name, &p.Email); err != nil {
			return nil, fmt.Errorf("error scanning person: %w", err)
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

// Records returns every attendance record in the inclusive date range
func (s *AttendanceBotStore) Records(ctx context.Context, from, to string) ([]models.AttendanceRecord, error) {
	query, err := applyAttendanceFilter(selectAttendance(s.sb), models.AttendanceFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	return listAttendance(ctx, s.db, query.OrderBy("r.date", "r.user_id"))
}
