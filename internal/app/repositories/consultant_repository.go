package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/db"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/dberrors"
	"github.com/yigit/benchtrack/internal/pkg/helpers"
	"github.com/yigit/benchtrack/internal/pkg/logger"
)

// IConsultantRepository defines consultant persistence
type IConsultantRepository interface {
	Create(ctx context.Context, c *models.Consultant) error
	CreateWithUser(ctx context.Context, user *models.User, c *models.Consultant) error
	GetByID(ctx context.Context, id int64) (*models.Consultant, error)
	GetByEmail(ctx context.Context, email string) (*models.Consultant, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Consultant, error)
	List(ctx context.Context, filter models.ConsultantFilter) ([]*models.Consultant, int64, error)
	ListAll(ctx context.Context) ([]*models.Consultant, error)
	Update(ctx context.Context, c *models.Consultant, manualSkills []models.ConsultantSkill) error
	UpdateTrainingStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

var consultantColumns = []string{
	"c.id", "c.user_id", "c.name", "c.email", "c.phone", "c.department", "c.primary_skill",
	"c.experience_years", "c.status", "c.availability", "c.resume_status", "c.resume_path",
	"c.ai_summary", "c.attendance_rate", "c.training_status", "c.opportunities_count",
	"c.bench_start_date", "c.created_at", "c.updated_at",
}

var skillColumns = []string{
	"id", "consultant_id", "skill_name", "category", "proficiency", "years_experience",
	"is_primary", "source", "confidence", "created_at",
}

// ConsultantRepository handles consultant and consultant skill rows
type ConsultantRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewConsultantRepository creates a new ConsultantRepository
func NewConsultantRepository(pool *pgxpool.Pool) *ConsultantRepository {
	return &ConsultantRepository{
		db: pool,
		sb: newStatementBuilder(),
	}
}

func scanConsultant(row rowScanner) (*models.Consultant, error) {
	var c models.Consultant
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Department, &c.PrimarySkill,
		&c.ExperienceYears, &c.Status, &c.Availability, &c.ResumeStatus, &c.ResumePath,
		&c.AISummary, &c.AttendanceRate, &c.TrainingStatus, &c.OpportunitiesCount,
		&c.BenchStartDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a consultant together with its skills
func (r *ConsultantRepository) Create(ctx context.Context, c *models.Consultant) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		return r.insert(ctx, tx, c)
	})
}

// CreateWithUser inserts a user account and its consultant profile atomically
func (r *ConsultantRepository) CreateWithUser(ctx context.Context, user *models.User, c *models.Consultant) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := createUser(ctx, tx, r.sb, user); err != nil {
			return err
		}
		c.UserID = &user.ID
		return r.insert(ctx, tx, c)
	})
}

func (r *ConsultantRepository) insert(ctx context.Context, q querier, c *models.Consultant) error {
	now := time.Now()
	if c.BenchStartDate == nil {
		c.BenchStartDate = &now
	}

	sql, args, err := r.sb.Insert("consultants").
		Columns("user_id", "name", "email", "phone", "department", "primary_skill", "experience_years",
			"status", "availability", "resume_status", "attendance_rate", "training_status",
			"opportunities_count", "bench_start_date", "created_at", "updated_at").
		Values(c.UserID, c.Name, c.Email, c.Phone, c.Department, c.PrimarySkill, c.ExperienceYears,
			c.Status, c.Availability, c.ResumeStatus, c.AttendanceRate, c.TrainingStatus,
			c.OpportunitiesCount, c.BenchStartDate, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create consultant SQL")
		return fmt.Errorf("failed to build create consultant query: %w", err)
	}

	if err := q.QueryRow(ctx, sql, args...).Scan(&c.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "consultants_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", c.Email).Msg("Error executing create consultant query")
		return fmt.Errorf("error creating consultant: %w", err)
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	for i := range c.Skills {
		c.Skills[i].ConsultantID = c.ID
	}
	return insertSkills(ctx, q, r.sb, c.Skills)
}

func insertSkills(ctx context.Context, q querier, sb squirrel.StatementBuilderType, skills []models.ConsultantSkill) error {
	if len(skills) == 0 {
		return nil
	}

	now := time.Now()
	builder := sb.Insert("consultant_skills").
		Columns("consultant_id", "skill_name", "category", "proficiency", "years_experience",
			"is_primary", "source", "confidence", "created_at")
	for i := range skills {
		s := &skills[i]
		if s.Proficiency == "" {
			s.Proficiency = models.DefaultProficiency
		}
		if s.Source == "" {
			s.Source = models.SkillSourceManual
		}
		s.CreatedAt = now
		builder = builder.Values(s.ConsultantID, s.SkillName, s.Category, s.Proficiency,
			s.YearsExperience, s.IsPrimary, s.Source, s.Confidence, now)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert skills SQL")
		return fmt.Errorf("failed to build insert skills query: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing insert skills query")
		return fmt.Errorf("error inserting consultant skills: %w", err)
	}
	return nil
}

// GetByID retrieves a consultant and its skills
func (r *ConsultantRepository) GetByID(ctx context.Context, id int64) (*models.Consultant, error) {
	return r.getOne(ctx, squirrel.Eq{"c.id": id})
}

// GetByEmail retrieves a consultant by email, case-insensitively
func (r *ConsultantRepository) GetByEmail(ctx context.Context, email string) (*models.Consultant, error) {
	return r.getOne(ctx, squirrel.Expr("LOWER(c.email) = LOWER(?)", email))
}

// GetByUserID retrieves the consultant profile linked to a user account
func (r *ConsultantRepository) GetByUserID(ctx context.Context, userID int64) (*models.Consultant, error) {
	return r.getOne(ctx, squirrel.Eq{"c.user_id": userID})
}

func (r *ConsultantRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Consultant, error) {
	sql, args, err := r.sb.Select(consultantColumns...).From("consultants c").Where(where).Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get consultant SQL")
		return nil, fmt.Errorf("failed to build get consultant query: %w", err)
	}

	c, err := scanConsultant(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConsultantNotFound
		}
		logger.Error().Err(err).Msg("Error scanning consultant row")
		return nil, fmt.Errorf("error retrieving consultant: %w", err)
	}

	if err := r.attachSkills(ctx, []*models.Consultant{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ConsultantRepository) filterConditions(filter models.ConsultantFilter) squirrel.And {
	conds := squirrel.And{}
	if filter.Status != nil {
		conds = append(conds, squirrel.Eq{"c.status": *filter.Status})
	}
	if filter.PrimarySkill != nil && strings.TrimSpace(*filter.PrimarySkill) != "" {
		conds = append(conds, squirrel.ILike{"c.primary_skill": "%" + strings.TrimSpace(*filter.PrimarySkill) + "%"})
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		term := "%" + strings.TrimSpace(*filter.Search) + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"c.name": term},
			squirrel.ILike{"c.email": term},
		})
	}
	return conds
}

// List returns one page of consultants matching filter and the total match count
func (r *ConsultantRepository) List(ctx context.Context, filter models.ConsultantFilter) ([]*models.Consultant, int64, error) {
	conds := r.filterConditions(filter)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("consultants c").Where(conds).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count consultants SQL")
		return nil, 0, fmt.Errorf("failed to build count consultants query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count consultants query")
		return nil, 0, fmt.Errorf("error counting consultants: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	query := r.sb.Select(consultantColumns...).From("consultants c").Where(conds).
		OrderBy("c.created_at DESC", "c.id DESC").
		Offset(offset).Limit(limit)

	consultants, err := r.query(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return consultants, total, nil
}

// ListAll returns every consultant with skills, used for matching
func (r *ConsultantRepository) ListAll(ctx context.Context) ([]*models.Consultant, error) {
	return r.query(ctx, r.sb.Select(consultantColumns...).From("consultants c").OrderBy("c.id"))
}

func (r *ConsultantRepository) query(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Consultant, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list consultants SQL")
		return nil, fmt.Errorf("failed to build list consultants query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list consultants query")
		return nil, fmt.Errorf("error listing consultants: %w", err)
	}
	defer rows.Close()

	consultants := []*models.Consultant{}
	for rows.Next() {
		c, err := scanConsultant(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning consultant row")
			return nil, fmt.Errorf("error scanning consultant: %w", err)
		}
		consultants = append(consultants, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating consultants: %w", err)
	}

	if err := r.attachSkills(ctx, consultants); err != nil {
		return nil, err
	}
	return consultants, nil
}

// attachSkills loads the skills of all given consultants in one query
func (r *ConsultantRepository) attachSkills(ctx context.Context, consultants []*models.Consultant) error {
	if len(consultants) == 0 {
		return nil
	}
	ids := make([]int64, len(consultants))
	byID := make(map[int64]*models.Consultant, len(consultants))
	for i, c := range consultants {
		ids[i] = c.ID
		byID[c.ID] = c
		c.Skills = []models.ConsultantSkill{}
	}

	sql, args, err := r.sb.Select(skillColumns...).From("consultant_skills").
		Where(squirrel.Eq{"consultant_id": ids}).
		OrderBy("consultant_id", "is_primary DESC", "id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get skills SQL")
		return fmt.Errorf("failed to build get skills query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get skills query")
		return fmt.Errorf("error loading consultant skills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.ConsultantSkill
		if err := rows.Scan(&s.ID, &s.ConsultantID, &s.SkillName, &s.Category, &s.Proficiency,
			&s.YearsExperience, &s.IsPrimary, &s.Source, &s.Confidence, &s.CreatedAt); err != nil {
			return fmt.Errorf("error scanning consultant skill: %w", err)
		}
		if c, ok := byID[s.ConsultantID]; ok {
			c.Skills = append(c.Skills, s)
		}
	}
	return rows.Err()
}

// Update writes the editable profile columns. A non-nil manualSkills replaces
// every manually entered skill; skills found in resumes are kept.
func (r *ConsultantRepository) Update(ctx context.Context, c *models.Consultant, manualSkills []models.ConsultantSkill) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		c.UpdatedAt = time.Now()
		sql, args, err := r.sb.Update("consultants").
			Set("name", c.Name).
			Set("email", c.Email).
			Set("phone", c.Phone).
			Set("department", c.Department).
			Set("primary_skill", c.PrimarySkill).
			Set("experience_years", c.ExperienceYears).
			Set("status", c.Status).
			Set("availability", c.Availability).
			Set("updated_at", c.UpdatedAt).
			Where(squirrel.Eq{"id": c.ID}).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building update consultant SQL")
			return fmt.Errorf("failed to build update consultant query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "consultants_email_key") {
				return apperrors.ErrEmailAlreadyExists
			}
			logger.Error().Err(err).Int64("consultantID", c.ID).Msg("Error executing update consultant query")
			return fmt.Errorf("error updating consultant: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrConsultantNotFound
		}

		if manualSkills == nil {
			return nil
		}
		if err := r.deleteSkills(ctx, tx, c.ID, models.SkillSourceManual); err != nil {
			return err
		}
		for i := range manualSkills {
			manualSkills[i].ConsultantID = c.ID
			manualSkills[i].Source = models.SkillSourceManual
		}
		return insertSkills(ctx, tx, r.sb, manualSkills)
	})
}

func (r *ConsultantRepository) deleteSkills(ctx context.Context, q querier, consultantID int64, source string) error {
	sql, args, err := r.sb.Delete("consultant_skills").
		Where(squirrel.Eq{"consultant_id": consultantID, "source": source}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete skills SQL")
		return fmt.Errorf("failed to build delete skills query: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("consultantID", consultantID).Msg("Error executing delete skills query")
		return fmt.Errorf("error deleting consultant skills: %w", err)
	}
	return nil
}

// UpdateTrainingStatus sets the consultant's rolled-up training status
func (r *ConsultantRepository) UpdateTrainingStatus(ctx context.Context, id int64, status string) error {
	sql, args, err := r.sb.Update("consultants").
		Set("training_status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update training status SQL")
		return fmt.Errorf("failed to build update training status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("consultantID", id).Msg("Error executing update training status query")
		return fmt.Errorf("error updating training status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConsultantNotFound
	}
	return nil
}

// Delete removes a consultant; skills, applications and enrollments cascade
func (r *ConsultantRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("consultants").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete consultant SQL")
		return fmt.Errorf("failed to build delete consultant query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("consultantID", id).Msg("Error executing delete consultant query")
		return fmt.Errorf("error deleting consultant: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConsultantNotFound
	}
	return nil
}

// Count returns the number of consultants
func (r *ConsultantRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, r.sb.Select("COUNT(*)").From("consultants"))
}

func countRows(ctx context.Context, q querier, query squirrel.SelectBuilder) (int64, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count SQL")
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var n int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		logger.Error().Err(err).Msg("Error executing count query")
		return 0, fmt.Errorf("error counting rows: %w", err)
	}
	return n, nil
}
