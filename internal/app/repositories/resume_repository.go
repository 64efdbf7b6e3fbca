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
	"github.com/yigit/benchtrack/internal/pkg/logger"
)

// IResumeRepository defines resume analysis persistence
type IResumeRepository interface {
	SaveAnalysis(ctx context.Context, analysis *models.ResumeAnalysis, skills []models.ConsultantSkill) error
	GetLatest(ctx context.Context, consultantID int64) (*models.ResumeAnalysis, error)
}

// ResumeRepository stores resume analyses and the skills derived from them
type ResumeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResumeRepository creates a new ResumeRepository
func NewResumeRepository(pool *pgxpool.Pool) *ResumeRepository {
	return &ResumeRepository{
		db: pool,
		sb: newStatementBuilder(),
	}
}

// SaveAnalysis records an analysis and updates the consultant in one
// transaction: resume-sourced skills are replaced by skills (minus those
// already entered manually), the resume path and summary are stored and the
// resume status becomes "updated".
func (r *ResumeRepository) SaveAnalysis(ctx context.Context, analysis *models.ResumeAnalysis, skills []models.ConsultantSkill) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		now := time.Now()
		sql, args, err := r.sb.Update("consultants").
			Set("resume_status", models.ResumeStatusUpdated).
			Set("resume_path", analysis.FilePath).
			Set("ai_summary", analysis.Summary).
			Set("updated_at", now).
			Where(squirrel.Eq{"id": analysis.ConsultantID}).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building update resume status SQL")
			return fmt.Errorf("failed to build update resume status query: %w", err)
		}
		cmdTag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Int64("consultantID", analysis.ConsultantID).Msg("Error executing update resume status query")
			return fmt.Errorf("error updating resume status: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrConsultantNotFound
		}

		if err := r.replaceResumeSkills(ctx, tx, analysis.ConsultantID, skills); err != nil {
			return err
		}

		analysis.CreatedAt = now
		sql, args, err = r.sb.Insert("resume_analyses").
			Columns("consultant_id", "file_name", "file_path", "skills", "soft_skills", "roles", "summary",
				"feedback", "suggestions", "confidence", "mode", "extracted_chars", "created_at").
			Values(analysis.ConsultantID, analysis.FileName, analysis.FilePath, nonNil(analysis.Skills),
				nonNil(analysis.SoftSkills), nonNil(analysis.Roles), analysis.Summary, analysis.Feedback,
				nonNil(analysis.Suggestions), analysis.Confidence, analysis.Mode, analysis.ExtractedChars, now).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create resume analysis SQL")
			return fmt.Errorf("failed to build create resume analysis query: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&analysis.ID); err != nil {
			logger.Error().Err(err).Int64("consultantID", analysis.ConsultantID).Msg("Error executing create resume analysis query")
			return fmt.Errorf("error creating resume analysis: %w", err)
		}
		return nil
	})
}

func (r *ResumeRepository) replaceResumeSkills(ctx context.Context, tx pgx.Tx, consultantID int64, skills []models.ConsultantSkill) error {
	sql, args, err := r.sb.Delete("consultant_skills").
		Where(squirrel.Eq{"consultant_id": consultantID, "source": models.SkillSourceResume}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete resume skills SQL")
		return fmt.Errorf("failed to build delete resume skills query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("consultantID", consultantID).Msg("Error executing delete resume skills query")
		return fmt.Errorf("error deleting resume skills: %w", err)
	}

	sql, args, err = r.sb.Select("LOWER(skill_name)").From("consultant_skills").
		Where(squirrel.Eq{"consultant_id": consultantID}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building existing skills SQL")
		return fmt.Errorf("failed to build existing skills query: %w", err)
	}
	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error loading existing skills: %w", err)
	}
	held := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning existing skill: %w", err)
		}
		held[name] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating existing skills: %w", err)
	}

	fresh := make([]models.ConsultantSkill, 0, len(skills))
	for _, s := range skills {
		key := strings.ToLower(s.SkillName)
		if held[key] {
			continue
		}
		held[key] = true
		s.ConsultantID = consultantID
		s.Source = models.SkillSourceResume
		fresh = append(fresh, s)
	}

	return insertSkills(ctx, tx, r.sb, fresh)
}

// GetLatest returns the most recent analysis of a consultant's resume
func (r *ResumeRepository) GetLatest(ctx context.Context, consultantID int64) (*models.ResumeAnalysis, error) {
	sql, args, err := r.sb.Select("id", "consultant_id", "file_name", "file_path", "skills", "soft_skills",
		"roles", "summary", "feedback", "suggestions", "confidence", "mode", "extracted_chars", "created_at").
		From("resume_analyses").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get resume analysis SQL")
		return nil, fmt.Errorf("failed to build get resume analysis query: %w", err)
	}

	var a models.ResumeAnalysis
	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.ConsultantID, &a.FileName, &a.FilePath, &a.Skills,
		&a.SoftSkills, &a.Roles, &a.Summary, &a.Feedback, &a.Suggestions, &a.Confidence, &a.Mode,
		&a.ExtractedChars, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResumeNotAnalyzed
		}
		logger.Error().Err(err).Int64("consultantID", consultantID).Msg("Error scanning resume analysis row")
		return nil, fmt.Errorf("error retrieving resume analysis: %w", err)
	}
	return &a, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
