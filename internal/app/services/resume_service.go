package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/repositories"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/filestorage"
	"github.com/yigit/benchtrack/internal/pkg/metrics"
	"github.com/yigit/benchtrack/internal/pkg/resume"
)

const (
	resumeDir = "resumes"
	// storedAnalysisConfidence is reported for analyses read back from storage
	storedAnalysisConfidence = 0.85
	sniffLen                 = 512
)

// ResumeService uploads and analyzes consultant resumes
type ResumeService interface {
	UploadResume(ctx context.Context, consultantID int64, fileName string, data []byte) (*dto.ResumeUploadResponse, error)
	GetAnalysis(ctx context.Context, consultantID int64) (*dto.ResumeAnalysisResponse, error)
}

type resumeServiceImpl struct {
	consultantRepo repositories.IConsultantRepository
	resumeRepo     repositories.IResumeRepository
	storage        filestorage.FileStorage
	analyzer       *resume.Analyzer
	extractor      resume.Extractor
	notifications  NotificationService
	maxUploadSize  int64
	logger         zerolog.Logger
}

// NewResumeService creates a new ResumeService
func NewResumeService(
	consultantRepo repositories.IConsultantRepository,
	resumeRepo repositories.IResumeRepository,
	storage filestorage.FileStorage,
	analyzer *resume.Analyzer,
	extractor resume.Extractor,
	notifications NotificationService,
	maxUploadSize int64,
	logger zerolog.Logger,
) ResumeService {
	return &resumeServiceImpl{
		consultantRepo: consultantRepo,
		resumeRepo:     resumeRepo,
		storage:        storage,
		analyzer:       analyzer,
		extractor:      extractor,
		notifications:  notifications,
		maxUploadSize:  maxUploadSize,
		logger:         logger,
	}
}

// UploadResume stores a PDF resume, analyzes it and records the outcome. A
// document whose text cannot be extracted still uploads, with a fallback
// analysis.
func (s *resumeServiceImpl) UploadResume(ctx context.Context, consultantID int64, fileName string, data []byte) (*dto.ResumeUploadResponse, error) {
	if s.maxUploadSize > 0 && int64(len(data)) > s.maxUploadSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", apperrors.ErrFileTooLarge, s.maxUploadSize)
	}
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if !resume.IsPDF(fileName, head) {
		return nil, fmt.Errorf("%w: only PDF resumes are accepted", apperrors.ErrUnsupportedFile)
	}

	consultant, err := s.consultantRepo.GetByID(ctx, consultantID)
	if err != nil {
		return nil, err
	}

	key, err := s.storage.Save(resumeDir, filestorage.UniqueName(strconv.FormatInt(consultant.ID, 10), ".pdf"), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	analysis := s.analyze(ctx, filepath.Base(fileName), data)
	metrics.RecordResumeAnalysis(analysis.Mode)

	record := &models.ResumeAnalysis{
		ConsultantID:   consultant.ID,
		FileName:       analysis.FileName,
		FilePath:       key,
		Skills:         analysis.Skills,
		SoftSkills:     analysis.SoftSkills,
		Roles:          analysis.Roles,
		Summary:        analysis.Summary,
		Feedback:       analysis.Feedback,
		Suggestions:    analysis.Suggestions,
		Confidence:     analysis.Confidence,
		Mode:           analysis.Mode,
		ExtractedChars: analysis.ExtractedChars,
	}
	if err := s.resumeRepo.SaveAnalysis(ctx, record, ResumeSkills(analysis)); err != nil {
		if delErr := s.storage.Delete(key); delErr != nil {
			s.logger.Warn().Err(delErr).Str("key", key).Msg("Could not remove orphaned resume file")
		}
		return nil, err
	}

	if _, err := s.notifications.Notify(ctx, models.NotificationResumeUploaded, "Resume uploaded",
		fmt.Sprintf("%s uploaded a resume (%d skills found)", consultant.Name, analysis.TotalSkills), &consultant.ID); err != nil {
		s.logger.Warn().Err(err).Int64("consultantID", consultant.ID).Msg("Could not record resume notification")
	}

	message := "Resume uploaded and analyzed successfully"
	if analysis.Mode == resume.ModeFallback {
		message = analysis.Summary
	}
	s.logger.Info().Int64("consultantID", consultant.ID).Str("mode", analysis.Mode).
		Int("skills", analysis.TotalSkills).Msg("Resume processed")

	return &dto.ResumeUploadResponse{
		ConsultantID: consultant.ID,
		FileName:     analysis.FileName,
		FileURL:      s.storage.URL(key),
		Message:      message,
		Analysis:     analysis,
	}, nil
}

func (s *resumeServiceImpl) analyze(ctx context.Context, fileName string, data []byte) resume.Analysis {
	text, err := s.extractor.Extract(ctx, data)
	if err == nil {
		return s.analyzer.Analyze(text, fileName)
	}

	reason := "Could not extract text from the PDF"
	switch {
	case errors.Is(err, resume.ErrExtractionUnavailable):
		reason = "Resume analysis is temporarily unavailable"
	case errors.Is(err, resume.ErrNoText):
		reason = "The PDF has no extractable text layer"
	}
	s.logger.Warn().Err(err).Str("file", fileName).Msg("Resume text extraction failed, storing fallback analysis")
	return resume.Fallback(fileName, reason)
}

// ResumeSkills converts an analysis into resume-sourced skill rows
func ResumeSkills(a resume.Analysis) []models.ConsultantSkill {
	confidence := a.Confidence
	skills := make([]models.ConsultantSkill, 0, len(a.Skills)+len(a.SoftSkills))
	for _, name := range a.Skills {
		skills = append(skills, models.ConsultantSkill{
			SkillName:   name,
			Category:    models.SkillTechnical,
			Proficiency: models.DefaultProficiency,
			Source:      models.SkillSourceResume,
			Confidence:  &confidence,
		})
	}
	for _, name := range a.SoftSkills {
		skills = append(skills, models.ConsultantSkill{
			SkillName:   name,
			Category:    models.SkillSoft,
			Proficiency: models.DefaultProficiency,
			Source:      models.SkillSourceResume,
			Confidence:  &confidence,
		})
	}
	return skills
}

// GetAnalysis returns the latest stored analysis
func (s *resumeServiceImpl) GetAnalysis(ctx context.Context, consultantID int64) (*dto.ResumeAnalysisResponse, error) {
	if _, err := s.consultantRepo.GetByID(ctx, consultantID); err != nil {
		return nil, err
	}
	a, err := s.resumeRepo.GetLatest(ctx, consultantID)
	if err != nil {
		return nil, err
	}
	return &dto.ResumeAnalysisResponse{
		ConsultantID: a.ConsultantID,
		FileName:     a.FileName,
		Skills:       a.Skills,
		Competencies: a.SoftSkills,
		Roles:        a.Roles,
		Summary:      a.Summary,
		Feedback:     a.Feedback,
		Suggestions:  a.Suggestions,
		Confidence:   storedAnalysisConfidence,
		Mode:         a.Mode,
		AnalyzedAt:   a.CreatedAt,
	}, nil
}
