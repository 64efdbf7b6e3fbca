package controllers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/services"
	"github.com/yigit/benchtrack/internal/middleware"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
)

// ResumeController handles resume uploads and analysis
type ResumeController struct {
	resumeService services.ResumeService
	maxUploadSize int64
	logger        zerolog.Logger
}

// NewResumeController creates a new ResumeController
func NewResumeController(resumeService services.ResumeService, maxUploadSize int64, logger zerolog.Logger) *ResumeController {
	return &ResumeController{
		resumeService: resumeService,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// UploadResume godoc
// @Summary Upload resume
// @Description Uploads a PDF resume, extracts skills and replaces the consultant's resume skills.
// @Description When the text cannot be extracted a fallback analysis is stored and the upload still succeeds.
// @Tags resumes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consultant ID"
// @Param file formData file true "PDF resume"
// @Success 201 {object} dto.APIResponse{data=dto.ResumeUploadResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing file or not a PDF"
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Router /consultants/{id}/resume [post]
func (c *ResumeController) UploadResume(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if _, ok := consultantAccess(ctx, id); !ok {
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File is required").
			WithField("file").
			WithDetails(err.Error())
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if c.maxUploadSize > 0 && header.Size > c.maxUploadSize {
		middleware.HandleAPIError(ctx, fmt.Errorf("%w: limit is %d bytes", apperrors.ErrFileTooLarge, c.maxUploadSize))
		return
	}

	f, err := header.Open()
	if err != nil {
		c.logger.Error().Err(err).Str("fileName", header.Filename).Msg("Failed to open uploaded file")
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer f.Close()

	// Read one byte past the limit so the service can reject oversized bodies
	// whose multipart header lied about the size.
	reader := io.Reader(f)
	if c.maxUploadSize > 0 {
		reader = io.LimitReader(f, c.maxUploadSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		c.logger.Error().Err(err).Str("fileName", header.Filename).Msg("Failed to read uploaded file")
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.resumeService.UploadResume(ctx.Request.Context(), id, header.Filename, data)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("consultantID", id).Str("mode", resp.Analysis.Mode).
		Int("skills", resp.Analysis.TotalSkills).Msg("Resume uploaded")
	respondCreated(ctx, resp)
}

// GetAnalysis godoc
// @Summary Resume analysis
// @Description Latest stored analysis of the consultant's resume
// @Tags resumes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consultant ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResumeAnalysisResponse}
// @Failure 404 {object} dto.ErrorResponse "No analysis yet"
// @Router /consultants/{id}/resume-analysis [get]
func (c *ResumeController) GetAnalysis(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if _, ok := consultantAccess(ctx, id); !ok {
		return
	}

	resp, err := c.resumeService.GetAnalysis(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}
