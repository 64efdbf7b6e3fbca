package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	appAuth "github.com/yigit/benchtrack/internal/app/auth"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/services"
	"github.com/yigit/benchtrack/internal/middleware"
)

// TrainingController handles the training catalog, recommendations and enrollments
type TrainingController struct {
	trainingService services.TrainingService
	authz           *appAuth.AuthorizationService
	logger          zerolog.Logger
}

// NewTrainingController creates a new TrainingController
func NewTrainingController(trainingService services.TrainingService, authz *appAuth.AuthorizationService, logger zerolog.Logger) *TrainingController {
	return &TrainingController{
		trainingService: trainingService,
		authz:           authz,
		logger:          logger,
	}
}

// GetCatalog godoc
// @Summary Training catalog
// @Tags training
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category" Enums(cloud_computing, programming, database, ai_ml)
// @Success 200 {object} dto.APIResponse{data=training.Listing}
// @Router /training/catalog [get]
func (c *TrainingController) GetCatalog(ctx *gin.Context) {
	respondOK(ctx, c.trainingService.Catalog(ctx.Query("category")))
}

// GetDashboard godoc
// @Summary Training dashboard
// @Description Missing skills across open opportunities, recommendations, learning paths and enrollments
// @Tags training
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consultant ID"
// @Success 200 {object} dto.APIResponse{data=dto.TrainingDashboardResponse}
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Router /consultants/{id}/training-dashboard [get]
func (c *TrainingController) GetDashboard(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if _, ok := consultantAccess(ctx, id); !ok {
		return
	}

	resp, err := c.trainingService.GetDashboard(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// GetRecommendations godoc
// @Summary Training recommendations
// @Tags training
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consultant ID"
// @Success 200 {object} dto.APIResponse{data=training.Result}
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Router /consultants/{id}/training/recommendations [get]
func (c *TrainingController) GetRecommendations(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if _, ok := consultantAccess(ctx, id); !ok {
		return
	}

	resp, err := c.trainingService.Recommendations(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// GetSkillGaps godoc
// @Summary Skill gap analysis
// @Description Compares the consultant's skills with target skills. Without target the skills of open opportunities are used.
// @Tags training
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consultant ID"
// @Param target query string false "Comma separated target skills"
// @Success 200 {object} dto.APIResponse{data=training.GapAnalysis}
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Router /consultants/{id}/training/skill-gaps [get]
func (c *TrainingController) GetSkillGaps(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if _, ok := consultantAccess(ctx, id); !ok {
		return
	}

	resp, err := c.trainingService.SkillGaps(ctx.Request.Context(), id, splitList(ctx.Query("target")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// GetDevelopmentPlan godoc
// @Summary Development plan
// @Description Phased plan with milestones toward the target skills
// @Tags training
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consultant ID"
// @Param target query string false "Comma separated target skills"
// @Success 200 {object} dto.APIResponse{data=training.Plan}
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Router /consultants/{id}/training/development-plan [get]
func (c *TrainingController) GetDevelopmentPlan(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if _, ok := consultantAccess(ctx, id); !ok {
		return
	}

	resp, err := c.trainingService.DevelopmentPlan(ctx.Request.Context(), id, splitList(ctx.Query("target")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// Enroll godoc
// @Summary Enroll in program
// @Tags training
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consultant ID"
// @Param request body dto.EnrollRequest true "Program"
// @Success 201 {object} dto.APIResponse{data=models.TrainingEnrollment}
// @Failure 404 {object} dto.ErrorResponse "Consultant or program not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /consultants/{id}/training/enrollments [post]
func (c *TrainingController) Enroll(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if _, ok := consultantAccess(ctx, id); !ok {
		return
	}
	req, ok := middleware.BindBody[dto.EnrollRequest](ctx)
	if !ok {
		return
	}

	enrollment, err := c.trainingService.Enroll(ctx.Request.Context(), id, req.ProgramID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, enrollment)
}

// ListEnrollments godoc
// @Summary List enrollments
// @Tags training
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consultant ID"
// @Success 200 {object} dto.APIResponse{data=[]models.TrainingEnrollment}
// @Router /consultants/{id}/training/enrollments [get]
func (c *TrainingController) ListEnrollments(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if _, ok := consultantAccess(ctx, id); !ok {
		return
	}

	out, err := c.trainingService.ListEnrollments(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, out)
}

// UpdateProgress godoc
// @Summary Update training progress
// @Description Progress 0 keeps the enrollment enrolled, above 0 in progress, 100 completed
// @Tags training
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Param request body dto.ProgressRequest true "Progress"
// @Success 200 {object} dto.APIResponse{data=dto.ProgressResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Not your enrollment"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Enrollment dropped"
// @Router /training/enrollments/{id}/progress [put]
func (c *TrainingController) UpdateProgress(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if !c.ownsEnrollment(ctx, id) {
		return
	}
	req, ok := middleware.BindBody[dto.ProgressRequest](ctx)
	if !ok {
		return
	}

	resp, err := c.trainingService.UpdateProgress(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// ownsEnrollment lets admins through and checks that other callers only
// touch enrollments of their own consultant profile
func (c *TrainingController) ownsEnrollment(ctx *gin.Context, enrollmentID int64) bool {
	caller, ok := currentCaller(ctx)
	if !ok {
		return false
	}
	if caller.IsAdmin() {
		return true
	}
	if err := c.authz.ValidateEnrollmentOwnership(ctx.Request.Context(), enrollmentID, caller.ConsultantID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return false
	}
	return true
}
