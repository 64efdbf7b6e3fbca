package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/services"
	"github.com/yigit/benchtrack/internal/middleware"
)

// ConsultantController handles consultant profiles and dashboards
type ConsultantController struct {
	consultantService  services.ConsultantService
	opportunityService services.OpportunityService
	logger             zerolog.Logger
}

// NewConsultantController creates a new ConsultantController
func NewConsultantController(consultantService services.ConsultantService, opportunityService services.OpportunityService, logger zerolog.Logger) *ConsultantController {
	return &ConsultantController{
		consultantService:  consultantService,
		opportunityService: opportunityService,
		logger:             logger,
	}
}

// ListConsultants godoc
// @Summary List consultants
// @Description Lists consultants with their skills, filtered by status, primary skill substring or free text
// @Tags consultants
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter" Enums(available, active, training, unavailable)
// @Param primarySkill query string false "Primary skill substring"
// @Param search query string false "Name or email substring"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.ConsultantListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /consultants [get]
func (c *ConsultantController) ListConsultants(ctx *gin.Context) {
	page, ok := queryInt(ctx, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := queryInt(ctx, "pageSize", 20)
	if !ok {
		return
	}

	filter := models.ConsultantFilter{Page: page, PageSize: pageSize}
	if status := strings.TrimSpace(ctx.Query("status")); status != "" {
		s := models.ConsultantStatus(status)
		if !s.Valid() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status filter").WithField("status")
			ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.Status = &s
	}
	if skill := strings.TrimSpace(ctx.Query("primarySkill")); skill != "" {
		filter.PrimarySkill = &skill
	}
	if search := strings.TrimSpace(ctx.Query("search")); search != "" {
		filter.Search = &search
	}

	resp, err := c.consultantService.ListConsultants(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// GetConsultant godoc
// @Summary Get consultant
// @Description Returns one consultant with skills. Consultants may only read their own profile.
// @Tags consultants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consultant ID"
// @Success 200 {object} dto.APIResponse{data=models.Consultant}
// @Failure 403 {object} dto.ErrorResponse "Not your profile"
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Router /consultants/{id} [get]
func (c *ConsultantController) GetConsultant(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if _, ok := consultantAccess(ctx, id); !ok {
		return
	}

	consultant, err := c.consultantService.GetConsultant(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, consultant)
}

// CreateConsultant godoc
// @Summary Create consultant
// @Description Creates a bench consultant profile (admin only)
// @Tags consultants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateConsultantRequest true "Consultant"
// @Success 201 {object} dto.APIResponse{data=models.Consultant}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /consultants [post]
func (c *ConsultantController) CreateConsultant(ctx *gin.Context) {
	req, ok := middleware.BindBody[dto.CreateConsultantRequest](ctx)
	if !ok {
		return
	}

	consultant, err := c.consultantService.CreateConsultant(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, consultant)
}

// UpdateConsultant godoc
// @Summary Update consultant
// @Description Updates the provided fields; skills replace the manual skill set (admin only)
// @Tags consultants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consultant ID"
// @Param request body dto.UpdateConsultantRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Consultant}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /consultants/{id} [put]
func (c *ConsultantController) UpdateConsultant(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	req, ok := middleware.BindBody[dto.UpdateConsultantRequest](ctx)
	if !ok {
		return
	}

	consultant, err := c.consultantService.UpdateConsultant(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, consultant)
}

// DeleteConsultant godoc
// @Summary Delete consultant
// @Description Deletes a consultant and everything attached to it (admin only)
// @Tags consultants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consultant ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Router /consultants/{id} [delete]
func (c *ConsultantController) DeleteConsultant(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.consultantService.DeleteConsultant(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("consultantID", id).Msg("Consultant deleted")
	respondOK(ctx, dto.SuccessResponse{Message: "Consultant deleted successfully"})
}

// GetDashboardByEmail godoc
// @Summary Consultant dashboard by email
// @Description Resume, attendance, opportunity and training status plus workflow steps
// @Tags consultants
// @Produce json
// @Security BearerAuth
// @Param email path string true "Consultant email"
// @Success 200 {object} dto.APIResponse{data=dto.ConsultantDashboardResponse}
// @Failure 403 {object} dto.ErrorResponse "Not your profile"
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Router /consultants/dashboard/{email} [get]
func (c *ConsultantController) GetDashboardByEmail(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	emailAddr := ctx.Param("email")

	resp, err := c.consultantService.GetDashboardByEmail(ctx.Request.Context(), emailAddr)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !caller.CanAccessConsultant(resp.ConsultantID) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("You can only access your own dashboard")
		ctx.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return
	}
	respondOK(ctx, resp)
}

// GetMyDashboard godoc
// @Summary Own consultant dashboard
// @Description Dashboard of the consultant profile linked to the caller
// @Tags consultants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ConsultantDashboardResponse}
// @Failure 404 {object} dto.ErrorResponse "No consultant profile"
// @Router /consultants/me/dashboard [get]
func (c *ConsultantController) GetMyDashboard(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	if caller.ConsultantID == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Consultant not found").
			WithDetails("Your account has no consultant profile")
		ctx.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.consultantService.GetDashboard(ctx.Request.Context(), *caller.ConsultantID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// ListApplications godoc
// @Summary Consultant applications
// @Description Lists the applications submitted by a consultant
// @Tags consultants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consultant ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Application}
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Router /consultants/{id}/applications [get]
func (c *ConsultantController) ListApplications(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if _, ok := consultantAccess(ctx, id); !ok {
		return
	}

	apps, err := c.opportunityService.ListConsultantApplications(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, apps)
}
