package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/services"
	"github.com/yigit/benchtrack/internal/middleware"
)

// OpportunityController handles opportunities and applications
type OpportunityController struct {
	opportunityService services.OpportunityService
	logger             zerolog.Logger
}

// NewOpportunityController creates a new OpportunityController
func NewOpportunityController(opportunityService services.OpportunityService, logger zerolog.Logger) *OpportunityController {
	return &OpportunityController{
		opportunityService: opportunityService,
		logger:             logger,
	}
}

// ListOpportunities godoc
// @Summary List opportunities
// @Description Lists opportunities newest first, optionally filtered by status
// @Tags opportunities
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter" Enums(open, filled, cancelled)
// @Success 200 {object} dto.APIResponse{data=[]models.Opportunity}
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Router /opportunities [get]
func (c *OpportunityController) ListOpportunities(ctx *gin.Context) {
	opps, err := c.opportunityService.ListOpportunities(ctx.Request.Context(), strings.TrimSpace(ctx.Query("status")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, opps)
}

// GetOpportunity godoc
// @Summary Get opportunity
// @Tags opportunities
// @Produce json
// @Security BearerAuth
// @Param id path int true "Opportunity ID"
// @Success 200 {object} dto.APIResponse{data=models.Opportunity}
// @Failure 404 {object} dto.ErrorResponse "Opportunity not found"
// @Router /opportunities/{id} [get]
func (c *OpportunityController) GetOpportunity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	opp, err := c.opportunityService.GetOpportunity(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, opp)
}

// CreateOpportunity godoc
// @Summary Create opportunity
// @Description Creates a project opportunity (admin only)
// @Tags opportunities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOpportunityRequest true "Opportunity"
// @Success 201 {object} dto.APIResponse{data=models.Opportunity}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /opportunities [post]
func (c *OpportunityController) CreateOpportunity(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	req, ok := middleware.BindBody[dto.CreateOpportunityRequest](ctx)
	if !ok {
		return
	}

	opp, err := c.opportunityService.CreateOpportunity(ctx.Request.Context(), req, caller.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, opp)
}

// UpdateOpportunity godoc
// @Summary Update opportunity
// @Description Updates the provided fields (admin only)
// @Tags opportunities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Opportunity ID"
// @Param request body dto.UpdateOpportunityRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Opportunity}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Opportunity not found"
// @Router /opportunities/{id} [put]
func (c *OpportunityController) UpdateOpportunity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	req, ok := middleware.BindBody[dto.UpdateOpportunityRequest](ctx)
	if !ok {
		return
	}

	opp, err := c.opportunityService.UpdateOpportunity(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, opp)
}

// DeleteOpportunity godoc
// @Summary Delete opportunity
// @Description Deletes an opportunity and its applications (admin only)
// @Tags opportunities
// @Produce json
// @Security BearerAuth
// @Param id path int true "Opportunity ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Opportunity not found"
// @Router /opportunities/{id} [delete]
func (c *OpportunityController) DeleteOpportunity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.opportunityService.DeleteOpportunity(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.SuccessResponse{Message: "Opportunity deleted successfully"})
}

// ListWithApplications godoc
// @Summary Opportunities with applications
// @Description Every opportunity together with its applicants (admin only)
// @Tags opportunities
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.OpportunityWithApplications}
// @Router /opportunities/with-applications [get]
func (c *OpportunityController) ListWithApplications(ctx *gin.Context) {
	out, err := c.opportunityService.ListWithApplications(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, out)
}

// Apply godoc
// @Summary Apply to opportunity
// @Description Consultants apply as themselves. Admins apply on behalf of consultantId.
// @Tags opportunities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Opportunity ID"
// @Param request body dto.ApplyRequest true "Application"
// @Success 201 {object} dto.APIResponse{data=models.Application}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Opportunity or consultant not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied or opportunity closed"
// @Router /opportunities/{id}/apply [post]
func (c *OpportunityController) Apply(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	opportunityID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	req, ok := middleware.BindBody[dto.ApplyRequest](ctx)
	if !ok {
		return
	}

	var consultantID int64
	switch {
	case caller.IsAdmin() && req.ConsultantID > 0:
		consultantID = req.ConsultantID
	case caller.ConsultantID != nil:
		if req.ConsultantID > 0 && req.ConsultantID != *caller.ConsultantID {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("You can only apply as yourself")
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
		consultantID = *caller.ConsultantID
	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Consultant required").
			WithField("consultantId").
			WithDetails("consultantId is required when the caller has no consultant profile")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	app, err := c.opportunityService.Apply(ctx.Request.Context(), opportunityID, consultantID, req.CoverLetter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Str("applicationID", app.ID).Int64("opportunityID", opportunityID).
		Int64("consultantID", consultantID).Msg("Application submitted")
	respondCreated(ctx, app)
}

// AcceptApplication godoc
// @Summary Accept application
// @Description Accepts a pending application and creates an assignment (admin only)
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.DecisionResponse}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Application already decided"
// @Router /applications/{id}/accept [post]
func (c *OpportunityController) AcceptApplication(ctx *gin.Context) {
	c.decide(ctx, c.opportunityService.AcceptApplication)
}

// DeclineApplication godoc
// @Summary Decline application
// @Description Declines a pending application (admin only)
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.DecisionResponse}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Application already decided"
// @Router /applications/{id}/decline [post]
func (c *OpportunityController) DeclineApplication(ctx *gin.Context) {
	c.decide(ctx, c.opportunityService.DeclineApplication)
}

type decisionFunc func(ctx context.Context, applicationID string, reviewerID int64) (*dto.DecisionResponse, error)

func (c *OpportunityController) decide(ctx *gin.Context, fn decisionFunc) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	applicationID := strings.TrimSpace(ctx.Param("id"))
	if applicationID == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid id").WithField("id")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := fn(ctx.Request.Context(), applicationID, caller.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// MatchConsultants godoc
// @Summary Match consultants
// @Description Ranks consultants by overlap with the opportunity's required skills (admin only)
// @Tags opportunities
// @Produce json
// @Security BearerAuth
// @Param id path int true "Opportunity ID"
// @Success 200 {object} dto.APIResponse{data=dto.MatchResponse}
// @Failure 404 {object} dto.ErrorResponse "Opportunity not found"
// @Router /opportunities/{id}/matches [get]
func (c *OpportunityController) MatchConsultants(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.opportunityService.MatchConsultants(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}
