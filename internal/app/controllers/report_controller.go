package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/benchtrack/internal/app/services"
	"github.com/yigit/benchtrack/internal/middleware"
)

// ReportController handles consultant reports
type ReportController struct {
	reportService services.ReportService
	logger        zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService, logger zerolog.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GenerateReport godoc
// @Summary Consultant report
// @Description Builds a skills, opportunity, performance and attendance report. The type selects the sections.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consultant ID"
// @Param type query string false "Report type" Enums(comprehensive, performance, skills, opportunities) default(comprehensive)
// @Success 200 {object} dto.APIResponse{data=reports.Report}
// @Failure 400 {object} dto.ErrorResponse "Unknown report type"
// @Failure 404 {object} dto.ErrorResponse "Consultant not found"
// @Router /consultants/{id}/report [get]
func (c *ReportController) GenerateReport(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if _, ok := consultantAccess(ctx, id); !ok {
		return
	}

	report, err := c.reportService.GenerateReport(ctx.Request.Context(), id, ctx.DefaultQuery("type", "comprehensive"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("consultantID", id).Str("type", string(report.Type)).Msg("Report generated")
	respondOK(ctx, report)
}
