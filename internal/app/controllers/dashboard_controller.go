package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/services"
	"github.com/yigit/benchtrack/internal/middleware"
)

// DashboardController handles admin metrics and health endpoints
type DashboardController struct {
	dashboardService services.DashboardService
	logger           zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService, logger zerolog.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

// GetMetrics godoc
// @Summary Dashboard metrics
// @Description Consultant, opportunity, assignment and resume totals (admin only)
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardMetricsResponse}
// @Router /dashboard/metrics [get]
func (c *DashboardController) GetMetrics(ctx *gin.Context) {
	resp, err := c.dashboardService.GetMetrics(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, resp)
}

// Health godoc
// @Summary Health check
// @Description Pings the database and counts consultants
// @Tags operations
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (c *DashboardController) Health(ctx *gin.Context) {
	resp, healthy := c.dashboardService.Health(ctx.Request.Context())
	if !healthy {
		c.logger.Warn().Str("database", resp.Database).Msg("Health check failed")
		ctx.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Ping godoc
// @Summary Ping
// @Tags operations
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /ping [get]
func (c *DashboardController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.SuccessResponse{Message: "pong"},
		Timestamp: time.Now(),
	})
}
