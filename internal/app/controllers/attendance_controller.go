package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/services"
	"github.com/yigit/benchtrack/internal/middleware"
	"github.com/yigit/benchtrack/internal/pkg/attendancebot"
)

// AttendanceController handles attendance records and the attendance chatbot
type AttendanceController struct {
	attendanceService services.AttendanceService
	logger            zerolog.Logger
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService, logger zerolog.Logger) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

// RecordAttendance godoc
// @Summary Record attendance
// @Description Records one day of attendance for the caller. Admins may record for another user with userId.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAttendanceRequest true "Attendance"
// @Success 201 {object} dto.APIResponse{data=models.AttendanceRecord}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Recording for another user"
// @Failure 409 {object} dto.ErrorResponse "Day already recorded"
// @Router /attendance [post]
func (c *AttendanceController) RecordAttendance(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	req, ok := middleware.BindBody[dto.CreateAttendanceRequest](ctx)
	if !ok {
		return
	}

	userID := caller.UserID
	if req.UserID > 0 && req.UserID != caller.UserID {
		if !caller.IsAdmin() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("You can only record your own attendance")
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
		userID = req.UserID
	}

	record, err := c.attendanceService.RecordAttendance(ctx.Request.Context(), userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, record)
}

// UpdateAttendance godoc
// @Summary Update attendance
// @Description Updates a record. Users may only update their own records.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance record ID"
// @Param request body dto.UpdateAttendanceRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.AttendanceRecord}
// @Failure 403 {object} dto.ErrorResponse "Not your record"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /attendance/{id} [put]
func (c *AttendanceController) UpdateAttendance(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	req, ok := middleware.BindBody[dto.UpdateAttendanceRequest](ctx)
	if !ok {
		return
	}

	record, err := c.attendanceService.UpdateAttendance(ctx.Request.Context(), id, req, caller.UserID, caller.IsAdmin())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, record)
}

// ListAttendance godoc
// @Summary List attendance
// @Description Lists attendance records. Non-admins only see their own.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param userId query int false "User ID (admin only)"
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Param status query string false "Status" Enums(present, absent, half_day, leave, holiday)
// @Success 200 {object} dto.APIResponse{data=[]models.AttendanceRecord}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /attendance [get]
func (c *AttendanceController) ListAttendance(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	filter := models.AttendanceFilter{
		From: strings.TrimSpace(ctx.Query("from")),
		To:   strings.TrimSpace(ctx.Query("to")),
	}
	if raw := strings.TrimSpace(ctx.Query("userId")); raw != "" && caller.IsAdmin() {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid userId").WithField("userId")
			ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.UserID = &userID
	}
	if !caller.IsAdmin() {
		filter.UserID = &caller.UserID
	}
	if raw := strings.TrimSpace(ctx.Query("status")); raw != "" {
		status := models.AttendanceStatus(raw)
		filter.Status = &status
	}

	records, err := c.attendanceService.ListAttendance(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, records)
}

// GetSummary godoc
// @Summary Attendance summary
// @Description Totals and attendance rate of a user over the last days
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param days query int false "Window in days" default(30)
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceSummaryResponse}
// @Failure 403 {object} dto.ErrorResponse "Not your summary"
// @Router /attendance/summary/{userId} [get]
func (c *AttendanceController) GetSummary(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}
	if !caller.IsAdmin() && caller.UserID != userID {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("You can only view your own attendance")
		ctx.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return
	}
	days, ok := queryInt(ctx, "days", 30)
	if !ok {
		return
	}

	summary, err := c.attendanceService.Summary(ctx.Request.Context(), userID, days)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, summary)
}

// Chat godoc
// @Summary Attendance chatbot
// @Description Answers free text attendance questions such as "who is absent today" or "my attendance"
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChatRequest true "Question"
// @Success 200 {object} dto.APIResponse{data=dto.ChatResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /attendance/chat [post]
func (c *AttendanceController) Chat(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	req, ok := middleware.BindBody[dto.ChatRequest](ctx)
	if !ok {
		return
	}

	asker := &attendancebot.Person{UserID: caller.UserID, Name: caller.Email, Email: caller.Email}
	resp, err := c.attendanceService.Chat(ctx.Request.Context(), req.Question, asker)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Debug().Int64("userID", caller.UserID).Str("intent", resp.Intent).Msg("Attendance question answered")
	respondOK(ctx, resp)
}
