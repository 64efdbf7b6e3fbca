package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/logger"
	"github.com/yigit/benchtrack/internal/pkg/resume"
)

type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// errorMappings is checked in order; the first match wins
var errorMappings = []errorMapping{
	// 404
	{apperrors.ErrConsultantNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Consultant not found"},
	{apperrors.ErrOpportunityNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Opportunity not found"},
	{apperrors.ErrApplicationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Application not found"},
	{apperrors.ErrAttendanceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Attendance record not found"},
	{apperrors.ErrTrainingProgramNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Training program not found"},
	{apperrors.ErrEnrollmentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Training enrollment not found"},
	{apperrors.ErrResumeNotAnalyzed, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "No resume analysis found for consultant"},
	{apperrors.ErrNotificationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Notification not found"},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},

	// 409
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrAlreadyApplied, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Consultant already applied to this opportunity"},
	{apperrors.ErrAttendanceExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Attendance already recorded for this date"},
	{apperrors.ErrAlreadyEnrolled, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Consultant already enrolled in this program"},
	{apperrors.ErrApplicationNotPending, http.StatusConflict, dto.ErrorCodeConflict, "Application has already been processed"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},

	// 400
	{apperrors.ErrOpportunityClosed, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Opportunity is not open for applications"},
	{apperrors.ErrUnsupportedFile, http.StatusBadRequest, dto.ErrorCodeUnsupportedFile, "Only PDF files are allowed"},
	{apperrors.ErrFileTooLarge, http.StatusRequestEntityTooLarge, dto.ErrorCodeFileTooLarge, "File exceeds the upload size limit"},
	{apperrors.ErrInvalidEmail, http.StatusBadRequest, dto.ErrorCodeInvalidEmail, "Invalid email"},
	{apperrors.ErrInvalidPassword, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "Invalid password"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"},

	// 401 / 403
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"},
	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},

	// 503
	{resume.ErrExtractionUnavailable, http.StatusServiceUnavailable, dto.ErrorCodeExternalServiceError, "Resume extraction temporarily unavailable"},
}

// HandleAPIError writes the error response for err. A CustomError message
// replaces the default message of its category.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorDetailFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// ErrorDetailFor maps err to an HTTP status and error detail
func ErrorDetailFor(err error) (int, *dto.ErrorDetail) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			detail := dto.NewErrorDetail(m.code, m.message)
			var custom *apperrors.CustomError
			if errors.As(err, &custom) && custom.Message != "" {
				detail.Message = custom.Message
				if custom.Details != nil {
					detail.WithDetails(custom.Details)
				}
			} else if err.Error() != m.target.Error() {
				// wrapped with context such as "validation failed: date is in the future"
				detail.WithDetails(err.Error())
			}
			return m.status, detail
		}
	}
	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
		WithSeverity(dto.ErrorSeverityCritical)
}
