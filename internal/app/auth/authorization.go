package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/benchtrack/internal/app/repositories"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/logger"
)

// AuthorizationService answers ownership questions for resources that are
// addressed by their own ID rather than by consultant
type AuthorizationService struct {
	trainingRepo repositories.ITrainingRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(trainingRepo repositories.ITrainingRepository) *AuthorizationService {
	return &AuthorizationService{trainingRepo: trainingRepo}
}

// CanModifyEnrollment checks if the consultant owns the enrollment
func (s *AuthorizationService) CanModifyEnrollment(ctx context.Context, enrollmentID, consultantID int64) (bool, error) {
	enrollment, err := s.trainingRepo.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return false, err
		}
		logger.Error().Err(err).Int64("enrollmentID", enrollmentID).Msg("Error getting enrollment in CanModifyEnrollment")
		return false, fmt.Errorf("failed to check enrollment ownership: %w", err)
	}
	return enrollment.ConsultantID == consultantID, nil
}

// ValidateEnrollmentOwnership returns ErrPermissionDenied unless the
// consultant owns the enrollment
func (s *AuthorizationService) ValidateEnrollmentOwnership(ctx context.Context, enrollmentID int64, consultantID *int64) error {
	if consultantID == nil {
		return apperrors.ErrPermissionDenied
	}
	canModify, err := s.CanModifyEnrollment(ctx, enrollmentID, *consultantID)
	if err != nil {
		return err
	}
	if !canModify {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
