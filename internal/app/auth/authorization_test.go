package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/repositories"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
)

type enrollmentLookup struct {
	repositories.ITrainingRepository
	enrollments map[int64]*models.TrainingEnrollment
	err         error
}

func (e *enrollmentLookup) GetEnrollment(_ context.Context, id int64) (*models.TrainingEnrollment, error) {
	if e.err != nil {
		return nil, e.err
	}
	if en, ok := e.enrollments[id]; ok {
		return en, nil
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func newAuthz() *AuthorizationService {
	return NewAuthorizationService(&enrollmentLookup{
		enrollments: map[int64]*models.TrainingEnrollment{7: {ID: 7, ConsultantID: 3}},
	})
}

func TestValidateEnrollmentOwnership(t *testing.T) {
	owner, other := int64(3), int64(4)
	authz := newAuthz()
	ctx := context.Background()

	require.NoError(t, authz.ValidateEnrollmentOwnership(ctx, 7, &owner))
	assert.ErrorIs(t, authz.ValidateEnrollmentOwnership(ctx, 7, &other), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, authz.ValidateEnrollmentOwnership(ctx, 7, nil), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, authz.ValidateEnrollmentOwnership(ctx, 99, &owner), apperrors.ErrEnrollmentNotFound)
}

func TestCanModifyEnrollmentWrapsRepositoryErrors(t *testing.T) {
	boom := errors.New("connection reset")
	authz := NewAuthorizationService(&enrollmentLookup{err: boom})

	ok, err := authz.CanModifyEnrollment(context.Background(), 7, 3)
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}
