package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	appAuth "github.com/yigit/benchtrack/internal/app/auth"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/repositories"
	"github.com/yigit/benchtrack/internal/app/services"
	"github.com/yigit/benchtrack/internal/middleware"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/training"
)

type mockTrainingService struct {
	services.TrainingService
	mock.Mock
}

func (m *mockTrainingService) SkillGaps(ctx context.Context, consultantID int64, target []string) (*training.GapAnalysis, error) {
	args := m.Called(ctx, consultantID, target)
	r, _ := args.Get(0).(*training.GapAnalysis)
	return r, args.Error(1)
}

func (m *mockTrainingService) Enroll(ctx context.Context, consultantID int64, programID string) (*models.TrainingEnrollment, error) {
	args := m.Called(ctx, consultantID, programID)
	r, _ := args.Get(0).(*models.TrainingEnrollment)
	return r, args.Error(1)
}

func (m *mockTrainingService) UpdateProgress(ctx context.Context, enrollmentID int64, req *dto.ProgressRequest) (*dto.ProgressResponse, error) {
	args := m.Called(ctx, enrollmentID, req)
	r, _ := args.Get(0).(*dto.ProgressResponse)
	return r, args.Error(1)
}

type enrollmentStore struct {
	repositories.ITrainingRepository
	enrollments map[int64]*models.TrainingEnrollment
}

func (s *enrollmentStore) GetEnrollment(_ context.Context, id int64) (*models.TrainingEnrollment, error) {
	if e, ok := s.enrollments[id]; ok {
		return e, nil
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func trainingRouter(svc services.TrainingService, caller *middleware.Caller) http.Handler {
	authz := appAuth.NewAuthorizationService(&enrollmentStore{
		enrollments: map[int64]*models.TrainingEnrollment{3: {ID: 3, ConsultantID: 7}},
	})
	c := NewTrainingController(svc, authz, testLogger)
	r := newTestRouter(caller)
	r.GET("/consultants/:id/training/skill-gaps", c.GetSkillGaps)
	r.POST("/consultants/:id/training/enrollments", c.Enroll)
	r.PUT("/training/enrollments/:id/progress", c.UpdateProgress)
	return r
}

func TestGetSkillGapsTargets(t *testing.T) {
	svc := new(mockTrainingService)
	svc.On("SkillGaps", mock.Anything, int64(7), []string{"Go", "Kubernetes"}).
		Return(&training.GapAnalysis{TotalTargetSkills: 2, MissingSkills: []string{"Kubernetes"}}, nil)

	w := perform(trainingRouter(svc, consultantCaller(20, 7)), http.MethodGet,
		"/consultants/7/training/skill-gaps?target=Go,Kubernetes", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp training.GapAnalysis
	decodeData(t, w, &resp)
	assert.Equal(t, []string{"Kubernetes"}, resp.MissingSkills)
	svc.AssertExpectations(t)
}

func TestEnroll(t *testing.T) {
	svc := new(mockTrainingService)
	svc.On("Enroll", mock.Anything, int64(7), "kubernetes_fundamentals").
		Return(&models.TrainingEnrollment{ID: 3, ConsultantID: 7, ProgramID: "kubernetes_fundamentals"}, nil).Once()
	svc.On("Enroll", mock.Anything, int64(7), "kubernetes_fundamentals").
		Return(nil, apperrors.ErrAlreadyEnrolled).Once()

	r := trainingRouter(svc, consultantCaller(20, 7))
	body := dto.EnrollRequest{ProgramID: "kubernetes_fundamentals"}

	assert.Equal(t, http.StatusCreated, perform(r, http.MethodPost, "/consultants/7/training/enrollments", body).Code)
	assert.Equal(t, http.StatusConflict, perform(r, http.MethodPost, "/consultants/7/training/enrollments", body).Code)
	assert.Equal(t, http.StatusBadRequest,
		perform(r, http.MethodPost, "/consultants/7/training/enrollments", dto.EnrollRequest{}).Code)
}

func TestUpdateProgressOwnership(t *testing.T) {
	progress := 40.0
	body := dto.ProgressRequest{Progress: &progress}

	tests := []struct {
		name   string
		caller *middleware.Caller
		path   string
		status int
	}{
		{"owner", consultantCaller(20, 7), "/training/enrollments/3/progress", http.StatusOK},
		{"admin", adminCaller(), "/training/enrollments/3/progress", http.StatusOK},
		{"other consultant", consultantCaller(21, 8), "/training/enrollments/3/progress", http.StatusForbidden},
		{"unknown enrollment", consultantCaller(20, 7), "/training/enrollments/99/progress", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockTrainingService)
			svc.On("UpdateProgress", mock.Anything, int64(3), mock.Anything).Return(&dto.ProgressResponse{
				Enrollment: &models.TrainingEnrollment{ID: 3, Progress: 40},
			}, nil)

			w := perform(trainingRouter(svc, tt.caller), http.MethodPut, tt.path, body)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestUpdateProgressOutOfRange(t *testing.T) {
	progress := 140.0
	svc := new(mockTrainingService)

	w := perform(trainingRouter(svc, adminCaller()), http.MethodPut, "/training/enrollments/3/progress",
		dto.ProgressRequest{Progress: &progress})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UpdateProgress", mock.Anything, mock.Anything, mock.Anything)
}
