package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/services"
	"github.com/yigit/benchtrack/internal/middleware"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
)

type mockOpportunityService struct {
	services.OpportunityService
	mock.Mock
}

func (m *mockOpportunityService) Apply(ctx context.Context, opportunityID, consultantID int64, coverLetter string) (*models.Application, error) {
	args := m.Called(ctx, opportunityID, consultantID, coverLetter)
	a, _ := args.Get(0).(*models.Application)
	return a, args.Error(1)
}

func (m *mockOpportunityService) AcceptApplication(ctx context.Context, applicationID string, reviewerID int64) (*dto.DecisionResponse, error) {
	args := m.Called(ctx, applicationID, reviewerID)
	r, _ := args.Get(0).(*dto.DecisionResponse)
	return r, args.Error(1)
}

func (m *mockOpportunityService) DeclineApplication(ctx context.Context, applicationID string, reviewerID int64) (*dto.DecisionResponse, error) {
	args := m.Called(ctx, applicationID, reviewerID)
	r, _ := args.Get(0).(*dto.DecisionResponse)
	return r, args.Error(1)
}

func (m *mockOpportunityService) GetOpportunity(ctx context.Context, id int64) (*models.Opportunity, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Opportunity)
	return o, args.Error(1)
}

func (m *mockOpportunityService) ListConsultantApplications(ctx context.Context, consultantID int64) ([]*models.Application, error) {
	args := m.Called(ctx, consultantID)
	a, _ := args.Get(0).([]*models.Application)
	return a, args.Error(1)
}

func opportunityRouter(svc services.OpportunityService, caller *middleware.Caller) http.Handler {
	c := NewOpportunityController(svc, testLogger)
	r := newTestRouter(caller)
	r.GET("/opportunities/:id", c.GetOpportunity)
	r.POST("/opportunities/:id/apply", c.Apply)
	r.POST("/applications/:id/accept", c.AcceptApplication)
	r.POST("/applications/:id/decline", c.DeclineApplication)
	return r
}

func TestApplyAsConsultant(t *testing.T) {
	svc := new(mockOpportunityService)
	svc.On("Apply", mock.Anything, int64(3), int64(7), "Keen to join").
		Return(&models.Application{ID: "app_3_abc", OpportunityID: 3, ConsultantID: 7, Status: models.ApplicationPending}, nil)

	w := perform(opportunityRouter(svc, consultantCaller(20, 7)), http.MethodPost, "/opportunities/3/apply",
		dto.ApplyRequest{CoverLetter: "Keen to join"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var app models.Application
	decodeData(t, w, &app)
	assert.Equal(t, "app_3_abc", app.ID)
	svc.AssertExpectations(t)
}

func TestApplyForAnotherConsultantIsForbidden(t *testing.T) {
	svc := new(mockOpportunityService)

	w := perform(opportunityRouter(svc, consultantCaller(20, 7)), http.MethodPost, "/opportunities/3/apply",
		dto.ApplyRequest{ConsultantID: 8})

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyByAdmin(t *testing.T) {
	t.Run("with consultant id", func(t *testing.T) {
		svc := new(mockOpportunityService)
		svc.On("Apply", mock.Anything, int64(3), int64(9), "").
			Return(&models.Application{ID: "app_3_def", OpportunityID: 3, ConsultantID: 9}, nil)

		w := perform(opportunityRouter(svc, adminCaller()), http.MethodPost, "/opportunities/3/apply",
			dto.ApplyRequest{ConsultantID: 9})

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("without consultant id", func(t *testing.T) {
		svc := new(mockOpportunityService)

		w := perform(opportunityRouter(svc, adminCaller()), http.MethodPost, "/opportunities/3/apply", dto.ApplyRequest{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "consultantId", decodeError(t, w).Error.Field)
	})
}

func TestApplyMapsServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"duplicate", apperrors.ErrAlreadyApplied, http.StatusConflict},
		{"missing opportunity", apperrors.ErrOpportunityNotFound, http.StatusNotFound},
		{"closed", apperrors.ErrOpportunityClosed, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockOpportunityService)
			svc.On("Apply", mock.Anything, int64(3), int64(7), "").Return(nil, tt.err)

			w := perform(opportunityRouter(svc, consultantCaller(20, 7)), http.MethodPost, "/opportunities/3/apply",
				dto.ApplyRequest{})
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAcceptApplication(t *testing.T) {
	svc := new(mockOpportunityService)
	svc.On("AcceptApplication", mock.Anything, "app_3_abc", int64(1)).Return(&dto.DecisionResponse{
		Application: &models.Application{ID: "app_3_abc", Status: models.ApplicationAccepted},
		Assignment:  &models.Assignment{ID: 11},
		Message:     "Application accepted successfully",
	}, nil)

	w := perform(opportunityRouter(svc, adminCaller()), http.MethodPost, "/applications/app_3_abc/accept", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.DecisionResponse
	decodeData(t, w, &resp)
	assert.Equal(t, models.ApplicationAccepted, resp.Application.Status)
	assert.Equal(t, int64(11), resp.Assignment.ID)
	svc.AssertExpectations(t)
}

func TestDeclineProcessedApplication(t *testing.T) {
	svc := new(mockOpportunityService)
	svc.On("DeclineApplication", mock.Anything, "app_3_abc", int64(1)).Return(nil, apperrors.ErrApplicationNotPending)

	w := perform(opportunityRouter(svc, adminCaller()), http.MethodPost, "/applications/app_3_abc/decline", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrorCodeConflict, decodeError(t, w).Error.Code)
}

func TestGetOpportunityNotFound(t *testing.T) {
	svc := new(mockOpportunityService)
	svc.On("GetOpportunity", mock.Anything, int64(99)).Return(nil, apperrors.ErrOpportunityNotFound)

	w := perform(opportunityRouter(svc, consultantCaller(20, 7)), http.MethodGet, "/opportunities/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, decodeError(t, w).Error.Code)
}
