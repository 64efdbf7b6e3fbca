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

type mockConsultantService struct {
	services.ConsultantService
	mock.Mock
}

func (m *mockConsultantService) CreateConsultant(ctx context.Context, req *dto.CreateConsultantRequest) (*models.Consultant, error) {
	args := m.Called(ctx, req)
	c, _ := args.Get(0).(*models.Consultant)
	return c, args.Error(1)
}

func (m *mockConsultantService) GetConsultant(ctx context.Context, id int64) (*models.Consultant, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Consultant)
	return c, args.Error(1)
}

func (m *mockConsultantService) ListConsultants(ctx context.Context, filter models.ConsultantFilter) (*dto.ConsultantListResponse, error) {
	args := m.Called(ctx, filter)
	r, _ := args.Get(0).(*dto.ConsultantListResponse)
	return r, args.Error(1)
}

func (m *mockConsultantService) GetDashboard(ctx context.Context, id int64) (*dto.ConsultantDashboardResponse, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*dto.ConsultantDashboardResponse)
	return r, args.Error(1)
}

func (m *mockConsultantService) GetDashboardByEmail(ctx context.Context, email string) (*dto.ConsultantDashboardResponse, error) {
	args := m.Called(ctx, email)
	r, _ := args.Get(0).(*dto.ConsultantDashboardResponse)
	return r, args.Error(1)
}

func consultantRouter(svc services.ConsultantService, opps services.OpportunityService, caller *middleware.Caller) http.Handler {
	c := NewConsultantController(svc, opps, testLogger)
	r := newTestRouter(caller)
	r.GET("/consultants", c.ListConsultants)
	r.POST("/consultants", c.CreateConsultant)
	r.GET("/consultants/:id", c.GetConsultant)
	r.GET("/consultants/:id/applications", c.ListApplications)
	r.GET("/dashboard/consultant/:email", c.GetDashboardByEmail)
	r.GET("/dashboard/me", c.GetMyDashboard)
	return r
}

func TestListConsultantsFilter(t *testing.T) {
	svc := new(mockConsultantService)
	svc.On("ListConsultants", mock.Anything, mock.MatchedBy(func(f models.ConsultantFilter) bool {
		return f.Page == 2 && f.PageSize == 10 &&
			f.Status != nil && *f.Status == models.ConsultantAvailable &&
			f.Search != nil && *f.Search == "priya" && f.PrimarySkill == nil
	})).Return(&dto.ConsultantListResponse{
		Consultants: []*models.Consultant{{ID: 4, Name: "Priya Raman"}},
		Pagination:  dto.PaginationInfo{CurrentPage: 2, PageSize: 10, TotalItems: 11, TotalPages: 2},
	}, nil)

	w := perform(consultantRouter(svc, nil, adminCaller()), http.MethodGet,
		"/consultants?page=2&pageSize=10&status=available&search=priya", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.ConsultantListResponse
	decodeData(t, w, &resp)
	assert.Len(t, resp.Consultants, 1)
	assert.Equal(t, int64(11), resp.Pagination.TotalItems)
	svc.AssertExpectations(t)
}

func TestListConsultantsRejectsUnknownStatus(t *testing.T) {
	svc := new(mockConsultantService)

	w := perform(consultantRouter(svc, nil, adminCaller()), http.MethodGet, "/consultants?status=benched", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "status", decodeError(t, w).Error.Field)
	svc.AssertNotCalled(t, "ListConsultants", mock.Anything, mock.Anything)
}

func TestCreateConsultant(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(mockConsultantService)
		svc.On("CreateConsultant", mock.Anything, mock.MatchedBy(func(req *dto.CreateConsultantRequest) bool {
			return req.Email == "priya@bench.example"
		})).Return(&models.Consultant{ID: 4, Name: "Priya Raman", Email: "priya@bench.example"}, nil)

		w := perform(consultantRouter(svc, nil, adminCaller()), http.MethodPost, "/consultants",
			dto.CreateConsultantRequest{Name: "Priya Raman", Email: "priya@bench.example", Skills: []string{"Go"}})

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("invalid body", func(t *testing.T) {
		svc := new(mockConsultantService)

		w := perform(consultantRouter(svc, nil, adminCaller()), http.MethodPost, "/consultants",
			dto.CreateConsultantRequest{Name: "P", Email: "not-an-email"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateConsultant", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := new(mockConsultantService)
		svc.On("CreateConsultant", mock.Anything, mock.Anything).Return(nil, apperrors.ErrEmailAlreadyExists)

		w := perform(consultantRouter(svc, nil, adminCaller()), http.MethodPost, "/consultants",
			dto.CreateConsultantRequest{Name: "Priya Raman", Email: "priya@bench.example"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestGetConsultantAccess(t *testing.T) {
	svc := new(mockConsultantService)
	svc.On("GetConsultant", mock.Anything, int64(7)).Return(&models.Consultant{ID: 7}, nil)

	assert.Equal(t, http.StatusOK,
		perform(consultantRouter(svc, nil, consultantCaller(20, 7)), http.MethodGet, "/consultants/7", nil).Code)
	assert.Equal(t, http.StatusForbidden,
		perform(consultantRouter(svc, nil, consultantCaller(21, 8)), http.MethodGet, "/consultants/7", nil).Code)
	svc.AssertNumberOfCalls(t, "GetConsultant", 1)
}

func TestGetDashboardByEmailChecksOwnership(t *testing.T) {
	svc := new(mockConsultantService)
	svc.On("GetDashboardByEmail", mock.Anything, "priya@bench.example").
		Return(&dto.ConsultantDashboardResponse{ConsultantID: 7, Email: "priya@bench.example"}, nil)

	w := perform(consultantRouter(svc, nil, consultantCaller(20, 7)), http.MethodGet,
		"/dashboard/consultant/priya@bench.example", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(consultantRouter(svc, nil, consultantCaller(21, 8)), http.MethodGet,
		"/dashboard/consultant/priya@bench.example", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetMyDashboard(t *testing.T) {
	svc := new(mockConsultantService)
	svc.On("GetDashboard", mock.Anything, int64(7)).
		Return(&dto.ConsultantDashboardResponse{ConsultantID: 7, AttendanceRate: 86.7}, nil)

	w := perform(consultantRouter(svc, nil, consultantCaller(20, 7)), http.MethodGet, "/dashboard/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.ConsultantDashboardResponse
	decodeData(t, w, &resp)
	assert.InDelta(t, 86.7, resp.AttendanceRate, 0.001)

	// admins have no consultant profile of their own
	w = perform(consultantRouter(svc, nil, adminCaller()), http.MethodGet, "/dashboard/me", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListApplications(t *testing.T) {
	opps := new(mockOpportunityService)
	opps.On("ListConsultantApplications", mock.Anything, int64(7)).
		Return([]*models.Application{{ID: "app_3_abc", ConsultantID: 7}}, nil)

	w := perform(consultantRouter(new(mockConsultantService), opps, consultantCaller(20, 7)), http.MethodGet,
		"/consultants/7/applications", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var apps []*models.Application
	decodeData(t, w, &apps)
	assert.Len(t, apps, 1)
	opps.AssertExpectations(t)
}
