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
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
)

type mockNotificationService struct {
	services.NotificationService
	mock.Mock
}

func (m *mockNotificationService) ListNotifications(ctx context.Context, unreadOnly bool) (*dto.NotificationListResponse, error) {
	args := m.Called(ctx, unreadOnly)
	r, _ := args.Get(0).(*dto.NotificationListResponse)
	return r, args.Error(1)
}

func (m *mockNotificationService) MarkRead(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockDashboardService struct {
	mock.Mock
}

func (m *mockDashboardService) GetMetrics(ctx context.Context) (*dto.DashboardMetricsResponse, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(*dto.DashboardMetricsResponse)
	return r, args.Error(1)
}

func (m *mockDashboardService) Health(ctx context.Context) (*dto.HealthResponse, bool) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(*dto.HealthResponse)
	return r, args.Bool(1)
}

func TestListNotificationsUnreadFlag(t *testing.T) {
	svc := new(mockNotificationService)
	svc.On("ListNotifications", mock.Anything, true).Return(&dto.NotificationListResponse{
		Notifications: []*models.Notification{{ID: 5, Type: models.NotificationResumeUploaded}},
		UnreadCount:   1,
	}, nil)
	svc.On("ListNotifications", mock.Anything, false).Return(&dto.NotificationListResponse{
		Notifications: []*models.Notification{},
	}, nil)

	c := NewNotificationController(svc, testLogger)
	r := newTestRouter(adminCaller())
	r.GET("/notifications", c.ListNotifications)

	w := perform(r, http.MethodGet, "/notifications?unread=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.NotificationListResponse
	decodeData(t, w, &resp)
	assert.Equal(t, int64(1), resp.UnreadCount)

	// anything unparsable lists everything
	w = perform(r, http.MethodGet, "/notifications?unread=maybe", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestMarkRead(t *testing.T) {
	svc := new(mockNotificationService)
	svc.On("MarkRead", mock.Anything, int64(5)).Return(nil)
	svc.On("MarkRead", mock.Anything, int64(6)).Return(apperrors.ErrNotificationNotFound)

	c := NewNotificationController(svc, testLogger)
	r := newTestRouter(adminCaller())
	r.POST("/notifications/:id/read", c.MarkRead)

	assert.Equal(t, http.StatusOK, perform(r, http.MethodPost, "/notifications/5/read", nil).Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodPost, "/notifications/6/read", nil).Code)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		healthy bool
		status  int
	}{
		{"healthy", true, http.StatusOK},
		{"database down", false, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockDashboardService)
			resp := &dto.HealthResponse{Status: "healthy", Database: "connected"}
			if !tt.healthy {
				resp = &dto.HealthResponse{Status: "unhealthy", Database: "disconnected"}
			}
			svc.On("Health", mock.Anything).Return(resp, tt.healthy)

			c := NewDashboardController(svc, testLogger)
			r := newTestRouter(nil)
			r.GET("/health", c.Health)

			w := perform(r, http.MethodGet, "/health", nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), resp.Database)
		})
	}
}

func TestPing(t *testing.T) {
	c := NewDashboardController(new(mockDashboardService), testLogger)
	r := newTestRouter(nil)
	r.GET("/ping", c.Ping)

	w := perform(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.SuccessResponse
	decodeData(t, w, &resp)
	assert.Equal(t, "pong", resp.Message)
}

func TestGetMetricsError(t *testing.T) {
	svc := new(mockDashboardService)
	svc.On("GetMetrics", mock.Anything).Return(nil, assert.AnError)

	c := NewDashboardController(svc, testLogger)
	r := newTestRouter(adminCaller())
	r.GET("/dashboard/metrics", c.GetMetrics)

	w := perform(r, http.MethodGet, "/dashboard/metrics", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrorCodeInternalServer, decodeError(t, w).Error.Code)
}
