package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
)

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	if args.Error(0) == nil {
		n.ID = 42
	}
	return args.Error(0)
}

func (m *mockNotificationRepo) List(ctx context.Context, unreadOnly bool, limit uint64) ([]*models.Notification, error) {
	args := m.Called(ctx, unreadOnly, limit)
	n, _ := args.Get(0).([]*models.Notification)
	return n, args.Error(1)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type recordingPublisher struct {
	published []*models.Notification
}

func (p *recordingPublisher) Publish(n *models.Notification) {
	p.published = append(p.published, n)
}

func TestNotifyPublishesAfterStoring(t *testing.T) {
	repo := new(mockNotificationRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil)
	pub := &recordingPublisher{}
	svc := NewNotificationService(repo, pub, zerolog.Nop())

	consultantID := int64(7)
	n, err := svc.Notify(context.Background(), models.NotificationResumeUploaded, "Resume uploaded",
		"Priya Raman uploaded a resume", &consultantID)

	require.NoError(t, err)
	assert.Equal(t, int64(42), n.ID)
	require.Len(t, pub.published, 1)
	assert.Same(t, n, pub.published[0])
	repo.AssertExpectations(t)
}

func TestNotifyStoreFailureSkipsPublish(t *testing.T) {
	repo := new(mockNotificationRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
	pub := &recordingPublisher{}
	svc := NewNotificationService(repo, pub, zerolog.Nop())

	_, err := svc.Notify(context.Background(), models.NotificationApplication, "New application", "", nil)

	require.Error(t, err)
	assert.Empty(t, pub.published)
}

func TestNotifyWithoutPublisher(t *testing.T) {
	repo := new(mockNotificationRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	svc := NewNotificationService(repo, nil, zerolog.Nop())

	_, err := svc.Notify(context.Background(), models.NotificationTrainingComplete, "Training completed", "", nil)
	assert.NoError(t, err)
}

func TestListNotifications(t *testing.T) {
	repo := new(mockNotificationRepo)
	repo.On("List", mock.Anything, true, uint64(notificationListLimit)).
		Return([]*models.Notification{{ID: 1}, {ID: 2}}, nil)
	repo.On("CountUnread", mock.Anything).Return(int64(2), nil)
	svc := NewNotificationService(repo, nil, zerolog.Nop())

	resp, err := svc.ListNotifications(context.Background(), true)

	require.NoError(t, err)
	assert.Len(t, resp.Notifications, 2)
	assert.Equal(t, int64(2), resp.UnreadCount)
}

func TestMarkRead(t *testing.T) {
	repo := new(mockNotificationRepo)
	repo.On("MarkRead", mock.Anything, int64(9)).Return(apperrors.ErrNotificationNotFound)
	svc := NewNotificationService(repo, nil, zerolog.Nop())

	err := svc.MarkRead(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = svc.MarkRead(context.Background(), 9)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
	repo.AssertNotCalled(t, "MarkRead", mock.Anything, int64(0))
}
