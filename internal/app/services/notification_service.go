package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/repositories"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
)

const notificationListLimit = 100

// NotificationPublisher pushes notifications to live listeners
type NotificationPublisher interface {
	Publish(n *models.Notification)
}

// NotificationService records admin notifications and fans them out
type NotificationService interface {
	Notify(ctx context.Context, kind, title, message string, consultantID *int64) (*models.Notification, error)
	ListNotifications(ctx context.Context, unreadOnly bool) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, id int64) error
}

type notificationServiceImpl struct {
	repo      repositories.INotificationRepository
	publisher NotificationPublisher
	logger    zerolog.Logger
}

// NewNotificationService creates a new NotificationService. publisher may be nil.
func NewNotificationService(repo repositories.INotificationRepository, publisher NotificationPublisher, logger zerolog.Logger) NotificationService {
	return &notificationServiceImpl{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Notify stores a notification and broadcasts it to connected admins
func (s *notificationServiceImpl) Notify(ctx context.Context, kind, title, message string, consultantID *int64) (*models.Notification, error) {
	n := &models.Notification{
		Type:         kind,
		Title:        title,
		Message:      message,
		ConsultantID: consultantID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to record notification: %w", err)
	}
	if s.publisher != nil {
		s.publisher.Publish(n)
	}
	s.logger.Debug().Int64("notificationID", n.ID).Str("type", kind).Msg("Notification recorded")
	return n, nil
}

// ListNotifications returns the latest notifications and the unread count
func (s *notificationServiceImpl) ListNotifications(ctx context.Context, unreadOnly bool) (*dto.NotificationListResponse, error) {
	items, err := s.repo.List(ctx, unreadOnly, notificationListLimit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationListResponse{Notifications: items, UnreadCount: unread}, nil
}

// MarkRead flags a notification as read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: notification ID must be positive", apperrors.ErrValidationFailed)
	}
	return s.repo.MarkRead(ctx, id)
}
