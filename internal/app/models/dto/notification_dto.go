package dto

import "github.com/yigit/benchtrack/internal/app/models"

// NotificationListResponse lists admin notifications
type NotificationListResponse struct {
	Notifications []*models.Notification `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount" example:"3"`
}
