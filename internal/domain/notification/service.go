package notification

import (
	"context"
)

// Service defines the notification service interface
type Service interface {
	// Queue notification (async processing via background workers)
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	QueueBulkNotification(ctx context.Context, reqs []CreateNotificationRequest) error

	// GetUpcoming returns unread notifications scheduled in the next 7 days.
	GetUpcoming(ctx context.Context, userID string) ([]NotificationResponse, error)
	// GetVacationAlerts returns notifications scheduled in the next days days,
	// read or not, ordered by date.
	GetVacationAlerts(ctx context.Context, userID string, days int) ([]NotificationResponse, error)
	MarkAsRead(ctx context.Context, userID string, notificationID string) error

	// SSE subscription
	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}
