package notification

import (
	"context"
	"time"
)

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error

	// ListScheduled returns the recipient's notifications scheduled within
	// [from, to], ordered by ScheduledFor.
	ListScheduled(ctx context.Context, recipientID string, from, to time.Time, unreadOnly bool) ([]*Notification, error)

	// MarkAsRead returns ErrNotificationNotFound when no row of the recipient
	// matches id.
	MarkAsRead(ctx context.Context, id string, recipientID string) error
}
