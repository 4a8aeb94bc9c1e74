package reminder

import (
	"context"
	"time"
)

type ReminderRepository interface {
	Create(ctx context.Context, r Reminder) (Reminder, error)
	CreateBatch(ctx context.Context, rs []Reminder) error
	GetByID(ctx context.Context, id string) (Reminder, error)
	Update(ctx context.Context, r Reminder) error
	Delete(ctx context.Context, id string) error
	ListByLeaveRequest(ctx context.Context, leaveRequestID string) ([]Reminder, error)

	// ListActiveInRange returns active reminders dated within [start, end].
	ListActiveInRange(ctx context.Context, start, end time.Time) ([]Reminder, error)

	// ListDue returns active, unsent reminders dated on day.
	ListDue(ctx context.Context, day time.Time) ([]Reminder, error)
	MarkSent(ctx context.Context, ids []string) error
}

type SettingsRepository interface {
	// GetByManager returns nil when the manager has no saved settings.
	GetByManager(ctx context.Context, managerID string) (*Settings, error)
	Upsert(ctx context.Context, s Settings) (Settings, error)
}
