package timerecord

import (
	"context"
	"time"
)

// TimeRecordRepository defines data access methods for time_records.
type TimeRecordRepository interface {
	Create(ctx context.Context, record TimeRecord) (TimeRecord, error)
	Update(ctx context.Context, record TimeRecord) error

	// GetByUserAndDate returns the user's latest record on date, or nil when
	// there is none.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*TimeRecord, error)

	// GetForPeriod returns the user's records with start <= date <= end,
	// ordered by date.
	GetForPeriod(ctx context.Context, userID string, start, end time.Time) ([]TimeRecord, error)
	GetForUsers(ctx context.Context, userIDs []string, start, end time.Time) ([]TimeRecord, error)
}
