package calendar

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/reminder"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/timerecord"
)

// The calendar only reads from the stores that feed it. Each interface is the
// subset of the owning domain's repository the aggregation needs.

type LeaveRepository interface {
	ListOverlapping(ctx context.Context, start, end time.Time) ([]leave.LeaveRequest, error)
	GetByUserID(ctx context.Context, userID string) ([]leave.LeaveRequest, error)
}

type TimeRecordRepository interface {
	GetForPeriod(ctx context.Context, userID string, start, end time.Time) ([]timerecord.TimeRecord, error)
	GetForUsers(ctx context.Context, userIDs []string, start, end time.Time) ([]timerecord.TimeRecord, error)
}

type ReminderRepository interface {
	ListActiveInRange(ctx context.Context, start, end time.Time) ([]reminder.Reminder, error)
}
