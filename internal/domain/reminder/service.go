package reminder

import (
	"context"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/leave"
)

type ReminderService interface {
	CreateForVacation(ctx context.Context, req CreateAutomaticRequest) ([]ReminderResponse, error)
	// CreateForApprovedLeave is the hook run when a manager approves a vacation.
	// It honors the manager's IsEnabled and AutoCreateForNewVacations flags.
	CreateForApprovedLeave(ctx context.Context, request leave.LeaveRequest, managerID string) error
	CreateManual(ctx context.Context, req CreateManualRequest) (ReminderResponse, error)
	Update(ctx context.Context, req UpdateReminderRequest) (ReminderResponse, error)
	Delete(ctx context.Context, reminderID string) error
	ListForLeave(ctx context.Context, leaveRequestID string) ([]ReminderResponse, error)

	GetSettings(ctx context.Context, managerID string) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	// SendDueReminders turns today's active unsent reminders into
	// notifications and marks them sent. It returns the number sent.
	SendDueReminders(ctx context.Context) (int, error)
}
