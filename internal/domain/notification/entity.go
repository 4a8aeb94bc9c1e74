package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeVacationReminder NotificationType = "vacation_reminder"
)

// Notification is delivered to the manager who set a reminder once the
// reminder becomes due.
type Notification struct {
	ID             string
	RecipientID    string
	Type           NotificationType
	ReminderID     string
	LeaveRequestID string
	Title          string
	Message        string
	EmployeeName   string
	VacationStart  time.Time
	VacationEnd    time.Time
	ScheduledFor   time.Time
	IsRead         bool
	ReadAt         *time.Time
	CreatedAt      time.Time
}
