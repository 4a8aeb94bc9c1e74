package notification

import (
	"time"
)

// ============= Request DTOs =============

// CreateNotificationRequest represents a request to create a notification
type CreateNotificationRequest struct {
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
}

// ============= Response DTOs =============

// VacationDates is the leave interval a notification refers to.
type VacationDates struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID             string           `json:"id"`
	Type           NotificationType `json:"type"`
	ReminderID     string           `json:"reminder_id"`
	LeaveRequestID string           `json:"leave_request_id"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	EmployeeName   string           `json:"employee_name"`
	VacationDates  VacationDates    `json:"vacation_dates"`
	ScheduledFor   string           `json:"scheduled_for"`
	IsRead         bool             `json:"is_read"`
	ReadAt         *time.Time       `json:"read_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ============= SSE Event =============

// SSEEvent represents a Server-Sent Event
type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}

// SSETokenResponse carries a short-lived token for the event stream
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
