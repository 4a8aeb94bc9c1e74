package reminder

import (
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/validator"
)

type CreateAutomaticRequest struct {
	LeaveRequestID string `json:"-"`
	ManagerID      string `json:"-"`
	CustomDays     []int  `json:"custom_days,omitempty"`
}

func (r *CreateAutomaticRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.LeaveRequestID) {
		errs.Add("leave_request_id", "leave_request_id is required")
	}
	if validator.IsEmpty(r.ManagerID) {
		errs.Add("manager_id", "manager_id is required")
	}
	for _, d := range r.CustomDays {
		if d < 0 || d > 365 {
			errs.Add("custom_days", "custom_days must be between 0 and 365")
			break
		}
	}
	return errs.OrNil()
}

type CreateManualRequest struct {
	LeaveRequestID string `json:"leave_request_id"`
	ReminderDate   string `json:"reminder_date"`
	Message        string `json:"message"`
	ManagerID      string `json:"-"`
}

func (r *CreateManualRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.LeaveRequestID) {
		errs.Add("leave_request_id", "leave_request_id is required")
	}
	if _, ok := validator.IsValidDate(r.ReminderDate); !ok {
		errs.Add("reminder_date", "reminder_date must be in YYYY-MM-DD format")
	}
	if validator.IsEmpty(r.Message) {
		errs.Add("message", "message is required")
	} else if len(r.Message) > 500 {
		errs.Add("message", "message must not exceed 500 characters")
	}
	if validator.IsEmpty(r.ManagerID) {
		errs.Add("manager_id", "manager_id is required")
	}
	return errs.OrNil()
}

type UpdateReminderRequest struct {
	ID           string  `json:"-"`
	IsActive     *bool   `json:"is_active,omitempty"`
	Message      *string `json:"message,omitempty"`
	ReminderDate *string `json:"reminder_date,omitempty"`
}

func (r *UpdateReminderRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Message != nil && validator.IsEmpty(*r.Message) {
		errs.Add("message", "message must not be empty")
	}
	if r.ReminderDate != nil {
		if _, ok := validator.IsValidDate(*r.ReminderDate); !ok {
			errs.Add("reminder_date", "reminder_date must be in YYYY-MM-DD format")
		}
	}
	return errs.OrNil()
}

type UpdateSettingsRequest struct {
	ManagerID                 string  `json:"-"`
	IsEnabled                 *bool   `json:"is_enabled,omitempty"`
	DefaultReminders          []int   `json:"default_reminders,omitempty"`
	CustomMessage             *string `json:"custom_message,omitempty"`
	NotificationMethod        *string `json:"notification_method,omitempty"`
	AutoCreateForNewVacations *bool   `json:"auto_create_for_new_vacations,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ManagerID) {
		errs.Add("manager_id", "manager_id is required")
	}
	for _, d := range r.DefaultReminders {
		if d < 0 || d > 365 {
			errs.Add("default_reminders", "default_reminders must be between 0 and 365")
			break
		}
	}
	if r.NotificationMethod != nil && !validator.IsInSlice(*r.NotificationMethod, []string{
		string(NotificationMethodApp), string(NotificationMethodEmail), string(NotificationMethodBoth),
	}) {
		errs.Add("notification_method", "notification_method must be one of: APP, EMAIL, BOTH")
	}
	return errs.OrNil()
}

// Apply merges the non-nil fields into s.
func (r *UpdateSettingsRequest) Apply(s Settings) Settings {
	if r.IsEnabled != nil {
		s.IsEnabled = *r.IsEnabled
	}
	if r.DefaultReminders != nil {
		s.DefaultReminders = r.DefaultReminders
	}
	if r.CustomMessage != nil {
		if validator.IsEmpty(*r.CustomMessage) {
			s.CustomMessage = nil
		} else {
			s.CustomMessage = r.CustomMessage
		}
	}
	if r.NotificationMethod != nil {
		s.NotificationMethod = NotificationMethod(*r.NotificationMethod)
	}
	if r.AutoCreateForNewVacations != nil {
		s.AutoCreateForNewVacations = *r.AutoCreateForNewVacations
	}
	return s
}

type ReminderResponse struct {
	ID                 string    `json:"id"`
	LeaveRequestID     string    `json:"leave_request_id"`
	UserID             string    `json:"user_id"`
	ReminderType       string    `json:"reminder_type"`
	ReminderDate       string    `json:"reminder_date"`
	DaysBeforeVacation int       `json:"days_before_vacation"`
	IsActive           bool      `json:"is_active"`
	IsSent             bool      `json:"is_sent"`
	Message            string    `json:"message"`
	CreatedBy          string    `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewReminderResponse(r Reminder) ReminderResponse {
	return ReminderResponse{
		ID:                 r.ID,
		LeaveRequestID:     r.LeaveRequestID,
		UserID:             r.UserID,
		ReminderType:       string(r.Type),
		ReminderDate:       r.ReminderDate.Format("2006-01-02"),
		DaysBeforeVacation: r.DaysBeforeVacation,
		IsActive:           r.IsActive,
		IsSent:             r.IsSent,
		Message:            r.Message,
		CreatedBy:          r.CreatedBy,
		CreatedAt:          r.CreatedAt,
	}
}

type SettingsResponse struct {
	ManagerID                 string  `json:"manager_id"`
	IsEnabled                 bool    `json:"is_enabled"`
	DefaultReminders          []int   `json:"default_reminders"`
	CustomMessage             *string `json:"custom_message,omitempty"`
	NotificationMethod        string  `json:"notification_method"`
	AutoCreateForNewVacations bool    `json:"auto_create_for_new_vacations"`
}

func NewSettingsResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		ManagerID:                 s.ManagerID,
		IsEnabled:                 s.IsEnabled,
		DefaultReminders:          s.DefaultReminders,
		CustomMessage:             s.CustomMessage,
		NotificationMethod:        string(s.NotificationMethod),
		AutoCreateForNewVacations: s.AutoCreateForNewVacations,
	}
}
