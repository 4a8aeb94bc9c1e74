package reminder

import "errors"

var (
	ErrReminderNotFound    = errors.New("reminder not found")
	ErrRemindersDisabled   = errors.New("reminders are disabled for this manager")
	ErrLeaveNotVacation    = errors.New("reminders can only be set for vacation requests")
	ErrInvalidReminderDate = errors.New("reminder date must not be after the vacation start")
)
