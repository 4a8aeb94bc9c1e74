package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/reminder"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/team"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User and team errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserIDRequired):
		Unauthorized(w, "User ID not found in token")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, team.ErrTeamNotFound):
		NotFound(w, "Team not found")

	// Calendar domain errors
	case errors.Is(err, calendar.ErrUserAccessDenied):
		Forbidden(w, err.Error())
	case errors.Is(err, calendar.ErrInvalidRangeView):
		BadRequest(w, "Invalid range view", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave request overlaps an existing request")
	case errors.Is(err, leave.ErrUnauthorizedAccess):
		Forbidden(w, err.Error())

	// Time record errors
	case errors.Is(err, timerecord.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, timerecord.ErrDayAlreadyRecorded):
		Conflict(w, "Time already recorded for today")
	case errors.Is(err, timerecord.ErrNotClockedIn):
		Conflict(w, "Not clocked in")
	case errors.Is(err, timerecord.ErrTimeRecordNotFound):
		NotFound(w, "Time record not found")
	case errors.Is(err, timerecord.ErrInvalidClockOut):
		BadRequest(w, err.Error(), nil)

	// Reminder errors
	case errors.Is(err, reminder.ErrReminderNotFound):
		NotFound(w, "Reminder not found")
	case errors.Is(err, reminder.ErrRemindersDisabled):
		Conflict(w, "Reminders are disabled")
	case errors.Is(err, reminder.ErrLeaveNotVacation):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, reminder.ErrInvalidReminderDate):
		BadRequest(w, err.Error(), nil)

	// Notification errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrQueueFull):
		ServiceUnavailable(w, "Notification queue is full")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
