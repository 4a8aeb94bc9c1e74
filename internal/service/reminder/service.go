package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/reminder"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/utils"
	"github.com/google/uuid"
)

// LeaveReader is the part of the leave store reminders need.
type LeaveReader interface {
	GetByID(ctx context.Context, id string) (leave.LeaveRequest, error)
}

// Notifier queues notifications for delivery.
type Notifier interface {
	QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error
}

type ReminderServiceImpl struct {
	tx database.Transactor
	reminder.ReminderRepository
	settings   reminder.SettingsRepository
	leaves     LeaveReader
	users      user.UserRepository
	notifier   Notifier
	calendar   calendar.Invalidator
	translator *i18n.Translator
	loc        *time.Location
	now        func() time.Time
}

func NewReminderService(
	tx database.Transactor,
	reminderRepository reminder.ReminderRepository,
	settings reminder.SettingsRepository,
	leaves LeaveReader,
	users user.UserRepository,
	notifier Notifier,
	calendar calendar.Invalidator,
	translator *i18n.Translator,
	loc *time.Location,
) *ReminderServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderServiceImpl{
		tx:                 tx,
		ReminderRepository: reminderRepository,
		settings:           settings,
		leaves:             leaves,
		users:              users,
		notifier:           notifier,
		calendar:           calendar,
		translator:         translator,
		loc:                loc,
		now:                time.Now,
	}
}

func (s *ReminderServiceImpl) today() time.Time {
	return utils.Day(s.now().In(s.loc))
}

// CreateForVacation implements reminder.ReminderService.
func (s *ReminderServiceImpl) CreateForVacation(ctx context.Context, req reminder.CreateAutomaticRequest) ([]reminder.ReminderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	request, err := s.leaves.GetByID(ctx, req.LeaveRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave request: %w", err)
	}

	settings, err := s.settings.GetByManager(ctx, req.ManagerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder settings: %w", err)
	}
	if settings != nil && !settings.IsEnabled {
		return nil, reminder.ErrRemindersDisabled
	}

	created, err := s.createAutomatic(ctx, request, req.ManagerID, settings, req.CustomDays)
	if err != nil {
		return nil, err
	}

	responses := make([]reminder.ReminderResponse, 0, len(created))
	for _, r := range created {
		responses = append(responses, reminder.NewReminderResponse(r))
	}
	return responses, nil
}

// CreateForApprovedLeave implements reminder.ReminderService.
func (s *ReminderServiceImpl) CreateForApprovedLeave(ctx context.Context, request leave.LeaveRequest, managerID string) error {
	if request.Type != leave.LeaveTypeVacation {
		return nil
	}

	settings, err := s.settings.GetByManager(ctx, managerID)
	if err != nil {
		return fmt.Errorf("failed to get reminder settings: %w", err)
	}
	effective := reminder.DefaultSettings(managerID)
	if settings != nil {
		effective = *settings
	}
	if !effective.IsEnabled || !effective.AutoCreateForNewVacations {
		slog.Debug("automatic reminders skipped", "leave_request_id", request.ID, "manager_id", managerID)
		return nil
	}

	_, err = s.createAutomatic(ctx, request, managerID, settings, nil)
	return err
}

// createAutomatic stores one reminder per offset. Offsets come from
// customDays, then the saved settings, then reminder.FallbackReminderDays.
func (s *ReminderServiceImpl) createAutomatic(ctx context.Context, request leave.LeaveRequest, managerID string, settings *reminder.Settings, customDays []int) ([]reminder.Reminder, error) {
	if request.Type != leave.LeaveTypeVacation {
		return nil, reminder.ErrLeaveNotVacation
	}

	days := reminder.FallbackReminderDays
	switch {
	case len(customDays) > 0:
		days = customDays
	case settings != nil && len(settings.DefaultReminders) > 0:
		days = settings.DefaultReminders
	}

	message, err := s.message(ctx, request, settings)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dates := reminder.ReminderDates(utils.Day(request.StartDate), s.today(), days)
	reminders := make([]reminder.Reminder, 0, len(dates))
	for _, offset := range reminder.SortedOffsets(dates) {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate reminder ID: %w", err)
		}
		reminders = append(reminders, reminder.Reminder{
			ID:                 id.String(),
			LeaveRequestID:     request.ID,
			UserID:             request.UserID,
			Type:               reminder.ReminderTypeAutomatic,
			ReminderDate:       dates[offset],
			DaysBeforeVacation: offset,
			IsActive:           true,
			Message:            message,
			CreatedBy:          managerID,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	}
	if len(reminders) == 0 {
		return reminders, nil
	}

	if err := s.ReminderRepository.CreateBatch(ctx, reminders); err != nil {
		return nil, fmt.Errorf("failed to create reminders: %w", err)
	}

	s.calendar.Invalidate()
	slog.Info("automatic reminders created", "leave_request_id", request.ID, "count", len(reminders))
	return reminders, nil
}

// message renders the manager's template, or the localized default text.
func (s *ReminderServiceImpl) message(ctx context.Context, request leave.LeaveRequest, settings *reminder.Settings) (string, error) {
	if settings != nil && settings.CustomMessage != nil && *settings.CustomMessage != "" {
		employee, err := s.users.GetByID(ctx, request.UserID)
		if err != nil {
			return "", fmt.Errorf("failed to get employee: %w", err)
		}
		return reminder.RenderTemplate(*settings.CustomMessage, employee.DisplayName(), request.StartDate, request.EndDate), nil
	}
	return s.translator.Localizer().MsgWith(i18n.KeyReminderDefault, map[string]interface{}{
		"StartDate": request.StartDate.Format(reminder.GermanDateLayout),
		"EndDate":   request.EndDate.Format(reminder.GermanDateLayout),
	}), nil
}

// CreateManual implements reminder.ReminderService.
func (s *ReminderServiceImpl) CreateManual(ctx context.Context, req reminder.CreateManualRequest) (reminder.ReminderResponse, error) {
	if err := req.Validate(); err != nil {
		return reminder.ReminderResponse{}, err
	}

	request, err := s.leaves.GetByID(ctx, req.LeaveRequestID)
	if err != nil {
		return reminder.ReminderResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	date, _ := utils.ParseDate(req.ReminderDate)
	start := utils.Day(request.StartDate)
	if date.After(start) {
		return reminder.ReminderResponse{}, reminder.ErrInvalidReminderDate
	}

	id, err := uuid.NewV7()
	if err != nil {
		return reminder.ReminderResponse{}, fmt.Errorf("failed to generate reminder ID: %w", err)
	}

	now := s.now()
	created, err := s.ReminderRepository.Create(ctx, reminder.Reminder{
		ID:                 id.String(),
		LeaveRequestID:     request.ID,
		UserID:             request.UserID,
		Type:               reminder.ReminderTypeManual,
		ReminderDate:       date,
		DaysBeforeVacation: utils.DaysBetween(date, start),
		IsActive:           true,
		Message:            req.Message,
		CreatedBy:          req.ManagerID,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		return reminder.ReminderResponse{}, fmt.Errorf("failed to create reminder: %w", err)
	}

	s.calendar.Invalidate()
	return reminder.NewReminderResponse(created), nil
}

// Update implements reminder.ReminderService.
func (s *ReminderServiceImpl) Update(ctx context.Context, req reminder.UpdateReminderRequest) (reminder.ReminderResponse, error) {
	if err := req.Validate(); err != nil {
		return reminder.ReminderResponse{}, err
	}

	var updated reminder.Reminder
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		r, err := s.ReminderRepository.GetByID(ctx, req.ID)
		if err != nil {
			return fmt.Errorf("failed to get reminder: %w", err)
		}

		if req.IsActive != nil {
			r.IsActive = *req.IsActive
		}
		if req.Message != nil {
			r.Message = *req.Message
		}
		if req.ReminderDate != nil {
			date, _ := utils.ParseDate(*req.ReminderDate)
			request, err := s.leaves.GetByID(ctx, r.LeaveRequestID)
			if err != nil {
				return fmt.Errorf("failed to get leave request: %w", err)
			}
			start := utils.Day(request.StartDate)
			if date.After(start) {
				return reminder.ErrInvalidReminderDate
			}
			r.ReminderDate = date
			r.DaysBeforeVacation = utils.DaysBetween(date, start)
		}
		r.UpdatedAt = s.now()

		if err := s.ReminderRepository.Update(ctx, r); err != nil {
			return fmt.Errorf("failed to update reminder: %w", err)
		}
		updated = r
		return nil
	})
	if err != nil {
		return reminder.ReminderResponse{}, err
	}

	s.calendar.Invalidate()
	return reminder.NewReminderResponse(updated), nil
}

// Delete implements reminder.ReminderService.
func (s *ReminderServiceImpl) Delete(ctx context.Context, reminderID string) error {
	if err := s.ReminderRepository.Delete(ctx, reminderID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	s.calendar.Invalidate()
	return nil
}

// ListForLeave implements reminder.ReminderService.
func (s *ReminderServiceImpl) ListForLeave(ctx context.Context, leaveRequestID string) ([]reminder.ReminderResponse, error) {
	reminders, err := s.ReminderRepository.ListByLeaveRequest(ctx, leaveRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	responses := make([]reminder.ReminderResponse, 0, len(reminders))
	for _, r := range reminders {
		responses = append(responses, reminder.NewReminderResponse(r))
	}
	return responses, nil
}

// GetSettings implements reminder.ReminderService. Managers without saved
// settings get the defaults.
func (s *ReminderServiceImpl) GetSettings(ctx context.Context, managerID string) (reminder.SettingsResponse, error) {
	settings, err := s.settings.GetByManager(ctx, managerID)
	if err != nil {
		return reminder.SettingsResponse{}, fmt.Errorf("failed to get reminder settings: %w", err)
	}
	if settings == nil {
		return reminder.NewSettingsResponse(reminder.DefaultSettings(managerID)), nil
	}
	return reminder.NewSettingsResponse(*settings), nil
}

// UpdateSettings implements reminder.ReminderService.
func (s *ReminderServiceImpl) UpdateSettings(ctx context.Context, req reminder.UpdateSettingsRequest) (reminder.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return reminder.SettingsResponse{}, err
	}

	var saved reminder.Settings
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.settings.GetByManager(ctx, req.ManagerID)
		if err != nil {
			return fmt.Errorf("failed to get reminder settings: %w", err)
		}
		base := reminder.DefaultSettings(req.ManagerID)
		if current != nil {
			base = *current
		}

		next := req.Apply(base)
		next.UpdatedAt = s.now()
		if current == nil {
			next.CreatedAt = next.UpdatedAt
		}

		saved, err = s.settings.Upsert(ctx, next)
		if err != nil {
			return fmt.Errorf("failed to save reminder settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return reminder.SettingsResponse{}, err
	}
	return reminder.NewSettingsResponse(saved), nil
}

// SendDueReminders implements reminder.ReminderService. Reminders are marked
// sent only after their notifications were queued.
func (s *ReminderServiceImpl) SendDueReminders(ctx context.Context) (int, error) {
	today := s.today()
	due, err := s.ReminderRepository.ListDue(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list due reminders: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}

	loc := s.translator.Localizer()
	reqs := make([]notification.CreateNotificationRequest, 0, len(due))
	ids := make([]string, 0, len(due))
	for _, r := range due {
		req := notification.CreateNotificationRequest{
			RecipientID:    r.CreatedBy,
			Type:           notification.TypeVacationReminder,
			ReminderID:     r.ID,
			LeaveRequestID: r.LeaveRequestID,
			Title:          loc.Plural(i18n.KeyReminderTitle, r.DaysBeforeVacation),
			Message:        r.Message,
			ScheduledFor:   today,
		}

		if request, err := s.leaves.GetByID(ctx, r.LeaveRequestID); err == nil {
			req.VacationStart = request.StartDate
			req.VacationEnd = request.EndDate
		} else {
			slog.Warn("leave request of due reminder not found", "reminder_id", r.ID, "error", err)
		}
		if employee, err := s.users.GetByID(ctx, r.UserID); err == nil {
			req.EmployeeName = employee.DisplayName()
		}

		reqs = append(reqs, req)
		ids = append(ids, r.ID)
	}

	if err := s.notifier.QueueBulkNotification(ctx, reqs); err != nil {
		return 0, fmt.Errorf("failed to queue reminder notifications: %w", err)
	}
	if err := s.ReminderRepository.MarkSent(ctx, ids); err != nil {
		return 0, fmt.Errorf("failed to mark reminders sent: %w", err)
	}

	s.calendar.Invalidate()
	slog.Info("due reminders sent", "date", utils.FormatDate(today), "count", len(ids))
	return len(ids), nil
}

var _ reminder.ReminderService = (*ReminderServiceImpl)(nil)
