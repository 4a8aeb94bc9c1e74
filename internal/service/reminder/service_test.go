package reminder

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/reminder"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memReminders struct {
	items map[string]reminder.Reminder
	sent  []string
}

func newMemReminders() *memReminders {
	return &memReminders{items: make(map[string]reminder.Reminder)}
}

func (m *memReminders) Create(ctx context.Context, r reminder.Reminder) (reminder.Reminder, error) {
	m.items[r.ID] = r
	return r, nil
}

func (m *memReminders) CreateBatch(ctx context.Context, rs []reminder.Reminder) error {
	for _, r := range rs {
		m.items[r.ID] = r
	}
	return nil
}

func (m *memReminders) GetByID(ctx context.Context, id string) (reminder.Reminder, error) {
	r, ok := m.items[id]
	if !ok {
		return reminder.Reminder{}, reminder.ErrReminderNotFound
	}
	return r, nil
}

func (m *memReminders) Update(ctx context.Context, r reminder.Reminder) error {
	if _, ok := m.items[r.ID]; !ok {
		return reminder.ErrReminderNotFound
	}
	m.items[r.ID] = r
	return nil
}

func (m *memReminders) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return reminder.ErrReminderNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memReminders) ListByLeaveRequest(ctx context.Context, leaveRequestID string) ([]reminder.Reminder, error) {
	var out []reminder.Reminder
	for _, r := range m.items {
		if r.LeaveRequestID == leaveRequestID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReminderDate.Before(out[j].ReminderDate) })
	return out, nil
}

func (m *memReminders) ListActiveInRange(ctx context.Context, start, end time.Time) ([]reminder.Reminder, error) {
	var out []reminder.Reminder
	for _, r := range m.items {
		if r.IsActive && !r.ReminderDate.Before(start) && !r.ReminderDate.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReminders) ListDue(ctx context.Context, day time.Time) ([]reminder.Reminder, error) {
	var out []reminder.Reminder
	for _, r := range m.items {
		if r.IsDue(day) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReminders) MarkSent(ctx context.Context, ids []string) error {
	for _, id := range ids {
		r := m.items[id]
		r.IsSent = true
		m.items[id] = r
		m.sent = append(m.sent, id)
	}
	return nil
}

type memSettings struct {
	byManager map[string]reminder.Settings
}

func (m *memSettings) GetByManager(ctx context.Context, managerID string) (*reminder.Settings, error) {
	s, ok := m.byManager[managerID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memSettings) Upsert(ctx context.Context, s reminder.Settings) (reminder.Settings, error) {
	m.byManager[s.ManagerID] = s
	return s, nil
}

type memLeaves map[string]leave.LeaveRequest

func (m memLeaves) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r, ok := m[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

type memUsers []user.User

func (m memUsers) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range m {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (m memUsers) List(ctx context.Context) ([]user.User, error) { return m, nil }

func (m memUsers) ListByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	var out []user.User
	for _, id := range ids {
		if u, err := m.GetByID(ctx, id); err == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

type recordingNotifier struct {
	queued []notification.CreateNotificationRequest
	err    error
}

func (r *recordingNotifier) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	if r.err != nil {
		return r.err
	}
	r.queued = append(r.queued, reqs...)
	return nil
}

type countingInvalidator struct{ n int }

func (c *countingInvalidator) Invalidate() { c.n++ }

type fixture struct {
	svc       *ReminderServiceImpl
	reminders *memReminders
	settings  *memSettings
	notifier  *recordingNotifier
	calendar  *countingInvalidator
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newFixture(today time.Time) fixture {
	f := fixture{
		reminders: newMemReminders(),
		settings:  &memSettings{byManager: make(map[string]reminder.Settings)},
		notifier:  &recordingNotifier{},
		calendar:  &countingInvalidator{},
	}
	leaves := memLeaves{
		"lr-1": {ID: "lr-1", UserID: "1", StartDate: date(2024, 12, 23), EndDate: date(2024, 12, 30), Type: leave.LeaveTypeVacation, Status: leave.LeaveRequestStatusApproved},
		"lr-2": {ID: "lr-2", UserID: "1", StartDate: date(2024, 12, 2), EndDate: date(2024, 12, 3), Type: leave.LeaveTypeSick, Status: leave.LeaveRequestStatusApproved},
	}
	users := memUsers{{ID: "1", Name: "Max Mustermann"}, {ID: "2", Name: "Anna Admin", Role: user.RoleAdmin}}

	f.svc = NewReminderService(passthroughTx{}, f.reminders, f.settings, leaves, users, f.notifier, f.calendar, i18n.NewTranslator("de"), time.UTC)
	f.svc.now = func() time.Time { return today.Add(9 * time.Hour) }
	return f
}

func TestCreateForVacation_FallbackDays(t *testing.T) {
	f := newFixture(date(2024, 12, 1))

	created, err := f.svc.CreateForVacation(context.Background(), reminder.CreateAutomaticRequest{LeaveRequestID: "lr-1", ManagerID: "2"})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "2024-12-16", created[0].ReminderDate)
	assert.Equal(t, 7, created[0].DaysBeforeVacation)
	assert.Equal(t, "2024-12-21", created[1].ReminderDate)
	assert.Equal(t, "Urlaub vom 23.12.2024 bis 30.12.2024", created[0].Message)
	assert.Equal(t, "AUTOMATIC", created[0].ReminderType)
	assert.Equal(t, 1, f.calendar.n)
}

func TestCreateForVacation_SettingsAndTemplate(t *testing.T) {
	f := newFixture(date(2024, 12, 1))
	tmpl := "Erinnerung: {employeeName} ist vom {startDate} bis {endDate} im Urlaub."
	settings := reminder.DefaultSettings("2")
	settings.CustomMessage = &tmpl
	f.settings.byManager["2"] = settings

	created, err := f.svc.CreateForVacation(context.Background(), reminder.CreateAutomaticRequest{LeaveRequestID: "lr-1", ManagerID: "2"})
	require.NoError(t, err)
	require.Len(t, created, 3)
	assert.Equal(t, "2024-12-09", created[0].ReminderDate)
	assert.Equal(t, "Erinnerung: Max Mustermann ist vom 23.12.2024 bis 30.12.2024 im Urlaub.", created[0].Message)
}

func TestCreateForVacation_CustomDaysSkipPast(t *testing.T) {
	f := newFixture(date(2024, 12, 12))

	created, err := f.svc.CreateForVacation(context.Background(), reminder.CreateAutomaticRequest{
		LeaveRequestID: "lr-1", ManagerID: "2", CustomDays: []int{14, 7, 2},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, 7, created[0].DaysBeforeVacation)
	assert.Equal(t, 2, created[1].DaysBeforeVacation)
}

func TestCreateForVacation_Errors(t *testing.T) {
	f := newFixture(date(2024, 12, 1))
	ctx := context.Background()

	_, err := f.svc.CreateForVacation(ctx, reminder.CreateAutomaticRequest{LeaveRequestID: "lr-2", ManagerID: "2"})
	assert.True(t, errors.Is(err, reminder.ErrLeaveNotVacation))

	_, err = f.svc.CreateForVacation(ctx, reminder.CreateAutomaticRequest{LeaveRequestID: "nope", ManagerID: "2"})
	assert.True(t, errors.Is(err, leave.ErrLeaveRequestNotFound))

	disabled := reminder.DefaultSettings("2")
	disabled.IsEnabled = false
	f.settings.byManager["2"] = disabled
	_, err = f.svc.CreateForVacation(ctx, reminder.CreateAutomaticRequest{LeaveRequestID: "lr-1", ManagerID: "2"})
	assert.True(t, errors.Is(err, reminder.ErrRemindersDisabled))
}

func TestCreateForApprovedLeave(t *testing.T) {
	f := newFixture(date(2024, 12, 1))
	ctx := context.Background()
	vacation := leave.LeaveRequest{ID: "lr-1", UserID: "1", StartDate: date(2024, 12, 23), EndDate: date(2024, 12, 30), Type: leave.LeaveTypeVacation}
	require.NoError(t, f.svc.CreateForApprovedLeave(ctx, vacation, "2"))
	assert.Len(t, f.reminders.items, 2)

	noAuto := reminder.DefaultSettings("3")
	noAuto.AutoCreateForNewVacations = false
	f.settings.byManager["3"] = noAuto
	require.NoError(t, f.svc.CreateForApprovedLeave(ctx, vacation, "3"))
	assert.Len(t, f.reminders.items, 2)

	sick := vacation
	sick.Type = leave.LeaveTypeSick
	require.NoError(t, f.svc.CreateForApprovedLeave(ctx, sick, "2"))
	assert.Len(t, f.reminders.items, 2)
}

func TestCreateManual(t *testing.T) {
	f := newFixture(date(2024, 12, 1))
	ctx := context.Background()

	created, err := f.svc.CreateManual(ctx, reminder.CreateManualRequest{
		LeaveRequestID: "lr-1", ReminderDate: "2024-12-20", Message: "Vertretung klären", ManagerID: "2",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", created.UserID)
	assert.Equal(t, 3, created.DaysBeforeVacation)
	assert.Equal(t, "MANUAL", created.ReminderType)

	_, err = f.svc.CreateManual(ctx, reminder.CreateManualRequest{
		LeaveRequestID: "lr-1", ReminderDate: "2024-12-24", Message: "zu spät", ManagerID: "2",
	})
	assert.True(t, errors.Is(err, reminder.ErrInvalidReminderDate))
}

func TestUpdateAndDelete(t *testing.T) {
	f := newFixture(date(2024, 12, 1))
	ctx := context.Background()

	created, err := f.svc.CreateManual(ctx, reminder.CreateManualRequest{
		LeaveRequestID: "lr-1", ReminderDate: "2024-12-20", Message: "a", ManagerID: "2",
	})
	require.NoError(t, err)

	inactive, newDate := false, "2024-12-13"
	updated, err := f.svc.Update(ctx, reminder.UpdateReminderRequest{ID: created.ID, IsActive: &inactive, ReminderDate: &newDate})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "2024-12-13", updated.ReminderDate)
	assert.Equal(t, 10, updated.DaysBeforeVacation)

	list, err := f.svc.ListForLeave(ctx, "lr-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.svc.Delete(ctx, created.ID))
	err = f.svc.Delete(ctx, created.ID)
	assert.True(t, errors.Is(err, reminder.ErrReminderNotFound))

	_, err = f.svc.Update(ctx, reminder.UpdateReminderRequest{ID: created.ID, IsActive: &inactive})
	assert.True(t, errors.Is(err, reminder.ErrReminderNotFound))
}

func TestSettings(t *testing.T) {
	f := newFixture(date(2024, 12, 1))
	ctx := context.Background()

	defaults, err := f.svc.GetSettings(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, []int{14, 7, 2}, defaults.DefaultReminders)
	assert.Equal(t, "BOTH", defaults.NotificationMethod)
	assert.True(t, defaults.AutoCreateForNewVacations)

	method := "APP"
	saved, err := f.svc.UpdateSettings(ctx, reminder.UpdateSettingsRequest{ManagerID: "2", NotificationMethod: &method, DefaultReminders: []int{3}})
	require.NoError(t, err)
	assert.Equal(t, "APP", saved.NotificationMethod)
	assert.Equal(t, []int{3}, saved.DefaultReminders)
	assert.True(t, saved.IsEnabled)

	got, err := f.svc.GetSettings(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	bad := "SMS"
	_, err = f.svc.UpdateSettings(ctx, reminder.UpdateSettingsRequest{ManagerID: "2", NotificationMethod: &bad})
	assert.Error(t, err)
}

func TestSendDueReminders(t *testing.T) {
	f := newFixture(date(2024, 12, 1))
	ctx := context.Background()

	tmpl := "{employeeName} ab {startDate}"
	settings := reminder.DefaultSettings("2")
	settings.CustomMessage = &tmpl
	f.settings.byManager["2"] = settings
	_, err := f.svc.CreateForVacation(ctx, reminder.CreateAutomaticRequest{LeaveRequestID: "lr-1", ManagerID: "2"})
	require.NoError(t, err)

	// Nothing is due on Dec 1.
	n, err := f.svc.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	f.svc.now = func() time.Time { return date(2024, 12, 16).Add(6 * time.Hour) }
	n, err = f.svc.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, f.notifier.queued, 1)

	sent := f.notifier.queued[0]
	assert.Equal(t, "2", sent.RecipientID)
	assert.Equal(t, "Urlaubserinnerung - 7 Tage vorher", sent.Title)
	assert.Equal(t, "Max Mustermann ab 23.12.2024", sent.Message)
	assert.Equal(t, "Max Mustermann", sent.EmployeeName)
	assert.Equal(t, date(2024, 12, 23), sent.VacationStart)
	assert.Equal(t, date(2024, 12, 16), sent.ScheduledFor)
	assert.Len(t, f.reminders.sent, 1)

	// Already sent reminders do not fire twice.
	n, err = f.svc.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSendDueReminders_QueueFailureKeepsReminderDue(t *testing.T) {
	f := newFixture(date(2024, 12, 1))
	ctx := context.Background()
	_, err := f.svc.CreateManual(ctx, reminder.CreateManualRequest{
		LeaveRequestID: "lr-1", ReminderDate: "2024-12-22", Message: "morgen", ManagerID: "2",
	})
	require.NoError(t, err)

	f.svc.now = func() time.Time { return date(2024, 12, 22) }
	f.notifier.err = notification.ErrQueueFull
	_, err = f.svc.SendDueReminders(ctx)
	assert.True(t, errors.Is(err, notification.ErrQueueFull))
	assert.Empty(t, f.reminders.sent)

	f.notifier.err = nil
	n, err := f.svc.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Urlaubserinnerung - 1 Tag vorher", f.notifier.queued[0].Title)
}
