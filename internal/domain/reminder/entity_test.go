package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderDates_SkipsPastDates(t *testing.T) {
	start := time.Date(2024, time.December, 23, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, time.December, 12, 0, 0, 0, 0, time.UTC)

	dates := ReminderDates(start, today, []int{14, 7, 2})
	require.Len(t, dates, 2)
	assert.Equal(t, time.Date(2024, time.December, 16, 0, 0, 0, 0, time.UTC), dates[7])
	assert.Equal(t, time.Date(2024, time.December, 21, 0, 0, 0, 0, time.UTC), dates[2])
	assert.Equal(t, []int{7, 2}, SortedOffsets(dates))
}

func TestReminderDates_TodayIsKept(t *testing.T) {
	start := time.Date(2024, time.December, 23, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, time.December, 21, 0, 0, 0, 0, time.UTC)

	dates := ReminderDates(start, today, []int{2, 2, -1})
	assert.Len(t, dates, 1)
	assert.Contains(t, dates, 2)
}

func TestRenderTemplate(t *testing.T) {
	start := time.Date(2024, time.December, 23, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC)

	got := RenderTemplate("Erinnerung: {employeeName} ist vom {startDate} bis {endDate} im Urlaub.", "Max Mustermann", start, end)
	assert.Equal(t, "Erinnerung: Max Mustermann ist vom 23.12.2024 bis 30.12.2024 im Urlaub.", got)
}

func TestUpdateSettingsRequest_Apply(t *testing.T) {
	enabled := false
	method := "APP"
	blank := "  "
	req := UpdateSettingsRequest{ManagerID: "2", IsEnabled: &enabled, NotificationMethod: &method, CustomMessage: &blank}
	require.NoError(t, req.Validate())

	got := req.Apply(DefaultSettings("2"))
	assert.False(t, got.IsEnabled)
	assert.Equal(t, NotificationMethodApp, got.NotificationMethod)
	assert.Nil(t, got.CustomMessage)
	assert.Equal(t, []int{14, 7, 2}, got.DefaultReminders)
	assert.True(t, got.AutoCreateForNewVacations)
}

func TestReminder_IsDue(t *testing.T) {
	day := time.Date(2024, time.December, 16, 0, 0, 0, 0, time.UTC)
	r := Reminder{ReminderDate: day, IsActive: true}
	assert.True(t, r.IsDue(day))

	r.IsSent = true
	assert.False(t, r.IsDue(day))
}
