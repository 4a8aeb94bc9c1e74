package reminder

import (
	"sort"
	"strings"
	"time"
)

type ReminderType string

const (
	ReminderTypeAutomatic ReminderType = "AUTOMATIC"
	ReminderTypeManual    ReminderType = "MANUAL"
)

type NotificationMethod string

const (
	NotificationMethodApp   NotificationMethod = "APP"
	NotificationMethodEmail NotificationMethod = "EMAIL"
	NotificationMethodBoth  NotificationMethod = "BOTH"
)

// FallbackReminderDays applies when neither the caller nor the manager's
// settings name reminder offsets.
var FallbackReminderDays = []int{7, 2}

// DefaultReminderDays seeds new settings.
var DefaultReminderDays = []int{14, 7, 2}

// Reminder is a vacation reminder set by a manager for one leave request.
type Reminder struct {
	ID                 string
	LeaveRequestID     string
	UserID             string // employee on leave
	Type               ReminderType
	ReminderDate       time.Time
	DaysBeforeVacation int
	IsActive           bool
	IsSent             bool
	Message            string
	CreatedBy          string // manager
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsDue reports whether the reminder should fire on day.
func (r *Reminder) IsDue(day time.Time) bool {
	return r.IsActive && !r.IsSent && r.ReminderDate.Equal(day)
}

// Settings are a manager's reminder preferences.
type Settings struct {
	ManagerID                 string
	IsEnabled                 bool
	DefaultReminders          []int
	CustomMessage             *string
	NotificationMethod        NotificationMethod
	AutoCreateForNewVacations bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// DefaultSettings returns the settings a manager has before saving any.
func DefaultSettings(managerID string) Settings {
	return Settings{
		ManagerID:                 managerID,
		IsEnabled:                 true,
		DefaultReminders:          append([]int(nil), DefaultReminderDays...),
		NotificationMethod:        NotificationMethodBoth,
		AutoCreateForNewVacations: true,
	}
}

// GermanDateLayout renders dates the way reminder messages show them.
const GermanDateLayout = "02.01.2006"

// RenderTemplate fills {employeeName}, {startDate} and {endDate}.
func RenderTemplate(tmpl, employeeName string, start, end time.Time) string {
	return strings.NewReplacer(
		"{employeeName}", employeeName,
		"{startDate}", start.Format(GermanDateLayout),
		"{endDate}", end.Format(GermanDateLayout),
	).Replace(tmpl)
}

// ReminderDates maps each offset (days before vacationStart) to its reminder
// date, dropping negative offsets and dates before today.
func ReminderDates(vacationStart, today time.Time, days []int) map[int]time.Time {
	out := make(map[int]time.Time, len(days))
	for _, d := range days {
		if d < 0 {
			continue
		}
		date := vacationStart.AddDate(0, 0, -d)
		if date.Before(today) {
			continue
		}
		out[d] = date
	}
	return out
}

// SortedOffsets returns the keys of a ReminderDates result, largest offset
// first.
func SortedOffsets(dates map[int]time.Time) []int {
	keys := make([]int, 0, len(dates))
	for k := range dates {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))
	return keys
}
