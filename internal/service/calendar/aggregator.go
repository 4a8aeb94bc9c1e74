package calendar

import (
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/reminder"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/utils"
)

// Query selects whose entries an aggregation returns.
type Query struct {
	ViewMode       calendar.ViewMode
	CurrentUserID  string
	ReferenceMonth time.Time
	// Members narrows the team view to one team. Nil means every user.
	Members map[string]struct{}
	// IncludePending adds pending leave requests as requested entries.
	IncludePending bool
}

func (q Query) visible(userID string) bool {
	if q.ViewMode == calendar.ViewModePersonal {
		return userID == q.CurrentUserID
	}
	if q.Members == nil {
		return true
	}
	_, ok := q.Members[userID]
	return ok
}

func (q Query) showsLeave(s leave.LeaveRequestStatus) bool {
	return s == leave.LeaveRequestStatusApproved ||
		(q.IncludePending && s == leave.LeaveRequestStatusPending)
}

// Snapshot holds what the stores returned for one window.
type Snapshot struct {
	Leaves      []leave.LeaveRequest
	TimeRecords []timerecord.TimeRecord
	Reminders   []reminder.Reminder
	UserNames   map[string]string
}

// Aggregate merges approved leaves (plus pending ones when the query asks),
// clocked-out time records and active reminders of the reference month into
// calendar entries. Multi-day leaves
// expand to one entry per day inside the month. The result is not ordered
// and not deduplicated.
func Aggregate(snap Snapshot, q Query) []calendar.Entry {
	entries := make([]calendar.Entry, 0)
	if q.ViewMode == calendar.ViewModePersonal && q.CurrentUserID == "" {
		return entries
	}

	monthStart := utils.StartOfMonth(q.ReferenceMonth)
	monthEnd := utils.EndOfMonth(q.ReferenceMonth)

	for _, lr := range snap.Leaves {
		if !q.showsLeave(lr.Status) || !q.visible(lr.UserID) {
			continue
		}
		start, end := utils.Day(lr.StartDate), utils.Day(lr.EndDate)
		if start.After(monthEnd) || end.Before(monthStart) {
			continue
		}

		entryType := calendar.EntryTypeForLeave(lr.Type)
		for _, d := range utils.EachDay(utils.MaxDate(start, monthStart), utils.MinDate(end, monthEnd)) {
			status := calendar.EntryStatusForLeave(lr.Status)
			entries = append(entries, calendar.Entry{
				UserID:   lr.UserID,
				UserName: snap.UserNames[lr.UserID],
				Date:     utils.FormatDate(d),
				Type:     entryType,
				Status:   &status,
			})
		}
	}

	if q.ViewMode == calendar.ViewModePersonal {
		for _, tr := range snap.TimeRecords {
			if tr.UserID != q.CurrentUserID || tr.IsOpen() {
				continue
			}
			day := utils.Day(tr.Date)
			if day.Before(monthStart) || day.After(monthEnd) {
				continue
			}
			hours := tr.HoursFloat()
			entries = append(entries, calendar.Entry{
				UserID:   tr.UserID,
				UserName: snap.UserNames[tr.UserID],
				Date:     utils.FormatDate(day),
				Type:     calendar.EntryTypeWorkedTime,
				Hours:    &hours,
			})
		}
	}

	for _, r := range snap.Reminders {
		if !r.IsActive || !q.visible(r.UserID) {
			continue
		}
		day := utils.Day(r.ReminderDate)
		if day.Before(monthStart) || day.After(monthEnd) {
			continue
		}
		title := r.Message
		entries = append(entries, calendar.Entry{
			UserID:   r.UserID,
			UserName: snap.UserNames[r.UserID],
			Date:     utils.FormatDate(day),
			Type:     calendar.EntryTypeMeeting,
			Title:    &title,
		})
	}

	return entries
}
