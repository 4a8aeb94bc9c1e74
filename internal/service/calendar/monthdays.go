package calendar

import (
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/reminder"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/utils"
)

// MonthViewDays is the size of the month view: six Monday-first weeks.
const MonthViewDays = 42

// MonthWindow returns the first and last day of the month view of ref.
func MonthWindow(ref time.Time) (time.Time, time.Time) {
	start := utils.StartOfWeek(utils.StartOfMonth(ref))
	return start, start.AddDate(0, 0, MonthViewDays-1)
}

// BuildMonthDays lays the snapshot out on the 42 days of the month view.
// entries are the aggregated entries of the reference month.
func BuildMonthDays(snap Snapshot, q Query, today time.Time, entries []calendar.Entry) []calendar.DayResponse {
	start, _ := MonthWindow(q.ReferenceMonth)
	month := q.ReferenceMonth.Month()
	today = utils.Day(today)
	byDate := make(map[string][]calendar.Entry)
	for _, e := range entries {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	days := make([]calendar.DayResponse, 0, MonthViewDays)
	for i := 0; i < MonthViewDays; i++ {
		d := start.AddDate(0, 0, i)
		date := utils.FormatDate(d)

		day := calendar.DayResponse{
			Date:           date,
			IsToday:        d.Equal(today),
			IsWeekend:      utils.IsWeekend(d),
			IsCurrentMonth: d.Month() == month,
			Entries:        byDate[date],
			UserLeaves:     []leave.LeaveRequestResponse{},
			Leaves:         []leave.LeaveRequestResponse{},
			Reminders:      []reminder.ReminderResponse{},
		}
		if day.Entries == nil {
			day.Entries = []calendar.Entry{}
		}

		for _, lr := range snap.Leaves {
			if lr.Status != leave.LeaveRequestStatusApproved || !lr.Covers(d) {
				continue
			}
			if q.visible(lr.UserID) {
				day.Leaves = append(day.Leaves, leave.NewLeaveRequestResponse(lr))
			}
			if q.CurrentUserID != "" && lr.UserID == q.CurrentUserID {
				day.UserLeaves = append(day.UserLeaves, leave.NewLeaveRequestResponse(lr))
			}
		}

		for _, tr := range snap.TimeRecords {
			if !utils.SameDay(tr.Date, d) {
				continue
			}
			if q.ViewMode == calendar.ViewModePersonal {
				if tr.UserID == q.CurrentUserID && day.UserTimeRecord == nil {
					resp := timerecord.NewTimeRecordResponse(tr)
					day.UserTimeRecord = &resp
				}
				continue
			}
			if q.visible(tr.UserID) {
				day.TeamTimeRecords = append(day.TeamTimeRecords, timerecord.NewTimeRecordResponse(tr))
			}
		}

		for _, r := range snap.Reminders {
			if r.IsActive && utils.SameDay(r.ReminderDate, d) && q.visible(r.UserID) {
				day.Reminders = append(day.Reminders, reminder.NewReminderResponse(r))
			}
		}

		days = append(days, day)
	}
	return days
}
