package calendar

import (
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/utils"
)

// WeeksPerYear is the number of week columns in the year overview.
const WeeksPerYear = 53

// WeekStart returns the Monday of the given week: Jan 1 plus (week-1) weeks,
// moved back to its Monday.
func WeekStart(year, week int) time.Time {
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, (week-1)*7)
	return utils.StartOfWeek(d)
}

// BuildYearOverview groups, per user and week, the approved leaves that start
// in year and overlap the week.
func BuildYearOverview(year int, users []GridUser, leaves []leave.LeaveRequest) calendar.YearOverviewResponse {
	byUser := make(map[string][]leave.LeaveRequest)
	for _, lr := range leaves {
		if lr.Status != leave.LeaveRequestStatusApproved || lr.StartDate.Year() != year {
			continue
		}
		byUser[lr.UserID] = append(byUser[lr.UserID], lr)
	}

	rows := make([]calendar.YearUserRow, 0, len(users))
	for _, u := range users {
		weeks := make([]calendar.YearWeek, 0, WeeksPerYear)
		for w := 1; w <= WeeksPerYear; w++ {
			start := WeekStart(year, w)
			end := start.AddDate(0, 0, 6)
			week := calendar.YearWeek{Week: w, WeekStart: utils.FormatDate(start), Leaves: []leave.LeaveRequestResponse{}}
			for _, lr := range byUser[u.ID] {
				if lr.Overlaps(start, end) {
					week.Leaves = append(week.Leaves, leave.NewLeaveRequestResponse(lr))
				}
			}
			weeks = append(weeks, week)
		}
		rows = append(rows, calendar.YearUserRow{UserID: u.ID, UserName: u.Name, Weeks: weeks})
	}

	return calendar.YearOverviewResponse{Year: year, Users: rows}
}
