package calendar

import (
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/utils"
)

// ComputeVacationStats derives a user's vacation balance for year.
//
// Without clipping, a vacation request counts toward the year its start date
// falls in, with its full inclusive span. With clipping, every request
// overlapping the year counts only the days inside it. PendingDays applies
// the same rule to PENDING requests.
func ComputeVacationStats(requests []leave.LeaveRequest, userID string, year, entitlement int, clip bool) calendar.VacationStats {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	used, pending := 0, 0
	for _, r := range requests {
		if r.UserID != userID || r.Type != leave.LeaveTypeVacation {
			continue
		}
		days := requestDays(r, year, yearStart, yearEnd, clip)
		switch r.Status {
		case leave.LeaveRequestStatusApproved:
			used += days
		case leave.LeaveRequestStatusPending:
			pending += days
		}
	}

	remaining := entitlement - used
	if remaining < 0 {
		remaining = 0
	}

	return calendar.VacationStats{
		TotalDays:     entitlement,
		UsedDays:      used,
		RemainingDays: remaining,
		PendingDays:   pending,
	}
}

func requestDays(r leave.LeaveRequest, year int, yearStart, yearEnd time.Time, clip bool) int {
	start, end := utils.Day(r.StartDate), utils.Day(r.EndDate)
	if end.Before(start) {
		return 0
	}
	if !clip {
		if start.Year() != year {
			return 0
		}
		return utils.InclusiveDays(start, end)
	}
	if start.After(yearEnd) || end.Before(yearStart) {
		return 0
	}
	return utils.InclusiveDays(utils.MaxDate(start, yearStart), utils.MinDate(end, yearEnd))
}
