package calendar

import (
	"testing"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
)

func TestComputeVacationStats_Scenario(t *testing.T) {
	stats := ComputeVacationStats([]leave.LeaveRequest{christmasVacation()}, "1", 2024, 30, false)
	assert.Equal(t, calendar.VacationStats{TotalDays: 30, UsedDays: 8, RemainingDays: 22, PendingDays: 0}, stats)
}

func TestComputeVacationStats_IgnoresOtherRequests(t *testing.T) {
	sick := christmasVacation()
	sick.Type = leave.LeaveTypeSick
	rejected := christmasVacation()
	rejected.Status = leave.LeaveRequestStatusRejected
	otherUser := christmasVacation()
	otherUser.UserID = "2"
	lastYear := christmasVacation()
	lastYear.StartDate, lastYear.EndDate = day("2023-07-01"), day("2023-07-05")

	stats := ComputeVacationStats([]leave.LeaveRequest{sick, rejected, otherUser, lastYear}, "1", 2024, 30, false)
	assert.Equal(t, 0, stats.UsedDays)
	assert.Equal(t, 30, stats.RemainingDays)
}

func TestComputeVacationStats_RemainingNeverNegative(t *testing.T) {
	long := christmasVacation()
	long.StartDate, long.EndDate = day("2024-03-01"), day("2024-04-30")

	stats := ComputeVacationStats([]leave.LeaveRequest{long}, "1", 2024, 30, false)
	assert.Equal(t, 61, stats.UsedDays)
	assert.Equal(t, 0, stats.RemainingDays)
}

func TestComputeVacationStats_PendingDays(t *testing.T) {
	pending := christmasVacation()
	pending.Status = leave.LeaveRequestStatusPending
	pending.StartDate, pending.EndDate = day("2024-08-05"), day("2024-08-09")

	stats := ComputeVacationStats([]leave.LeaveRequest{christmasVacation(), pending}, "1", 2024, 30, false)
	assert.Equal(t, 8, stats.UsedDays)
	assert.Equal(t, 5, stats.PendingDays)
	assert.Equal(t, 22, stats.RemainingDays)
}

func TestComputeVacationStats_YearBoundary(t *testing.T) {
	span := christmasVacation()
	span.StartDate, span.EndDate = day("2024-12-28"), day("2025-01-03")
	requests := []leave.LeaveRequest{span}

	// Unclipped: the whole request belongs to the year it starts in.
	assert.Equal(t, 7, ComputeVacationStats(requests, "1", 2024, 30, false).UsedDays)
	assert.Equal(t, 0, ComputeVacationStats(requests, "1", 2025, 30, false).UsedDays)

	// Clipped: each year counts its own days.
	assert.Equal(t, 4, ComputeVacationStats(requests, "1", 2024, 30, true).UsedDays)
	assert.Equal(t, 3, ComputeVacationStats(requests, "1", 2025, 30, true).UsedDays)
}
