package calendar

import (
	"context"
)

type CalendarService interface {
	DateRange(ctx context.Context, req DateRangeRequest) (DateRangeResponse, error)
	Entries(ctx context.Context, req EntriesRequest) ([]Entry, error)
	Index(ctx context.Context, req EntriesRequest) (map[string]Entry, error)
	Grid(ctx context.Context, req GridRequest) (GridResponse, error)
	MonthDays(ctx context.Context, req EntriesRequest) ([]DayResponse, error)
	YearOverview(ctx context.Context, req YearOverviewRequest) (YearOverviewResponse, error)
	VacationStats(ctx context.Context, req VacationStatsRequest) (VacationStats, error)
	ExportICS(ctx context.Context, req EntriesRequest) ([]byte, error)
}

// Invalidator is notified by the write side whenever calendar inputs change.
type Invalidator interface {
	Invalidate()
}
