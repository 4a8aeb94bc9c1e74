package timerecord

import "context"

type TimeRecordService interface {
	ClockIn(ctx context.Context, req ClockInRequest) (TimeRecordResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (TimeRecordResponse, error)
	ListForPeriod(ctx context.Context, req PeriodRequest) ([]TimeRecordResponse, error)
	MonthlyStats(ctx context.Context, req MonthlyStatsRequest) (MonthlyStatsResponse, error)
}
