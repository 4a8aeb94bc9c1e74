package timerecord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TimeRecordServiceImpl struct {
	timerecord.TimeRecordRepository
	calendar calendar.Invalidator
	loc      *time.Location
	now      func() time.Time
}

// NewTimeRecordService creates the service. Dates and wall clock values are
// taken in loc; nil means UTC.
func NewTimeRecordService(repo timerecord.TimeRecordRepository, calendar calendar.Invalidator, loc *time.Location) *TimeRecordServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &TimeRecordServiceImpl{
		TimeRecordRepository: repo,
		calendar:             calendar,
		loc:                  loc,
		now:                  time.Now,
	}
}

// clock returns today's date and the current "HH:MM".
func (s *TimeRecordServiceImpl) clock() (time.Time, string) {
	now := s.now().In(s.loc)
	return utils.Day(now), now.Format(utils.ClockLayout)
}

// ClockIn implements timerecord.TimeRecordService.
func (s *TimeRecordServiceImpl) ClockIn(ctx context.Context, req timerecord.ClockInRequest) (timerecord.TimeRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return timerecord.TimeRecordResponse{}, err
	}
	today, nowClock := s.clock()

	existing, err := s.TimeRecordRepository.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return timerecord.TimeRecordResponse{}, fmt.Errorf("failed to get today's time record: %w", err)
	}
	if existing != nil {
		if existing.IsOpen() {
			return timerecord.TimeRecordResponse{}, timerecord.ErrAlreadyClockedIn
		}
		return timerecord.TimeRecordResponse{}, timerecord.ErrDayAlreadyRecorded
	}

	timeIn := nowClock
	if req.TimeIn != nil {
		timeIn = *req.TimeIn
	}

	id, err := uuid.NewV7()
	if err != nil {
		return timerecord.TimeRecordResponse{}, fmt.Errorf("failed to generate time record ID: %w", err)
	}

	record, err := s.TimeRecordRepository.Create(ctx, timerecord.TimeRecord{
		ID:         id.String(),
		UserID:     req.UserID,
		Date:       today,
		TimeIn:     timeIn,
		TotalHours: decimal.Zero,
	})
	if err != nil {
		return timerecord.TimeRecordResponse{}, fmt.Errorf("failed to create time record: %w", err)
	}

	slog.Info("clocked in", "user_id", req.UserID, "date", utils.FormatDate(today), "time_in", timeIn)
	return timerecord.NewTimeRecordResponse(record), nil
}

// ClockOut implements timerecord.TimeRecordService.
func (s *TimeRecordServiceImpl) ClockOut(ctx context.Context, req timerecord.ClockOutRequest) (timerecord.TimeRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return timerecord.TimeRecordResponse{}, err
	}
	today, nowClock := s.clock()

	record, err := s.TimeRecordRepository.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return timerecord.TimeRecordResponse{}, fmt.Errorf("failed to get today's time record: %w", err)
	}
	if record == nil || !record.IsOpen() {
		return timerecord.TimeRecordResponse{}, timerecord.ErrNotClockedIn
	}

	timeOut := nowClock
	if req.TimeOut != nil {
		timeOut = *req.TimeOut
	}

	inMinutes, err := utils.ParseClock(record.TimeIn)
	if err != nil {
		return timerecord.TimeRecordResponse{}, fmt.Errorf("invalid stored time_in %q: %w", record.TimeIn, err)
	}
	outMinutes, _ := utils.ParseClock(timeOut)
	if outMinutes < inMinutes {
		return timerecord.TimeRecordResponse{}, timerecord.ErrInvalidClockOut
	}

	record.TimeOut = &timeOut
	record.BreakMinutes = req.Break()
	record.TotalHours = timerecord.WorkedHours(inMinutes, outMinutes, record.BreakMinutes)

	if err := s.TimeRecordRepository.Update(ctx, *record); err != nil {
		return timerecord.TimeRecordResponse{}, fmt.Errorf("failed to update time record: %w", err)
	}

	s.calendar.Invalidate()
	slog.Info("clocked out", "user_id", req.UserID, "date", utils.FormatDate(today), "total_hours", record.TotalHours.String())
	return timerecord.NewTimeRecordResponse(*record), nil
}

// ListForPeriod implements timerecord.TimeRecordService.
func (s *TimeRecordServiceImpl) ListForPeriod(ctx context.Context, req timerecord.PeriodRequest) ([]timerecord.TimeRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start, _ := utils.ParseDate(req.StartDate)
	end, _ := utils.ParseDate(req.EndDate)

	records, err := s.TimeRecordRepository.GetForPeriod(ctx, req.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get time records: %w", err)
	}

	responses := make([]timerecord.TimeRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, timerecord.NewTimeRecordResponse(r))
	}
	return responses, nil
}

// MonthlyStats implements timerecord.TimeRecordService. Every record of the
// month counts as one day.
func (s *TimeRecordServiceImpl) MonthlyStats(ctx context.Context, req timerecord.MonthlyStatsRequest) (timerecord.MonthlyStatsResponse, error) {
	if err := req.Validate(); err != nil {
		return timerecord.MonthlyStatsResponse{}, err
	}
	month := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)

	records, err := s.TimeRecordRepository.GetForPeriod(ctx, req.UserID, utils.StartOfMonth(month), utils.EndOfMonth(month))
	if err != nil {
		return timerecord.MonthlyStatsResponse{}, fmt.Errorf("failed to get time records: %w", err)
	}

	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.TotalHours)
	}

	return timerecord.MonthlyStatsResponse{
		Month:      req.Month,
		Year:       req.Year,
		TotalHours: total,
		TotalDays:  len(records),
	}, nil
}

var _ timerecord.TimeRecordService = (*TimeRecordServiceImpl)(nil)
