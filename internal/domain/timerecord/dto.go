package timerecord

import (
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ClockInRequest struct {
	UserID string `json:"-"`
	// Optional "HH:MM"; defaults to the current wall clock.
	TimeIn *string `json:"time_in,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}
	if r.TimeIn != nil && !validator.IsValidClock(*r.TimeIn) {
		errs.Add("time_in", "time_in must be in HH:MM format")
	}
	return errs.OrNil()
}

// DefaultBreakMinutes applies when a clock-out does not state the break.
const DefaultBreakMinutes = 30

type ClockOutRequest struct {
	UserID       string  `json:"-"`
	TimeOut      *string `json:"time_out,omitempty"`
	BreakMinutes *int    `json:"break_minutes,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}
	if r.TimeOut != nil && !validator.IsValidClock(*r.TimeOut) {
		errs.Add("time_out", "time_out must be in HH:MM format")
	}
	if r.BreakMinutes != nil && (*r.BreakMinutes < 0 || *r.BreakMinutes > 24*60) {
		errs.Add("break_minutes", "break_minutes must be between 0 and 1440")
	}
	return errs.OrNil()
}

// Break returns the stated break or DefaultBreakMinutes.
func (r *ClockOutRequest) Break() int {
	if r.BreakMinutes == nil {
		return DefaultBreakMinutes
	}
	return *r.BreakMinutes
}

type PeriodRequest struct {
	UserID    string `json:"-"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs.Add("start", "start must be in YYYY-MM-DD format")
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs.Add("end", "end must be in YYYY-MM-DD format")
	}
	if startOK && endOK && end.Before(start) {
		errs.Add("end", "end must not be before start")
	}
	return errs.OrNil()
}

type MonthlyStatsRequest struct {
	UserID string `json:"-"`
	Month  int    `json:"month"`
	Year   int    `json:"year"`
}

func (r *MonthlyStatsRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}
	if r.Month < 1 || r.Month > 12 {
		errs.Add("month", "month must be between 1 and 12")
	}
	if !validator.IsValidYear(r.Year) {
		errs.Add("year", "year must be between 1970 and 9999")
	}
	return errs.OrNil()
}

type TimeRecordResponse struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Date         string          `json:"date"`
	TimeIn       string          `json:"time_in"`
	TimeOut      *string         `json:"time_out,omitempty"`
	BreakMinutes int             `json:"break_minutes"`
	TotalHours   decimal.Decimal `json:"total_hours"`
}

func NewTimeRecordResponse(r TimeRecord) TimeRecordResponse {
	return TimeRecordResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		Date:         r.Date.Format("2006-01-02"),
		TimeIn:       r.TimeIn,
		TimeOut:      r.TimeOut,
		BreakMinutes: r.BreakMinutes,
		TotalHours:   r.TotalHours,
	}
}

type MonthlyStatsResponse struct {
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	TotalHours decimal.Decimal `json:"total_hours"`
	TotalDays  int             `json:"total_days"`
}
