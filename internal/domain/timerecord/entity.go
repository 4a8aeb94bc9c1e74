package timerecord

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeRecord is one clock-in/clock-out session. TimeIn and TimeOut are wall
// clock values in "HH:MM".
type TimeRecord struct {
	ID           string
	UserID       string
	Date         time.Time
	TimeIn       string
	TimeOut      *string
	BreakMinutes int
	TotalHours   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOpen reports whether the session has not been clocked out yet.
func (r *TimeRecord) IsOpen() bool {
	return r.TimeOut == nil
}

// HoursFloat is TotalHours as a float64 for JSON and calendar entries.
func (r *TimeRecord) HoursFloat() float64 {
	f, _ := r.TotalHours.Float64()
	return f
}

// WorkedHours returns (out - in - break) in hours, rounded to 2 decimals and
// never negative.
func WorkedHours(inMinutes, outMinutes, breakMinutes int) decimal.Decimal {
	worked := outMinutes - inMinutes - breakMinutes
	if worked < 0 {
		worked = 0
	}
	return decimal.NewFromInt(int64(worked)).Div(decimal.NewFromInt(60)).Round(2)
}
