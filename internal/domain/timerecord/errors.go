package timerecord

import "errors"

var (
	ErrAlreadyClockedIn   = errors.New("already clocked in today")
	ErrNotClockedIn       = errors.New("not clocked in")
	ErrDayAlreadyRecorded = errors.New("time already recorded for today")
	ErrTimeRecordNotFound = errors.New("time record not found")
	ErrInvalidClockOut    = errors.New("clock-out time must be after clock-in time")
)
