package calendar

import "errors"

var (
	ErrInvalidRangeView = errors.New("invalid range view")
	ErrUserAccessDenied = errors.New("not allowed to view this user's calendar data")
)
