package calendar

import (
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/leave"
)

type EntryType string

const (
	EntryTypeVacation     EntryType = "vacation"
	EntryTypeSick         EntryType = "sick"
	EntryTypeMeeting      EntryType = "meeting"
	EntryTypeTraining     EntryType = "training"
	EntryTypeSpecialLeave EntryType = "special_leave"
	EntryTypeWorkedTime   EntryType = "worked_time"
)

// IsLeave reports whether the type belongs to the "leaves" filter.
func (t EntryType) IsLeave() bool {
	return t == EntryTypeVacation || t == EntryTypeSick
}

type EntryStatus string

const (
	EntryStatusRequested EntryStatus = "requested"
	EntryStatusApproved  EntryStatus = "approved"
	EntryStatusRejected  EntryStatus = "rejected"
)

type ViewMode string

const (
	ViewModePersonal ViewMode = "personal"
	ViewModeTeam     ViewMode = "team"
)

type FilterMode string

const (
	FilterAll    FilterMode = "all"
	FilterLeaves FilterMode = "leaves"
	FilterWork   FilterMode = "work"
)

// Keep reports whether an entry of type t survives the filter.
func (f FilterMode) Keep(t EntryType) bool {
	switch f {
	case FilterLeaves:
		return t.IsLeave()
	case FilterWork:
		return t == EntryTypeWorkedTime
	default:
		return true
	}
}

type RangeView string

const (
	RangeMonth RangeView = "month"
	RangeYear  RangeView = "year"
)

// Entry is one fact about one user on one date. Entries are derived on every
// request and never stored.
type Entry struct {
	UserID   string       `json:"user_id"`
	UserName string       `json:"user_name,omitempty"`
	Date     string       `json:"date"`
	Type     EntryType    `json:"type"`
	Hours    *float64     `json:"hours,omitempty"`
	Status   *EntryStatus `json:"status,omitempty"`
	Title    *string      `json:"title,omitempty"`
}

// IndexKey is the cell key "userId-date".
func IndexKey(userID, date string) string {
	return userID + "-" + date
}

func (e Entry) Key() string {
	return IndexKey(e.UserID, e.Date)
}

// EntryTypeForLeave maps a leave request type to its calendar category.
func EntryTypeForLeave(t leave.LeaveType) EntryType {
	if t == leave.LeaveTypeSick {
		return EntryTypeSick
	}
	return EntryTypeVacation
}

// EntryStatusForLeave maps a leave request status to its calendar status.
func EntryStatusForLeave(s leave.LeaveRequestStatus) EntryStatus {
	switch s {
	case leave.LeaveRequestStatusApproved:
		return EntryStatusApproved
	case leave.LeaveRequestStatusRejected:
		return EntryStatusRejected
	default:
		return EntryStatusRequested
	}
}

// VacationStats is the vacation balance of one user in one calendar year.
// RemainingDays is never negative.
type VacationStats struct {
	TotalDays     int `json:"total_days"`
	UsedDays      int `json:"used_days"`
	RemainingDays int `json:"remaining_days"`
	PendingDays   int `json:"pending_days"`
}
