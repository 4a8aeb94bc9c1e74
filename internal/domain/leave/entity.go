package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/utils"
)

type LeaveType string

const (
	LeaveTypeVacation LeaveType = "VACATION"
	LeaveTypeSick     LeaveType = "SICK"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "PENDING"
	LeaveRequestStatusApproved LeaveRequestStatus = "APPROVED"
	LeaveRequestStatusRejected LeaveRequestStatus = "REJECTED"
)

// LeaveRequest entity. StartDate and EndDate are calendar dates (UTC midnight),
// both inclusive.
type LeaveRequest struct {
	ID        string
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Type      LeaveType
	Status    LeaveRequestStatus
	Comment   *string
	TeamID    *string

	ApprovedBy *string // User ID who approved/rejected
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether the request intersects [start, end].
func (r *LeaveRequest) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}

// Covers reports whether day lies inside the request.
func (r *LeaveRequest) Covers(day time.Time) bool {
	return r.Overlaps(day, day)
}

// TotalDays is the inclusive calendar-day span of the request.
func (r *LeaveRequest) TotalDays() int {
	return utils.InclusiveDays(r.StartDate, r.EndDate)
}

func (r *LeaveRequest) IsApproved() bool {
	return r.Status == LeaveRequestStatusApproved
}
