package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	UserID    string  `json:"-"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Type      string  `json:"type"`
	Comment   *string `json:"comment,omitempty"`
	TeamID    *string `json:"team_id,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
	if startOK && endOK && end.Before(start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	if !validator.IsInSlice(r.Type, []string{string(LeaveTypeVacation), string(LeaveTypeSick)}) {
		errs.Add("type", "type must be one of: VACATION, SICK")
	}

	if r.Comment != nil && len(*r.Comment) > 1000 {
		errs.Add("comment", "comment must not exceed 1000 characters")
	}

	return errs.OrNil()
}

type LeaveRequestFilter struct {
	UserID *string `json:"user_id,omitempty"`
	Status *string `json:"status,omitempty"`
	Type   *string `json:"type,omitempty"`
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		string(LeaveRequestStatusPending),
		string(LeaveRequestStatusApproved),
		string(LeaveRequestStatusRejected),
	}) {
		errs.Add("status", "status must be one of: PENDING, APPROVED, REJECTED")
	}

	if f.Type != nil && !validator.IsInSlice(*f.Type, []string{string(LeaveTypeVacation), string(LeaveTypeSick)}) {
		errs.Add("type", "type must be one of: VACATION, SICK")
	}

	return errs.OrNil()
}

type LeaveRequestResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	TotalDays  int        `json:"total_days"`
	Type       string     `json:"type"`
	Status     string     `json:"status"`
	Comment    *string    `json:"comment,omitempty"`
	TeamID     *string    `json:"team_id,omitempty"`
	ApprovedBy *string    `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewLeaveRequestResponse maps the entity to its API shape.
func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		StartDate:  r.StartDate.Format("2006-01-02"),
		EndDate:    r.EndDate.Format("2006-01-02"),
		TotalDays:  r.TotalDays(),
		Type:       string(r.Type),
		Status:     string(r.Status),
		Comment:    r.Comment,
		TeamID:     r.TeamID,
		ApprovedBy: r.ApprovedBy,
		ApprovedAt: r.ApprovedAt,
		CreatedAt:  r.CreatedAt,
	}
}
