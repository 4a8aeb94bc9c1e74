package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	GetByUserID(ctx context.Context, userID string) ([]LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)

	// ListOverlapping returns every request, whatever its status, that
	// intersects [start, end].
	ListOverlapping(ctx context.Context, start, end time.Time) ([]LeaveRequest, error)

	// HasOverlapping checks the user's pending and approved requests only.
	HasOverlapping(ctx context.Context, userID string, start, end time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus, approvedBy *string, approvedAt *time.Time) error
}
