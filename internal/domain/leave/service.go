package leave

import (
	"context"
)

type LeaveService interface {
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, requestID string, approverID string) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, requestID string, approverID string) (LeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context, userID string) ([]LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
}
