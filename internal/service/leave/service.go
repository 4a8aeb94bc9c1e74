package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/utils"
	"github.com/google/uuid"
)

// ReminderCreator schedules the automatic reminders of an approved vacation.
type ReminderCreator interface {
	CreateForApprovedLeave(ctx context.Context, request leave.LeaveRequest, managerID string) error
}

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	reminders ReminderCreator
	calendar  calendar.Invalidator
	now       func() time.Time
}

func NewLeaveService(tx database.Transactor, leaveRequestRepository leave.LeaveRequestRepository, reminders ReminderCreator, calendar calendar.Invalidator) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepository,
		reminders:              reminders,
		calendar:               calendar,
		now:                    time.Now,
	}
}

// CreateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, _ := utils.ParseDate(req.StartDate)
	endDate, _ := utils.ParseDate(req.EndDate)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to generate leave request ID: %w", err)
	}

	now := l.now()
	request := leave.LeaveRequest{
		ID:        id.String(),
		UserID:    req.UserID,
		StartDate: startDate,
		EndDate:   endDate,
		Type:      leave.LeaveType(req.Type),
		Status:    leave.LeaveRequestStatusPending,
		Comment:   req.Comment,
		TeamID:    req.TeamID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var created leave.LeaveRequest
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		hasOverlap, err := l.LeaveRequestRepository.HasOverlapping(ctx, req.UserID, startDate, endDate)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave requests: %w", err)
		}
		if hasOverlap {
			return leave.ErrOverlappingLeave
		}

		created, err = l.LeaveRequestRepository.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	l.calendar.Invalidate()
	slog.Info("leave request created", "id", created.ID, "user_id", created.UserID, "type", created.Type)
	return leave.NewLeaveRequestResponse(created), nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, requestID string, approverID string) (leave.LeaveRequestResponse, error) {
	request, err := l.process(ctx, requestID, approverID, leave.LeaveRequestStatusApproved)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.Type == leave.LeaveTypeVacation && l.reminders != nil {
		// The approval stands even when reminder scheduling fails.
		if err := l.reminders.CreateForApprovedLeave(ctx, request, approverID); err != nil {
			slog.Warn("failed to create vacation reminders", "leave_request_id", request.ID, "error", err)
		}
	}

	return leave.NewLeaveRequestResponse(request), nil
}

// RejectLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, requestID string, approverID string) (leave.LeaveRequestResponse, error) {
	request, err := l.process(ctx, requestID, approverID, leave.LeaveRequestStatusRejected)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(request), nil
}

// process moves a pending request to status.
func (l *LeaveServiceImpl) process(ctx context.Context, requestID, approverID string, status leave.LeaveRequestStatus) (leave.LeaveRequest, error) {
	var request leave.LeaveRequest
	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = l.LeaveRequestRepository.GetByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("failed to get leave request by ID: %w", err)
		}

		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		approvedAt := l.now()
		request.Status = status
		request.ApprovedBy = &approverID
		request.ApprovedAt = &approvedAt
		request.UpdatedAt = approvedAt

		if err := l.LeaveRequestRepository.UpdateStatus(ctx, request.ID, status, request.ApprovedBy, request.ApprovedAt); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	l.calendar.Invalidate()
	slog.Info("leave request processed", "id", request.ID, "status", status, "approved_by", approverID)
	return request, nil
}

// ListMyLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, userID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.LeaveRequestRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave requests: %w", err)
	}
	return toResponses(requests), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	requests, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toResponses(requests), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return leave.NewLeaveRequestResponse(request), nil
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}
	return responses
}

var _ leave.LeaveService = (*LeaveServiceImpl)(nil)
