package leave

import "context"

type LeaveService interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error)
	GetMyLeaves(ctx context.Context, employeeID string, filter ListFilter) ([]LeaveResponse, int, error)
	List(ctx context.Context, filter ListFilter) ([]LeaveResponse, int, error)
	Approve(ctx context.Context, req ReviewLeaveRequest) (LeaveResponse, error)
	Reject(ctx context.Context, req ReviewLeaveRequest) (LeaveResponse, error)
}
