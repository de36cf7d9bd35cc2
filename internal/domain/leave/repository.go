package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, lr *LeaveRequest) error
	GetByID(ctx context.Context, id string) (*LeaveRequest, error)
	List(ctx context.Context, filter ListFilter) ([]LeaveRequest, int, error)
	// HasOverlap reports whether the employee already has a pending or
	// approved request intersecting [start, end].
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	UpdateStatus(ctx context.Context, lr *LeaveRequest) error
}
