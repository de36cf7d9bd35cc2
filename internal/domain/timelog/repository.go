package timelog

import (
	"context"
	"time"
)

type TimeLogRepository interface {
	// Upsert stores the log for one employee-day. On conflict the
	// clock-out and overtime are updated while the original clock-in
	// is kept, matching the create-then-mutate-once lifecycle.
	Upsert(ctx context.Context, log *TimeLog) error
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]TimeLog, error)
	// SumOvertimeMinutes returns the total overtime minutes for the
	// employee over [start, end].
	SumOvertimeMinutes(ctx context.Context, employeeID string, start, end time.Time) (int64, error)
}
