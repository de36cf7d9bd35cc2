package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, att *Attendance) error
	Update(ctx context.Context, att *Attendance) error
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	// ListByEmployeeAndRange returns all records whose date falls in
	// [start, end], ordered by date ascending.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
	List(ctx context.Context, filter ListFilter) ([]Attendance, int, error)
	// ListStaleOpenSessions returns open sessions whose date is before
	// the given day, across all employees. Used by the auto-close job.
	ListStaleOpenSessions(ctx context.Context, before time.Time) ([]Attendance, error)
}
