package attendance

import "context"

type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	GetMyAttendance(ctx context.Context, employeeID string, filter ListFilter) ([]AttendanceResponse, int, error)
	List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, int, error)
	MonthlySummary(ctx context.Context, employeeID string, month, year int) (MonthlySummaryResponse, error)
}
