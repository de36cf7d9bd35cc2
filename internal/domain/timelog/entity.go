package timelog

import "time"

// TimeLog mirrors one employee-day of clocked time. A record is created
// at clock-in with ClockOut unset and zero overtime, and mutated once at
// clock-out to fill in ClockOut and the minutes worked beyond the
// standard shift. It is a separate stream from attendance so payroll can
// treat it as an optional input: when time logs cannot be read, payroll
// falls back to zero overtime instead of failing the run.
type TimeLog struct {
	ID         string
	EmployeeID string
	Date       time.Time
	ClockIn    time.Time
	ClockOut   *time.Time
	// OvertimeMinutes is max(0, worked minutes - standard shift),
	// derived at clock-out.
	OvertimeMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
