package attendance

import "time"

// Attendance is one employee-day of presence. A record is created at
// check-in with CheckOut and WorkingHours unset, and mutated exactly once
// at check-out to fill them in. IsLate is derived against the office start
// threshold at check-in time and stored; it is never recomputed if the
// threshold changes later, so historical payroll stays stable.
type Attendance struct {
	ID         string
	EmployeeID string
	// Date is the working day (midnight local), not a timestamp.
	Date              time.Time
	CheckIn           time.Time
	CheckOut          *time.Time
	IsLate            bool
	WorkingHours      *float64
	CheckInLatitude   float64
	CheckInLongitude  float64
	CheckInProofURL   *string
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckOutProofURL  *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	EmployeeName *string
}
