package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayrollStatus string

const (
	PayrollStatusPending PayrollStatus = "pending"
	PayrollStatusPaid    PayrollStatus = "paid"
)

// Payroll is the derived salary record for one employee-month. It is a
// pure function of the employee's base salary and that month's attendance
// and overtime, so regenerating a month overwrites the previous record
// wholesale rather than merging into it.
type Payroll struct {
	ID         string
	EmployeeID string
	Month      int
	Year       int
	BaseSalary decimal.Decimal
	// WorkingDays is the fixed policy constant the salary was prorated
	// over, stored so historical records stay explainable if the policy
	// ever changes.
	WorkingDays   int
	PresentDays   int
	LateDays      int
	OvertimeHours decimal.Decimal
	OvertimePay   decimal.Decimal
	Deductions    decimal.Decimal
	Bonus         decimal.Decimal
	GrossSalary   decimal.Decimal
	// NetSalary may be negative when deductions exceed earnings. It is
	// surfaced as-is so an admin can spot a misconfigured salary or
	// deduction rate instead of it being silently floored.
	NetSalary   decimal.Decimal
	Status      PayrollStatus
	GeneratedAt time.Time
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
}
