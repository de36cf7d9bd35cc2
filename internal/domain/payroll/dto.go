package payroll

import (
	"time"

	"github.com/attendly/attendly-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayrollRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
	// EmployeeID limits generation to one employee. Empty means all
	// active employees.
	EmployeeID string `json:"employee_id,omitempty"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	EmployeeID string
	Month      int
	Year       int
	Status     PayrollStatus
	Page       int
	Limit      int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type PayrollResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	WorkingDays   int             `json:"working_days"`
	PresentDays   int             `json:"present_days"`
	LateDays      int             `json:"late_days"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	OvertimePay   decimal.Decimal `json:"overtime_pay"`
	Deductions    decimal.Decimal `json:"deductions"`
	Bonus         decimal.Decimal `json:"bonus"`
	GrossSalary   decimal.Decimal `json:"gross_salary"`
	NetSalary     decimal.Decimal `json:"net_salary"`
	Status        PayrollStatus   `json:"status"`
	GeneratedAt   time.Time       `json:"generated_at"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}

type GeneratePayrollResponse struct {
	Month     int               `json:"month"`
	Year      int               `json:"year"`
	Generated int               `json:"generated"`
	Skipped   int               `json:"skipped"`
	Records   []PayrollResponse `json:"records"`
}
