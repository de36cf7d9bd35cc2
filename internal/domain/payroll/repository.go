package payroll

import "context"

type PayrollRepository interface {
	// Upsert inserts the record, or fully replaces the existing record
	// for the same (employee, month, year).
	Upsert(ctx context.Context, p *Payroll) error
	GetByID(ctx context.Context, id string) (*Payroll, error)
	GetByEmployeeAndPeriod(ctx context.Context, employeeID string, month, year int) (*Payroll, error)
	List(ctx context.Context, filter ListFilter) ([]Payroll, int, error)
	// MarkPaid flips the record to paid and stamps paid_at with now,
	// including on records that are already paid. Returns
	// ErrPayrollNotFound when no record has the id.
	MarkPaid(ctx context.Context, id string) (*Payroll, error)
}
