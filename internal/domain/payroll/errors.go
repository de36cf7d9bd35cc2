package payroll

import "errors"

var (
	ErrPayrollNotFound   = errors.New("payroll record not found")
	ErrNoActiveEmployees = errors.New("no active employees to generate payroll for")
)
