package payroll

import "context"

type PayrollService interface {
	Generate(ctx context.Context, req GeneratePayrollRequest) (GeneratePayrollResponse, error)
	Get(ctx context.Context, id string) (PayrollResponse, error)
	List(ctx context.Context, filter ListFilter) ([]PayrollResponse, int, error)
	GetMyPayrolls(ctx context.Context, employeeID string, filter ListFilter) ([]PayrollResponse, int, error)
	MarkAsPaid(ctx context.Context, id string) (PayrollResponse, error)
}
