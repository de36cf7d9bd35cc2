package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id string) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, e *Employee) error
	// Deactivate soft-deletes the employee; records referencing it remain.
	Deactivate(ctx context.Context, id string) error
}
