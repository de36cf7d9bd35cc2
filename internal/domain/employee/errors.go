package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email already registered for another employee")
	ErrNoBaseSalary     = errors.New("employee has no base salary configured")
)
