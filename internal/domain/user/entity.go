package user

import "time"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	// EmployeeID links the account to an employee record; admin accounts
	// without an employee profile leave it nil.
	EmployeeID *string
	GoogleID   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
