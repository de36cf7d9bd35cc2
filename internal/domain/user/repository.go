package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// UpdateGoogleID links a Google account after a successful OAuth login.
	UpdateGoogleID(ctx context.Context, id string, googleID string) error
}
