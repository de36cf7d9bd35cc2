package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	// GoogleAuthURL builds the consent page URL the client redirects to
	// before calling LoginWithGoogle with the resulting code.
	GoogleAuthURL(state string) string
	// LoginWithGoogle completes a Google OAuth code exchange and issues
	// tokens for the matching local account.
	LoginWithGoogle(ctx context.Context, code string) (TokenResponse, error)
}
