package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/attendly/attendly-backend-go/internal/domain/auth"
	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendly-backend-go/internal/pkg/oauth"
)

type service struct {
	userRepo user.UserRepository
	tokens   *jwt.TokenManager
	google   *oauth.GoogleProvider
	logger   *slog.Logger
}

func NewService(
	userRepo user.UserRepository,
	tokens *jwt.TokenManager,
	google *oauth.GoogleProvider,
	logger *slog.Logger,
) auth.AuthService {
	return &service{
		userRepo: userRepo,
		tokens:   tokens,
		google:   google,
		logger:   logger,
	}
}

func (s *service) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

// Refresh rotates the pair: the presented refresh token is revoked and a
// fresh pair is issued, so a stolen token stops working after first use.
func (s *service) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	claims, jti, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	s.tokens.Revoke(jti)
	return s.issueTokens(u)
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	_, jti, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return auth.ErrInvalidToken
	}
	s.tokens.Revoke(jti)
	return nil
}

func (s *service) GoogleAuthURL(state string) string {
	return s.google.AuthURL(state)
}

func (s *service) LoginWithGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	gu, err := s.google.Exchange(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("google login failed: %w", err)
	}

	u, err := s.userRepo.GetByEmail(ctx, gu.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrEmailNotRegistered
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if u.GoogleID == nil || *u.GoogleID != gu.ID {
		if err := s.userRepo.UpdateGoogleID(ctx, u.ID, gu.ID); err != nil {
			s.logger.Warn("failed to link google account", "user_id", u.ID, "error", err)
		}
	}

	return s.issueTokens(u)
}

func (s *service) issueTokens(u *user.User) (auth.TokenResponse, error) {
	employeeID := ""
	if u.EmployeeID != nil {
		employeeID = *u.EmployeeID
	}

	access, refresh, expiresAt, err := s.tokens.GenerateTokenPair(jwt.Claims{
		UserID:     u.ID,
		EmployeeID: employeeID,
		Role:       string(u.Role),
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt.Unix(),
		Role:         string(u.Role),
		EmployeeID:   employeeID,
	}, nil
}
