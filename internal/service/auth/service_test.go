package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendly-backend-go/internal/config"
	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendly-backend-go/internal/pkg/oauth"
)

type stubUserRepo struct{}

func (stubUserRepo) Create(context.Context, *user.User) error { return nil }
func (stubUserRepo) GetByID(context.Context, string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}
func (stubUserRepo) GetByEmail(context.Context, string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}
func (stubUserRepo) UpdateGoogleID(context.Context, string, string) error { return nil }

func TestGoogleAuthURL_CarriesClientAndState(t *testing.T) {
	t.Parallel()

	tokens, err := jwt.NewTokenManager("test-secret", "15m", "168h")
	require.NoError(t, err)

	google := oauth.NewGoogleProvider(config.OAuth2GoogleConfig{
		ClientID:     "client-123",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:3000/oauth/callback",
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(stubUserRepo{}, tokens, google, logger)

	url := svc.GoogleAuthURL("state-abc")
	assert.Contains(t, url, "accounts.google.com")
	assert.Contains(t, url, "client_id=client-123")
	assert.Contains(t, url, "state=state-abc")
}
