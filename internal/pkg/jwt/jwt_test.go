package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-characters"

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(testSecret, "15m", "1h")
	require.NoError(t, err)
	return m
}

func TestNewTokenManager_RejectsBadDurations(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager(testSecret, "soon", "1h")
	assert.Error(t, err)
	_, err = NewTokenManager(testSecret, "15m", "later")
	assert.Error(t, err)
}

func TestGenerateTokenPair_RoundTrip(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	claims := Claims{UserID: "user-1", EmployeeID: "emp-1", Role: "employee"}

	access, refresh, expiresAt, err := m.GenerateTokenPair(claims)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	got, jti, err := m.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, claims, got)
	assert.NotEmpty(t, jti)

	// The access token carries its claims for the verifier middleware.
	token, err := jwtauth.VerifyToken(m.Auth(), access)
	require.NoError(t, err)
	typ, _ := token.Get("type")
	assert.Equal(t, TokenTypeAccess, typ)
	role, _ := token.Get("role")
	assert.Equal(t, "employee", role)
}

func TestVerifyRefreshToken_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	access, _, _, err := m.GenerateTokenPair(Claims{UserID: "user-1", Role: "employee"})
	require.NoError(t, err)

	_, _, err = m.VerifyRefreshToken(access)
	assert.Error(t, err)
}

func TestVerifyRefreshToken_RejectsRevoked(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, refresh, _, err := m.GenerateTokenPair(Claims{UserID: "user-1", Role: "employee"})
	require.NoError(t, err)

	_, jti, err := m.VerifyRefreshToken(refresh)
	require.NoError(t, err)

	m.Revoke(jti)
	_, _, err = m.VerifyRefreshToken(refresh)
	assert.Error(t, err)
}

func TestVerifyRefreshToken_RejectsGarbage(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, _, err := m.VerifyRefreshToken("not-a-token")
	assert.Error(t, err)
}
