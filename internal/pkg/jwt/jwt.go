package jwt

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenManager issues and verifies HS256 token pairs. Refresh tokens can
// be revoked by their jti; the revocation set is in-process, so a restart
// forgets revocations but every entry expires with its token anyway.
type TokenManager struct {
	auth       *jwtauth.JWTAuth
	accessTTL  time.Duration
	refreshTTL time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time
}

type Claims struct {
	UserID     string
	EmployeeID string
	Role       string
}

func NewTokenManager(secret, accessExpiration, refreshExpiration string) (*TokenManager, error) {
	accessTTL, err := time.ParseDuration(accessExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid access expiration: %w", err)
	}
	refreshTTL, err := time.ParseDuration(refreshExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh expiration: %w", err)
	}

	return &TokenManager{
		auth:       jwtauth.New("HS256", []byte(secret), nil, jwt.WithAcceptableSkew(30*time.Second)),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		revoked:    make(map[string]time.Time),
	}, nil
}

// Auth exposes the underlying verifier for router middleware.
func (m *TokenManager) Auth() *jwtauth.JWTAuth {
	return m.auth
}

// GenerateTokenPair issues an access and a refresh token for the claims.
// It returns the pair and the access token's expiry.
func (m *TokenManager) GenerateTokenPair(c Claims) (access, refresh string, expiresAt time.Time, err error) {
	now := time.Now()
	expiresAt = now.Add(m.accessTTL)

	_, access, err = m.auth.Encode(map[string]interface{}{
		"jti":         uuid.NewString(),
		"user_id":     c.UserID,
		"employee_id": c.EmployeeID,
		"role":        c.Role,
		"type":        TokenTypeAccess,
		"iat":         now.Unix(),
		"exp":         expiresAt.Unix(),
	})
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to encode access token: %w", err)
	}

	_, refresh, err = m.auth.Encode(map[string]interface{}{
		"jti":         uuid.NewString(),
		"user_id":     c.UserID,
		"employee_id": c.EmployeeID,
		"role":        c.Role,
		"type":        TokenTypeRefresh,
		"iat":         now.Unix(),
		"exp":         now.Add(m.refreshTTL).Unix(),
	})
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to encode refresh token: %w", err)
	}

	return access, refresh, expiresAt, nil
}

// VerifyRefreshToken validates the signature and expiry of a refresh
// token, rejects access tokens presented as refresh tokens, and rejects
// revoked tokens. On success it returns the embedded claims and the jti.
func (m *TokenManager) VerifyRefreshToken(tokenString string) (Claims, string, error) {
	token, err := jwtauth.VerifyToken(m.auth, tokenString)
	if err != nil {
		return Claims{}, "", fmt.Errorf("invalid refresh token: %w", err)
	}

	if typ, _ := token.Get("type"); typ != TokenTypeRefresh {
		return Claims{}, "", fmt.Errorf("token is not a refresh token")
	}

	jti := token.JwtID()
	m.mu.Lock()
	_, isRevoked := m.revoked[jti]
	m.mu.Unlock()
	if isRevoked {
		return Claims{}, "", fmt.Errorf("refresh token has been revoked")
	}

	var c Claims
	if v, ok := token.Get("user_id"); ok {
		c.UserID, _ = v.(string)
	}
	if v, ok := token.Get("employee_id"); ok {
		c.EmployeeID, _ = v.(string)
	}
	if v, ok := token.Get("role"); ok {
		c.Role, _ = v.(string)
	}
	return c, jti, nil
}

// Revoke marks a refresh token's jti as unusable until it would have
// expired anyway.
func (m *TokenManager) Revoke(jti string) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.revoked[jti] = now.Add(m.refreshTTL)
	for id, exp := range m.revoked {
		if exp.Before(now) {
			delete(m.revoked, id)
		}
	}
}
