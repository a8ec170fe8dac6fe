// Package auth implements the shared-secret guard in front of mutating routes.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
)

// AdminName is the display name returned by a successful token login.
const AdminName = "Administrador"

var (
	ErrMissingToken = errors.New("access token required")
	ErrInvalidToken = errors.New("invalid access token")
)

// LoginResult is the body of a successful token login.
type LoginResult struct {
	OK    bool   `json:"ok"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// Guard compares presented tokens against one configured secret.
type Guard struct {
	secret []byte
}

// NewGuard returns a Guard for secret. An empty secret rejects every token.
func NewGuard(secret string) *Guard {
	return &Guard{secret: []byte(secret)}
}

// Check validates token. Surrounding whitespace is ignored.
func (g *Guard) Check(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrMissingToken
	}
	if len(g.secret) == 0 || subtle.ConstantTimeCompare([]byte(token), g.secret) != 1 {
		return ErrInvalidToken
	}
	return nil
}

// Login exchanges the secret for the session descriptor the admin UI stores.
func (g *Guard) Login(token string) (*LoginResult, error) {
	if err := g.Check(token); err != nil {
		return nil, err
	}
	return &LoginResult{OK: true, Name: AdminName, Token: strings.TrimSpace(token)}, nil
}

// TokenFromHeaders picks the token from X-Access-Token, falling back to a
// "Bearer" Authorization header.
func TokenFromHeaders(accessToken, authorization string) string {
	if t := strings.TrimSpace(accessToken); t != "" {
		return t
	}
	const prefix = "bearer "
	if len(authorization) > len(prefix) && strings.EqualFold(authorization[:len(prefix)], prefix) {
		return strings.TrimSpace(authorization[len(prefix):])
	}
	return ""
}
