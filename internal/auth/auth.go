// Package auth sources the operator's bearer token and exposes just enough
// of its claims for the console header: who is signed in and whether the
// session is about to lapse. The token is never verified client-side; the
// backend enforces access control, the console only signs requests with it.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvToken overrides any configured token when set.
const EnvToken = "FLEETDECK_TOKEN"

// Session holds the loaded token and its parsed, unverified claims.
type Session struct {
	token   string
	subject string
	expiry  time.Time
}

// Load builds a session from, in order of precedence: the FLEETDECK_TOKEN
// environment variable, the inline configured token, then the token file.
// A missing token is not an error; requests simply go out unsigned.
func Load(inline, tokenPath string) (*Session, error) {
	token := strings.TrimSpace(os.Getenv(EnvToken))
	if token == "" {
		token = strings.TrimSpace(inline)
	}
	if token == "" && tokenPath != "" {
		raw, err := os.ReadFile(tokenPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return &Session{}, nil
			}
			return nil, fmt.Errorf("read token file: %w", err)
		}
		token = strings.TrimSpace(string(raw))
	}

	s := &Session{token: token}
	s.parseClaims()
	return s, nil
}

// parseClaims decodes the JWT payload without verifying the signature. A
// token that is not a JWT still signs requests; it just yields no identity
// line.
func (s *Session) parseClaims() {
	if s.token == "" {
		return
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.token, claims); err != nil {
		return
	}
	if sub, err := claims.GetSubject(); err == nil {
		s.subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.expiry = exp.Time
	}
}

// Token returns the raw bearer token, "" when the operator is signed out.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

// Subject returns the token's sub claim when present.
func (s *Session) Subject() string {
	if s == nil {
		return ""
	}
	return s.subject
}

// ExpiresWithin reports whether the token carries an expiry inside the
// window. Tokens without an exp claim never report true.
func (s *Session) ExpiresWithin(window time.Duration) bool {
	if s == nil || s.expiry.IsZero() {
		return false
	}
	return time.Until(s.expiry) < window
}

// Clear forgets the token; subsequent requests go out unsigned.
func (s *Session) Clear() {
	s.token = ""
	s.subject = ""
	s.expiry = time.Time{}
}
