// Package auth issues and verifies the bearer tokens that identify viewers.
//
// Tokens are HS256-signed JWTs. The subject claim holds the user id and the
// roles claim the user's roles, which the visibility policy consults.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Endeer/pontoon/privacy"
)

var (
	// ErrInvalidToken is returned for tokens that fail verification.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrNoSecret is returned when signing without a configured secret.
	ErrNoSecret = errors.New("auth: no signing secret configured")
)

// Claims are the JWT claims of a viewer token.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
}

// Authenticator signs and verifies viewer tokens.
type Authenticator struct {
	secret []byte
	now    func() time.Time
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithClock sets the clock used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) {
		a.now = now
	}
}

// New returns an authenticator for secret. With an empty secret every token
// is rejected, so only anonymous requests succeed.
func New(secret string, opts ...Option) *Authenticator {
	a := &Authenticator{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Sign issues a token for subject with the given roles. A zero ttl issues a
// token without expiry.
func (a *Authenticator) Sign(subject string, roles []string, ttl time.Duration) (string, error) {
	if len(a.secret) == 0 {
		return "", ErrNoSecret
	}
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("auth: subject is required")
	}
	now := a.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Roles: roles,
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return token, nil
}

// Verify parses token and returns the viewer it identifies.
func (a *Authenticator) Verify(token string) (*privacy.SimpleViewer, error) {
	if len(a.secret) == 0 {
		return nil, ErrInvalidToken
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return &privacy.SimpleViewer{UserID: claims.Subject, Roles: claims.Roles}, nil
}

// ViewerFromRequest returns the viewer identified by the request's bearer
// token. A request without an Authorization header has no viewer and no
// error.
func (a *Authenticator) ViewerFromRequest(r *http.Request) (privacy.Viewer, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, nil
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: malformed authorization header", ErrInvalidToken)
	}
	viewer, err := a.Verify(strings.TrimSpace(token))
	if err != nil {
		return nil, err
	}
	return viewer, nil
}
