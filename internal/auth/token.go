// Package auth issues and verifies the bearer tokens that bind a request to a
// registered device. Tokens are HS256 JWTs whose subject is the device_id.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any token that must not be
// trusted: bad signature, malformed, wrong issuer or algorithm, no subject,
// or expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// Token is a freshly issued bearer token.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// TokenManager signs and verifies device tokens with one process-wide key.
// It is safe for concurrent use; all state is read-only after construction.
type TokenManager struct {
	key    []byte
	issuer string
	ttl    time.Duration
	clock  Clock
}

// NewTokenManager returns a TokenManager. A nil clock means SystemClock.
func NewTokenManager(secret, issuer string, ttl time.Duration, clock Clock) (*TokenManager, error) {
	if secret == "" || issuer == "" || ttl <= 0 {
		return nil, errors.New("auth.NewTokenManager: secret, issuer and a positive ttl are required")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &TokenManager{key: []byte(secret), issuer: issuer, ttl: ttl, clock: clock}, nil
}

// Issue creates a token for deviceID that expires ttl from now.
func (m *TokenManager) Issue(deviceID string) (Token, error) {
	if deviceID == "" {
		return Token{}, errors.New("auth.TokenManager.Issue: empty device id")
	}

	now := m.clock.Now()
	expiresAt := now.Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   deviceID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return Token{}, fmt.Errorf("auth.TokenManager.Issue: sign: %w", err)
	}

	// NumericDate truncates to whole seconds; report what the token carries.
	return Token{AccessToken: signed, ExpiresAt: claims.ExpiresAt.Time.UTC()}, nil
}

// Verify checks raw and returns the device id it was issued for.
func (m *TokenManager) Verify(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	return sub, nil
}
