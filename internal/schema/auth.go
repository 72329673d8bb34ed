package schema

import (
	"strings"
	"time"

	"github.com/natpac/travel-survey/backend/internal/auth"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	DeviceID *string `json:"device_id"`
}

func (l LoginRequest) Validate() error {
	var p problems
	checkDeviceID(&p, l.DeviceID)
	return p.err()
}

// Device returns the trimmed device id.
func (l LoginRequest) Device() string {
	return strings.TrimSpace(deref(l.DeviceID))
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func NewTokenResponse(t auth.Token) TokenResponse {
	return TokenResponse{AccessToken: t.AccessToken, TokenType: "bearer", ExpiresAt: t.ExpiresAt.UTC()}
}
