package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/natpac/travel-survey/backend/internal/auth"
	"github.com/natpac/travel-survey/backend/internal/domain"
)

// TokenManager issues and verifies bearer tokens.
// *auth.TokenManager satisfies it.
type TokenManager interface {
	Issue(deviceID string) (auth.Token, error)
	Verify(raw string) (string, error)
}

// UserDirectory looks up and creates users by device id.
// *UserService satisfies it.
type UserDirectory interface {
	GetByDeviceID(ctx context.Context, deviceID string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
}

// AuthService registers devices, logs them in, and resolves bearer tokens
// back to users.
type AuthService struct {
	users  UserDirectory
	tokens TokenManager
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserDirectory, tokens TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates the user and returns it with a fresh token.
// Returns domain.ErrConflict if the device is already registered, including
// when a concurrent registration wins the race to the unique index.
func (s *AuthService) Register(ctx context.Context, user domain.User) (domain.User, auth.Token, error) {
	_, err := s.users.GetByDeviceID(ctx, user.DeviceID)
	switch {
	case err == nil:
		return domain.User{}, auth.Token{}, fmt.Errorf("service.AuthService.Register: %w: device already registered", domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		return domain.User{}, auth.Token{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return domain.User{}, auth.Token{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}

	tok, err := s.tokens.Issue(created.DeviceID)
	if err != nil {
		return domain.User{}, auth.Token{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return created, tok, nil
}

// Login issues a token for a registered device.
// Returns domain.ErrUnauthorized if the device is unknown.
func (s *AuthService) Login(ctx context.Context, deviceID string) (auth.Token, error) {
	user, err := s.users.GetByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return auth.Token{}, fmt.Errorf("service.AuthService.Login: %w: device not registered", domain.ErrUnauthorized)
		}
		return auth.Token{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	tok, err := s.tokens.Issue(user.DeviceID)
	if err != nil {
		return auth.Token{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return tok, nil
}

// ResolveUser verifies a raw bearer token and loads the user it names.
// Returns domain.ErrUnauthorized if the token is invalid or expired, or if
// its device no longer has a user row.
func (s *AuthService) ResolveUser(ctx context.Context, raw string) (domain.User, error) {
	deviceID, err := s.tokens.Verify(raw)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.ResolveUser: %w: %w", domain.ErrUnauthorized, err)
	}

	user, err := s.users.GetByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("service.AuthService.ResolveUser: %w: unknown device", domain.ErrUnauthorized)
		}
		return domain.User{}, fmt.Errorf("service.AuthService.ResolveUser: %w", err)
	}
	return user, nil
}
