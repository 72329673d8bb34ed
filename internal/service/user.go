package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/natpac/travel-survey/backend/internal/domain"
	"github.com/natpac/travel-survey/backend/internal/repo"
)

// UserService implements business logic for User operations.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(r repo.UserRepo) *UserService {
	return &UserService{repo: r}
}

// Create persists a new user. There is no pre-check for an existing
// device_id: the unique constraint surfaces as domain.ErrConflict.
func (s *UserService) Create(ctx context.Context, user domain.User) (domain.User, error) {
	result, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w", err)
	}
	return result, nil
}

// GetByDeviceID returns domain.ErrNotFound if no user holds deviceID.
func (s *UserService) GetByDeviceID(ctx context.Context, deviceID string) (domain.User, error) {
	result, err := s.repo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByDeviceID: %w", err)
	}
	return result, nil
}

// Update applies a profile patch. An empty patch returns the stored user.
// Returns domain.ErrNotFound if the user does not exist.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	result, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	return result, nil
}
