// Package service contains the business logic for the travel survey API.
// Services enforce business rules and orchestrate repo calls. No SQL lives
// here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/natpac/travel-survey/backend/internal/domain"
	"github.com/natpac/travel-survey/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
// It does not check ownership; handlers compare trip.UserID with the caller.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create persists a new trip. The caller stamps UserID.
// Returns domain.ErrValidation if the trip ends before it starts.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := trip.CheckTimes(); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID, or domain.ErrNotFound.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListByUser returns one page of a user's trips.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, error) {
	trips, err := s.repo.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByUser: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update applies a partial update. When the patch moves start_time or
// end_time, the stored trip is loaded first so the merged times can be checked.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	if patch.TouchesTimes() {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
		}
		if err := patch.ApplyTimes(current).CheckTimes(); err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
		}
	}
	result, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// ListUnsynced returns every trip of the user not yet confirmed as synced.
func (s *TripService) ListUnsynced(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.repo.ListUnsynced(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListUnsynced: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// MarkSynced flips is_synced for all ids in one statement and reports how
// many rows changed. Ownership must be verified by the caller beforehand.
func (s *TripService) MarkSynced(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := s.repo.MarkSynced(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("service.TripService.MarkSynced: %w", err)
	}
	return n, nil
}

// ListForExport returns one page of all trips across all users, flattened
// with the owner's device id.
func (s *TripService) ListForExport(ctx context.Context, p domain.PaginationParams) ([]domain.ExportRow, error) {
	rows, err := s.repo.ListForExport(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListForExport: %w", err)
	}
	if rows == nil {
		return []domain.ExportRow{}, nil
	}
	return rows, nil
}
