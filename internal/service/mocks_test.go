package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/natpac/travel-survey/backend/internal/auth"
	"github.com/natpac/travel-survey/backend/internal/domain"
	"github.com/natpac/travel-survey/backend/internal/repo"
	"github.com/natpac/travel-survey/backend/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByUser    func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, error)
	listUnsynced  func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	update        func(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	delete        func(ctx context.Context, id uuid.UUID) error
	markSynced    func(ctx context.Context, ids []uuid.UUID) (int64, error)
	listForExport func(ctx context.Context, p domain.PaginationParams) ([]domain.ExportRow, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID, p)
}
func (m *mockTripRepo) ListUnsynced(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listUnsynced(ctx, userID)
}
func (m *mockTripRepo) Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, id, patch)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripRepo) MarkSynced(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return m.markSynced(ctx, ids)
}
func (m *mockTripRepo) ListForExport(ctx context.Context, p domain.PaginationParams) ([]domain.ExportRow, error) {
	return m.listForExport(ctx, p)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockUserRepo struct {
	create        func(ctx context.Context, user domain.User) (domain.User, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByDeviceID func(ctx context.Context, deviceID string) (domain.User, error)
	update        func(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByDeviceID(ctx context.Context, deviceID string) (domain.User, error) {
	return m.getByDeviceID(ctx, deviceID)
}
func (m *mockUserRepo) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	return m.update(ctx, id, patch)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockTokens struct {
	issue  func(deviceID string) (auth.Token, error)
	verify func(raw string) (string, error)
}

func (m *mockTokens) Issue(deviceID string) (auth.Token, error) { return m.issue(deviceID) }
func (m *mockTokens) Verify(raw string) (string, error)         { return m.verify(raw) }

var _ service.TokenManager = (*mockTokens)(nil)
var _ service.TokenManager = (*auth.TokenManager)(nil)

var _ service.UserDirectory = (*service.UserService)(nil)
var _ service.ExportSource = (*service.TripService)(nil)
