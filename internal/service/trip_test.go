package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natpac/travel-survey/backend/internal/domain"
	"github.com/natpac/travel-survey/backend/internal/service"
)

// ---- helpers ---------------------------------------------------------------

func validTrip() domain.Trip {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 9, 15, 0, 0, time.UTC)
	return domain.Trip{
		UserID:         uuid.New(),
		TripNumber:     1,
		OriginLat:      8.5241,
		OriginLng:      76.9366,
		DestinationLat: 9.9312,
		DestinationLng: 76.2673,
		StartTime:      start,
		EndTime:        &end,
		ModeOfTravel:   "Bus",
	}
}

func echoRepo() *mockTripRepo {
	// Echoes whatever it receives back, for tests that only care about the
	// service's own rules.
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	got, err := svc.Create(context.Background(), validTrip())

	require.NoError(t, err)
	assert.Equal(t, "Bus", got.ModeOfTravel)
}

func TestTripService_Create_EndBeforeStart(t *testing.T) {
	called := false
	r := &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) {
			called = true
			return t, nil
		},
	}
	svc := service.NewTripService(r)

	trip := validTrip()
	bad := trip.StartTime.Add(-time.Minute)
	trip.EndTime = &bad

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, called, "repo must not be reached on invalid input")
}

func TestTripService_Create_InProgress(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.EndTime = nil

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTripRepo{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, repoErr
		},
	}
	svc := service.NewTripService(r)

	_, err := svc.Create(context.Background(), validTrip())

	assert.ErrorIs(t, err, repoErr)
}

// ---- GetByID tests ---------------------------------------------------------

func TestTripService_GetByID_NotFound(t *testing.T) {
	r := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(r)

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ListByUser tests ------------------------------------------------------

func TestTripService_ListByUser_PassesPage(t *testing.T) {
	userID := uuid.New()
	page := domain.PaginationParams{Skip: 10, Limit: 5}
	r := &mockTripRepo{
		listByUser: func(_ context.Context, gotUser uuid.UUID, p domain.PaginationParams) ([]domain.Trip, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, page, p)
			return []domain.Trip{validTrip()}, nil
		},
	}
	svc := service.NewTripService(r)

	got, err := svc.ListByUser(context.Background(), userID, page)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestTripService_ListByUser_Empty(t *testing.T) {
	r := &mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID, _ domain.PaginationParams) ([]domain.Trip, error) {
			return nil, nil
		},
	}
	svc := service.NewTripService(r)

	got, err := svc.ListByUser(context.Background(), uuid.New(), domain.PaginationParams{Limit: 10})

	require.NoError(t, err)
	// Should return an empty slice, not nil, so it encodes as [].
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Update tests ----------------------------------------------------------

// TestTripService_Update_SingleField verifies that a patch without times goes
// straight to the repo unchanged, with no extra read.
func TestTripService_Update_SingleField(t *testing.T) {
	id := uuid.New()
	patch := domain.TripPatch{ModeOfTravel: nullable.NewNullableWithValue("Bus")}
	r := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			t.Fatal("GetByID must not be called when times are untouched")
			return domain.Trip{}, nil
		},
		update: func(_ context.Context, gotID uuid.UUID, got domain.TripPatch) (domain.Trip, error) {
			assert.Equal(t, id, gotID)
			assert.Equal(t, patch, got)
			trip := validTrip()
			trip.ID = gotID
			trip.ModeOfTravel = got.ModeOfTravel.MustGet()
			return trip, nil
		},
	}
	svc := service.NewTripService(r)

	got, err := svc.Update(context.Background(), id, patch)

	require.NoError(t, err)
	assert.Equal(t, "Bus", got.ModeOfTravel)
}

func TestTripService_Update_MergedTimesInvalid(t *testing.T) {
	stored := validTrip()
	r := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return stored, nil },
		update: func(_ context.Context, _ uuid.UUID, _ domain.TripPatch) (domain.Trip, error) {
			t.Fatal("Update must not be called for an invalid merge")
			return domain.Trip{}, nil
		},
	}
	svc := service.NewTripService(r)

	// Only the end moves, to before the stored start.
	patch := domain.TripPatch{EndTime: nullable.NewNullableWithValue(stored.StartTime.Add(-time.Hour))}

	_, err := svc.Update(context.Background(), uuid.New(), patch)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Update_ClearEndTime(t *testing.T) {
	stored := validTrip()
	r := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return stored, nil },
		update: func(_ context.Context, _ uuid.UUID, _ domain.TripPatch) (domain.Trip, error) {
			out := stored
			out.EndTime = nil
			return out, nil
		},
	}
	svc := service.NewTripService(r)

	got, err := svc.Update(context.Background(), uuid.New(), domain.TripPatch{EndTime: nullable.NewNullNullable[time.Time]()})

	require.NoError(t, err)
	assert.Nil(t, got.EndTime)
}

func TestTripService_Update_NotFound(t *testing.T) {
	r := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(r)

	patch := domain.TripPatch{StartTime: nullable.NewNullableWithValue(time.Now())}
	_, err := svc.Update(context.Background(), uuid.New(), patch)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Delete tests ----------------------------------------------------------

func TestTripService_Delete_NotFound(t *testing.T) {
	r := &mockTripRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}
	svc := service.NewTripService(r)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_Delete_OK(t *testing.T) {
	r := &mockTripRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
	svc := service.NewTripService(r)

	assert.NoError(t, svc.Delete(context.Background(), uuid.New()))
}

// ---- sync tests ------------------------------------------------------------

func TestTripService_ListUnsynced_Empty(t *testing.T) {
	r := &mockTripRepo{
		listUnsynced: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) { return nil, nil },
	}
	svc := service.NewTripService(r)

	got, err := svc.ListUnsynced(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestTripService_MarkSynced(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	calls := 0
	r := &mockTripRepo{
		markSynced: func(_ context.Context, got []uuid.UUID) (int64, error) {
			calls++
			assert.Equal(t, ids, got)
			return int64(len(got)), nil
		},
	}
	svc := service.NewTripService(r)

	n, err := svc.MarkSynced(context.Background(), ids)

	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Equal(t, 1, calls, "bulk mark must be a single repo call")
}

func TestTripService_MarkSynced_NoIDs(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{})

	n, err := svc.MarkSynced(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTripService_ListForExport_Empty(t *testing.T) {
	r := &mockTripRepo{
		listForExport: func(_ context.Context, _ domain.PaginationParams) ([]domain.ExportRow, error) {
			return nil, nil
		},
	}
	svc := service.NewTripService(r)

	got, err := svc.ListForExport(context.Background(), domain.PaginationParams{Limit: 1})

	require.NoError(t, err)
	assert.NotNil(t, got)
}
