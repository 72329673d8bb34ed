package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/natpac/travel-survey/backend/internal/auth"
	"github.com/natpac/travel-survey/backend/internal/domain"
	"github.com/natpac/travel-survey/backend/internal/handler"
	"github.com/natpac/travel-survey/backend/internal/schema"
)

// ---- mocks -----------------------------------------------------------------

type mockAuthServicer struct {
	register    func(ctx context.Context, user domain.User) (domain.User, auth.Token, error)
	login       func(ctx context.Context, deviceID string) (auth.Token, error)
	resolveUser func(ctx context.Context, raw string) (domain.User, error)
}

func (m *mockAuthServicer) Register(ctx context.Context, user domain.User) (domain.User, auth.Token, error) {
	return m.register(ctx, user)
}
func (m *mockAuthServicer) Login(ctx context.Context, deviceID string) (auth.Token, error) {
	return m.login(ctx, deviceID)
}
func (m *mockAuthServicer) ResolveUser(ctx context.Context, raw string) (domain.User, error) {
	return m.resolveUser(ctx, raw)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

type mockUserServicer struct {
	update func(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error)
}

func (m *mockUserServicer) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	return m.update(ctx, id, patch)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByUser   func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, error)
	update       func(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	delete       func(ctx context.Context, id uuid.UUID) error
	listUnsynced func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	markSynced   func(ctx context.Context, ids []uuid.UUID) (int64, error)
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID, p)
}
func (m *mockTripServicer) Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, id, patch)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) ListUnsynced(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listUnsynced(ctx, userID)
}
func (m *mockTripServicer) MarkSynced(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return m.markSynced(ctx, ids)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context, p domain.PaginationParams) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, p domain.PaginationParams) ([]domain.ExportRow, error) {
	return m.export(ctx, p)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

type mockPinger struct{ err error }

func (m mockPinger) Ping(context.Context) error { return m.err }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// ---- fixtures --------------------------------------------------------------

var (
	userA = domain.User{ID: uuid.New(), DeviceID: "device-A"}
	userB = domain.User{ID: uuid.New(), DeviceID: "device-B"}
)

const (
	tokenA = "token-for-A"
	tokenB = "token-for-B"
)

// knownTokens resolves tokenA and tokenB to their users and rejects anything else.
func knownTokens() *mockAuthServicer {
	return &mockAuthServicer{
		resolveUser: func(_ context.Context, raw string) (domain.User, error) {
			switch raw {
			case tokenA:
				return userA, nil
			case tokenB:
				return userB, nil
			}
			return domain.User{}, fmt.Errorf("service.AuthService.ResolveUser: %w", domain.ErrUnauthorized)
		},
	}
}

func tripFixture(owner domain.User) domain.Trip {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	return domain.Trip{
		ID:             uuid.New(),
		UserID:         owner.ID,
		TripNumber:     1,
		OriginLat:      8.5241,
		OriginLng:      76.9366,
		DestinationLat: 9.9312,
		DestinationLng: 76.2673,
		StartTime:      start,
		EndTime:        &end,
		ModeOfTravel:   "Bus",
		CreatedAt:      start,
		UpdatedAt:      start,
	}
}

// ---- helpers ---------------------------------------------------------------

type deps struct {
	auth      handler.AuthServicer
	users     handler.UserServicer
	trips     handler.TripServicer
	export    handler.ExportServicer
	db        handler.Pinger
	now       time.Time
	exportKey string
}

// newHTTPHandler wires a Server with the given mocks into the real router.
// This mirrors how main.go wires it in production.
func newHTTPHandler(d deps) http.Handler {
	if d.auth == nil {
		d.auth = knownTokens()
	}
	if d.now.IsZero() {
		d.now = time.Date(2025, 7, 4, 15, 4, 5, 0, time.UTC)
	}
	srv := handler.NewServer(d.auth, d.users, d.trips, d.export, d.db,
		handler.WithClock(fixedClock{now: d.now}),
		handler.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return srv.Routes(d.exportKey)
}

// do sends a request through h. body may be nil, a raw string, or any value
// to be JSON-encoded.
func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) schema.ErrorDetail {
	t.Helper()
	var resp schema.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}
