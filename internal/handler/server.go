// Package handler implements the HTTP handlers for the travel survey API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but share the same Server struct so they
// can reach its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/natpac/travel-survey/backend/internal/auth"
	"github.com/natpac/travel-survey/backend/internal/domain"
)

// The interfaces below are declared here, in the consumer package, so
// handler tests can inject function-field mocks without a database.

// AuthServicer registers devices, logs them in and resolves bearer tokens.
type AuthServicer interface {
	Register(ctx context.Context, user domain.User) (domain.User, auth.Token, error)
	Login(ctx context.Context, deviceID string) (auth.Token, error)
	ResolveUser(ctx context.Context, raw string) (domain.User, error)
}

// UserServicer defines the profile operations the user handler depends on.
type UserServicer interface {
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error)
}

// TripServicer defines the business operations the trip and sync handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListUnsynced(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	MarkSynced(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// ExportServicer produces the flat researcher export.
type ExportServicer interface {
	Export(ctx context.Context, p domain.PaginationParams) ([]domain.ExportRow, error)
}

// Pinger reports database reachability. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds every dependency the handlers need.
type Server struct {
	auth   AuthServicer
	users  UserServicer
	trips  TripServicer
	export ExportServicer
	db     Pinger
	clock  auth.Clock
	log    *slog.Logger
}

// Option customises a Server.
type Option func(*Server)

// WithClock sets the clock used for health timestamps and export filenames.
func WithClock(c auth.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// WithLogger sets the logger used for unexpected errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// NewServer constructs the Server with all its dependencies.
func NewServer(authn AuthServicer, users UserServicer, trips TripServicer, export ExportServicer, db Pinger, opts ...Option) *Server {
	s := &Server{
		auth:   authn,
		users:  users,
		trips:  trips,
		export: export,
		db:     db,
		clock:  auth.SystemClock{},
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
