package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/natpac/travel-survey/backend/internal/domain"
	"github.com/natpac/travel-survey/backend/internal/schema"
)

// ListTrips handles GET /trips.
// Supports ?skip= and ?limit= query parameters (defaults: skip=0, limit=100, max=1000).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	page, err := pageParams(r, domain.DefaultTripLimit, domain.MaxTripLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	trips, err := s.trips.ListByUser(r.Context(), user.ID, page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schema.NewTripReads(trips))
}

// CreateTrip handles POST /trips. The owner is always the caller.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	var body schema.TripCreate
	if err := schema.Decode(r.Body, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := body.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	created, err := s.trips.Create(r.Context(), body.ToDomain(user.ID))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, schema.NewTripRead(created))
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.loadOwnedTrip(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, schema.NewTripRead(trip))
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.loadOwnedTrip(w, r)
	if !ok {
		return
	}

	var body schema.TripUpdate
	if err := schema.Decode(r.Body, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := body.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	updated, err := s.trips.Update(r.Context(), trip.ID, body.ToPatch())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, r, "trip not found")
			return
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schema.NewTripRead(updated))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.loadOwnedTrip(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), trip.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, r, "trip not found")
			return
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schema.Message{Message: "Trip deleted successfully"})
}

// loadOwnedTrip binds {id} and fetches the trip if the caller owns it.
// A trip owned by someone else is answered exactly like a missing one.
// On failure the response has been written and ok is false.
func (s *Server) loadOwnedTrip(w http.ResponseWriter, r *http.Request) (trip domain.Trip, ok bool) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return domain.Trip{}, false
	}

	user, _ := currentUser(r.Context())
	trip, err = s.ownedTrip(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, r, "trip not found")
			return domain.Trip{}, false
		}
		s.writeError(w, r, err)
		return domain.Trip{}, false
	}
	return trip, true
}

// ownedTrip returns domain.ErrNotFound both for a missing trip and for one
// that belongs to another user.
func (s *Server) ownedTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if trip.UserID != userID {
		return domain.Trip{}, fmt.Errorf("handler.ownedTrip: %w", domain.ErrNotFound)
	}
	return trip, nil
}
