package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/natpac/travel-survey/backend/internal/domain"
	"github.com/natpac/travel-survey/backend/internal/schema"
)

// ListPendingSync handles GET /trips/sync/pending.
func (s *Server) ListPendingSync(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	trips, err := s.trips.ListUnsynced(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schema.NewTripReads(trips))
}

// ConfirmSync handles POST /trips/sync/confirm.
// Every id is checked against the caller before anything is written; one
// foreign or missing id fails the whole batch with 400.
func (s *Server) ConfirmSync(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	var body schema.SyncConfirm
	if err := schema.Decode(r.Body, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := body.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	ids := body.IDs()
	for _, id := range ids {
		if _, err := s.ownedTrip(r.Context(), user.ID, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.writeError(w, r, fmt.Errorf("%w: trip %s not found", domain.ErrBadRequest, id))
				return
			}
			s.writeError(w, r, err)
			return
		}
	}

	n, err := s.trips.MarkSynced(r.Context(), ids)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schema.Message{Message: fmt.Sprintf("%d trips marked as synced", n)})
}
