package handler

import (
	"errors"
	"net/http"

	"github.com/natpac/travel-survey/backend/internal/domain"
	"github.com/natpac/travel-survey/backend/internal/schema"
)

// GetProfile handles GET /user/profile.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())
	writeJSON(w, http.StatusOK, schema.NewUserRead(user))
}

// UpdateProfile handles PUT /user/profile.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	var body schema.UserUpdate
	if err := schema.Decode(r.Body, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := body.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	updated, err := s.users.Update(r.Context(), user.ID, body.ToPatch())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, r, "user not found")
			return
		}
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, schema.NewUserRead(updated))
}
