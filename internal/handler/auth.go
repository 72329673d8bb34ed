package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/natpac/travel-survey/backend/internal/domain"
	"github.com/natpac/travel-survey/backend/internal/schema"
)

type ctxKey int

const userKey ctxKey = iota

// withUser stores the authenticated caller on the context.
func withUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// currentUser returns the caller resolved by requireUser.
// Handlers mounted behind requireUser can rely on ok being true.
func currentUser(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userKey).(domain.User)
	return u, ok
}

// Register handles POST /auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var body schema.UserCreate
	if err := schema.Decode(r.Body, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := body.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	_, tok, err := s.auth.Register(r.Context(), body.ToDomain())
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			writeErrorBody(w, r, http.StatusBadRequest, "conflict", "device already registered")
			return
		}
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, schema.NewTokenResponse(tok))
}

// Login handles POST /auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var body schema.LoginRequest
	if err := schema.Decode(r.Body, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := body.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	tok, err := s.auth.Login(r.Context(), body.Device())
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeUnauthorized(w, r, "device not registered")
			return
		}
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, schema.NewTokenResponse(tok))
}

// requireUser resolves the bearer token to a user and stores it on the
// request context. Missing or invalid tokens are answered with 401.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			writeUnauthorized(w, r, "not authenticated")
			return
		}

		user, err := s.auth.ResolveUser(r.Context(), raw)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				writeUnauthorized(w, r, "could not validate credentials")
				return
			}
			s.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
