package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/natpac/travel-survey/backend/api"
	"github.com/natpac/travel-survey/backend/internal/schema"
)

const pingTimeout = 2 * time.Second

var errNoDatabase = errors.New("no database configured")

// GetHealth handles GET /health.
// It always answers 200 while the process is up; status is "degraded" when
// the database does not answer a ping.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := schema.Health{Status: "ok", Timestamp: s.clock.Now().UTC(), Database: "ok"}

	if err := s.ping(r.Context()); err != nil {
		s.log.WarnContext(r.Context(), "health: database ping failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "unavailable"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) ping(ctx context.Context) error {
	if s.db == nil {
		return errNoDatabase
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.db.Ping(ctx)
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(api.OpenAPI)
}
