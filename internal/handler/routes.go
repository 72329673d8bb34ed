package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/natpac/travel-survey/backend/internal/middleware"
)

// Routes returns a router serving every endpoint of the API.
// exportKey guards GET /export/trips.csv when non-empty.
// Cross-cutting middleware (request id, logging, CORS, body limit) is applied
// by the caller around the returned handler.
func (s *Server) Routes(exportKey string) chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, r, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/health", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Post("/auth/register", s.Register)
	r.Post("/auth/login", s.Login)

	r.With(middleware.NewAPIKeyHandler(middleware.ExportKeyHeader, exportKey)).
		Get("/export/trips.csv", s.ExportTrips)

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)

		r.Get("/user/profile", s.GetProfile)
		r.Put("/user/profile", s.UpdateProfile)

		r.Get("/trips", s.ListTrips)
		r.Post("/trips", s.CreateTrip)
		r.Get("/trips/sync/pending", s.ListPendingSync)
		r.Post("/trips/sync/confirm", s.ConfirmSync)
		r.Get("/trips/{id}", s.GetTrip)
		r.Put("/trips/{id}", s.UpdateTrip)
		r.Delete("/trips/{id}", s.DeleteTrip)
	})

	return r
}
