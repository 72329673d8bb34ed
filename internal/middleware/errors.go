package middleware

import (
	"encoding/json"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/natpac/travel-survey/backend/internal/schema"
)

// reject writes the API's standard error envelope and stops the chain.
func reject(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(schema.NewErrorResponse(code, message, chimiddleware.GetReqID(r.Context())))
}
