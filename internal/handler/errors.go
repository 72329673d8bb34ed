package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/natpac/travel-survey/backend/internal/domain"
	"github.com/natpac/travel-survey/backend/internal/schema"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErrorBody writes the error envelope, tagged with the request id.
func writeErrorBody(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, schema.NewErrorResponse(code, message, chimiddleware.GetReqID(r.Context())))
}

// writeNotFound answers 404. The caller supplies the message (e.g. "trip not
// found") because the handler is the layer that knows what was looked up.
func writeNotFound(w http.ResponseWriter, r *http.Request, message string) {
	writeErrorBody(w, r, http.StatusNotFound, "not_found", message)
}

// writeUnauthorized answers 401 with a bearer challenge.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeErrorBody(w, r, http.StatusUnauthorized, "unauthorized", message)
}

// writeError maps err onto a status and error code. Unknown errors are logged
// and answered with a generic 500 so internals never reach the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr   *schema.ValidationError
		maxErr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &maxErr):
		writeErrorBody(w, r, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
	case errors.As(err, &verr):
		resp := schema.NewErrorResponse("validation_error", verr.Error(), chimiddleware.GetReqID(r.Context()))
		resp.Error.Fields = verr.Fields
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, domain.ErrValidation):
		writeErrorBody(w, r, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrUnauthorized):
		writeUnauthorized(w, r, unwrapMessage(err, domain.ErrUnauthorized))
	case errors.Is(err, domain.ErrNotFound):
		writeNotFound(w, r, unwrapMessage(err, domain.ErrNotFound))
	case errors.Is(err, domain.ErrConflict):
		writeErrorBody(w, r, http.StatusBadRequest, "conflict", unwrapMessage(err, domain.ErrConflict))
	case errors.Is(err, domain.ErrBadRequest):
		writeErrorBody(w, r, http.StatusBadRequest, "bad_request", unwrapMessage(err, domain.ErrBadRequest))
	default:
		s.log.ErrorContext(r.Context(), "unhandled error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
		writeErrorBody(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage extracts the human-readable part that follows the sentinel in
// a wrapped error chain.
// e.g. "service.TripService.Create: validation error: end_time must not be
// before start_time" → "end_time must not be before start_time".
// With nothing after the sentinel, the sentinel text itself is returned.
func unwrapMessage(err error, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}
