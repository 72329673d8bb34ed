package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/natpac/travel-survey/backend/internal/domain"
	"github.com/natpac/travel-survey/backend/internal/schema"
)

// pathUUID binds the named chi path parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, schema.NewValidationError(name, "must be a valid UUID")
	}
	return id, nil
}

// pageParams binds ?skip= and ?limit= and applies the given default and cap.
// Non-integer values are a validation error; out-of-range ones fall back.
func pageParams(r *http.Request, defaultLimit, maxLimit int) (domain.PaginationParams, error) {
	var skip, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "skip", q, &skip); err != nil {
		return domain.PaginationParams{}, schema.NewValidationError("skip", "must be an integer")
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		return domain.PaginationParams{}, schema.NewValidationError("limit", "must be an integer")
	}
	return domain.NewPaginationParams(skip, limit, defaultLimit, maxLimit), nil
}
