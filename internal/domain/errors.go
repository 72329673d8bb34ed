package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database, or exists but belongs to another user.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing required field, end time before start time).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when a bearer token is missing, invalid or
// expired, or when a login names a device that was never registered.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict is returned when a write collides with a unique constraint,
// e.g. registering a device_id that already exists.
var ErrConflict = errors.New("conflict")

// ErrBadRequest is returned when a request is well-formed but cannot be
// honoured as a whole, e.g. a sync batch naming a foreign trip.
var ErrBadRequest = errors.New("bad request")
