// Package schema holds the request and response shapes of the HTTP API and the
// rules that turn untrusted request bodies into domain values.
// Nothing here touches storage; handlers decode into a schema type, call
// Validate, then hand the domain value to a service.
package schema

import (
	"strings"

	"github.com/natpac/travel-survey/backend/internal/domain"
)

// FieldError names one offending input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports every field that failed validation.
// errors.Is(err, domain.ErrValidation) holds for any *ValidationError.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Reason
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return domain.ErrValidation }

// NewValidationError returns a ValidationError for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Reason: reason}}}
}

// problems collects field errors while a shape is validated.
type problems []FieldError

func (p *problems) add(field, reason string) {
	*p = append(*p, FieldError{Field: field, Reason: reason})
}

// err returns nil when nothing was collected.
func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return &ValidationError{Fields: p}
}
