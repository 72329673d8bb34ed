package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Decode reads exactly one JSON value from r into dst.
// Missing bodies, malformed JSON, trailing data and type mismatches come back
// as a *ValidationError. A body cut off by http.MaxBytesReader is returned as the
// underlying *http.MaxBytesError so callers can answer 413.
func Decode(r io.Reader, dst any) error {
	if r == nil {
		return NewValidationError("body", "request body is required")
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}

	// Anything but EOF after the first value is trailing data.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return maxErr
		}
		return NewValidationError("body", "malformed JSON: unexpected data after the top-level value")
	}
	return nil
}

func decodeError(err error) error {
	var (
		maxErr    *http.MaxBytesError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &maxErr):
		return maxErr
	case errors.Is(err, io.EOF):
		return NewValidationError("body", "request body is required")
	case errors.Is(err, io.ErrUnexpectedEOF):
		return NewValidationError("body", "malformed JSON")
	case errors.As(err, &syntaxErr):
		return NewValidationError("body", fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset))
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return NewValidationError(field, "must be of type "+jsonType(typeErr.Type.String()))
	default:
		return NewValidationError("body", err.Error())
	}
}

// jsonType maps a Go type name to the JSON vocabulary clients understand.
func jsonType(goType string) string {
	switch goType {
	case "int", "int32", "int64", "float32", "float64":
		return "number"
	case "string":
		return "string"
	case "bool":
		return "boolean"
	}
	return goType
}
