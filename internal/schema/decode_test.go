package schema_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natpac/travel-survey/backend/internal/domain"
	"github.com/natpac/travel-survey/backend/internal/schema"
)

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var verr *schema.ValidationError
	require.True(t, errors.As(err, &verr), "expected *schema.ValidationError, got %v", err)
	out := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		out[i] = f.Field
	}
	return out
}

func TestDecode_EmptyBody(t *testing.T) {
	var body schema.TripCreate
	err := schema.Decode(strings.NewReader(""), &body)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []string{"body"}, fieldsOf(t, err))
}

func TestDecode_MalformedJSON(t *testing.T) {
	for _, raw := range []string{`{`, `{"trip_number": 1,}`, `not json`} {
		var body schema.TripCreate
		err := schema.Decode(strings.NewReader(raw), &body)

		assert.ErrorIs(t, err, domain.ErrValidation, "raw=%s", raw)
		assert.Equal(t, []string{"body"}, fieldsOf(t, err), "raw=%s", raw)
	}
}

// TestDecode_WrongType verifies a string latitude is reported against the
// field rather than as a generic decode failure.
func TestDecode_TrailingData(t *testing.T) {
	for _, raw := range []string{
		`{"mode_of_travel":"Bus"} trailing`,
		`{"mode_of_travel":"Bus"}{}`,
		`{"mode_of_travel":"Bus"}}`,
	} {
		var body schema.TripUpdate
		err := schema.Decode(strings.NewReader(raw), &body)

		assert.ErrorIs(t, err, domain.ErrValidation, raw)
		assert.Equal(t, []string{"body"}, fieldsOf(t, err), raw)
		assert.Contains(t, err.Error(), "malformed JSON", raw)
	}
}

func TestDecode_TrailingWhitespaceAccepted(t *testing.T) {
	var body schema.LoginRequest
	err := schema.Decode(strings.NewReader("{\"device_id\":\"device-A\"}\n\t "), &body)

	require.NoError(t, err)
	require.NotNil(t, body.DeviceID)
	assert.Equal(t, "device-A", *body.DeviceID)
}

func TestDecode_WrongType(t *testing.T) {
	var body schema.TripCreate
	err := schema.Decode(strings.NewReader(`{"origin_lat":"north"}`), &body)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []string{"origin_lat"}, fieldsOf(t, err))
}

func TestDecode_TooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	r := http.MaxBytesReader(rec, nopCloser{strings.NewReader(`{"device_id":"` + strings.Repeat("x", 64) + `"}`)}, 16)

	var body schema.UserCreate
	err := schema.Decode(r, &body)

	var maxErr *http.MaxBytesError
	assert.True(t, errors.As(err, &maxErr))
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestDecode_UnknownFieldsIgnored(t *testing.T) {
	var body schema.TripCreate
	err := schema.Decode(strings.NewReader(`{"user_id":"someone-else","trip_number":2}`), &body)

	require.NoError(t, err)
	require.NotNil(t, body.TripNumber)
	assert.Equal(t, 2, *body.TripNumber)
}

type nopCloser struct{ *strings.Reader }

func (nopCloser) Close() error { return nil }
