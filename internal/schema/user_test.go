package schema_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natpac/travel-survey/backend/internal/domain"
	"github.com/natpac/travel-survey/backend/internal/schema"
)

func ptr[T any](v T) *T { return &v }

func TestUserCreate_Validate(t *testing.T) {
	tests := []struct {
		name   string
		in     schema.UserCreate
		fields []string
	}{
		{"minimal", schema.UserCreate{DeviceID: ptr("device-1")}, nil},
		{"full", schema.UserCreate{
			DeviceID:      ptr("device-1"),
			AgeGroup:      ptr("25-34"),
			Gender:        ptr("female"),
			HouseholdSize: ptr(4),
			ConsentGiven:  ptr(true),
		}, nil},
		{"missing device", schema.UserCreate{}, []string{"device_id"}},
		{"blank device", schema.UserCreate{DeviceID: ptr("   ")}, []string{"device_id"}},
		{"long device", schema.UserCreate{DeviceID: ptr(strings.Repeat("d", 256))}, []string{"device_id"}},
		{"zero household", schema.UserCreate{DeviceID: ptr("d"), HouseholdSize: ptr(0)}, []string{"household_size"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.fields == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, tc.fields, fieldsOf(t, err))
		})
	}
}

func TestUserCreate_ToDomain(t *testing.T) {
	in := schema.UserCreate{DeviceID: ptr("  device-1 "), HouseholdSize: ptr(3)}

	u := in.ToDomain()

	assert.Equal(t, "device-1", u.DeviceID)
	assert.False(t, u.ConsentGiven, "consent defaults to false")
	require.NotNil(t, u.HouseholdSize)
	assert.Equal(t, 3, *u.HouseholdSize)
	assert.Nil(t, u.AgeGroup)
}

// TestUserUpdate_TriState verifies that absent, null and value decode to
// three distinct patch states.
func TestUserUpdate_TriState(t *testing.T) {
	var in schema.UserUpdate
	require.NoError(t, schema.Decode(strings.NewReader(`{"age_group":null,"household_size":3}`), &in))
	require.NoError(t, in.Validate())

	patch := in.ToPatch()

	assert.True(t, patch.AgeGroup.IsSpecified())
	assert.True(t, patch.AgeGroup.IsNull())
	assert.Equal(t, 3, patch.HouseholdSize.MustGet())
	assert.False(t, patch.Gender.IsSpecified())
	assert.False(t, patch.ConsentGiven.IsSpecified())
}

func TestUserUpdate_Validate(t *testing.T) {
	var in schema.UserUpdate
	require.NoError(t, schema.Decode(strings.NewReader(`{"consent_given":null,"household_size":0}`), &in))

	err := in.Validate()

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []string{"household_size", "consent_given"}, fieldsOf(t, err))
}

func TestNewUserRead(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	u := domain.User{
		ID:        uuid.New(),
		DeviceID:  "device-1",
		Gender:    ptr("male"),
		CreatedAt: time.Date(2025, 1, 1, 5, 30, 0, 0, loc),
	}

	r := schema.NewUserRead(u)

	assert.Equal(t, u.ID, r.ID)
	assert.Equal(t, "device-1", r.DeviceID)
	assert.Equal(t, time.UTC, r.CreatedAt.Location())
	assert.True(t, r.CreatedAt.Equal(u.CreatedAt))
}
