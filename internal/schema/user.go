package schema

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"

	"github.com/natpac/travel-survey/backend/internal/domain"
)

const maxDeviceIDLen = 255

// UserCreate is the registration body.
type UserCreate struct {
	DeviceID      *string `json:"device_id"`
	AgeGroup      *string `json:"age_group"`
	Gender        *string `json:"gender"`
	HouseholdSize *int    `json:"household_size"`
	ConsentGiven  *bool   `json:"consent_given"`
}

func (u UserCreate) Validate() error {
	var p problems
	checkDeviceID(&p, u.DeviceID)
	if u.HouseholdSize != nil && *u.HouseholdSize < 1 {
		p.add("household_size", "must be at least 1")
	}
	return p.err()
}

// ToDomain converts a validated UserCreate into a domain.User.
func (u UserCreate) ToDomain() domain.User {
	user := domain.User{
		DeviceID:      strings.TrimSpace(deref(u.DeviceID)),
		AgeGroup:      u.AgeGroup,
		Gender:        u.Gender,
		HouseholdSize: u.HouseholdSize,
	}
	if u.ConsentGiven != nil {
		user.ConsentGiven = *u.ConsentGiven
	}
	return user
}

// UserUpdate is the profile edit body. Absent fields are left alone and an
// explicit null clears the demographic fields.
type UserUpdate struct {
	AgeGroup      nullable.Nullable[string] `json:"age_group"`
	Gender        nullable.Nullable[string] `json:"gender"`
	HouseholdSize nullable.Nullable[int]    `json:"household_size"`
	ConsentGiven  nullable.Nullable[bool]   `json:"consent_given"`
}

func (u UserUpdate) Validate() error {
	var p problems
	if v, err := u.HouseholdSize.Get(); err == nil && v < 1 {
		p.add("household_size", "must be at least 1")
	}
	if u.ConsentGiven.IsNull() {
		p.add("consent_given", "must not be null")
	}
	return p.err()
}

func (u UserUpdate) ToPatch() domain.UserPatch {
	return domain.UserPatch{
		AgeGroup:      u.AgeGroup,
		Gender:        u.Gender,
		HouseholdSize: u.HouseholdSize,
		ConsentGiven:  u.ConsentGiven,
	}
}

// UserRead is the public view of a user.
type UserRead struct {
	ID            uuid.UUID `json:"id"`
	DeviceID      string    `json:"device_id"`
	AgeGroup      *string   `json:"age_group"`
	Gender        *string   `json:"gender"`
	HouseholdSize *int      `json:"household_size"`
	ConsentGiven  bool      `json:"consent_given"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewUserRead(u domain.User) UserRead {
	return UserRead{
		ID:            u.ID,
		DeviceID:      u.DeviceID,
		AgeGroup:      u.AgeGroup,
		Gender:        u.Gender,
		HouseholdSize: u.HouseholdSize,
		ConsentGiven:  u.ConsentGiven,
		CreatedAt:     u.CreatedAt.UTC(),
		UpdatedAt:     u.UpdatedAt.UTC(),
	}
}

func checkDeviceID(p *problems, deviceID *string) {
	switch {
	case deviceID == nil:
		p.add("device_id", "is required")
	case strings.TrimSpace(*deviceID) == "":
		p.add("device_id", "must not be blank")
	case utf8.RuneCountInString(strings.TrimSpace(*deviceID)) > maxDeviceIDLen:
		p.add("device_id", "must be at most 255 characters")
	}
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
