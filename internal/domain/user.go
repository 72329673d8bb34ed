package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
)

// User is an anonymous survey respondent identified by the device it installed
// the app on. DeviceID is unique across all users and never changes.
// Demographic fields are optional and nil when the respondent skipped them.
type User struct {
	ID            uuid.UUID
	DeviceID      string
	AgeGroup      *string
	Gender        *string
	HouseholdSize *int
	ConsentGiven  bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UserPatch lists the profile fields a respondent may change.
// An unspecified field leaves the stored value alone; an explicit null clears it.
type UserPatch struct {
	AgeGroup      nullable.Nullable[string]
	Gender        nullable.Nullable[string]
	HouseholdSize nullable.Nullable[int]
	ConsentGiven  nullable.Nullable[bool]
}

// IsEmpty reports whether the patch specifies no field at all.
func (p UserPatch) IsEmpty() bool {
	return !p.AgeGroup.IsSpecified() &&
		!p.Gender.IsSpecified() &&
		!p.HouseholdSize.IsSpecified() &&
		!p.ConsentGiven.IsSpecified()
}
