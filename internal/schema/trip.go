package schema

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"

	"github.com/natpac/travel-survey/backend/internal/domain"
)

// TripCreate is the body of POST /trips. The owner comes from the bearer
// token; a user_id in the body is not part of the shape and is dropped.
type TripCreate struct {
	TripNumber               *int       `json:"trip_number"`
	OriginLat                *float64   `json:"origin_lat"`
	OriginLng                *float64   `json:"origin_lng"`
	OriginAddress            *string    `json:"origin_address"`
	DestinationLat           *float64   `json:"destination_lat"`
	DestinationLng           *float64   `json:"destination_lng"`
	DestinationAddress       *string    `json:"destination_address"`
	StartTime                *time.Time `json:"start_time"`
	EndTime                  *time.Time `json:"end_time"`
	ModeOfTravel             *string    `json:"mode_of_travel"`
	NumCoTravellers          *int       `json:"num_co_travellers"`
	CoTravellerRelationships *string    `json:"co_traveller_relationships"`
	IsConfirmed              *bool      `json:"is_confirmed"`
}

func (t TripCreate) Validate() error {
	var p problems
	switch {
	case t.TripNumber == nil:
		p.add("trip_number", "is required")
	case *t.TripNumber < 1:
		p.add("trip_number", "must be at least 1")
	}
	checkLat(&p, "origin_lat", t.OriginLat)
	checkLng(&p, "origin_lng", t.OriginLng)
	checkLat(&p, "destination_lat", t.DestinationLat)
	checkLng(&p, "destination_lng", t.DestinationLng)
	if t.StartTime == nil {
		p.add("start_time", "is required")
	}
	switch {
	case t.ModeOfTravel == nil:
		p.add("mode_of_travel", "is required")
	case strings.TrimSpace(*t.ModeOfTravel) == "":
		p.add("mode_of_travel", "must not be blank")
	}
	if t.NumCoTravellers != nil && *t.NumCoTravellers < 0 {
		p.add("num_co_travellers", "must not be negative")
	}
	return p.err()
}

// ToDomain converts a validated TripCreate into a domain.Trip owned by userID.
func (t TripCreate) ToDomain(userID uuid.UUID) domain.Trip {
	trip := domain.Trip{
		UserID:                   userID,
		TripNumber:               deref(t.TripNumber),
		OriginLat:                deref(t.OriginLat),
		OriginLng:                deref(t.OriginLng),
		OriginAddress:            deref(t.OriginAddress),
		DestinationLat:           deref(t.DestinationLat),
		DestinationLng:           deref(t.DestinationLng),
		DestinationAddress:       deref(t.DestinationAddress),
		StartTime:                deref(t.StartTime).UTC(),
		ModeOfTravel:             strings.TrimSpace(deref(t.ModeOfTravel)),
		NumCoTravellers:          deref(t.NumCoTravellers),
		CoTravellerRelationships: deref(t.CoTravellerRelationships),
		IsConfirmed:              deref(t.IsConfirmed),
	}
	if t.EndTime != nil {
		end := t.EndTime.UTC()
		trip.EndTime = &end
	}
	return trip
}

// TripUpdate is the body of PUT /trips/{id}. Only end_time may be null.
type TripUpdate struct {
	TripNumber               nullable.Nullable[int]       `json:"trip_number"`
	OriginLat                nullable.Nullable[float64]   `json:"origin_lat"`
	OriginLng                nullable.Nullable[float64]   `json:"origin_lng"`
	OriginAddress            nullable.Nullable[string]    `json:"origin_address"`
	DestinationLat           nullable.Nullable[float64]   `json:"destination_lat"`
	DestinationLng           nullable.Nullable[float64]   `json:"destination_lng"`
	DestinationAddress       nullable.Nullable[string]    `json:"destination_address"`
	StartTime                nullable.Nullable[time.Time] `json:"start_time"`
	EndTime                  nullable.Nullable[time.Time] `json:"end_time"`
	ModeOfTravel             nullable.Nullable[string]    `json:"mode_of_travel"`
	NumCoTravellers          nullable.Nullable[int]       `json:"num_co_travellers"`
	CoTravellerRelationships nullable.Nullable[string]    `json:"co_traveller_relationships"`
	IsConfirmed              nullable.Nullable[bool]      `json:"is_confirmed"`
}

func (t TripUpdate) Validate() error {
	var p problems
	for _, f := range []struct {
		name   string
		isNull bool
	}{
		{"trip_number", t.TripNumber.IsNull()},
		{"origin_lat", t.OriginLat.IsNull()},
		{"origin_lng", t.OriginLng.IsNull()},
		{"origin_address", t.OriginAddress.IsNull()},
		{"destination_lat", t.DestinationLat.IsNull()},
		{"destination_lng", t.DestinationLng.IsNull()},
		{"destination_address", t.DestinationAddress.IsNull()},
		{"start_time", t.StartTime.IsNull()},
		{"mode_of_travel", t.ModeOfTravel.IsNull()},
		{"num_co_travellers", t.NumCoTravellers.IsNull()},
		{"co_traveller_relationships", t.CoTravellerRelationships.IsNull()},
		{"is_confirmed", t.IsConfirmed.IsNull()},
	} {
		if f.isNull {
			p.add(f.name, "must not be null")
		}
	}

	if v, err := t.TripNumber.Get(); err == nil && v < 1 {
		p.add("trip_number", "must be at least 1")
	}
	if v, err := t.OriginLat.Get(); err == nil {
		checkLat(&p, "origin_lat", &v)
	}
	if v, err := t.OriginLng.Get(); err == nil {
		checkLng(&p, "origin_lng", &v)
	}
	if v, err := t.DestinationLat.Get(); err == nil {
		checkLat(&p, "destination_lat", &v)
	}
	if v, err := t.DestinationLng.Get(); err == nil {
		checkLng(&p, "destination_lng", &v)
	}
	if v, err := t.ModeOfTravel.Get(); err == nil && strings.TrimSpace(v) == "" {
		p.add("mode_of_travel", "must not be blank")
	}
	if v, err := t.NumCoTravellers.Get(); err == nil && v < 0 {
		p.add("num_co_travellers", "must not be negative")
	}
	return p.err()
}

// ToPatch converts a validated TripUpdate into a domain.TripPatch.
// Times are normalised to UTC and mode_of_travel is trimmed.
func (t TripUpdate) ToPatch() domain.TripPatch {
	patch := domain.TripPatch{
		TripNumber:               t.TripNumber,
		OriginLat:                t.OriginLat,
		OriginLng:                t.OriginLng,
		OriginAddress:            t.OriginAddress,
		DestinationLat:           t.DestinationLat,
		DestinationLng:           t.DestinationLng,
		DestinationAddress:       t.DestinationAddress,
		StartTime:                t.StartTime,
		EndTime:                  t.EndTime,
		ModeOfTravel:             t.ModeOfTravel,
		NumCoTravellers:          t.NumCoTravellers,
		CoTravellerRelationships: t.CoTravellerRelationships,
		IsConfirmed:              t.IsConfirmed,
	}
	if v, err := t.StartTime.Get(); err == nil {
		patch.StartTime = nullable.NewNullableWithValue(v.UTC())
	}
	if v, err := t.EndTime.Get(); err == nil {
		patch.EndTime = nullable.NewNullableWithValue(v.UTC())
	}
	if v, err := t.ModeOfTravel.Get(); err == nil {
		patch.ModeOfTravel = nullable.NewNullableWithValue(strings.TrimSpace(v))
	}
	return patch
}

// TripRead is the public view of a trip.
type TripRead struct {
	ID                       uuid.UUID  `json:"id"`
	UserID                   uuid.UUID  `json:"user_id"`
	TripNumber               int        `json:"trip_number"`
	OriginLat                float64    `json:"origin_lat"`
	OriginLng                float64    `json:"origin_lng"`
	OriginAddress            string     `json:"origin_address"`
	DestinationLat           float64    `json:"destination_lat"`
	DestinationLng           float64    `json:"destination_lng"`
	DestinationAddress       string     `json:"destination_address"`
	StartTime                time.Time  `json:"start_time"`
	EndTime                  *time.Time `json:"end_time"`
	ModeOfTravel             string     `json:"mode_of_travel"`
	NumCoTravellers          int        `json:"num_co_travellers"`
	CoTravellerRelationships string     `json:"co_traveller_relationships"`
	IsConfirmed              bool       `json:"is_confirmed"`
	IsSynced                 bool       `json:"is_synced"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

func NewTripRead(t domain.Trip) TripRead {
	r := TripRead{
		ID:                       t.ID,
		UserID:                   t.UserID,
		TripNumber:               t.TripNumber,
		OriginLat:                t.OriginLat,
		OriginLng:                t.OriginLng,
		OriginAddress:            t.OriginAddress,
		DestinationLat:           t.DestinationLat,
		DestinationLng:           t.DestinationLng,
		DestinationAddress:       t.DestinationAddress,
		StartTime:                t.StartTime.UTC(),
		ModeOfTravel:             t.ModeOfTravel,
		NumCoTravellers:          t.NumCoTravellers,
		CoTravellerRelationships: t.CoTravellerRelationships,
		IsConfirmed:              t.IsConfirmed,
		IsSynced:                 t.IsSynced,
		CreatedAt:                t.CreatedAt.UTC(),
		UpdatedAt:                t.UpdatedAt.UTC(),
	}
	if t.EndTime != nil {
		end := t.EndTime.UTC()
		r.EndTime = &end
	}
	return r
}

// NewTripReads converts a slice of trips, never returning nil.
func NewTripReads(trips []domain.Trip) []TripRead {
	out := make([]TripRead, 0, len(trips))
	for _, t := range trips {
		out = append(out, NewTripRead(t))
	}
	return out
}

func checkLat(p *problems, field string, v *float64) {
	switch {
	case v == nil:
		p.add(field, "is required")
	case *v < -90 || *v > 90:
		p.add(field, "must be between -90 and 90")
	}
}

func checkLng(p *problems, field string, v *float64) {
	switch {
	case v == nil:
		p.add(field, "is required")
	case *v < -180 || *v > 180:
		p.add(field, "must be between -180 and 180")
	}
}
