// Package domain contains the core data types for the travel survey backend.
// It is imported by every other internal package (repo, service, handler).
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
)

// Trip is one journey recorded by a respondent, from origin to destination.
// UserID is fixed at creation. EndTime is nil while the trip is in progress.
// TripNumber is the respondent's own sequence number and is not unique.
type Trip struct {
	ID                       uuid.UUID
	UserID                   uuid.UUID
	TripNumber               int
	OriginLat                float64
	OriginLng                float64
	OriginAddress            string
	DestinationLat           float64
	DestinationLng           float64
	DestinationAddress       string
	StartTime                time.Time
	EndTime                  *time.Time
	ModeOfTravel             string
	NumCoTravellers          int
	CoTravellerRelationships string
	IsConfirmed              bool
	IsSynced                 bool
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// CheckTimes returns ErrValidation when the trip ends before it starts.
// A nil EndTime is always valid.
func (t Trip) CheckTimes() error {
	if t.EndTime != nil && t.EndTime.Before(t.StartTime) {
		return fmt.Errorf("%w: end_time must not be before start_time", ErrValidation)
	}
	return nil
}

// TripPatch lists the trip fields an owner may change. UserID is absent since
// ownership never changes, and IsSynced only moves through sync confirmation.
// Only EndTime accepts an explicit null.
type TripPatch struct {
	TripNumber               nullable.Nullable[int]
	OriginLat                nullable.Nullable[float64]
	OriginLng                nullable.Nullable[float64]
	OriginAddress            nullable.Nullable[string]
	DestinationLat           nullable.Nullable[float64]
	DestinationLng           nullable.Nullable[float64]
	DestinationAddress       nullable.Nullable[string]
	StartTime                nullable.Nullable[time.Time]
	EndTime                  nullable.Nullable[time.Time]
	ModeOfTravel             nullable.Nullable[string]
	NumCoTravellers          nullable.Nullable[int]
	CoTravellerRelationships nullable.Nullable[string]
	IsConfirmed              nullable.Nullable[bool]
}

// IsEmpty reports whether the patch specifies no field at all.
func (p TripPatch) IsEmpty() bool {
	for _, specified := range []bool{
		p.TripNumber.IsSpecified(),
		p.OriginLat.IsSpecified(),
		p.OriginLng.IsSpecified(),
		p.OriginAddress.IsSpecified(),
		p.DestinationLat.IsSpecified(),
		p.DestinationLng.IsSpecified(),
		p.DestinationAddress.IsSpecified(),
		p.StartTime.IsSpecified(),
		p.EndTime.IsSpecified(),
		p.ModeOfTravel.IsSpecified(),
		p.NumCoTravellers.IsSpecified(),
		p.CoTravellerRelationships.IsSpecified(),
		p.IsConfirmed.IsSpecified(),
	} {
		if specified {
			return false
		}
	}
	return true
}

// TouchesTimes reports whether the patch changes start_time or end_time.
func (p TripPatch) TouchesTimes() bool {
	return p.StartTime.IsSpecified() || p.EndTime.IsSpecified()
}

// ApplyTimes returns t with the patch's start and end times applied.
// Other fields are left alone; it exists so callers can check the merged
// ordering before writing.
func (p TripPatch) ApplyTimes(t Trip) Trip {
	if v, err := p.StartTime.Get(); err == nil {
		t.StartTime = v
	}
	if p.EndTime.IsSpecified() {
		if p.EndTime.IsNull() {
			t.EndTime = nil
		} else if v, err := p.EndTime.Get(); err == nil {
			t.EndTime = &v
		}
	}
	return t
}
