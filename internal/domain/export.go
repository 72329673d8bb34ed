package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExportRow is a single row in the researcher export.
// It is a flat, denormalized view: one row per trip with the owner's
// device_id repeated alongside the trip columns.
type ExportRow struct {
	TripID                   uuid.UUID
	UserID                   uuid.UUID
	DeviceID                 string
	TripNumber               int
	OriginLat                float64
	OriginLng                float64
	OriginAddress            string
	DestinationLat           float64
	DestinationLng           float64
	DestinationAddress       string
	StartTime                time.Time
	EndTime                  *time.Time // nil when the trip is still in progress
	ModeOfTravel             string
	NumCoTravellers          int
	CoTravellerRelationships string
	IsConfirmed              bool
	IsSynced                 bool
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
