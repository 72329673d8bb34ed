package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/natpac/travel-survey/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of every export.
var csvHeaders = []string{
	"trip_id", "user_id", "device_id", "trip_number",
	"origin_lat", "origin_lng", "origin_address",
	"destination_lat", "destination_lng", "destination_address",
	"start_time", "end_time", "mode_of_travel",
	"num_co_travellers", "co_traveller_relationships",
	"is_confirmed", "is_synced", "created_at", "updated_at",
}

// ExportTrips handles GET /export/trips.csv.
// Supports ?skip= and ?limit= (defaults: skip=0, limit=10000, max=50000).
// The header row is always written, so an empty store yields a one-line file.
func (s *Server) ExportTrips(w http.ResponseWriter, r *http.Request) {
	page, err := pageParams(r, domain.DefaultExportLimit, domain.MaxExportLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rows, err := s.export.Export(r.Context(), page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	filename := "trips_export_" + s.clock.Now().UTC().Format("20060102_150405") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)

	// Status is committed from here on; write failures can only be logged.
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		s.logExportFailure(r, err)
		return
	}
	for _, row := range rows {
		if err := cw.Write(exportRecord(row)); err != nil {
			s.logExportFailure(r, err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		s.logExportFailure(r, err)
	}
}

func (s *Server) logExportFailure(r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "export: write csv",
		"error", err,
		"request_id", chimiddleware.GetReqID(r.Context()),
	)
}

// exportRecord encodes an ExportRow in csvHeaders order.
// Times are RFC3339 UTC and a nil end_time is an empty cell.
func exportRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID.String(),
		r.UserID.String(),
		r.DeviceID,
		strconv.Itoa(r.TripNumber),
		formatFloat(r.OriginLat),
		formatFloat(r.OriginLng),
		r.OriginAddress,
		formatFloat(r.DestinationLat),
		formatFloat(r.DestinationLng),
		r.DestinationAddress,
		formatTime(r.StartTime),
		formatOptionalTime(r.EndTime),
		r.ModeOfTravel,
		strconv.Itoa(r.NumCoTravellers),
		r.CoTravellerRelationships,
		strconv.FormatBool(r.IsConfirmed),
		strconv.FormatBool(r.IsSynced),
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// formatOptionalTime returns the RFC3339 representation of t, or "" if t is nil.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
