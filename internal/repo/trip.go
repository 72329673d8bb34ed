package repo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/natpac/travel-survey/backend/internal/domain"
)

// tripColumnList is the fixed column order scanTrip expects.
var tripColumnList = []string{
	"id", "user_id", "trip_number",
	"origin_lat", "origin_lng", "origin_address",
	"destination_lat", "destination_lng", "destination_address",
	"start_time", "end_time", "mode_of_travel",
	"num_co_travellers", "co_traveller_relationships",
	"is_confirmed", "is_synced", "created_at", "updated_at",
}

const tripColumns = `id, user_id, trip_number, origin_lat, origin_lng, origin_address,
	destination_lat, destination_lng, destination_address, start_time, end_time,
	mode_of_travel, num_co_travellers, co_traveller_relationships,
	is_confirmed, is_synced, created_at, updated_at`

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated). A UserID that does not reference
	// an existing user yields domain.ErrNotFound.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByUser returns one page of a user's trips, most recent start first.
	ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, error)

	// ListUnsynced returns every trip of the user that has not been synced yet.
	ListUnsynced(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)

	// Update applies the specified fields of patch and returns the updated record.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// MarkSynced sets is_synced on every listed trip in one statement and
	// returns the number of rows changed. Ownership is not checked.
	MarkSynced(ctx context.Context, ids []uuid.UUID) (int64, error)

	// ListForExport returns one page of all trips joined with the owner's
	// device_id, ordered by creation time.
	ListForExport(ctx context.Context, p domain.PaginationParams) ([]domain.ExportRow, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (
			user_id, trip_number,
			origin_lat, origin_lng, origin_address,
			destination_lat, destination_lng, destination_address,
			start_time, end_time, mode_of_travel,
			num_co_travellers, co_traveller_relationships, is_confirmed
		)
		VALUES (
			@user_id, @trip_number,
			@origin_lat, @origin_lng, @origin_address,
			@destination_lat, @destination_lng, @destination_address,
			@start_time, @end_time, @mode_of_travel,
			@num_co_travellers, @co_traveller_relationships, @is_confirmed
		)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"user_id":                    trip.UserID,
		"trip_number":                trip.TripNumber,
		"origin_lat":                 trip.OriginLat,
		"origin_lng":                 trip.OriginLng,
		"origin_address":             trip.OriginAddress,
		"destination_lat":            trip.DestinationLat,
		"destination_lng":            trip.DestinationLng,
		"destination_address":        trip.DestinationAddress,
		"start_time":                 trip.StartTime,
		"end_time":                   trip.EndTime, // nil becomes NULL
		"mode_of_travel":             trip.ModeOfTravel,
		"num_co_travellers":          trip.NumCoTravellers,
		"co_traveller_relationships": trip.CoTravellerRelationships,
		"is_confirmed":               trip.IsConfirmed,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", mapError(err))
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", mapError(err))
	}
	return result, nil
}

// ListByUser returns one page of the user's trips ordered by start_time descending.
func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, error) {
	q, args, err := buildListByUser(userID, p)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: build: %w", err)
	}

	trips, err := r.queryTrips(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	return trips, nil
}

// ListUnsynced returns all trips of the user with is_synced = false.
func (r *pgTripRepo) ListUnsynced(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id AND is_synced = FALSE
		ORDER BY start_time, id`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListUnsynced: %w", err)
	}
	return trips, nil
}

// Update writes only the specified columns and bumps updated_at.
// An empty patch reads the row back unchanged.
func (r *pgTripRepo) Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	q, args, err := buildTripUpdate(id, patch)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: build: %w", err)
	}
	if q == "" {
		return r.GetByID(ctx, id)
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", mapError(err))
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// MarkSynced flips is_synced for all ids in a single UPDATE, so either every
// targeted row changes or none does.
func (r *pgTripRepo) MarkSynced(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	q, args, err := buildMarkSynced(ids)
	if err != nil {
		return 0, fmt.Errorf("repo.TripRepo.MarkSynced: build: %w", err)
	}

	tag, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("repo.TripRepo.MarkSynced: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListForExport returns one page of export rows across all users.
func (r *pgTripRepo) ListForExport(ctx context.Context, p domain.PaginationParams) ([]domain.ExportRow, error) {
	q, args, err := buildExportPage(p)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListForExport: build: %w", err)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListForExport: %w", err)
	}
	defer rows.Close()

	out := []domain.ExportRow{}
	for rows.Next() {
		var deviceID string
		t, err := scanTrip(rows, &deviceID)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListForExport: scan: %w", err)
		}
		out = append(out, exportRowFromTrip(t, deviceID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListForExport: rows: %w", err)
	}
	return out, nil
}

// queryTrips runs q and scans every row. It always returns a non-nil slice.
func (r *pgTripRepo) queryTrips(ctx context.Context, q string, args ...any) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// buildListByUser renders the paged per-user SELECT.
func buildListByUser(userID uuid.UUID, p domain.PaginationParams) (string, []any, error) {
	return psql.Select(tripColumnList...).
		From("trips").
		Where(sq.Eq{"user_id": userID.String()}).
		OrderBy("start_time DESC", "id").
		Limit(uint64(p.Limit)).
		Offset(p.Offset()).
		ToSql()
}

// buildTripUpdate renders the UPDATE for the specified patch fields.
// It returns an empty query when the patch specifies nothing.
func buildTripUpdate(id uuid.UUID, patch domain.TripPatch) (string, []any, error) {
	if patch.IsEmpty() {
		return "", nil, nil
	}

	b := psql.Update("trips")
	b = setNullable(b, "trip_number", patch.TripNumber)
	b = setNullable(b, "origin_lat", patch.OriginLat)
	b = setNullable(b, "origin_lng", patch.OriginLng)
	b = setNullable(b, "origin_address", patch.OriginAddress)
	b = setNullable(b, "destination_lat", patch.DestinationLat)
	b = setNullable(b, "destination_lng", patch.DestinationLng)
	b = setNullable(b, "destination_address", patch.DestinationAddress)
	b = setNullable(b, "start_time", patch.StartTime)
	b = setNullable(b, "end_time", patch.EndTime)
	b = setNullable(b, "mode_of_travel", patch.ModeOfTravel)
	b = setNullable(b, "num_co_travellers", patch.NumCoTravellers)
	b = setNullable(b, "co_traveller_relationships", patch.CoTravellerRelationships)
	b = setNullable(b, "is_confirmed", patch.IsConfirmed)

	return b.
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id.String()}).
		Suffix("RETURNING " + tripColumns).
		ToSql()
}

// buildMarkSynced renders the bulk sync UPDATE as a single IN-list statement.
func buildMarkSynced(ids []uuid.UUID) (string, []any, error) {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return psql.Update("trips").
		Set("is_synced", true).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": strs}).
		ToSql()
}

// buildExportPage renders the paged export SELECT joined with users.
func buildExportPage(p domain.PaginationParams) (string, []any, error) {
	cols := make([]string, 0, len(tripColumnList)+1)
	for _, c := range tripColumnList {
		cols = append(cols, "t."+c)
	}
	cols = append(cols, "u.device_id")

	return psql.Select(cols...).
		From("trips t").
		Join("users u ON u.id = t.user_id").
		OrderBy("t.created_at", "t.id").
		Limit(uint64(p.Limit)).
		Offset(p.Offset()).
		ToSql()
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID and nullable end_time conversions. Any extra destinations
// are scanned after the trip columns (used by the export join).
func scanTrip(s scanner, extra ...any) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		userID    pgtype.UUID
		endTime   pgtype.Timestamptz
		startTime time.Time
		createdAt time.Time
		updatedAt time.Time
	)

	dest := []any{
		&id, &userID, &t.TripNumber,
		&t.OriginLat, &t.OriginLng, &t.OriginAddress,
		&t.DestinationLat, &t.DestinationLng, &t.DestinationAddress,
		&startTime, &endTime, &t.ModeOfTravel,
		&t.NumCoTravellers, &t.CoTravellerRelationships,
		&t.IsConfirmed, &t.IsSynced, &createdAt, &updatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.StartTime = startTime.UTC()
	if endTime.Valid {
		et := endTime.Time.UTC()
		t.EndTime = &et
	}
	t.CreatedAt = createdAt.UTC()
	t.UpdatedAt = updatedAt.UTC()

	return t, nil
}

// exportRowFromTrip flattens a trip and its owner's device id into an ExportRow.
func exportRowFromTrip(t domain.Trip, deviceID string) domain.ExportRow {
	return domain.ExportRow{
		TripID:                   t.ID,
		UserID:                   t.UserID,
		DeviceID:                 deviceID,
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
		IsSynced:                 t.IsSynced,
		CreatedAt:                t.CreatedAt,
		UpdatedAt:                t.UpdatedAt,
	}
}
