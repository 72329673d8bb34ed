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

const userColumns = `id, device_id, age_group, gender, household_size, consent_given, created_at, updated_at`

// UserRepo defines the persistence operations for Users.
type UserRepo interface {
	// Create inserts a new user and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated). A duplicate device_id yields
	// domain.ErrConflict.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID retrieves a single user by its UUID primary key.
	// Returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByDeviceID retrieves a single user by device identifier.
	// Returns domain.ErrNotFound if the device was never registered.
	GetByDeviceID(ctx context.Context, deviceID string) (domain.User, error)

	// Update applies the specified fields of patch and returns the updated record.
	// Returns domain.ErrNotFound if no user with that ID exists.
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error)
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

// Create inserts a new user row and returns the full persisted record.
func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (device_id, age_group, gender, household_size, consent_given)
		VALUES (@device_id, @age_group, @gender, @household_size, @consent_given)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"device_id":      user.DeviceID,
		"age_group":      user.AgeGroup, // nil becomes NULL
		"gender":         user.Gender,
		"household_size": user.HouseholdSize,
		"consent_given":  user.ConsentGiven,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", mapError(err))
	}
	return result, nil
}

// GetByID retrieves a user by primary key.
func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", mapError(err))
	}
	return result, nil
}

// GetByDeviceID retrieves a user by its unique device identifier.
func (r *pgUserRepo) GetByDeviceID(ctx context.Context, deviceID string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE device_id = @device_id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"device_id": deviceID}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByDeviceID: %w", mapError(err))
	}
	return result, nil
}

// Update writes only the specified columns. An empty patch reads the row back
// unchanged so callers still get not-found semantics.
func (r *pgUserRepo) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	q, args, err := buildUserUpdate(id, patch)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Update: build: %w", err)
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Update: %w", mapError(err))
	}
	return result, nil
}

// buildUserUpdate renders the UPDATE statement for the specified patch fields.
// Explicit nulls become SQL NULL.
func buildUserUpdate(id uuid.UUID, patch domain.UserPatch) (string, []any, error) {
	b := psql.Update("users")
	b = setNullable(b, "age_group", patch.AgeGroup)
	b = setNullable(b, "gender", patch.Gender)
	b = setNullable(b, "household_size", patch.HouseholdSize)
	b = setNullable(b, "consent_given", patch.ConsentGiven)

	return b.
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id.String()}).
		Suffix("RETURNING " + userColumns).
		ToSql()
}

// scanUser maps a single database row into a domain.User.
// It handles the UUID and nullable demographic conversions.
func scanUser(s scanner) (domain.User, error) {
	var (
		u         domain.User
		id        pgtype.UUID
		ageGroup  pgtype.Text
		gender    pgtype.Text
		household pgtype.Int4
		createdAt time.Time
		updatedAt time.Time
	)

	err := s.Scan(&id, &u.DeviceID, &ageGroup, &gender, &household, &u.ConsentGiven, &createdAt, &updatedAt)
	if err != nil {
		return domain.User{}, err
	}

	u.ID = uuid.UUID(id.Bytes)
	if ageGroup.Valid {
		v := ageGroup.String
		u.AgeGroup = &v
	}
	if gender.Valid {
		v := gender.String
		u.Gender = &v
	}
	if household.Valid {
		v := int(household.Int32)
		u.HouseholdSize = &v
	}
	u.CreatedAt = createdAt.UTC()
	u.UpdatedAt = updatedAt.UTC()

	return u, nil
}
