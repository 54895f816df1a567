package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/assurly/assurly/internal/domain/vehicle"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/logger"
)

type vehicleRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewVehicleRepository creates a postgres-backed vehicle repository
func NewVehicleRepository(db *sqlx.DB, logger *logger.Logger) vehicle.Repository {
	return &vehicleRepository{db: db, logger: logger}
}

func (r *vehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		INSERT INTO vehicles (
			id, owner_id, make, model, year, registration_no, market_value,
			created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :owner_id, :make, :model, :year, :registration_no, :market_value,
			:created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, v); err != nil {
		return ierr.WithError(err).
			WithHint("failed to create vehicle").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *vehicleRepository) Get(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := r.db.GetContext(ctx, &v, `SELECT * FROM vehicles WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ierr.NewErrorf("vehicle %s not found", id).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to get vehicle").
			Mark(ierr.ErrDatabase)
	}
	return &v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		UPDATE vehicles SET
			make = :make, model = :model, year = :year,
			registration_no = :registration_no, market_value = :market_value,
			updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`

	if _, err := r.db.NamedExecContext(ctx, query, v); err != nil {
		return ierr.WithError(err).
			WithHint("failed to update vehicle").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *vehicleRepository) ListByOwner(ctx context.Context, ownerID string) ([]*vehicle.Vehicle, error) {
	var vehicles []*vehicle.Vehicle
	err := r.db.SelectContext(ctx, &vehicles,
		`SELECT * FROM vehicles WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list vehicles").
			Mark(ierr.ErrDatabase)
	}
	return vehicles, nil
}
