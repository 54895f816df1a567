package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/assurly/assurly/internal/domain/sequence"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/logger"
)

type sequenceRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewSequenceRepository creates the durable sequence registry
func NewSequenceRepository(db *sqlx.DB, logger *logger.Logger) sequence.Repository {
	return &sequenceRepository{db: db, logger: logger}
}

// Next relies on the database to linearize the increment: the upsert
// either inserts the first value or atomically bumps the stored one,
// and RETURNING hands back the value this caller, and only this
// caller, produced. A failed statement consumes nothing.
func (r *sequenceRepository) Next(ctx context.Context, key string) (int64, error) {
	query := `
		INSERT INTO sequences (key, value, created_at, updated_at)
		VALUES ($1, 1, NOW(), NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = sequences.value + 1, updated_at = NOW()
		RETURNING value`

	var value int64
	if err := r.db.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		return 0, ierr.WithError(err).
			WithHintf("failed to claim next value for sequence %s", key).
			Mark(ierr.ErrRegistryFailure)
	}

	r.logger.Debugw("claimed sequence value", "key", key, "value", value)
	return value, nil
}

func (r *sequenceRepository) Current(ctx context.Context, key string) (int64, error) {
	var value int64
	err := r.db.GetContext(ctx, &value, `SELECT value FROM sequences WHERE key = $1`, key)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, ierr.WithError(err).
			WithHintf("failed to read sequence %s", key).
			Mark(ierr.ErrRegistryFailure)
	}
	return value, nil
}
