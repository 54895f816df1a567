package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/assurly/assurly/internal/domain/quote"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/types"
)

type quoteRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewQuoteRepository creates a postgres-backed quote repository
func NewQuoteRepository(db *sqlx.DB, logger *logger.Logger) quote.Repository {
	return &quoteRepository{db: db, logger: logger}
}

type quoteRow struct {
	ID              string                        `db:"id"`
	OwnerID         string                        `db:"owner_id"`
	VehicleID       string                        `db:"vehicle_id"`
	ProductID       string                        `db:"product_id"`
	SelectedAddOns  jsonb[[]string]               `db:"selected_add_ons"`
	PricingSnapshot jsonb[quote.TariffSnapshot]   `db:"pricing_snapshot"`
	Breakdown       jsonb[quote.PricingBreakdown] `db:"breakdown"`
	Status          string                        `db:"status"`
	ExpiresAt       time.Time                     `db:"expires_at"`
	CreatedAt       time.Time                     `db:"created_at"`
	UpdatedAt       time.Time                     `db:"updated_at"`
	CreatedBy       string                        `db:"created_by"`
	UpdatedBy       string                        `db:"updated_by"`
}

func toQuoteRow(q *quote.Quote) *quoteRow {
	return &quoteRow{
		ID:              q.ID,
		OwnerID:         q.OwnerID,
		VehicleID:       q.VehicleID,
		ProductID:       q.ProductID,
		SelectedAddOns:  jsonb[[]string]{V: q.SelectedAddOns},
		PricingSnapshot: jsonb[quote.TariffSnapshot]{V: q.PricingSnapshot},
		Breakdown:       jsonb[quote.PricingBreakdown]{V: q.Breakdown},
		Status:          string(q.Status),
		ExpiresAt:       q.ExpiresAt,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
		CreatedBy:       q.CreatedBy,
		UpdatedBy:       q.UpdatedBy,
	}
}

func (r *quoteRow) toDomain() *quote.Quote {
	return &quote.Quote{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		VehicleID:       r.VehicleID,
		ProductID:       r.ProductID,
		SelectedAddOns:  r.SelectedAddOns.V,
		PricingSnapshot: r.PricingSnapshot.V,
		Breakdown:       r.Breakdown.V,
		Status:          types.QuoteStatus(r.Status),
		ExpiresAt:       r.ExpiresAt,
		BaseModel: types.BaseModel{
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			CreatedBy: r.CreatedBy,
			UpdatedBy: r.UpdatedBy,
		},
	}
}

func (r *quoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	query := `
		INSERT INTO quotes (
			id, owner_id, vehicle_id, product_id, selected_add_ons,
			pricing_snapshot, breakdown, status, expires_at,
			created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :owner_id, :vehicle_id, :product_id, :selected_add_ons,
			:pricing_snapshot, :breakdown, :status, :expires_at,
			:created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, toQuoteRow(q)); err != nil {
		return ierr.WithError(err).
			WithHint("failed to create quote").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *quoteRepository) Get(ctx context.Context, id string) (*quote.Quote, error) {
	var row quoteRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM quotes WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ierr.NewErrorf("quote %s not found", id).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to get quote").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *quoteRepository) Update(ctx context.Context, q *quote.Quote, expected types.QuoteStatus) error {
	query := `
		UPDATE quotes SET
			status = :status,
			breakdown = :breakdown,
			expires_at = :expires_at,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND status = :expected_status`

	row := struct {
		*quoteRow
		ExpectedStatus string `db:"expected_status"`
	}{toQuoteRow(q), string(expected)}

	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update quote").
			Mark(ierr.ErrDatabase)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.NewErrorf("quote %s was modified concurrently", q.ID).
			Mark(ierr.ErrVersionConflict)
	}
	return nil
}

func (r *quoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*quote.Quote, error) {
	var rows []quoteRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM quotes WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list quotes").
			Mark(ierr.ErrDatabase)
	}

	quotes := make([]*quote.Quote, len(rows))
	for i := range rows {
		quotes[i] = rows[i].toDomain()
	}
	return quotes, nil
}
