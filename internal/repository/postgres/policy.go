package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/assurly/assurly/internal/domain/policy"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/types"
)

type policyRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewPolicyRepository creates a postgres-backed policy repository
func NewPolicyRepository(db *sqlx.DB, logger *logger.Logger) policy.Repository {
	return &policyRepository{db: db, logger: logger}
}

type policyRow struct {
	ID            string          `db:"id"`
	OwnerID       string          `db:"owner_id"`
	VehicleID     string          `db:"vehicle_id"`
	ProductID     string          `db:"product_id"`
	QuoteID       string          `db:"quote_id"`
	Premium       decimal.Decimal `db:"premium"`
	Status        string          `db:"status"`
	PaymentStatus string          `db:"payment_status"`
	StartDate     time.Time       `db:"start_date"`
	EndDate       time.Time       `db:"end_date"`
	DocumentIDs   jsonb[[]string] `db:"document_ids"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
	CreatedBy     string          `db:"created_by"`
	UpdatedBy     string          `db:"updated_by"`
}

func toPolicyRow(p *policy.Policy) *policyRow {
	return &policyRow{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		VehicleID:     p.VehicleID,
		ProductID:     p.ProductID,
		QuoteID:       p.QuoteID,
		Premium:       p.Premium,
		Status:        string(p.Status),
		PaymentStatus: string(p.PaymentStatus),
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		DocumentIDs:   jsonb[[]string]{V: p.DocumentIDs},
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		CreatedBy:     p.CreatedBy,
		UpdatedBy:     p.UpdatedBy,
	}
}

func (r *policyRow) toDomain() *policy.Policy {
	return &policy.Policy{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		VehicleID:     r.VehicleID,
		ProductID:     r.ProductID,
		QuoteID:       r.QuoteID,
		Premium:       r.Premium,
		Status:        types.PolicyStatus(r.Status),
		PaymentStatus: types.PaymentStatus(r.PaymentStatus),
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		DocumentIDs:   r.DocumentIDs.V,
		BaseModel: types.BaseModel{
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			CreatedBy: r.CreatedBy,
			UpdatedBy: r.UpdatedBy,
		},
	}
}

func (r *policyRepository) Create(ctx context.Context, p *policy.Policy) error {
	query := `
		INSERT INTO policies (
			id, owner_id, vehicle_id, product_id, quote_id, premium,
			status, payment_status, start_date, end_date, document_ids,
			created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :owner_id, :vehicle_id, :product_id, :quote_id, :premium,
			:status, :payment_status, :start_date, :end_date, :document_ids,
			:created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, toPolicyRow(p)); err != nil {
		return ierr.WithError(err).
			WithHint("failed to create policy").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *policyRepository) Get(ctx context.Context, id string) (*policy.Policy, error) {
	var row policyRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM policies WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ierr.NewErrorf("policy %s not found", id).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to get policy").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *policyRepository) Update(ctx context.Context, p *policy.Policy, expected types.PolicyStatus) error {
	query := `
		UPDATE policies SET
			status = :status,
			payment_status = :payment_status,
			start_date = :start_date,
			end_date = :end_date,
			document_ids = :document_ids,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND status = :expected_status`

	row := struct {
		*policyRow
		ExpectedStatus string `db:"expected_status"`
	}{toPolicyRow(p), string(expected)}

	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update policy").
			Mark(ierr.ErrDatabase)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.NewErrorf("policy %s was modified concurrently", p.ID).
			Mark(ierr.ErrVersionConflict)
	}
	return nil
}

func (r *policyRepository) GetByQuoteID(ctx context.Context, quoteID string) (*policy.Policy, error) {
	var row policyRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM policies WHERE quote_id = $1`, quoteID)
	if err == sql.ErrNoRows {
		return nil, ierr.NewErrorf("no policy for quote %s", quoteID).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to get policy by quote").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *policyRepository) ListByOwner(ctx context.Context, ownerID string) ([]*policy.Policy, error) {
	return r.list(ctx,
		`SELECT * FROM policies WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
}

func (r *policyRepository) ListActiveEndedBefore(ctx context.Context, ts time.Time) ([]*policy.Policy, error) {
	return r.list(ctx,
		`SELECT * FROM policies WHERE status = $1 AND end_date < $2`,
		string(types.PolicyStatusActive), ts)
}

func (r *policyRepository) ListActiveEndingBetween(ctx context.Context, from, to time.Time) ([]*policy.Policy, error) {
	return r.list(ctx,
		`SELECT * FROM policies WHERE status = $1 AND end_date >= $2 AND end_date <= $3`,
		string(types.PolicyStatusActive), from, to)
}

func (r *policyRepository) list(ctx context.Context, query string, args ...interface{}) ([]*policy.Policy, error) {
	var rows []policyRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list policies").
			Mark(ierr.ErrDatabase)
	}

	policies := make([]*policy.Policy, len(rows))
	for i := range rows {
		policies[i] = rows[i].toDomain()
	}
	return policies, nil
}
