package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/assurly/assurly/internal/domain/claim"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/types"
)

type claimRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewClaimRepository creates a postgres-backed claim repository
func NewClaimRepository(db *sqlx.DB, logger *logger.Logger) claim.Repository {
	return &claimRepository{db: db, logger: logger}
}

type claimRow struct {
	ID          string                      `db:"id"`
	Reference   string                      `db:"reference"`
	OwnerID     string                      `db:"owner_id"`
	PolicyID    string                      `db:"policy_id"`
	VehicleID   string                      `db:"vehicle_id"`
	Status      string                      `db:"status"`
	Incident    jsonb[claim.Incident]       `db:"incident"`
	ExpertID    sql.NullString              `db:"expert_id"`
	Attachments jsonb[[]claim.Attachment]   `db:"attachments"`
	Messages    jsonb[[]claim.Message]      `db:"messages"`
	History     jsonb[[]claim.HistoryEntry] `db:"history"`
	CreatedAt   time.Time                   `db:"created_at"`
	UpdatedAt   time.Time                   `db:"updated_at"`
	CreatedBy   string                      `db:"created_by"`
	UpdatedBy   string                      `db:"updated_by"`
}

func toClaimRow(c *claim.Claim) *claimRow {
	row := &claimRow{
		ID:          c.ID,
		Reference:   c.Reference,
		OwnerID:     c.OwnerID,
		PolicyID:    c.PolicyID,
		VehicleID:   c.VehicleID,
		Status:      string(c.Status),
		Incident:    jsonb[claim.Incident]{V: c.Incident},
		Attachments: jsonb[[]claim.Attachment]{V: c.Attachments},
		Messages:    jsonb[[]claim.Message]{V: c.Messages},
		History:     jsonb[[]claim.HistoryEntry]{V: c.History},
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		CreatedBy:   c.CreatedBy,
		UpdatedBy:   c.UpdatedBy,
	}
	if c.ExpertID != nil {
		row.ExpertID = sql.NullString{String: *c.ExpertID, Valid: true}
	}
	return row
}

func (r *claimRow) toDomain() *claim.Claim {
	c := &claim.Claim{
		ID:          r.ID,
		Reference:   r.Reference,
		OwnerID:     r.OwnerID,
		PolicyID:    r.PolicyID,
		VehicleID:   r.VehicleID,
		Status:      types.ClaimStatus(r.Status),
		Incident:    r.Incident.V,
		Attachments: r.Attachments.V,
		Messages:    r.Messages.V,
		History:     r.History.V,
		BaseModel: types.BaseModel{
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			CreatedBy: r.CreatedBy,
			UpdatedBy: r.UpdatedBy,
		},
	}
	if r.ExpertID.Valid {
		c.ExpertID = lo.ToPtr(r.ExpertID.String)
	}
	return c
}

func (r *claimRepository) Create(ctx context.Context, c *claim.Claim) error {
	query := `
		INSERT INTO claims (
			id, reference, owner_id, policy_id, vehicle_id, status,
			incident, expert_id, attachments, messages, history,
			created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :reference, :owner_id, :policy_id, :vehicle_id, :status,
			:incident, :expert_id, :attachments, :messages, :history,
			:created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, toClaimRow(c)); err != nil {
		return ierr.WithError(err).
			WithHint("failed to create claim").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *claimRepository) Get(ctx context.Context, id string) (*claim.Claim, error) {
	var row claimRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM claims WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ierr.NewErrorf("claim %s not found", id).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to get claim").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

// Update writes the status and the appended history log in one
// statement guarded by the expected current status, so both land
// together or not at all.
func (r *claimRepository) Update(ctx context.Context, c *claim.Claim, expected types.ClaimStatus) error {
	query := `
		UPDATE claims SET
			status = :status,
			expert_id = :expert_id,
			attachments = :attachments,
			messages = :messages,
			history = :history,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND status = :expected_status`

	row := struct {
		*claimRow
		ExpectedStatus string `db:"expected_status"`
	}{toClaimRow(c), string(expected)}

	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update claim").
			Mark(ierr.ErrDatabase)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.NewErrorf("claim %s was modified concurrently", c.ID).
			Mark(ierr.ErrVersionConflict)
	}
	return nil
}

func (r *claimRepository) ListByPolicy(ctx context.Context, policyID string) ([]*claim.Claim, error) {
	return r.list(ctx,
		`SELECT * FROM claims WHERE policy_id = $1 ORDER BY created_at DESC`, policyID)
}

func (r *claimRepository) ListByOwner(ctx context.Context, ownerID string) ([]*claim.Claim, error) {
	return r.list(ctx,
		`SELECT * FROM claims WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
}

func (r *claimRepository) ListByStatusUpdatedBefore(ctx context.Context, statuses []types.ClaimStatus, before time.Time) ([]*claim.Claim, error) {
	statusStrings := lo.Map(statuses, func(s types.ClaimStatus, _ int) string {
		return string(s)
	})

	query, args, err := sqlx.In(
		`SELECT * FROM claims WHERE status IN (?) AND updated_at < ?`,
		statusStrings, before)
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}

	return r.list(ctx, r.db.Rebind(query), args...)
}

func (r *claimRepository) list(ctx context.Context, query string, args ...interface{}) ([]*claim.Claim, error) {
	var rows []claimRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list claims").
			Mark(ierr.ErrDatabase)
	}

	claims := make([]*claim.Claim, len(rows))
	for i := range rows {
		claims[i] = rows[i].toDomain()
	}
	return claims, nil
}
