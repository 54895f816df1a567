package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/assurly/assurly/internal/domain/document"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/types"
)

type documentRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewDocumentRepository creates a postgres-backed document repository
func NewDocumentRepository(db *sqlx.DB, logger *logger.Logger) document.Repository {
	return &documentRepository{db: db, logger: logger}
}

type documentRow struct {
	ID           string    `db:"id"`
	Number       string    `db:"number"`
	Kind         string    `db:"kind"`
	PolicyID     string    `db:"policy_id"`
	BlobLocation string    `db:"blob_location"`
	ByteSize     int64     `db:"byte_size"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
	CreatedBy    string    `db:"created_by"`
	UpdatedBy    string    `db:"updated_by"`
}

func toDocumentRow(d *document.Document) *documentRow {
	return &documentRow{
		ID:           d.ID,
		Number:       d.Number,
		Kind:         string(d.Kind),
		PolicyID:     d.PolicyID,
		BlobLocation: d.BlobLocation,
		ByteSize:     d.ByteSize,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		CreatedBy:    d.CreatedBy,
		UpdatedBy:    d.UpdatedBy,
	}
}

func (r *documentRow) toDomain() *document.Document {
	return &document.Document{
		ID:           r.ID,
		Number:       r.Number,
		Kind:         types.DocumentKind(r.Kind),
		PolicyID:     r.PolicyID,
		BlobLocation: r.BlobLocation,
		ByteSize:     r.ByteSize,
		IsActive:     r.IsActive,
		BaseModel: types.BaseModel{
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			CreatedBy: r.CreatedBy,
			UpdatedBy: r.UpdatedBy,
		},
	}
}

func (r *documentRepository) Create(ctx context.Context, d *document.Document) error {
	query := `
		INSERT INTO documents (
			id, number, kind, policy_id, blob_location, byte_size,
			is_active, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :number, :kind, :policy_id, :blob_location, :byte_size,
			:is_active, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, toDocumentRow(d)); err != nil {
		return ierr.WithError(err).
			WithHint("failed to create document record").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *documentRepository) Get(ctx context.Context, id string) (*document.Document, error) {
	var row documentRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM documents WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ierr.NewErrorf("document %s not found", id).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to get document").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *documentRepository) GetByNumber(ctx context.Context, number string) (*document.Document, error) {
	var row documentRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM documents WHERE number = $1`, number)
	if err == sql.ErrNoRows {
		return nil, ierr.NewErrorf("document %s not found", number).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to get document by number").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *documentRepository) ListByPolicy(ctx context.Context, policyID string) ([]*document.Document, error) {
	return r.list(ctx,
		`SELECT * FROM documents WHERE policy_id = $1 ORDER BY created_at`, policyID)
}

func (r *documentRepository) ListActiveByPolicy(ctx context.Context, policyID string) ([]*document.Document, error) {
	query, args, err := sqlx.In(
		`SELECT * FROM documents WHERE policy_id = ? AND is_active AND kind IN (?) ORDER BY created_at`,
		policyID, issuedKindStrings())
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}

	return r.list(ctx, r.db.Rebind(query), args...)
}

// DeactivateByPolicy supersedes the active issued set in place;
// records are never deleted and supplementary kinds are not touched.
func (r *documentRepository) DeactivateByPolicy(ctx context.Context, policyID string) (int, error) {
	query, args, err := sqlx.In(
		`UPDATE documents SET is_active = FALSE, updated_at = NOW() WHERE policy_id = ? AND is_active AND kind IN (?)`,
		policyID, issuedKindStrings())
	if err != nil {
		return 0, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("failed to deactivate documents").
			Mark(ierr.ErrDatabase)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return int(affected), nil
}

func issuedKindStrings() []string {
	kinds := types.IssuedDocumentKinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func (r *documentRepository) list(ctx context.Context, query string, args ...interface{}) ([]*document.Document, error) {
	var rows []documentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list documents").
			Mark(ierr.ErrDatabase)
	}

	docs := make([]*document.Document, len(rows))
	for i := range rows {
		docs[i] = rows[i].toDomain()
	}
	return docs, nil
}
