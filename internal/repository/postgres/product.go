package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/assurly/assurly/internal/domain/product"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/types"
)

type productRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewProductRepository creates a postgres-backed product repository
func NewProductRepository(db *sqlx.DB, logger *logger.Logger) product.Repository {
	return &productRepository{db: db, logger: logger}
}

type productRow struct {
	ID          string                 `db:"id"`
	Name        string                 `db:"name"`
	Description string                 `db:"description"`
	Tariff      jsonb[product.Tariff]  `db:"tariff"`
	AddOns      jsonb[[]product.AddOn] `db:"add_ons"`
	CreatedAt   time.Time              `db:"created_at"`
	UpdatedAt   time.Time              `db:"updated_at"`
	CreatedBy   string                 `db:"created_by"`
	UpdatedBy   string                 `db:"updated_by"`
}

func toProductRow(p *product.Product) *productRow {
	return &productRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Tariff:      jsonb[product.Tariff]{V: p.Tariff},
		AddOns:      jsonb[[]product.AddOn]{V: p.AddOns},
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		CreatedBy:   p.CreatedBy,
		UpdatedBy:   p.UpdatedBy,
	}
}

func (r *productRow) toDomain() *product.Product {
	return &product.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Tariff:      r.Tariff.V,
		AddOns:      r.AddOns.V,
		BaseModel: types.BaseModel{
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			CreatedBy: r.CreatedBy,
			UpdatedBy: r.UpdatedBy,
		},
	}
}

func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO products (
			id, name, description, tariff, add_ons,
			created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :description, :tariff, :add_ons,
			:created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, toProductRow(p)); err != nil {
		return ierr.WithError(err).
			WithHint("failed to create product").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *productRepository) Get(ctx context.Context, id string) (*product.Product, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM products WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ierr.NewErrorf("product %s not found", id).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to get product").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	query := `
		UPDATE products SET
			name = :name, description = :description,
			tariff = :tariff, add_ons = :add_ons,
			updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`

	if _, err := r.db.NamedExecContext(ctx, query, toProductRow(p)); err != nil {
		return ierr.WithError(err).
			WithHint("failed to update product").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *productRepository) List(ctx context.Context) ([]*product.Product, error) {
	var rows []productRow
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM products ORDER BY name`)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list products").
			Mark(ierr.ErrDatabase)
	}

	products := make([]*product.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].toDomain()
	}
	return products, nil
}
