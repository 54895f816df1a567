package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/assurly/assurly/internal/domain/claim"
	"github.com/assurly/assurly/internal/domain/document"
	"github.com/assurly/assurly/internal/domain/policy"
	"github.com/assurly/assurly/internal/domain/product"
	"github.com/assurly/assurly/internal/domain/quote"
	"github.com/assurly/assurly/internal/domain/sequence"
	"github.com/assurly/assurly/internal/domain/vehicle"
	"github.com/assurly/assurly/internal/logger"
	pgRepo "github.com/assurly/assurly/internal/repository/postgres"
)

func NewSequenceRepository(db *sqlx.DB, logger *logger.Logger) sequence.Repository {
	return pgRepo.NewSequenceRepository(db, logger)
}

func NewVehicleRepository(db *sqlx.DB, logger *logger.Logger) vehicle.Repository {
	return pgRepo.NewVehicleRepository(db, logger)
}

func NewProductRepository(db *sqlx.DB, logger *logger.Logger) product.Repository {
	return pgRepo.NewProductRepository(db, logger)
}

func NewQuoteRepository(db *sqlx.DB, logger *logger.Logger) quote.Repository {
	return pgRepo.NewQuoteRepository(db, logger)
}

func NewPolicyRepository(db *sqlx.DB, logger *logger.Logger) policy.Repository {
	return pgRepo.NewPolicyRepository(db, logger)
}

func NewDocumentRepository(db *sqlx.DB, logger *logger.Logger) document.Repository {
	return pgRepo.NewDocumentRepository(db, logger)
}

func NewClaimRepository(db *sqlx.DB, logger *logger.Logger) claim.Repository {
	return pgRepo.NewClaimRepository(db, logger)
}
