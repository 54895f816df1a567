package dto

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/assurly/assurly/internal/domain/product"
	"github.com/assurly/assurly/internal/types"
	"github.com/assurly/assurly/internal/validator"
)

type TariffRequest struct {
	BaseRate         decimal.Decimal `json:"base_rate" validate:"required"`
	VehicleValueRate decimal.Decimal `json:"vehicle_value_rate"`
}

type AddOnRequest struct {
	Code  string          `json:"code" validate:"required"`
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

type CreateProductRequest struct {
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	Tariff      TariffRequest  `json:"tariff" validate:"required"`
	AddOns      []AddOnRequest `json:"add_ons" validate:"dive"`
}

func (r *CreateProductRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateProductRequest) ToProduct(ctx context.Context) *product.Product {
	addOns := make([]product.AddOn, len(r.AddOns))
	for i, a := range r.AddOns {
		addOns[i] = product.AddOn{
			Code:  a.Code,
			Name:  a.Name,
			Price: a.Price,
		}
	}

	return &product.Product{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT),
		Name:        r.Name,
		Description: r.Description,
		Tariff: product.Tariff{
			BaseRate:         r.Tariff.BaseRate,
			VehicleValueRate: r.Tariff.VehicleValueRate,
		},
		AddOns:    addOns,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type ProductResponse struct {
	*product.Product
}
