package dto

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/assurly/assurly/internal/domain/vehicle"
	"github.com/assurly/assurly/internal/types"
	"github.com/assurly/assurly/internal/validator"
)

type CreateVehicleRequest struct {
	OwnerID        string          `json:"owner_id" validate:"required"`
	Make           string          `json:"make" validate:"required"`
	Model          string          `json:"model" validate:"required"`
	Year           int             `json:"year" validate:"required,gte=1950"`
	RegistrationNo string          `json:"registration_no" validate:"required"`
	MarketValue    decimal.Decimal `json:"market_value" validate:"required"`
}

func (r *CreateVehicleRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateVehicleRequest) ToVehicle(ctx context.Context) *vehicle.Vehicle {
	return &vehicle.Vehicle{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VEHICLE),
		OwnerID:        r.OwnerID,
		Make:           r.Make,
		Model:          r.Model,
		Year:           r.Year,
		RegistrationNo: r.RegistrationNo,
		MarketValue:    r.MarketValue,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

type VehicleResponse struct {
	*vehicle.Vehicle
}
