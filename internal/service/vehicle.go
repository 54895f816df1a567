package service

import (
	"context"

	"github.com/assurly/assurly/internal/cache"
	"github.com/assurly/assurly/internal/domain/vehicle"
	"github.com/assurly/assurly/internal/dto"
)

// VehicleService is simple CRUD over insured vehicles. Reads are
// cached; writes invalidate.
type VehicleService interface {
	CreateVehicle(ctx context.Context, req *dto.CreateVehicleRequest) (*dto.VehicleResponse, error)
	GetVehicle(ctx context.Context, id string) (*dto.VehicleResponse, error)
	ListVehicles(ctx context.Context, ownerID string) ([]*dto.VehicleResponse, error)
}

type vehicleService struct {
	ServiceParams
}

func NewVehicleService(params ServiceParams) VehicleService {
	return &vehicleService{ServiceParams: params}
}

func (s *vehicleService) CreateVehicle(ctx context.Context, req *dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	v := req.ToVehicle(ctx)
	if err := s.VehicleRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.Logger.Infow("vehicle created", "vehicle_id", v.ID, "owner_id", v.OwnerID)

	return &dto.VehicleResponse{Vehicle: v}, nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, id string) (*dto.VehicleResponse, error) {
	key := cache.GenerateKey(cache.PrefixVehicle, id)
	if s.Cache != nil {
		if cached, found := s.Cache.Get(ctx, key); found {
			if v, ok := cached.(*vehicle.Vehicle); ok {
				return &dto.VehicleResponse{Vehicle: v}, nil
			}
		}
	}

	v, err := s.VehicleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		s.Cache.Set(ctx, key, v, cache.DefaultExpiration)
	}

	return &dto.VehicleResponse{Vehicle: v}, nil
}

func (s *vehicleService) ListVehicles(ctx context.Context, ownerID string) ([]*dto.VehicleResponse, error) {
	vehicles, err := s.VehicleRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		resp[i] = &dto.VehicleResponse{Vehicle: v}
	}
	return resp, nil
}
