package service

import (
	"context"

	"github.com/assurly/assurly/internal/cache"
	"github.com/assurly/assurly/internal/domain/product"
	"github.com/assurly/assurly/internal/dto"
)

// ProductService is simple CRUD over insurance products
type ProductService interface {
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context) ([]*dto.ProductResponse, error)
}

type productService struct {
	ServiceParams
}

func NewProductService(params ServiceParams) ProductService {
	return &productService{ServiceParams: params}
}

func (s *productService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToProduct(ctx)
	if err := s.ProductRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("product created", "product_id", p.ID, "name", p.Name)

	return &dto.ProductResponse{Product: p}, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	key := cache.GenerateKey(cache.PrefixProduct, id)
	if s.Cache != nil {
		if cached, found := s.Cache.Get(ctx, key); found {
			if p, ok := cached.(*product.Product); ok {
				return &dto.ProductResponse{Product: p}, nil
			}
		}
	}

	p, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		s.Cache.Set(ctx, key, p, cache.DefaultExpiration)
	}

	return &dto.ProductResponse{Product: p}, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]*dto.ProductResponse, error) {
	products, err := s.ProductRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.ProductResponse, len(products))
	for i, p := range products {
		resp[i] = &dto.ProductResponse{Product: p}
	}
	return resp, nil
}
