package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/creatok/storebot/internal/config"
	"github.com/creatok/storebot/internal/domain"
	"github.com/creatok/storebot/internal/repository"
)

// canonicalRegion maps user input onto the configured region spelling.
func canonicalRegion(region string) (string, bool) {
	for _, r := range config.Regions {
		if strings.EqualFold(r, region) {
			return r, true
		}
	}
	return "", false
}

// CatalogService manages the product listing shown in the buy flow.
type CatalogService struct {
	products repository.ProductRepository
}

func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

type AddProductInput struct {
	Region    string
	Label     string
	Price     decimal.Decimal
	Followers string
	SortOrder int64
}

// Add lists a new product. The region must be one of the known regions and
// the price positive.
func (s *CatalogService) Add(ctx context.Context, in AddProductInput) (*domain.Product, error) {
	region, ok := canonicalRegion(strings.TrimSpace(in.Region))
	if !ok {
		return nil, fmt.Errorf("unknown region %q", in.Region)
	}
	if !in.Price.IsPositive() {
		return nil, fmt.Errorf("price must be positive, got %s", in.Price)
	}
	p := &domain.Product{
		ID:        uuid.NewString(),
		Region:    region,
		Label:     in.Label,
		Price:     in.Price,
		Followers: in.Followers,
		SortOrder: in.SortOrder,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := s.products.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return p, nil
}

func (s *CatalogService) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("price must be positive, got %s", price)
	}
	return s.products.UpdatePrice(ctx, id, price)
}

func (s *CatalogService) Remove(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.Get(ctx, id)
}

// List returns active products, all regions.
func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx, true)
}

// ListByRegion returns the active products offered in one region, in listing
// order.
func (s *CatalogService) ListByRegion(ctx context.Context, region string) ([]domain.Product, error) {
	all, err := s.products.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if strings.EqualFold(p.Region, region) {
			out = append(out, p)
		}
	}
	return out, nil
}
