package service

import (
	"context"
	"fmt"

	"github.com/veloraid/velora/internal/domain"
)

// CatalogService provides product browsing and catalog seeding.
type CatalogService struct {
	products domain.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products domain.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// List returns products newest-first. The status filter defaults to ACTIVE
// when empty; the type filter is optional.
func (s *CatalogService) List(ctx context.Context, typ, status string) ([]domain.Product, error) {
	if status == "" {
		status = string(domain.ProductStatusActive)
	}
	products, err := s.products.List(ctx, domain.ProductType(typ), domain.ProductStatus(status))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetBySlug returns an active product with its denominations ordered
// popular-first, then by sell price ascending. Inactive products are
// reported as not found.
func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}

	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product.Status != domain.ProductStatusActive {
		return nil, domain.ErrNotFound
	}

	denoms, err := s.products.DenominationsByProduct(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("load denominations: %w", err)
	}
	product.Denominations = denoms
	product.DenominationCount = len(denoms)
	return product, nil
}

// SeedCatalog inserts a starter catalog if the store is empty (idempotent).
func (s *CatalogService) SeedCatalog(ctx context.Context) error {
	count, err := s.products.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		product domain.Product
		denoms  []domain.Denomination
	}{
		{
			product: domain.Product{Name: "Mobile Legends", Slug: "mobile-legends", Type: domain.ProductTypeGame},
			denoms: []domain.Denomination{
				{Name: "86 Diamonds", BuyPrice: 19000, SellPrice: 21000},
				{Name: "172 Diamonds", BuyPrice: 38000, SellPrice: 41000, IsPopular: true},
				{Name: "344 Diamonds", BuyPrice: 76000, SellPrice: 82000},
			},
		},
		{
			product: domain.Product{Name: "Free Fire", Slug: "free-fire", Type: domain.ProductTypeGame},
			denoms: []domain.Denomination{
				{Name: "100 Diamonds", BuyPrice: 14000, SellPrice: 16000, IsPopular: true},
				{Name: "310 Diamonds", BuyPrice: 42000, SellPrice: 46000},
			},
		},
		{
			product: domain.Product{Name: "DANA", Slug: "dana", Type: domain.ProductTypeEWallet},
			denoms: []domain.Denomination{
				{Name: "Rp 25.000", BuyPrice: 25500, SellPrice: 27000},
				{Name: "Rp 50.000", BuyPrice: 50500, SellPrice: 52500, IsPopular: true},
			},
		},
	}

	for _, entry := range seed {
		p := entry.product
		if err := s.products.CreateProduct(ctx, &p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Slug, err)
		}
		for _, d := range entry.denoms {
			d.ProductID = p.ID
			if err := s.products.CreateDenomination(ctx, &d); err != nil {
				return fmt.Errorf("seed denomination %s: %w", d.Name, err)
			}
		}
	}
	return nil
}
