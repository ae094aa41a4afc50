package domain

import (
	"context"
	"time"
)

type ProductType string

const (
	ProductTypeGame    ProductType = "GAME"
	ProductTypeVoucher ProductType = "VOUCHER"
	ProductTypeEWallet ProductType = "EWALLET"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

// Product is a top-up target (a game, voucher, or e-wallet brand).
type Product struct {
	ID        int64
	Name      string
	Slug      string
	Type      ProductType
	Status    ProductStatus
	Thumbnail string
	// DenominationCount is populated on listing queries only.
	DenominationCount int
	Denominations     []Denomination
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Denomination is a purchasable amount for a product, e.g. "100 Diamonds".
type Denomination struct {
	ID        int64
	ProductID int64
	Name      string
	// Prices are stored in the smallest currency unit.
	BuyPrice  int64
	SellPrice int64
	IsPopular bool
	CreatedAt time.Time
}

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	List(ctx context.Context, typ ProductType, status ProductStatus) ([]Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	DenominationsByProduct(ctx context.Context, productID int64) ([]Denomination, error)
	CreateProduct(ctx context.Context, p *Product) error
	CreateDenomination(ctx context.Context, d *Denomination) error
	CountProducts(ctx context.Context) (int, error)
}
