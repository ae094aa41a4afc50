package handler

import (
	"time"

	"github.com/veloraid/velora/internal/domain"
	"github.com/veloraid/velora/internal/provider"
)

// SessionUserDTO is the JSON representation of the session view's user.
type SessionUserDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func toSessionUserDTO(c domain.SessionClaims) SessionUserDTO {
	return SessionUserDTO{
		ID:    c.UserID,
		Email: c.Email,
		Name:  c.Name,
		Role:  string(c.Role),
	}
}

// ProductDTO is the JSON representation of a product in listings.
type ProductDTO struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	Type              string `json:"type"`
	Status            string `json:"status"`
	Thumbnail         string `json:"thumbnail"`
	DenominationCount int    `json:"denominationCount"`
	CreatedAt         string `json:"createdAt"`
}

func toProductDTO(p *domain.Product) ProductDTO {
	return ProductDTO{
		ID:                p.ID,
		Name:              p.Name,
		Slug:              p.Slug,
		Type:              string(p.Type),
		Status:            string(p.Status),
		Thumbnail:         p.Thumbnail,
		DenominationCount: p.DenominationCount,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
	}
}

func toProductDTOs(products []domain.Product) []ProductDTO {
	dtos := make([]ProductDTO, len(products))
	for i := range products {
		dtos[i] = toProductDTO(&products[i])
	}
	return dtos
}

// DenominationDTO is the JSON representation of a denomination.
type DenominationDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SellPrice int64  `json:"sellPrice"`
	IsPopular bool   `json:"isPopular"`
}

func toDenominationDTOs(denoms []domain.Denomination) []DenominationDTO {
	dtos := make([]DenominationDTO, len(denoms))
	for i, d := range denoms {
		dtos[i] = DenominationDTO{
			ID:        d.ID,
			Name:      d.Name,
			SellPrice: d.SellPrice,
			IsPopular: d.IsPopular,
		}
	}
	return dtos
}

// ProductDetailDTO is the JSON representation of a product with its
// denominations.
type ProductDetailDTO struct {
	ProductDTO
	Denominations []DenominationDTO `json:"denominations"`
}

func toProductDetailDTO(p *domain.Product) ProductDetailDTO {
	return ProductDetailDTO{
		ProductDTO:    toProductDTO(p),
		Denominations: toDenominationDTOs(p.Denominations),
	}
}

// ProfileDTO is the JSON representation of the reseller account profile.
type ProfileDTO struct {
	FullName   string `json:"fullName"`
	Username   string `json:"username"`
	Balance    int64  `json:"balance"`
	Point      int64  `json:"point"`
	Level      string `json:"level"`
	Registered string `json:"registered"`
}

func toProfileDTO(p *provider.Profile) ProfileDTO {
	return ProfileDTO{
		FullName:   p.FullName,
		Username:   p.Username,
		Balance:    p.Balance,
		Point:      p.Point,
		Level:      p.Level,
		Registered: p.Registered,
	}
}
