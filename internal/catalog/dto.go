package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/pricing"
)

// CategoryDTO is the external representation of a category.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProductDTO is the external representation of a product. EffectivePrice is
// derived at read time from the base price and the active offer.
type ProductDTO struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	EffectivePrice  decimal.Decimal `json:"effective_price"`
	OfferPercent    int             `json:"offer_percent"`
	Stock           int             `json:"stock"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	IsExpired       bool            `json:"is_expired"`
	IsExpiringSoon  bool            `json:"is_expiring_soon"`
	ImageRef        *string         `json:"image_ref,omitempty"`
	Category        *CategoryDTO    `json:"category,omitempty"`
	SellerProfileID *uuid.UUID      `json:"seller_profile_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewCategoryDTO maps the category model to its DTO.
func NewCategoryDTO(category *models.Category) CategoryDTO {
	return CategoryDTO{ID: category.ID, Name: category.Name}
}

// NewProductDTO maps the product model to its DTO as of the given time.
func NewProductDTO(product *models.Product, asOf time.Time) *ProductDTO {
	dto := &ProductDTO{
		ID:              product.ID,
		Name:            product.Name,
		Description:     product.Description,
		Price:           product.Price,
		EffectivePrice:  pricing.EffectivePrice(product.Price, product.OfferPercent),
		OfferPercent:    product.OfferPercent,
		Stock:           product.Stock,
		ExpiryDate:      product.ExpiryDate,
		IsExpired:       pricing.IsExpired(product.ExpiryDate, asOf),
		IsExpiringSoon:  pricing.IsExpiringSoon(product.ExpiryDate, asOf),
		ImageRef:        product.ImageRef,
		SellerProfileID: product.SellerProfileID,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
	if product.Category != nil {
		category := NewCategoryDTO(product.Category)
		dto.Category = &category
	}
	return dto
}
