package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups products for catalog filtering.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Product is a seller listing. Stock is decremented only by checkout; price
// and offer feed the effective-price rule at read time. SellerProfileID is
// nullable because legacy rows predate seller ownership.
type Product struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name            string          `gorm:"column:name;not null"`
	Description     string          `gorm:"column:description"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Stock           int             `gorm:"column:stock;not null;default:0"`
	OfferPercent    int             `gorm:"column:offer_percent;not null;default:0"`
	ExpiryDate      *time.Time      `gorm:"column:expiry_date"`
	ImageRef        *string         `gorm:"column:image_ref"`
	CategoryID      *uuid.UUID      `gorm:"column:category_id;type:uuid"`
	SellerProfileID *uuid.UUID      `gorm:"column:seller_profile_id;type:uuid"`
	Category        *Category       `gorm:"foreignKey:CategoryID"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
