package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one (customer, product) pairing pending purchase. The pair is
// unique; repeat adds increment quantity instead of inserting. Quantity is
// always >= 1 — dropping to zero deletes the row.
type CartLine struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CustomerProfileID uuid.UUID `gorm:"column:customer_profile_id;type:uuid;not null;uniqueIndex:idx_cart_customer_product"`
	ProductID         uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_customer_product"`
	Quantity          int       `gorm:"column:quantity;not null;default:1"`
	Product           *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
