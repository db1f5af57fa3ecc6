package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenpharma/greenpharma-backend/pkg/enums"
)

// Order is immutable after checkout except for its status.
type Order struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	CustomerProfileID uuid.UUID         `gorm:"column:customer_profile_id;type:uuid;not null;index"`
	Status            enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'"`
	Items             []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem snapshots one purchased line. PriceAtPurchase is fixed at
// checkout and never recomputed; ProductID is nullable so the audit row
// survives product deletion.
type OrderItem struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID         uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID       *uuid.UUID      `gorm:"column:product_id;type:uuid"`
	ProductName     string          `gorm:"column:product_name;not null"`
	Quantity        int             `gorm:"column:quantity;not null"`
	// numeric(12,4) keeps the offer arithmetic exact; two-decimal currency
	// formatting is a presentation concern.
	PriceAtPurchase decimal.Decimal `gorm:"column:price_at_purchase;type:numeric(12,4);not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}
