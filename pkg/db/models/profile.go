package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/greenpharma/greenpharma-backend/pkg/enums"
)

// CustomerProfile is the one-to-one customer extension of a user. Carts and
// orders hang off the profile, not the user, so identity concerns stay out of
// the commerce tables.
type CustomerProfile struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Phone     *string   `gorm:"column:phone"`
	Address   *string   `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// SellerProfile is the one-to-one seller extension of a user. LicenseRef is
// an opaque document reference resolved by external file storage; the status
// is only ever changed through the admin capability.
type SellerProfile struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	UserID        uuid.UUID           `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Phone         *string             `gorm:"column:phone"`
	Address       *string             `gorm:"column:address"`
	LicenseRef    *string             `gorm:"column:license_ref"`
	LicenseStatus enums.LicenseStatus `gorm:"column:license_status;type:license_status;not null;default:'pending'"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
