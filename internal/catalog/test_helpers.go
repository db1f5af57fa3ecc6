package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/enums"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	sellerProfiles := `
CREATE TABLE IF NOT EXISTS seller_profiles (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  phone TEXT,
  address TEXT,
  license_ref TEXT,
  license_status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  offer_percent INTEGER NOT NULL DEFAULT 0,
  expiry_date DATETIME,
  image_ref TEXT,
  category_id TEXT,
  seller_profile_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(sellerProfiles).Error)
	require.NoError(t, db.Exec(categories).Error)
	require.NoError(t, db.Exec(products).Error)
	return db
}

func mustCreateTestSeller(t *testing.T, db *gorm.DB, status enums.LicenseStatus) *models.SellerProfile {
	t.Helper()
	profile := &models.SellerProfile{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		LicenseStatus: status,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func mustCreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	category := &models.Category{
		ID:   uuid.New(),
		Name: fmt.Sprintf("Category %s", uuid.NewString()),
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func mustCreateTestProduct(t *testing.T, db *gorm.DB, sellerProfileID *uuid.UUID, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:              uuid.New(),
		Name:            fmt.Sprintf("Product %s", uuid.NewString()),
		Price:           decimal.RequireFromString("10.00"),
		Stock:           stock,
		SellerProfileID: sellerProfileID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
