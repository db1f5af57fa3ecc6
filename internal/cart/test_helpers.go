package cart

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

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
	cartLines := `
CREATE TABLE IF NOT EXISTS cart_lines (
  id TEXT PRIMARY KEY,
  customer_profile_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (customer_profile_id, product_id)
);`
	require.NoError(t, db.Exec(categories).Error)
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(cartLines).Error)
	return db
}

func mustCreateTestProduct(t *testing.T, db *gorm.DB, price string, stock, offerPercent int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:           uuid.New(),
		Name:         fmt.Sprintf("Product %s", uuid.NewString()),
		Price:        decimal.RequireFromString(price),
		Stock:        stock,
		OfferPercent: offerPercent,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
