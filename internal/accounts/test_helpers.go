package accounts

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/enums"
)

func setupAccountsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	customerProfiles := `
CREATE TABLE IF NOT EXISTS customer_profiles (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  phone TEXT,
  address TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
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
	require.NoError(t, db.Exec(users).Error)
	require.NoError(t, db.Exec(customerProfiles).Error)
	require.NoError(t, db.Exec(sellerProfiles).Error)
	return db
}

func mustCreateTestUser(t *testing.T, db *gorm.DB, role enums.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("gp_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		FirstName:    "Repo",
		LastName:     "Tester",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func mustCreateTestCustomerProfile(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.CustomerProfile {
	t.Helper()
	profile := &models.CustomerProfile{
		ID:     uuid.New(),
		UserID: userID,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func mustCreateTestSellerProfile(t *testing.T, db *gorm.DB, userID uuid.UUID, status enums.LicenseStatus) *models.SellerProfile {
	t.Helper()
	profile := &models.SellerProfile{
		ID:            uuid.New(),
		UserID:        userID,
		LicenseStatus: status,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}
