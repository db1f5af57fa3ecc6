package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/greenpharma/greenpharma-backend/pkg/migrate"
)

func TestAccountsMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_accounts_tables.sql")

	checks := []string{
		"CREATE TYPE user_role AS ENUM",
		"CREATE TYPE license_status AS ENUM",
		"CREATE TABLE IF NOT EXISTS users",
		"CREATE TABLE IF NOT EXISTS customer_profiles",
		"CREATE TABLE IF NOT EXISTS seller_profiles",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_customer_profiles_user",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_seller_profiles_user",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCatalogMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_catalog_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS categories",
		"CREATE TABLE IF NOT EXISTS products",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name",
		"CHECK (stock >= 0)",
		"CHECK (offer_percent >= 0 AND offer_percent <= 100)",
		"CREATE INDEX IF NOT EXISTS idx_products_expiry_date",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCartAndOrdersMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_cart_and_orders_tables.sql")

	checks := []string{
		"CREATE TYPE order_status AS ENUM",
		"CREATE TABLE IF NOT EXISTS cart_lines",
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS order_items",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_customer_product",
		"CHECK (quantity >= 1)",
		"price_at_purchase NUMERIC(12, 4) NOT NULL",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
