package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/enums"
	pkgerrors "github.com/greenpharma/greenpharma-backend/pkg/errors"
	"github.com/greenpharma/greenpharma-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_profile_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price_at_purchase NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func mustCreateTestOrder(t *testing.T, db *gorm.DB, customerProfileID uuid.UUID, status enums.OrderStatus) *models.Order {
	t.Helper()
	productID := uuid.New()
	order := &models.Order{
		ID:                uuid.New(),
		CustomerProfileID: customerProfileID,
		Status:            status,
		Items: []models.OrderItem{
			{
				ID:              uuid.New(),
				ProductID:       &productID,
				ProductName:     "Snapshot Product",
				Quantity:        2,
				PriceAtPurchase: decimal.RequireFromString("5.2500"),
			},
		},
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestGetOrder_ownerAndAdmin(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	customerID := uuid.New()
	order := mustCreateTestOrder(t, repo.db, customerID, enums.OrderStatusPending)

	dto, err := svc.GetOrder(ctx, order.ID, Actor{Role: enums.UserRoleCustomer, CustomerProfileID: &customerID})
	require.NoError(t, err)
	assert.Equal(t, order.ID, dto.ID)
	require.Len(t, dto.Items, 1)
	assert.True(t, dto.Total.Equal(decimal.RequireFromString("10.50")), "got %s", dto.Total)

	_, err = svc.GetOrder(ctx, order.ID, Actor{Role: enums.UserRoleAdmin})
	require.NoError(t, err)
}

func TestGetOrder_strangerForbidden(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	order := mustCreateTestOrder(t, repo.db, uuid.New(), enums.OrderStatusPending)

	stranger := uuid.New()
	_, err := svc.GetOrder(ctx, order.ID, Actor{Role: enums.UserRoleCustomer, CustomerProfileID: &stranger})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestGetOrder_notFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetOrder(context.Background(), uuid.New(), Actor{Role: enums.UserRoleAdmin})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestAdvanceStatus_happyPath(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	order := mustCreateTestOrder(t, repo.db, uuid.New(), enums.OrderStatusPending)

	dto, err := svc.AdvanceStatus(ctx, order.ID, enums.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, dto.Status)

	dto, err = svc.AdvanceStatus(ctx, order.ID, enums.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDelivered, dto.Status)
}

func TestAdvanceStatus_rejectsSkipsAndReversals(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	pending := mustCreateTestOrder(t, repo.db, uuid.New(), enums.OrderStatusPending)
	_, err := svc.AdvanceStatus(ctx, pending.ID, enums.OrderStatusDelivered)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	shipped := mustCreateTestOrder(t, repo.db, uuid.New(), enums.OrderStatusShipped)
	_, err = svc.AdvanceStatus(ctx, shipped.ID, enums.OrderStatusPending)
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestListMyOrders_pagination(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	customerID := uuid.New()
	for i := 0; i < 3; i++ {
		mustCreateTestOrder(t, repo.db, customerID, enums.OrderStatusPending)
	}
	mustCreateTestOrder(t, repo.db, uuid.New(), enums.OrderStatusPending)

	page, err := svc.ListMyOrders(ctx, customerID, pagination.Params{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	for _, order := range page.Items {
		assert.Equal(t, customerID, order.CustomerProfileID)
	}
}
