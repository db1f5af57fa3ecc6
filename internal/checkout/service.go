package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenpharma/greenpharma-backend/internal/cart"
	"github.com/greenpharma/greenpharma-backend/internal/catalog"
	"github.com/greenpharma/greenpharma-backend/internal/orders"
	"github.com/greenpharma/greenpharma-backend/pkg/db"
	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/enums"
	pkgerrors "github.com/greenpharma/greenpharma-backend/pkg/errors"
	"github.com/greenpharma/greenpharma-backend/pkg/logger"
	"github.com/greenpharma/greenpharma-backend/pkg/pricing"
)

// Service converts a cart into an order.
type Service interface {
	Checkout(ctx context.Context, customerProfileID uuid.UUID) (*orders.OrderDTO, error)
}

// service implements the checkout service. Stock decrements, order creation,
// and cart clearing all happen inside one transaction: either the whole
// checkout lands or none of it does.
type service struct {
	cartRepo    *cart.Repository
	catalogRepo *catalog.Repository
	ordersRepo  *orders.Repository
	dbClient    *db.Client
	logg        *logger.Logger
}

// NewService constructs a checkout service instance.
func NewService(cartRepo *cart.Repository, catalogRepo *catalog.Repository, ordersRepo *orders.Repository, dbClient *db.Client, logg *logger.Logger) (Service, error) {
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		ordersRepo:  ordersRepo,
		dbClient:    dbClient,
		logg:        logg,
	}, nil
}

// Checkout turns the customer's cart into a pending order. Every line must be
// fully coverable by the remaining stock; any shortfall aborts the whole
// checkout and leaves cart and stock untouched.
func (s *service) Checkout(ctx context.Context, customerProfileID uuid.UUID) (*orders.OrderDTO, error) {
	var orderID uuid.UUID

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txCart := s.cartRepo.WithTx(tx)
		txCatalog := s.catalogRepo.WithTx(tx)
		txOrders := s.ordersRepo.WithTx(tx)

		lines, err := txCart.ListLines(ctx, customerProfileID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart lines")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		order := &models.Order{
			ID:                uuid.New(),
			CustomerProfileID: customerProfileID,
			Status:            enums.OrderStatusPending,
			Items:             make([]models.OrderItem, 0, len(lines)),
		}

		for i := range lines {
			line := &lines[i]
			if line.Product == nil {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "cart references a removed product").
					WithDetails(map[string]any{"product_id": line.ProductID})
			}

			ok, err := txCatalog.DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock").
					WithDetails(map[string]any{
						"product_id":   line.ProductID,
						"product_name": line.Product.Name,
						"requested":    line.Quantity,
						"available":    line.Product.Stock,
					})
			}

			productID := line.ProductID
			order.Items = append(order.Items, models.OrderItem{
				ID:              uuid.New(),
				ProductID:       &productID,
				ProductName:     line.Product.Name,
				Quantity:        line.Quantity,
				PriceAtPurchase: pricing.EffectivePrice(line.Product.Price, line.Product.OfferPercent),
			})
		}

		if _, err := txOrders.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}

		if err := txCart.ClearForCustomer(ctx, customerProfileID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear cart")
		}

		orderID = order.ID
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout")
	}

	order, err := s.ordersRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"order_id":            order.ID,
		"customer_profile_id": customerProfileID,
		"items":               len(order.Items),
	})
	s.logg.Info(logCtx, "checkout completed")

	return orders.NewOrderDTO(order), nil
}
