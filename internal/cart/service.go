package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	pkgerrors "github.com/greenpharma/greenpharma-backend/pkg/errors"
)

// Service exposes the customer cart operations.
type Service interface {
	GetCart(ctx context.Context, customerProfileID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, customerProfileID, productID uuid.UUID) (*CartDTO, error)
	IncrementItem(ctx context.Context, customerProfileID, productID uuid.UUID) (*CartDTO, error)
	DecrementItem(ctx context.Context, customerProfileID, productID uuid.UUID) (*CartDTO, error)
	RemoveItem(ctx context.Context, customerProfileID, productID uuid.UUID) (*CartDTO, error)
}

type productLoader interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// service implements the cart service.
type service struct {
	repo     *Repository
	products productLoader
	now      func() time.Time
}

// NewService constructs a cart service instance.
func NewService(repo *Repository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{
		repo:     repo,
		products: products,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// GetCart returns the customer's cart with derived totals.
func (s *service) GetCart(ctx context.Context, customerProfileID uuid.UUID) (*CartDTO, error) {
	lines, err := s.repo.ListLines(ctx, customerProfileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart lines")
	}
	return NewCartDTO(lines, s.now()), nil
}

// AddItem puts one unit of the product in the cart. Repeat adds increment the
// existing line instead of inserting a second row.
func (s *service) AddItem(ctx context.Context, customerProfileID, productID uuid.UUID) (*CartDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product is out of stock")
	}

	line, err := s.repo.FindLine(ctx, customerProfileID, productID)
	switch {
	case err == nil:
		// Quantity is capped at the available stock; at the cap the add is
		// a no-op, not an error.
		if line.Quantity < product.Stock {
			line.Quantity++
			if _, err := s.repo.UpdateLine(ctx, line); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart line")
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = &models.CartLine{
			ID:                uuid.New(),
			CustomerProfileID: customerProfileID,
			ProductID:         productID,
			Quantity:          1,
		}
		if _, err := s.repo.CreateLine(ctx, line); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert cart line")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart line")
	}

	return s.GetCart(ctx, customerProfileID)
}

// IncrementItem bumps the line quantity by one, capped at the available
// stock. At the cap the call is a no-op.
func (s *service) IncrementItem(ctx context.Context, customerProfileID, productID uuid.UUID) (*CartDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	line, err := s.loadLine(ctx, customerProfileID, productID)
	if err != nil {
		return nil, err
	}

	if line.Quantity < product.Stock {
		line.Quantity++
		if _, err := s.repo.UpdateLine(ctx, line); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart line")
		}
	}
	return s.GetCart(ctx, customerProfileID)
}

// DecrementItem lowers the line quantity by one, floored at one. At the
// floor the call is a no-op; removing the line is an explicit operation.
func (s *service) DecrementItem(ctx context.Context, customerProfileID, productID uuid.UUID) (*CartDTO, error) {
	line, err := s.loadLine(ctx, customerProfileID, productID)
	if err != nil {
		return nil, err
	}

	if line.Quantity > 1 {
		line.Quantity--
		if _, err := s.repo.UpdateLine(ctx, line); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart line")
		}
	}
	return s.GetCart(ctx, customerProfileID)
}

// RemoveItem deletes the line for the product from the customer's cart.
func (s *service) RemoveItem(ctx context.Context, customerProfileID, productID uuid.UUID) (*CartDTO, error) {
	line, err := s.loadLine(ctx, customerProfileID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteLine(ctx, line.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart line")
	}
	return s.GetCart(ctx, customerProfileID)
}

func (s *service) loadProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return product, nil
}

func (s *service) loadLine(ctx context.Context, customerProfileID, productID uuid.UUID) (*models.CartLine, error) {
	line, err := s.repo.FindLine(ctx, customerProfileID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart line")
	}
	return line, nil
}
