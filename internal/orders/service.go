package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/enums"
	pkgerrors "github.com/greenpharma/greenpharma-backend/pkg/errors"
	"github.com/greenpharma/greenpharma-backend/pkg/pagination"
)

// Service exposes order history and fulfillment operations.
type Service interface {
	ListMyOrders(ctx context.Context, customerProfileID uuid.UUID, params pagination.Params) (pagination.Page[*OrderDTO], error)
	ListAllOrders(ctx context.Context, params pagination.Params) (pagination.Page[*OrderDTO], error)
	GetOrder(ctx context.Context, orderID uuid.UUID, actor Actor) (*OrderDTO, error)
	AdvanceStatus(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*OrderDTO, error)
}

// Actor identifies who is asking for an order. Customers only see their own
// orders; admins see everything.
type Actor struct {
	Role              enums.UserRole
	CustomerProfileID *uuid.UUID
}

// service implements the orders service.
type service struct {
	repo *Repository
}

// NewService constructs an orders service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

// ListMyOrders returns one page of the customer's order history.
func (s *service) ListMyOrders(ctx context.Context, customerProfileID uuid.UUID, params pagination.Params) (pagination.Page[*OrderDTO], error) {
	page, err := s.repo.ListForCustomer(ctx, customerProfileID, params)
	if err != nil {
		return pagination.Page[*OrderDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	return mapOrderPage(page), nil
}

// ListAllOrders returns one page of every order. Admin only; the route layer
// enforces the role.
func (s *service) ListAllOrders(ctx context.Context, params pagination.Params) (pagination.Page[*OrderDTO], error) {
	page, err := s.repo.ListAll(ctx, params)
	if err != nil {
		return pagination.Page[*OrderDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	return mapOrderPage(page), nil
}

// GetOrder loads one order, enforcing ownership for customers.
func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID, actor Actor) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}

	if actor.Role != enums.UserRoleAdmin {
		if actor.CustomerProfileID == nil || order.CustomerProfileID != *actor.CustomerProfileID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to customer")
		}
	}
	return NewOrderDTO(order), nil
}

// AdvanceStatus moves the order along pending -> shipped -> delivered. Any
// other transition is rejected.
func (s *service) AdvanceStatus(ctx context.Context, orderID uuid.UUID, target enums.OrderStatus) (*OrderDTO, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", target))
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}

	if !order.Status.CanAdvanceTo(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot advance order from %s to %s", order.Status, target))
	}

	order.Status = target
	if _, err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order")
	}
	return NewOrderDTO(order), nil
}

func mapOrderPage(page pagination.Page[models.Order]) pagination.Page[*OrderDTO] {
	dtos := make([]*OrderDTO, 0, len(page.Items))
	for i := range page.Items {
		dtos = append(dtos, NewOrderDTO(&page.Items[i]))
	}
	return pagination.Page[*OrderDTO]{
		Items:      dtos,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}
