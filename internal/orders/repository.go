package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/pagination"
)

// Repository persists orders and their item snapshots.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateOrder inserts the order together with its item rows.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID loads an order with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder persists mutations to an existing order row.
func (r *Repository) UpdateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// ListForCustomer returns one page of the customer's orders, newest first.
func (r *Repository) ListForCustomer(ctx context.Context, customerProfileID uuid.UUID, params pagination.Params) (pagination.Page[models.Order], error) {
	norm := params.Normalize()

	qb := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("customer_profile_id = ?", customerProfileID)

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return pagination.Page[models.Order]{}, err
	}

	var rows []models.Order
	err := qb.
		Preload("Items").
		Order("created_at DESC").
		Offset(norm.Offset()).
		Limit(norm.PageSize).
		Find(&rows).
		Error
	if err != nil {
		return pagination.Page[models.Order]{}, err
	}

	return pagination.NewPage(rows, norm, total), nil
}

// ListAll returns one page of every order, newest first. Admin only.
func (r *Repository) ListAll(ctx context.Context, params pagination.Params) (pagination.Page[models.Order], error) {
	norm := params.Normalize()

	qb := r.db.WithContext(ctx).Model(&models.Order{})

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return pagination.Page[models.Order]{}, err
	}

	var rows []models.Order
	err := qb.
		Preload("Items").
		Order("created_at DESC").
		Offset(norm.Offset()).
		Limit(norm.PageSize).
		Find(&rows).
		Error
	if err != nil {
		return pagination.Page[models.Order]{}, err
	}

	return pagination.NewPage(rows, norm, total), nil
}
