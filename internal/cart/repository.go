package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
)

// Repository persists cart lines.
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

// FindLine loads the cart line for a (customer, product) pair.
func (r *Repository) FindLine(ctx context.Context, customerProfileID, productID uuid.UUID) (*models.CartLine, error) {
	var line models.CartLine
	err := r.db.WithContext(ctx).
		First(&line, "customer_profile_id = ? AND product_id = ?", customerProfileID, productID).
		Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// ListLines returns all cart lines for the customer with products preloaded,
// oldest first so the cart keeps a stable display order.
func (r *Repository) ListLines(ctx context.Context, customerProfileID uuid.UUID) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Category").
		Where("customer_profile_id = ?", customerProfileID).
		Order("created_at ASC").
		Find(&lines).
		Error
	return lines, err
}

// CreateLine inserts a new cart line.
func (r *Repository) CreateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateLine persists a quantity mutation.
func (r *Repository) UpdateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	if err := r.db.WithContext(ctx).Save(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// DeleteLine removes one cart line.
func (r *Repository) DeleteLine(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CartLine{}).Error
}

// ClearForCustomer removes every cart line owned by the customer.
func (r *Repository) ClearForCustomer(ctx context.Context, customerProfileID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("customer_profile_id = ?", customerProfileID).
		Delete(&models.CartLine{}).
		Error
}
