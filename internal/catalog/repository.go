package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/pagination"
)

// ProductListFilters narrows the public catalog listing.
type ProductListFilters struct {
	// Query matches product names by case-insensitive substring.
	Query           string
	CategoryID      *uuid.UUID
	SellerProfileID *uuid.UUID
}

// Repository wires together product and category persistence.
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

// FindProductByID loads the product with its category.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns one catalog page, newest first.
func (r *Repository) ListProducts(ctx context.Context, params pagination.Params, filters ProductListFilters) (pagination.Page[models.Product], error) {
	norm := params.Normalize()

	qb := r.db.WithContext(ctx).Model(&models.Product{})
	if search := strings.TrimSpace(filters.Query); search != "" {
		qb = qb.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if filters.CategoryID != nil {
		qb = qb.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.SellerProfileID != nil {
		qb = qb.Where("seller_profile_id = ?", *filters.SellerProfileID)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return pagination.Page[models.Product]{}, err
	}

	var rows []models.Product
	err := qb.
		Preload("Category").
		Order("created_at DESC").
		Offset(norm.Offset()).
		Limit(norm.PageSize).
		Find(&rows).
		Error
	if err != nil {
		return pagination.Page[models.Product]{}, err
	}

	return pagination.NewPage(rows, norm, total), nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by ID.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// DecrementStock atomically reserves qty units of stock. It reports false
// when the remaining stock cannot cover the requested quantity; the row is
// left untouched in that case.
func (r *Repository) DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListExpiring returns products whose expiry date falls on or before the
// horizon, soonest first. Products without an expiry date never match.
func (r *Repository) ListExpiring(ctx context.Context, horizon time.Time) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", horizon).
		Order("expiry_date ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListCategories returns all categories sorted by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// FindCategoryByID loads a category by primary key.
func (r *Repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory inserts a new category row.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}
