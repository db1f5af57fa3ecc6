package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/greenpharma/greenpharma-backend/pkg/db"
	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/enums"
	pkgerrors "github.com/greenpharma/greenpharma-backend/pkg/errors"
	"github.com/greenpharma/greenpharma-backend/pkg/pagination"
	"github.com/greenpharma/greenpharma-backend/pkg/pricing"
)

// Service exposes catalog browsing plus seller product management.
type Service interface {
	ListProducts(ctx context.Context, params pagination.Params, filters ProductListFilters) (pagination.Page[*ProductDTO], error)
	ListSellerProducts(ctx context.Context, sellerProfileID uuid.UUID, params pagination.Params) (pagination.Page[*ProductDTO], error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	CreateCategory(ctx context.Context, name string) (*CategoryDTO, error)
	CreateProduct(ctx context.Context, sellerProfileID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, sellerProfileID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, sellerProfileID, productID uuid.UUID) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name         string
	Description  string
	Price        decimal.Decimal
	Stock        int
	OfferPercent int
	ExpiryDate   *time.Time
	ImageRef     *string
	CategoryID   *uuid.UUID
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	Stock        *int
	OfferPercent *int
	ExpiryDate   *time.Time
	ImageRef     *string
	CategoryID   *uuid.UUID
}

type sellerLoader interface {
	FindSellerProfileByID(ctx context.Context, id uuid.UUID) (*models.SellerProfile, error)
}

// service implements the catalog service.
type service struct {
	repo       *Repository
	sellerRepo sellerLoader
	now        func() time.Time
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, sellerRepo sellerLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if sellerRepo == nil {
		return nil, fmt.Errorf("seller repository required")
	}
	return &service{
		repo:       repo,
		sellerRepo: sellerRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

// ListProducts returns one public catalog page.
func (s *service) ListProducts(ctx context.Context, params pagination.Params, filters ProductListFilters) (pagination.Page[*ProductDTO], error) {
	page, err := s.repo.ListProducts(ctx, params, filters)
	if err != nil {
		return pagination.Page[*ProductDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	asOf := s.now()
	dtos := make([]*ProductDTO, 0, len(page.Items))
	for i := range page.Items {
		dtos = append(dtos, NewProductDTO(&page.Items[i], asOf))
	}
	return pagination.Page[*ProductDTO]{
		Items:      dtos,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}, nil
}

// ListSellerProducts returns one page of the seller's own listings,
// regardless of license status.
func (s *service) ListSellerProducts(ctx context.Context, sellerProfileID uuid.UUID, params pagination.Params) (pagination.Page[*ProductDTO], error) {
	return s.ListProducts(ctx, params, ProductListFilters{SellerProfileID: &sellerProfileID})
}

// GetProduct loads one product for its detail view.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return NewProductDTO(product, s.now()), nil
}

// ListCategories returns the full category list.
func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, NewCategoryDTO(&categories[i]))
	}
	return dtos, nil
}

// CreateCategory inserts one admin-managed category.
func (s *service) CreateCategory(ctx context.Context, name string) (*CategoryDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	category := &models.Category{ID: uuid.New(), Name: name}
	if _, err := s.repo.CreateCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}
	dto := NewCategoryDTO(category)
	return &dto, nil
}

// CreateProduct creates a listing owned by the seller. Only sellers with an
// approved license can list products.
func (s *service) CreateProduct(ctx context.Context, sellerProfileID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if err := s.ensureApprovedSeller(ctx, sellerProfileID); err != nil {
		return nil, err
	}
	if err := validateProductFields(input.Name, input.Price, input.Stock, input.OfferPercent); err != nil {
		return nil, err
	}
	if pricing.IsExpired(input.ExpiryDate, s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expiry_date cannot be in the past")
	}
	if input.CategoryID != nil {
		if err := s.ensureCategoryExists(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	product := &models.Product{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Price:           input.Price,
		Stock:           input.Stock,
		OfferPercent:    input.OfferPercent,
		ExpiryDate:      input.ExpiryDate,
		ImageRef:        input.ImageRef,
		CategoryID:      input.CategoryID,
		SellerProfileID: &sellerProfileID,
	}
	if _, err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}

	created, err := s.repo.FindProductByID(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return NewProductDTO(created, s.now()), nil
}

// UpdateProduct mutates a listing after checking seller ownership.
func (s *service) UpdateProduct(ctx context.Context, sellerProfileID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if err := s.ensureApprovedSeller(ctx, sellerProfileID); err != nil {
		return nil, err
	}

	product, err := s.loadOwnedProduct(ctx, sellerProfileID, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.OfferPercent != nil {
		product.OfferPercent = *input.OfferPercent
	}
	if input.ExpiryDate != nil {
		product.ExpiryDate = input.ExpiryDate
	}
	if input.ImageRef != nil {
		product.ImageRef = input.ImageRef
	}
	if input.CategoryID != nil {
		if err := s.ensureCategoryExists(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}

	if err := validateProductFields(product.Name, product.Price, product.Stock, product.OfferPercent); err != nil {
		return nil, err
	}

	if _, err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}

	updated, err := s.repo.FindProductByID(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return NewProductDTO(updated, s.now()), nil
}

// DeleteProduct removes a listing after checking seller ownership. Cart lines
// referencing the product go with it; order items keep their snapshot.
func (s *service) DeleteProduct(ctx context.Context, sellerProfileID, productID uuid.UUID) error {
	if err := s.ensureApprovedSeller(ctx, sellerProfileID); err != nil {
		return err
	}
	if _, err := s.loadOwnedProduct(ctx, sellerProfileID, productID); err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

func (s *service) ensureApprovedSeller(ctx context.Context, sellerProfileID uuid.UUID) error {
	profile, err := s.sellerRepo.FindSellerProfileByID(ctx, sellerProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "seller profile not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load seller profile")
	}
	if profile.LicenseStatus != enums.LicenseStatusApproved {
		return pkgerrors.New(pkgerrors.CodeForbidden, "seller license is not approved")
	}
	return nil
}

func (s *service) ensureCategoryExists(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.repo.FindCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	return nil
}

func (s *service) loadOwnedProduct(ctx context.Context, sellerProfileID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	if product.SellerProfileID == nil || *product.SellerProfileID != sellerProfileID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product does not belong to seller")
	}
	return product, nil
}

func validateProductFields(name string, price decimal.Decimal, stock, offerPercent int) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	if offerPercent < 0 || offerPercent > 100 {
		return pkgerrors.New(pkgerrors.CodeValidation, "offer_percent must be between 0 and 100")
	}
	return nil
}
