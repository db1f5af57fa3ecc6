package accounts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/enums"
	"github.com/greenpharma/greenpharma-backend/pkg/pagination"
)

// Repository wires together user and profile persistence.
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

// CreateUser inserts a new user row.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindUserByID loads a user by primary key.
func (r *Repository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail loads a user by email.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser persists mutations to an existing user row.
func (r *Repository) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCustomerProfile inserts the customer extension row.
func (r *Repository) CreateCustomerProfile(ctx context.Context, profile *models.CustomerProfile) (*models.CustomerProfile, error) {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// CreateSellerProfile inserts the seller extension row.
func (r *Repository) CreateSellerProfile(ctx context.Context, profile *models.SellerProfile) (*models.SellerProfile, error) {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// FindCustomerProfileByUserID loads the customer profile owned by the user.
func (r *Repository) FindCustomerProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindSellerProfileByUserID loads the seller profile owned by the user.
func (r *Repository) FindSellerProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.SellerProfile, error) {
	var profile models.SellerProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindSellerProfileByID loads a seller profile by primary key.
func (r *Repository) FindSellerProfileByID(ctx context.Context, id uuid.UUID) (*models.SellerProfile, error) {
	var profile models.SellerProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindCustomerProfileByID loads a customer profile by primary key.
func (r *Repository) FindCustomerProfileByID(ctx context.Context, id uuid.UUID) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateCustomerProfile persists mutations to a customer profile.
func (r *Repository) UpdateCustomerProfile(ctx context.Context, profile *models.CustomerProfile) (*models.CustomerProfile, error) {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateSellerProfile persists mutations to a seller profile.
func (r *Repository) UpdateSellerProfile(ctx context.Context, profile *models.SellerProfile) (*models.SellerProfile, error) {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// SellerListFilters narrows the admin seller listing.
type SellerListFilters struct {
	LicenseStatus *enums.LicenseStatus
}

// ListSellerProfiles returns one page of seller profiles, newest first.
func (r *Repository) ListSellerProfiles(ctx context.Context, params pagination.Params, filters SellerListFilters) (pagination.Page[models.SellerProfile], error) {
	norm := params.Normalize()

	qb := r.db.WithContext(ctx).Model(&models.SellerProfile{})
	if filters.LicenseStatus != nil {
		qb = qb.Where("license_status = ?", *filters.LicenseStatus)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return pagination.Page[models.SellerProfile]{}, err
	}

	var rows []models.SellerProfile
	err := qb.
		Order("created_at DESC").
		Offset(norm.Offset()).
		Limit(norm.PageSize).
		Find(&rows).
		Error
	if err != nil {
		return pagination.Page[models.SellerProfile]{}, err
	}

	return pagination.NewPage(rows, norm, total), nil
}
