package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/enums"
	pkgerrors "github.com/greenpharma/greenpharma-backend/pkg/errors"
	"github.com/greenpharma/greenpharma-backend/pkg/pagination"
)

// Service exposes profile and seller licensing operations.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, role enums.UserRole, input UpdateProfileInput) (*ProfileDTO, error)
	SubmitLicense(ctx context.Context, userID uuid.UUID, licenseRef string) (*ProfileDTO, error)
	ListSellers(ctx context.Context, params pagination.Params, filters SellerListFilters) (pagination.Page[SellerSummaryDTO], error)
	SetLicenseStatus(ctx context.Context, sellerProfileID uuid.UUID, status enums.LicenseStatus) (*SellerSummaryDTO, error)
}

// UpdateProfileInput holds optional mutation values for a profile.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string
}

// service implements the accounts service.
type service struct {
	repo *Repository
}

// NewService constructs an accounts service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("accounts repository required")
	}
	return &service{repo: repo}, nil
}

// GetProfile loads the profile that matches the user's role.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*ProfileDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch role {
	case enums.UserRoleCustomer:
		profile, err := s.repo.FindCustomerProfileByUserID(ctx, userID)
		if err != nil {
			return nil, profileLoadError(err)
		}
		return NewCustomerProfileDTO(user, profile), nil
	case enums.UserRoleSeller:
		profile, err := s.repo.FindSellerProfileByUserID(ctx, userID)
		if err != nil {
			return nil, profileLoadError(err)
		}
		return NewSellerProfileDTO(user, profile), nil
	case enums.UserRoleAdmin:
		// Admins carry no profile row; the identity is the whole account.
		return &ProfileDTO{ProfileID: user.ID, User: NewUserDTO(user)}, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown role %q", role))
	}
}

// UpdateProfile applies the provided mutations to the user and its profile row.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, role enums.UserRole, input UpdateProfileInput) (*ProfileDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if _, err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
	}

	switch role {
	case enums.UserRoleCustomer:
		profile, err := s.repo.FindCustomerProfileByUserID(ctx, userID)
		if err != nil {
			return nil, profileLoadError(err)
		}
		if input.Phone != nil {
			profile.Phone = input.Phone
		}
		if input.Address != nil {
			profile.Address = input.Address
		}
		if _, err := s.repo.UpdateCustomerProfile(ctx, profile); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update customer profile")
		}
		return NewCustomerProfileDTO(user, profile), nil
	case enums.UserRoleSeller:
		profile, err := s.repo.FindSellerProfileByUserID(ctx, userID)
		if err != nil {
			return nil, profileLoadError(err)
		}
		if input.Phone != nil {
			profile.Phone = input.Phone
		}
		if input.Address != nil {
			profile.Address = input.Address
		}
		if _, err := s.repo.UpdateSellerProfile(ctx, profile); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update seller profile")
		}
		return NewSellerProfileDTO(user, profile), nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role has no editable profile")
	}
}

// SubmitLicense records a new license document reference for a seller and
// resets the review state to pending.
func (s *service) SubmitLicense(ctx context.Context, userID uuid.UUID, licenseRef string) (*ProfileDTO, error) {
	licenseRef = strings.TrimSpace(licenseRef)
	if licenseRef == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "license_ref is required")
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != enums.UserRoleSeller {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only sellers can submit a license")
	}

	profile, err := s.repo.FindSellerProfileByUserID(ctx, userID)
	if err != nil {
		return nil, profileLoadError(err)
	}

	profile.LicenseRef = &licenseRef
	profile.LicenseStatus = enums.LicenseStatusPending
	if _, err := s.repo.UpdateSellerProfile(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update seller profile")
	}
	return NewSellerProfileDTO(user, profile), nil
}

// ListSellers returns one admin page of seller profiles.
func (s *service) ListSellers(ctx context.Context, params pagination.Params, filters SellerListFilters) (pagination.Page[SellerSummaryDTO], error) {
	page, err := s.repo.ListSellerProfiles(ctx, params, filters)
	if err != nil {
		return pagination.Page[SellerSummaryDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list seller profiles")
	}

	summaries := make([]SellerSummaryDTO, 0, len(page.Items))
	for i := range page.Items {
		summaries = append(summaries, NewSellerSummaryDTO(&page.Items[i]))
	}
	return pagination.Page[SellerSummaryDTO]{
		Items:      summaries,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}, nil
}

// SetLicenseStatus resolves a pending seller license review.
func (s *service) SetLicenseStatus(ctx context.Context, sellerProfileID uuid.UUID, status enums.LicenseStatus) (*SellerSummaryDTO, error) {
	if status != enums.LicenseStatusApproved && status != enums.LicenseStatusRejected {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "license status must be approved or rejected")
	}

	profile, err := s.repo.FindSellerProfileByID(ctx, sellerProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load seller profile")
	}

	profile.LicenseStatus = status
	if _, err := s.repo.UpdateSellerProfile(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update seller profile")
	}

	summary := NewSellerSummaryDTO(profile)
	return &summary, nil
}

func (s *service) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	return user, nil
}

func profileLoadError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load profile")
}
