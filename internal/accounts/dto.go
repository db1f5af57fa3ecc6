package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/enums"
)

// UserDTO is the external representation of a user identity.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Role        enums.UserRole `json:"role"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ProfileDTO merges the user identity with its role-specific profile row.
// License fields are only populated for sellers.
type ProfileDTO struct {
	ProfileID     uuid.UUID            `json:"profile_id"`
	User          UserDTO              `json:"user"`
	Phone         *string              `json:"phone,omitempty"`
	Address       *string              `json:"address,omitempty"`
	LicenseRef    *string              `json:"license_ref,omitempty"`
	LicenseStatus *enums.LicenseStatus `json:"license_status,omitempty"`
}

// SellerSummaryDTO is the admin-facing seller listing row.
type SellerSummaryDTO struct {
	ProfileID     uuid.UUID           `json:"profile_id"`
	UserID        uuid.UUID           `json:"user_id"`
	LicenseRef    *string             `json:"license_ref,omitempty"`
	LicenseStatus enums.LicenseStatus `json:"license_status"`
	CreatedAt     time.Time           `json:"created_at"`
}

// NewUserDTO maps the user model to its DTO.
func NewUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// NewCustomerProfileDTO maps a customer profile plus its user to a ProfileDTO.
func NewCustomerProfileDTO(user *models.User, profile *models.CustomerProfile) *ProfileDTO {
	return &ProfileDTO{
		ProfileID: profile.ID,
		User:      NewUserDTO(user),
		Phone:     profile.Phone,
		Address:   profile.Address,
	}
}

// NewSellerProfileDTO maps a seller profile plus its user to a ProfileDTO.
func NewSellerProfileDTO(user *models.User, profile *models.SellerProfile) *ProfileDTO {
	status := profile.LicenseStatus
	return &ProfileDTO{
		ProfileID:     profile.ID,
		User:          NewUserDTO(user),
		Phone:         profile.Phone,
		Address:       profile.Address,
		LicenseRef:    profile.LicenseRef,
		LicenseStatus: &status,
	}
}

// NewSellerSummaryDTO maps a seller profile to the admin listing row.
func NewSellerSummaryDTO(profile *models.SellerProfile) SellerSummaryDTO {
	return SellerSummaryDTO{
		ProfileID:     profile.ID,
		UserID:        profile.UserID,
		LicenseRef:    profile.LicenseRef,
		LicenseStatus: profile.LicenseStatus,
		CreatedAt:     profile.CreatedAt,
	}
}
