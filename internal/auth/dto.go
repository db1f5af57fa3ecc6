package auth

import (
	"github.com/greenpharma/greenpharma-backend/internal/accounts"
	"github.com/greenpharma/greenpharma-backend/pkg/enums"
)

// RegisterInput holds the validated registration payload.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      enums.UserRole
	Phone     *string
	Address   *string
	// LicenseRef is only honored for seller registrations.
	LicenseRef *string
}

// LoginInput holds the validated login payload.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResultDTO is the token pair plus the authenticated profile.
type AuthResultDTO struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	Profile      *accounts.ProfileDTO `json:"profile"`
}
