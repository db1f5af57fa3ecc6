package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/greenpharma/greenpharma-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
// ProfileID is the role-specific profile (customer or seller); it is nil for
// admins and for users who have not completed onboarding yet.
type AccessTokenPayload struct {
	UserID    uuid.UUID
	Role      enums.UserRole
	ProfileID *uuid.UUID
	JTI       string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID    uuid.UUID      `json:"user_id"`
	Role      enums.UserRole `json:"role"`
	ProfileID *uuid.UUID     `json:"profile_id,omitempty"`
	jwt.RegisteredClaims
}
