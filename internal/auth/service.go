package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenpharma/greenpharma-backend/internal/accounts"
	pkgauth "github.com/greenpharma/greenpharma-backend/pkg/auth"
	"github.com/greenpharma/greenpharma-backend/pkg/auth/session"
	"github.com/greenpharma/greenpharma-backend/pkg/config"
	"github.com/greenpharma/greenpharma-backend/pkg/db"
	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/enums"
	pkgerrors "github.com/greenpharma/greenpharma-backend/pkg/errors"
	"github.com/greenpharma/greenpharma-backend/pkg/security"
)

// Service exposes registration and token lifecycle operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResultDTO, error)
	Login(ctx context.Context, input LoginInput) (*AuthResultDTO, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*AuthResultDTO, error)
	Logout(ctx context.Context, accessID string) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// service implements the auth service.
type service struct {
	repo     *accounts.Repository
	dbClient *db.Client
	sessions sessionManager
	cfg      *config.Config
}

// NewService constructs an auth service instance.
func NewService(repo *accounts.Repository, dbClient *db.Client, sessions sessionManager, cfg *config.Config) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("accounts repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		sessions: sessions,
		cfg:      cfg,
	}, nil
}

// Register creates the user plus its role profile in a single transaction and
// logs the new account in.
func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResultDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	registerable := false
	for _, role := range enums.RegisterableRoles() {
		if input.Role == role {
			registerable = true
			break
		}
	}
	if !registerable {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("role %q cannot self-register", input.Role))
	}

	hash, err := security.HashPassword(input.Password, s.cfg.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         input.Role,
		IsActive:     true,
	}

	var profileID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if _, err := txRepo.CreateUser(ctx, user); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
		}

		switch input.Role {
		case enums.UserRoleCustomer:
			profile := &models.CustomerProfile{
				ID:      uuid.New(),
				UserID:  user.ID,
				Phone:   input.Phone,
				Address: input.Address,
			}
			if _, err := txRepo.CreateCustomerProfile(ctx, profile); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert customer profile")
			}
			profileID = profile.ID
		case enums.UserRoleSeller:
			profile := &models.SellerProfile{
				ID:            uuid.New(),
				UserID:        user.ID,
				Phone:         input.Phone,
				Address:       input.Address,
				LicenseRef:    input.LicenseRef,
				LicenseStatus: enums.LicenseStatusPending,
			}
			if _, err := txRepo.CreateSellerProfile(ctx, profile); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert seller profile")
			}
			profileID = profile.ID
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register user")
	}

	return s.issueTokens(ctx, user, &profileID)
}

// Login verifies credentials and issues a fresh token pair.
func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResultDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is deactivated")
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if _, err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update last login")
	}

	profileID, err := s.resolveProfileID(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user, profileID)
}

// Refresh rotates the refresh session and reissues the access token. The
// provided access token may be expired; its signature must still verify.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*AuthResultDTO, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.cfg.JWT, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefreshToken, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	user, err := s.repo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is deactivated")
	}

	token, err := pkgauth.MintAccessToken(s.cfg.JWT, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:    user.ID,
		Role:      user.Role,
		ProfileID: claims.ProfileID,
		JTI:       newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	profile, err := s.loadProfileDTO(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResultDTO{
		AccessToken:  token,
		RefreshToken: newRefreshToken,
		Profile:      profile,
	}, nil
}

// Logout revokes the refresh session tied to the access identifier.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) issueTokens(ctx context.Context, user *models.User, profileID *uuid.UUID) (*AuthResultDTO, error) {
	accessID := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(s.cfg.JWT, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:    user.ID,
		Role:      user.Role,
		ProfileID: profileID,
		JTI:       accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refreshToken, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "start session")
	}

	profile, err := s.loadProfileDTO(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResultDTO{
		AccessToken:  token,
		RefreshToken: refreshToken,
		Profile:      profile,
	}, nil
}

func (s *service) resolveProfileID(ctx context.Context, user *models.User) (*uuid.UUID, error) {
	switch user.Role {
	case enums.UserRoleCustomer:
		profile, err := s.repo.FindCustomerProfileByUserID(ctx, user.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load customer profile")
		}
		return &profile.ID, nil
	case enums.UserRoleSeller:
		profile, err := s.repo.FindSellerProfileByUserID(ctx, user.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load seller profile")
		}
		return &profile.ID, nil
	default:
		return nil, nil
	}
}

func (s *service) loadProfileDTO(ctx context.Context, user *models.User) (*accounts.ProfileDTO, error) {
	switch user.Role {
	case enums.UserRoleCustomer:
		profile, err := s.repo.FindCustomerProfileByUserID(ctx, user.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load customer profile")
		}
		return accounts.NewCustomerProfileDTO(user, profile), nil
	case enums.UserRoleSeller:
		profile, err := s.repo.FindSellerProfileByUserID(ctx, user.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load seller profile")
		}
		return accounts.NewSellerProfileDTO(user, profile), nil
	default:
		return &accounts.ProfileDTO{ProfileID: user.ID, User: accounts.NewUserDTO(user)}, nil
	}
}
