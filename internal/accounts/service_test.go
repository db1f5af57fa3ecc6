package accounts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpharma/greenpharma-backend/pkg/enums"
	pkgerrors "github.com/greenpharma/greenpharma-backend/pkg/errors"
	"github.com/greenpharma/greenpharma-backend/pkg/pagination"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	db := setupAccountsTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestGetProfile_customer(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user := mustCreateTestUser(t, repo.db, enums.UserRoleCustomer)
	profile := mustCreateTestCustomerProfile(t, repo.db, user.ID)

	dto, err := svc.GetProfile(ctx, user.ID, enums.UserRoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, dto.ProfileID)
	assert.Equal(t, user.Email, dto.User.Email)
	assert.Nil(t, dto.LicenseStatus)
}

func TestGetProfile_sellerCarriesLicense(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user := mustCreateTestUser(t, repo.db, enums.UserRoleSeller)
	mustCreateTestSellerProfile(t, repo.db, user.ID, enums.LicenseStatusApproved)

	dto, err := svc.GetProfile(ctx, user.ID, enums.UserRoleSeller)
	require.NoError(t, err)
	require.NotNil(t, dto.LicenseStatus)
	assert.Equal(t, enums.LicenseStatusApproved, *dto.LicenseStatus)
}

func TestGetProfile_unknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetProfile(context.Background(), uuid.New(), enums.UserRoleCustomer)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateProfile_customerFields(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user := mustCreateTestUser(t, repo.db, enums.UserRoleCustomer)
	mustCreateTestCustomerProfile(t, repo.db, user.ID)

	phone := "+1-555-0100"
	first := "Updated"
	dto, err := svc.UpdateProfile(ctx, user.ID, enums.UserRoleCustomer, UpdateProfileInput{
		FirstName: &first,
		Phone:     &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated", dto.User.FirstName)
	require.NotNil(t, dto.Phone)
	assert.Equal(t, phone, *dto.Phone)

	reloaded, err := repo.FindCustomerProfileByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Phone)
	assert.Equal(t, phone, *reloaded.Phone)
}

func TestSubmitLicense_resetsStatusToPending(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user := mustCreateTestUser(t, repo.db, enums.UserRoleSeller)
	mustCreateTestSellerProfile(t, repo.db, user.ID, enums.LicenseStatusRejected)

	dto, err := svc.SubmitLicense(ctx, user.ID, "licenses/2026/abc.pdf")
	require.NoError(t, err)
	require.NotNil(t, dto.LicenseStatus)
	assert.Equal(t, enums.LicenseStatusPending, *dto.LicenseStatus)
	require.NotNil(t, dto.LicenseRef)
	assert.Equal(t, "licenses/2026/abc.pdf", *dto.LicenseRef)
}

func TestSubmitLicense_rejectsNonSellers(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user := mustCreateTestUser(t, repo.db, enums.UserRoleCustomer)
	mustCreateTestCustomerProfile(t, repo.db, user.ID)

	_, err := svc.SubmitLicense(ctx, user.ID, "licenses/2026/abc.pdf")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestSetLicenseStatus_approve(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user := mustCreateTestUser(t, repo.db, enums.UserRoleSeller)
	profile := mustCreateTestSellerProfile(t, repo.db, user.ID, enums.LicenseStatusPending)

	summary, err := svc.SetLicenseStatus(ctx, profile.ID, enums.LicenseStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, enums.LicenseStatusApproved, summary.LicenseStatus)

	reloaded, err := repo.FindSellerProfileByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.LicenseStatusApproved, reloaded.LicenseStatus)
}

func TestSetLicenseStatus_rejectsPendingTarget(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user := mustCreateTestUser(t, repo.db, enums.UserRoleSeller)
	profile := mustCreateTestSellerProfile(t, repo.db, user.ID, enums.LicenseStatusPending)

	_, err := svc.SetLicenseStatus(ctx, profile.ID, enums.LicenseStatusPending)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSetLicenseStatus_missingProfile(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SetLicenseStatus(context.Background(), uuid.New(), enums.LicenseStatusApproved)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListSellers_filterByStatus(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	pendingUser := mustCreateTestUser(t, repo.db, enums.UserRoleSeller)
	mustCreateTestSellerProfile(t, repo.db, pendingUser.ID, enums.LicenseStatusPending)
	approvedUser := mustCreateTestUser(t, repo.db, enums.UserRoleSeller)
	approved := mustCreateTestSellerProfile(t, repo.db, approvedUser.ID, enums.LicenseStatusApproved)

	status := enums.LicenseStatusApproved
	page, err := svc.ListSellers(ctx, pagination.Params{Page: 1, PageSize: 10}, SellerListFilters{LicenseStatus: &status})
	require.NoError(t, err)

	found := false
	for _, row := range page.Items {
		assert.Equal(t, enums.LicenseStatusApproved, row.LicenseStatus)
		if row.ProfileID == approved.ID {
			found = true
		}
	}
	assert.True(t, found)
}
