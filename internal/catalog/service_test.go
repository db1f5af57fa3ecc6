package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/greenpharma/greenpharma-backend/internal/accounts"
	"github.com/greenpharma/greenpharma-backend/pkg/enums"
	pkgerrors "github.com/greenpharma/greenpharma-backend/pkg/errors"
	"github.com/greenpharma/greenpharma-backend/pkg/pagination"
)

func newTestService(t *testing.T) (Service, *Repository, *gorm.DB) {
	t.Helper()
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, accounts.NewRepository(db))
	require.NoError(t, err)
	return svc, repo, db
}

func TestCreateProduct_approvedSeller(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	seller := mustCreateTestSeller(t, db, enums.LicenseStatusApproved)
	category := mustCreateTestCategory(t, db)

	expiry := time.Now().UTC().Add(90 * 24 * time.Hour)
	dto, err := svc.CreateProduct(ctx, seller.ID, CreateProductInput{
		Name:         "Ibuprofen 400mg",
		Description:  "Pain relief",
		Price:        decimal.RequireFromString("6.50"),
		Stock:        120,
		OfferPercent: 10,
		ExpiryDate:   &expiry,
		CategoryID:   &category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ibuprofen 400mg", dto.Name)
	assert.True(t, dto.EffectivePrice.Equal(decimal.RequireFromString("5.85")), "got %s", dto.EffectivePrice)
	require.NotNil(t, dto.Category)
	assert.Equal(t, category.ID, dto.Category.ID)
	require.NotNil(t, dto.SellerProfileID)
	assert.Equal(t, seller.ID, *dto.SellerProfileID)
}

func TestCreateProduct_pendingSellerForbidden(t *testing.T) {
	svc, _, db := newTestService(t)

	seller := mustCreateTestSeller(t, db, enums.LicenseStatusPending)
	_, err := svc.CreateProduct(context.Background(), seller.ID, CreateProductInput{
		Name:  "Aspirin",
		Price: decimal.RequireFromString("3.00"),
		Stock: 5,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestCreateProduct_validation(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	seller := mustCreateTestSeller(t, db, enums.LicenseStatusApproved)

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{"empty name", CreateProductInput{Name: " ", Price: decimal.RequireFromString("1.00"), Stock: 1}},
		{"zero price", CreateProductInput{Name: "X", Price: decimal.Zero, Stock: 1}},
		{"negative stock", CreateProductInput{Name: "X", Price: decimal.RequireFromString("1.00"), Stock: -1}},
		{"offer above 100", CreateProductInput{Name: "X", Price: decimal.RequireFromString("1.00"), Stock: 1, OfferPercent: 101}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, seller.ID, tc.input)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestCreateProduct_unknownCategory(t *testing.T) {
	svc, _, db := newTestService(t)

	seller := mustCreateTestSeller(t, db, enums.LicenseStatusApproved)
	missing := uuid.New()
	_, err := svc.CreateProduct(context.Background(), seller.ID, CreateProductInput{
		Name:       "X",
		Price:      decimal.RequireFromString("1.00"),
		Stock:      1,
		CategoryID: &missing,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateProduct_ownershipEnforced(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	owner := mustCreateTestSeller(t, db, enums.LicenseStatusApproved)
	intruder := mustCreateTestSeller(t, db, enums.LicenseStatusApproved)
	product := mustCreateTestProduct(t, db, &owner.ID, 10)

	name := "Renamed"
	_, err := svc.UpdateProduct(ctx, intruder.ID, product.ID, UpdateProductInput{Name: &name})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	dto, err := svc.UpdateProduct(ctx, owner.ID, product.ID, UpdateProductInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", dto.Name)
}

func TestDeleteProduct(t *testing.T) {
	svc, repo, db := newTestService(t)
	ctx := context.Background()

	seller := mustCreateTestSeller(t, db, enums.LicenseStatusApproved)
	product := mustCreateTestProduct(t, db, &seller.ID, 10)

	require.NoError(t, svc.DeleteProduct(ctx, seller.ID, product.ID))

	_, err := repo.FindProductByID(ctx, product.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetProduct_notFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetProduct(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListProducts_searchAndCategoryFilter(t *testing.T) {
	svc, repo, db := newTestService(t)
	ctx := context.Background()

	category := mustCreateTestCategory(t, db)
	match := mustCreateTestProduct(t, db, nil, 5)
	match.Name = "Paracetamol Extra"
	match.CategoryID = &category.ID
	_, err := repo.UpdateProduct(ctx, match)
	require.NoError(t, err)

	other := mustCreateTestProduct(t, db, nil, 5)
	other.Name = "Vitamin C"
	_, err = repo.UpdateProduct(ctx, other)
	require.NoError(t, err)

	page, err := svc.ListProducts(ctx, pagination.Params{Page: 1, PageSize: 20}, ProductListFilters{
		Query:      "paraceta",
		CategoryID: &category.ID,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, match.ID, page.Items[0].ID)
}

func TestListProducts_pagination(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	seller := mustCreateTestSeller(t, db, enums.LicenseStatusApproved)
	for i := 0; i < 3; i++ {
		mustCreateTestProduct(t, db, &seller.ID, 5)
	}

	page, err := svc.ListProducts(ctx, pagination.Params{Page: 1, PageSize: 2}, ProductListFilters{
		SellerProfileID: &seller.ID,
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)

	second, err := svc.ListProducts(ctx, pagination.Params{Page: 2, PageSize: 2}, ProductListFilters{
		SellerProfileID: &seller.ID,
	})
	require.NoError(t, err)
	assert.Len(t, second.Items, 1)
}

func TestCreateCategory_duplicateConflicts(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, "Analgesics-"+uuid.NewString())
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, created.Name)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestDecrementStock_guarded(t *testing.T) {
	_, repo, db := newTestService(t)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db, nil, 3)

	ok, err := repo.DecrementStock(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DecrementStock(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	reloaded, err := repo.FindProductByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Stock)
}

func TestCreateProduct_pastExpiryRejected(t *testing.T) {
	svc, _, db := newTestService(t)

	seller := mustCreateTestSeller(t, db, enums.LicenseStatusApproved)
	past := time.Now().UTC().Add(-48 * time.Hour)
	_, err := svc.CreateProduct(context.Background(), seller.ID, CreateProductInput{
		Name:       "Expired batch",
		Price:      decimal.RequireFromString("4.00"),
		Stock:      10,
		ExpiryDate: &past,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListSellerProducts_scopedToSeller(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	mine := mustCreateTestSeller(t, db, enums.LicenseStatusApproved)
	other := mustCreateTestSeller(t, db, enums.LicenseStatusApproved)
	mustCreateTestProduct(t, db, &mine.ID, 5)
	mustCreateTestProduct(t, db, &mine.ID, 5)
	mustCreateTestProduct(t, db, &other.ID, 5)

	page, err := svc.ListSellerProducts(ctx, mine.ID, pagination.Params{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	for _, item := range page.Items {
		require.NotNil(t, item.SellerProfileID)
		assert.Equal(t, mine.ID, *item.SellerProfileID)
	}
}
