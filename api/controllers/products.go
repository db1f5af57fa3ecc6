package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenpharma/greenpharma-backend/api/responses"
	"github.com/greenpharma/greenpharma-backend/api/validators"
	catalogsvc "github.com/greenpharma/greenpharma-backend/internal/catalog"
	pkgerrors "github.com/greenpharma/greenpharma-backend/pkg/errors"
	"github.com/greenpharma/greenpharma-backend/pkg/logger"
)

const expiryDateLayout = "2006-01-02"

type createProductRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=200"`
	Description  string  `json:"description"`
	Price        string  `json:"price" validate:"required"`
	Stock        int     `json:"stock" validate:"gte=0"`
	OfferPercent int     `json:"offer_percent" validate:"gte=0,lte=100"`
	ExpiryDate   *string `json:"expiry_date,omitempty"`
	ImageRef     *string `json:"image_ref,omitempty"`
	CategoryID   *string `json:"category_id,omitempty"`
}

type updateProductRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description  *string `json:"description,omitempty"`
	Price        *string `json:"price,omitempty"`
	Stock        *int    `json:"stock,omitempty" validate:"omitempty,gte=0"`
	OfferPercent *int    `json:"offer_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	ExpiryDate   *string `json:"expiry_date,omitempty"`
	ImageRef     *string `json:"image_ref,omitempty"`
	CategoryID   *string `json:"category_id,omitempty"`
}

// SellerListProducts pages through the seller's own listings.
func SellerListProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		sellerID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r, 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListSellerProducts(r.Context(), sellerID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// SellerCreateProduct handles product creation for approved sellers.
func SellerCreateProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		sellerID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), sellerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// SellerUpdateProduct handles partial product updates for the owning seller.
func SellerUpdateProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		sellerID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuidURLParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), sellerID, productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// SellerDeleteProduct removes a product owned by the seller.
func SellerDeleteProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		sellerID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuidURLParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), sellerID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func (body createProductRequest) toInput() (catalogsvc.CreateProductInput, error) {
	price, err := parsePrice(body.Price)
	if err != nil {
		return catalogsvc.CreateProductInput{}, err
	}
	expiry, err := parseExpiryDate(body.ExpiryDate)
	if err != nil {
		return catalogsvc.CreateProductInput{}, err
	}
	categoryID, err := parseOptionalUUID(body.CategoryID, "category_id")
	if err != nil {
		return catalogsvc.CreateProductInput{}, err
	}

	return catalogsvc.CreateProductInput{
		Name:         validators.SanitizeString(body.Name, 200),
		Description:  strings.TrimSpace(body.Description),
		Price:        price,
		Stock:        body.Stock,
		OfferPercent: body.OfferPercent,
		ExpiryDate:   expiry,
		ImageRef:     body.ImageRef,
		CategoryID:   categoryID,
	}, nil
}

func (body updateProductRequest) toInput() (catalogsvc.UpdateProductInput, error) {
	input := catalogsvc.UpdateProductInput{
		Description:  body.Description,
		Stock:        body.Stock,
		OfferPercent: body.OfferPercent,
		ImageRef:     body.ImageRef,
	}

	if body.Name != nil {
		name := validators.SanitizeString(*body.Name, 200)
		input.Name = &name
	}
	if body.Price != nil {
		price, err := parsePrice(*body.Price)
		if err != nil {
			return catalogsvc.UpdateProductInput{}, err
		}
		input.Price = &price
	}
	expiry, err := parseExpiryDate(body.ExpiryDate)
	if err != nil {
		return catalogsvc.UpdateProductInput{}, err
	}
	input.ExpiryDate = expiry

	categoryID, err := parseOptionalUUID(body.CategoryID, "category_id")
	if err != nil {
		return catalogsvc.UpdateProductInput{}, err
	}
	input.CategoryID = categoryID

	return input, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}
	return price, nil
}

func parseExpiryDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := time.Parse(expiryDateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "expiry_date must be YYYY-MM-DD")
	}
	return &parsed, nil
}

func parseOptionalUUID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field)
	}
	return &parsed, nil
}
