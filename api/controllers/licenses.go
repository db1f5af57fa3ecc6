package controllers

import (
	"net/http"
	"strings"

	"github.com/greenpharma/greenpharma-backend/api/responses"
	"github.com/greenpharma/greenpharma-backend/api/validators"
	accountssvc "github.com/greenpharma/greenpharma-backend/internal/accounts"
	"github.com/greenpharma/greenpharma-backend/pkg/enums"
	pkgerrors "github.com/greenpharma/greenpharma-backend/pkg/errors"
	"github.com/greenpharma/greenpharma-backend/pkg/logger"
)

type setLicenseStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminListSellers pages through seller profiles for license review.
func AdminListSellers(svc accountssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "accounts service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r, 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := accountssvc.SellerListFilters{}
		if raw := strings.TrimSpace(r.URL.Query().Get("license_status")); raw != "" {
			status, err := enums.ParseLicenseStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid license_status"))
				return
			}
			filters.LicenseStatus = &status
		}

		page, err := svc.ListSellers(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// AdminSetLicenseStatus approves or rejects a seller's license.
func AdminSetLicenseStatus(svc accountssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "accounts service unavailable"))
			return
		}

		sellerID, err := uuidURLParam(r, "sellerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body setLicenseStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseLicenseStatus(strings.TrimSpace(body.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		seller, err := svc.SetLicenseStatus(r.Context(), sellerID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, seller)
	}
}
