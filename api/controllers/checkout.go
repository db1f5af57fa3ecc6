package controllers

import (
	"net/http"

	"github.com/greenpharma/greenpharma-backend/api/responses"
	checkoutsvc "github.com/greenpharma/greenpharma-backend/internal/checkout"
	pkgerrors "github.com/greenpharma/greenpharma-backend/pkg/errors"
	"github.com/greenpharma/greenpharma-backend/pkg/logger"
)

// Checkout converts the customer's cart into an order. Stock decrements,
// order creation, and cart clearing are a single transaction.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		customerID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Checkout(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
