package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/greenpharma/greenpharma-backend/api/responses"
	cartsvc "github.com/greenpharma/greenpharma-backend/internal/cart"
	pkgerrors "github.com/greenpharma/greenpharma-backend/pkg/errors"
	"github.com/greenpharma/greenpharma-backend/pkg/logger"
)

// CartFetch returns the customer's cart with per-line effective prices.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		customerID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.GetCart(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}

// CartAddItem adds a product to the cart or bumps its quantity.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartMutation(svc, logg, svcAdd)
}

// CartIncrementItem raises a line's quantity, capped at available stock.
func CartIncrementItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartMutation(svc, logg, svcIncrement)
}

// CartDecrementItem lowers a line's quantity, floored at one.
func CartDecrementItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartMutation(svc, logg, svcDecrement)
}

// CartRemoveItem drops a line from the cart entirely.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartMutation(svc, logg, svcRemove)
}

type cartOp func(svc cartsvc.Service, ctx context.Context, customerID, productID uuid.UUID) (*cartsvc.CartDTO, error)

func svcAdd(svc cartsvc.Service, ctx context.Context, customerID, productID uuid.UUID) (*cartsvc.CartDTO, error) {
	return svc.AddItem(ctx, customerID, productID)
}

func svcIncrement(svc cartsvc.Service, ctx context.Context, customerID, productID uuid.UUID) (*cartsvc.CartDTO, error) {
	return svc.IncrementItem(ctx, customerID, productID)
}

func svcDecrement(svc cartsvc.Service, ctx context.Context, customerID, productID uuid.UUID) (*cartsvc.CartDTO, error) {
	return svc.DecrementItem(ctx, customerID, productID)
}

func svcRemove(svc cartsvc.Service, ctx context.Context, customerID, productID uuid.UUID) (*cartsvc.CartDTO, error) {
	return svc.RemoveItem(ctx, customerID, productID)
}

func cartMutation(svc cartsvc.Service, logg *logger.Logger, op cartOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		customerID, err := profileIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuidURLParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := op(svc, r.Context(), customerID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart)
	}
}
