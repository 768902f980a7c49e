package controllers

import (
	"net/http"

	"github.com/solevibe/solevibe-backend/api/middleware"
	"github.com/solevibe/solevibe-backend/api/responses"
	checkoutsvc "github.com/solevibe/solevibe-backend/internal/checkout"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	"github.com/solevibe/solevibe-backend/pkg/logger"
)

// CheckoutBegin copies the cart into a pending session and mints the
// hosted payment link.
func CheckoutBegin(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		session, err := svc.Begin(r.Context(), middleware.StorefrontTokenFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

// CheckoutPending exposes the current pending session.
func CheckoutPending(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		session, err := svc.Pending(r.Context(), middleware.StorefrontTokenFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

// CheckoutComplete finalizes the pending session and empties the cart.
func CheckoutComplete(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		order, err := svc.Complete(r.Context(), middleware.StorefrontTokenFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// CheckoutCancel abandons the pending session, leaving the cart intact.
func CheckoutCancel(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		if err := svc.Cancel(r.Context(), middleware.StorefrontTokenFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}
