package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solevibe/solevibe-backend/api/middleware"
	"github.com/solevibe/solevibe-backend/api/responses"
	"github.com/solevibe/solevibe-backend/api/validators"
	wishlistsvc "github.com/solevibe/solevibe-backend/internal/wishlist"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	"github.com/solevibe/solevibe-backend/pkg/logger"
)

type wishlistAddRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type wishlistView struct {
	IDs   []string      `json:"ids"`
	Items []productView `json:"items"`
}

// WishlistFetch returns the liked product IDs hydrated against the catalog.
func WishlistFetch(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		token := middleware.StorefrontTokenFromContext(r.Context())
		ids, err := svc.ListIDs(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.List(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlistView{IDs: ids, Items: newProductViews(items)})
	}
}

// WishlistAdd likes a product.
func WishlistAdd(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		var payload wishlistAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.StorefrontTokenFromContext(r.Context())
		if err := svc.AddItem(r.Context(), token, payload.ProductID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "added"})
	}
}

// WishlistRemove drops the liked product, succeeding even when it was
// never liked.
func WishlistRemove(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		token := middleware.StorefrontTokenFromContext(r.Context())
		if err := svc.RemoveItem(r.Context(), token, chi.URLParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}
