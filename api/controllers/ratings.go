package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solevibe/solevibe-backend/api/middleware"
	"github.com/solevibe/solevibe-backend/api/responses"
	"github.com/solevibe/solevibe-backend/api/validators"
	ratingsvc "github.com/solevibe/solevibe-backend/internal/ratings"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	"github.com/solevibe/solevibe-backend/pkg/logger"
)

type rateRequest struct {
	Stars int `json:"stars" validate:"required,min=1,max=5"`
}

// RatingUpsert records a star rating, replacing any previous one.
func RatingUpsert(svc ratingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ratings service unavailable"))
			return
		}

		var payload rateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.StorefrontTokenFromContext(r.Context())
		if err := svc.Rate(r.Context(), token, chi.URLParam(r, "productId"), payload.Stars); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"stars": payload.Stars})
	}
}

// RatingFetch returns the stored stars, zero when unrated.
func RatingFetch(svc ratingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ratings service unavailable"))
			return
		}

		token := middleware.StorefrontTokenFromContext(r.Context())
		stars, err := svc.Rating(r.Context(), token, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"stars": stars})
	}
}
