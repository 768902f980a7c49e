package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/solevibe/solevibe-backend/api/middleware"
	"github.com/solevibe/solevibe-backend/api/responses"
	"github.com/solevibe/solevibe-backend/api/validators"
	giftcardsvc "github.com/solevibe/solevibe-backend/internal/giftcards"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	"github.com/solevibe/solevibe-backend/pkg/logger"
)

type giftCardRecipient struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
}

type giftCardPurchaseRequest struct {
	CardID          string             `json:"card_id,omitempty"`
	CustomAmount    *decimal.Decimal   `json:"custom_amount,omitempty"`
	Quantity        int                `json:"quantity,omitempty"`
	DeliveryType    string             `json:"delivery_type,omitempty"`
	Recipient       *giftCardRecipient `json:"recipient,omitempty"`
	DeliveryAddress string             `json:"delivery_address,omitempty"`
	PromoCode       string             `json:"promo_code,omitempty"`
}

func (p giftCardPurchaseRequest) toInput() giftcardsvc.PurchaseInput {
	input := giftcardsvc.PurchaseInput{
		CardID:          p.CardID,
		CustomAmount:    p.CustomAmount,
		Quantity:        p.Quantity,
		DeliveryType:    p.DeliveryType,
		DeliveryAddress: p.DeliveryAddress,
	}
	if p.Recipient != nil {
		input.Recipient = giftcardsvc.Recipient{
			Email:   p.Recipient.Email,
			Name:    p.Recipient.Name,
			Message: p.Recipient.Message,
		}
	}
	return input
}

// GiftCardCatalog lists the fixed gift card designs.
func GiftCardCatalog(svc giftcardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gift card service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Catalog())
	}
}

// GiftCardQuote prices a selection, applying the promo code to the quote.
func GiftCardQuote(svc giftcardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gift card service unavailable"))
			return
		}

		var payload giftCardPurchaseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.QuotePrice(payload.toInput(), payload.PromoCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// GiftCardAddToCart validates the purchase and appends a gift card line
// to the cart.
func GiftCardAddToCart(svc giftcardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gift card service unavailable"))
			return
		}

		var payload giftCardPurchaseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.StorefrontTokenFromContext(r.Context())
		view, err := svc.AddToCart(r.Context(), token, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// GiftCardDraftSave persists the in-progress form.
func GiftCardDraftSave(svc giftcardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gift card service unavailable"))
			return
		}

		var draft giftcardsvc.Draft
		if err := validators.DecodeJSONBody(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.StorefrontTokenFromContext(r.Context())
		if err := svc.SaveDraft(r.Context(), token, draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "saved"})
	}
}

// GiftCardDraftFetch returns the saved form, or not-found when none exists.
func GiftCardDraftFetch(svc giftcardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gift card service unavailable"))
			return
		}

		token := middleware.StorefrontTokenFromContext(r.Context())
		draft, err := svc.GetDraft(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, draft)
	}
}
