package giftcards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solevibe/solevibe-backend/internal/cart"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	pkgredis "github.com/solevibe/solevibe-backend/pkg/redis"
)

const (
	promoCode     = "SOLEVIBE15"
	promoDiscount = "0.15"

	DeliveryDigital  = "digital"
	DeliveryPhysical = "physical"
)

var customAmountMin = decimal.NewFromInt(1000)
var customAmountMax = decimal.NewFromInt(50000)

// Card is one of the fixed gift card designs.
type Card struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// Recipient holds who a digital gift card is sent to.
type Recipient struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
}

// Draft mirrors the in-progress gift card form so it survives page loads.
type Draft struct {
	CardID          string     `json:"card_id,omitempty"`
	CustomAmount    string     `json:"custom_amount,omitempty"`
	Quantity        int        `json:"quantity,omitempty"`
	DeliveryType    string     `json:"delivery_type,omitempty"`
	Recipient       *Recipient `json:"recipient,omitempty"`
	DeliveryAddress string     `json:"delivery_address,omitempty"`
}

// PurchaseInput is the payload to put a gift card in the cart.
type PurchaseInput struct {
	CardID          string
	CustomAmount    *decimal.Decimal
	Quantity        int
	DeliveryType    string
	Recipient       Recipient
	DeliveryAddress string
}

// Quote is the priced summary of a gift card selection after any promo.
type Quote struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

type cartAdder interface {
	AddLine(ctx context.Context, token string, line cart.LineItem) (*cart.View, error)
}

type draftStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	GiftCardDraftKey(token string) string
}

// Service sells gift cards through the cart.
type Service interface {
	Catalog() []Card
	QuotePrice(input PurchaseInput, promo string) (*Quote, error)
	AddToCart(ctx context.Context, token string, input PurchaseInput) (*cart.View, error)
	SaveDraft(ctx context.Context, token string, draft Draft) error
	GetDraft(ctx context.Context, token string) (*Draft, error)
}

type service struct {
	carts  cartAdder
	drafts draftStore
	cards  []Card
}

// NewService builds the gift card service.
func NewService(carts cartAdder, drafts draftStore) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart adder required")
	}
	if drafts == nil {
		return nil, fmt.Errorf("draft store required")
	}
	return &service{
		carts:  carts,
		drafts: drafts,
		cards: []Card{
			{ID: "eid-special", Name: "Eid Special Gift Card", Description: "Celebrate Eid with style! Perfect for loved ones.", Price: decimal.NewFromInt(30)},
			{ID: "birthday", Name: "Birthday Gift Card", Description: "Make birthdays unforgettable.", Price: decimal.NewFromInt(50)},
			{ID: "shopping-spree", Name: "Shopping Spree Card", Description: "The gift of a full shopping spree.", Price: decimal.NewFromInt(100)},
		},
	}, nil
}

// Catalog returns the fixed card designs.
func (s *service) Catalog() []Card {
	out := make([]Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// QuotePrice prices a selection. The promo code discounts the quoted
// total only; the amount added to the cart stays undiscounted.
func (s *service) QuotePrice(input PurchaseInput, promo string) (*Quote, error) {
	unitPrice, _, err := s.resolvePrice(input)
	if err != nil {
		return nil, err
	}
	quantity := normalizeQuantity(input.Quantity)

	discount := decimal.Zero
	if trimmed := strings.TrimSpace(promo); trimmed != "" {
		if !strings.EqualFold(trimmed, promoCode) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid promo code")
		}
		discount, _ = decimal.NewFromString(promoDiscount)
	}

	total := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).
		Mul(decimal.NewFromInt(1).Sub(discount))

	return &Quote{
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Discount:  discount,
		Total:     total,
	}, nil
}

// AddToCart validates the purchase and appends a gift card line.
func (s *service) AddToCart(ctx context.Context, token string, input PurchaseInput) (*cart.View, error) {
	unitPrice, card, err := s.resolvePrice(input)
	if err != nil {
		return nil, err
	}
	if err := validateDelivery(input); err != nil {
		return nil, err
	}

	name := "Custom Gift Card"
	lineID := "giftcard-custom"
	if card != nil {
		name = card.Name
		lineID = "giftcard-" + card.ID
	}

	view, err := s.carts.AddLine(ctx, token, cart.LineItem{
		ProductID: lineID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  normalizeQuantity(input.Quantity),
	})
	if err != nil {
		return nil, err
	}

	// The form draft is spent once the card lands in the cart.
	if err := s.drafts.Del(ctx, s.drafts.GiftCardDraftKey(token)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "discard gift card draft")
	}
	return view, nil
}

// SaveDraft persists the in-progress form for the token.
func (s *service) SaveDraft(ctx context.Context, token string, draft Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode gift card draft")
	}
	if err := s.drafts.Set(ctx, s.drafts.GiftCardDraftKey(token), string(payload), 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist gift card draft")
	}
	return nil
}

// GetDraft returns the saved form, or not-found when none exists.
func (s *service) GetDraft(ctx context.Context, token string) (*Draft, error) {
	raw, err := s.drafts.Get(ctx, s.drafts.GiftCardDraftKey(token))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no gift card draft")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load gift card draft")
	}

	var draft Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no gift card draft")
	}
	return &draft, nil
}

func (s *service) resolvePrice(input PurchaseInput) (decimal.Decimal, *Card, error) {
	if input.CustomAmount != nil {
		amount := *input.CustomAmount
		if amount.LessThan(customAmountMin) || amount.GreaterThan(customAmountMax) {
			return decimal.Zero, nil, pkgerrors.New(pkgerrors.CodeValidation, "custom amount must be between $1,000 and $50,000")
		}
		return amount, nil, nil
	}

	cardID := strings.TrimSpace(input.CardID)
	if cardID == "" {
		return decimal.Zero, nil, pkgerrors.New(pkgerrors.CodeValidation, "select a card or enter a custom amount")
	}
	for i := range s.cards {
		if s.cards[i].ID == cardID {
			return s.cards[i].Price, &s.cards[i], nil
		}
	}
	return decimal.Zero, nil, pkgerrors.New(pkgerrors.CodeNotFound, "gift card not found")
}

func validateDelivery(input PurchaseInput) error {
	switch input.DeliveryType {
	case "", DeliveryDigital:
		email := strings.TrimSpace(input.Recipient.Email)
		if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
			return pkgerrors.New(pkgerrors.CodeValidation, "valid recipient email is required for digital delivery")
		}
	case DeliveryPhysical:
		if strings.TrimSpace(input.DeliveryAddress) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required for physical delivery")
		}
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery type must be digital or physical")
	}
	return nil
}

func normalizeQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	return quantity
}
