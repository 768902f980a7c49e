package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/solevibe/solevibe-backend/internal/cart"
	"github.com/solevibe/solevibe-backend/pkg/config"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	"github.com/solevibe/solevibe-backend/pkg/metrics"
	pkgredis "github.com/solevibe/solevibe-backend/pkg/redis"
	"github.com/solevibe/solevibe-backend/pkg/square"
)

type cartAccessor interface {
	Get(ctx context.Context, token string) (*cart.View, error)
	Clear(ctx context.Context, token string) error
}

type pendingStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CheckoutKey(token string) string
}

// PaymentLinker mints hosted payment links for pending orders.
type PaymentLinker interface {
	CreatePaymentLink(ctx context.Context, params square.PaymentLinkCreateParams) (*square.PaymentLink, error)
}

// Session is the pending order copied out of the cart when checkout
// begins. The cart stays mutable; the session keeps the lines and totals
// the payment was created against.
type Session struct {
	OrderRef      string          `json:"order_ref"`
	Items         []cart.LineItem `json:"items"`
	Totals        cart.Totals     `json:"totals"`
	PaymentLinkID string          `json:"payment_link_id,omitempty"`
	PaymentURL    string          `json:"payment_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CompletedOrder is what the confirmation page renders after payment.
type CompletedOrder struct {
	OrderRef    string          `json:"order_ref"`
	Items       []cart.LineItem `json:"items"`
	Totals      cart.Totals     `json:"totals"`
	CompletedAt time.Time       `json:"completed_at"`
}

// Service drives the checkout lifecycle: Begin copies the cart into a
// pending session and mints a hosted payment link, Complete finalizes it
// and empties the cart, Cancel abandons it and leaves the cart intact.
type Service interface {
	Begin(ctx context.Context, token string) (*Session, error)
	Complete(ctx context.Context, token string) (*CompletedOrder, error)
	Cancel(ctx context.Context, token string) error
	Pending(ctx context.Context, token string) (*Session, error)
}

type service struct {
	carts      cartAccessor
	store      pendingStore
	payments   PaymentLinker
	pendingTTL time.Duration
	now        func() time.Time
	metrics    *metrics.CartMetrics
}

// NewService builds a checkout service. The payment linker may be nil;
// Begin then produces sessions without a hosted payment URL, which keeps
// local development possible without Square credentials.
func NewService(carts cartAccessor, store pendingStore, payments PaymentLinker, cfg config.CheckoutConfig, m *metrics.CartMetrics) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart accessor required")
	}
	if store == nil {
		return nil, fmt.Errorf("pending store required")
	}
	return &service{
		carts:      carts,
		store:      store,
		payments:   payments,
		pendingTTL: cfg.PendingTTL,
		now:        time.Now,
		metrics:    m,
	}, nil
}

// Begin snapshots the current cart into a pending session. An existing
// pending session is replaced; the newest begin wins.
func (s *service) Begin(ctx context.Context, token string) (*Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storefront token is required")
	}

	view, err := s.carts.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	session := &Session{
		OrderRef:  fmt.Sprintf("sv-%s", uuid.NewString()),
		Items:     view.Items,
		Totals:    view.Totals,
		CreatedAt: s.now().UTC(),
	}

	if s.payments != nil {
		link, err := s.payments.CreatePaymentLink(ctx, square.PaymentLinkCreateParams{
			Name:           "SOLEVIBE order",
			AmountCents:    toCents(view.Totals.Total),
			Currency:       "USD",
			ReferenceID:    session.OrderRef,
			Note:           fmt.Sprintf("order %s", session.OrderRef),
			IdempotencyKey: session.OrderRef,
		})
		if err != nil {
			return nil, err
		}
		session.PaymentLinkID = link.ID
		session.PaymentURL = link.URL
	}

	if err := s.save(ctx, token, session); err != nil {
		return nil, err
	}

	s.metrics.IncCheckout("begin")
	return session, nil
}

// Complete finalizes the pending session: the cart snapshot is removed
// entirely and the session is consumed.
func (s *service) Complete(ctx context.Context, token string) (*CompletedOrder, error) {
	session, err := s.Pending(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, token); err != nil {
		return nil, err
	}
	if err := s.store.Del(ctx, s.store.CheckoutKey(token)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "discard pending checkout")
	}

	s.metrics.IncCheckout("complete")
	return &CompletedOrder{
		OrderRef:    session.OrderRef,
		Items:       session.Items,
		Totals:      session.Totals,
		CompletedAt: s.now().UTC(),
	}, nil
}

// Cancel abandons the pending session. The cart is left untouched so the
// shopper can keep editing it.
func (s *service) Cancel(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "storefront token is required")
	}
	if err := s.store.Del(ctx, s.store.CheckoutKey(token)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "discard pending checkout")
	}
	s.metrics.IncCheckout("cancel")
	return nil
}

// Pending returns the current pending session, or not-found.
func (s *service) Pending(ctx context.Context, token string) (*Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storefront token is required")
	}

	raw, err := s.store.Get(ctx, s.store.CheckoutKey(token))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no pending checkout")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pending checkout")
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode pending checkout")
	}
	return &session, nil
}

func (s *service) save(ctx context.Context, token string, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode pending checkout")
	}
	if err := s.store.Set(ctx, s.store.CheckoutKey(token), string(payload), s.pendingTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist pending checkout")
	}
	return nil
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
