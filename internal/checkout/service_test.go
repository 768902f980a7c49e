package checkout

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solevibe/solevibe-backend/internal/cart"
	"github.com/solevibe/solevibe-backend/pkg/config"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	pkgredis "github.com/solevibe/solevibe-backend/pkg/redis"
	"github.com/solevibe/solevibe-backend/pkg/square"
)

func d(value string) decimal.Decimal {
	out, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return out
}

type fakeCarts struct {
	view    *cart.View
	cleared bool
}

func (f *fakeCarts) Get(ctx context.Context, token string) (*cart.View, error) {
	return f.view, nil
}

func (f *fakeCarts) Clear(ctx context.Context, token string) error {
	f.cleared = true
	f.view = &cart.View{Items: []cart.LineItem{}}
	return nil
}

type fakePendingStore struct {
	data map[string]string
}

func newFakePendingStore() *fakePendingStore {
	return &fakePendingStore{data: map[string]string{}}
}

func (f *fakePendingStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.data[key]
	if !ok {
		return "", pkgredis.Nil
	}
	return value, nil
}

func (f *fakePendingStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = fmt.Sprint(value)
	return nil
}

func (f *fakePendingStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakePendingStore) CheckoutKey(token string) string {
	return "sv:checkout:" + token
}

type fakeLinker struct {
	lastParams square.PaymentLinkCreateParams
	err        error
}

func (f *fakeLinker) CreatePaymentLink(ctx context.Context, params square.PaymentLinkCreateParams) (*square.PaymentLink, error) {
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return &square.PaymentLink{ID: "pl-1", OrderID: "ord-1", URL: "https://square.link/pl-1"}, nil
}

func cartWith(items ...cart.LineItem) *cart.View {
	return &cart.View{
		Items:  items,
		Totals: cart.ComputeTotals(items, d("100"), d("10")),
	}
}

func newTestService(t *testing.T, carts *fakeCarts, linker PaymentLinker) (Service, *fakePendingStore) {
	t.Helper()
	store := newFakePendingStore()
	svc, err := NewService(carts, store, linker, config.CheckoutConfig{PendingTTL: time.Hour}, nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, store
}

func TestBeginCopiesCartAndMintsPaymentLink(t *testing.T) {
	ctx := context.Background()
	carts := &fakeCarts{view: cartWith(
		cart.LineItem{ProductID: "1", Name: "Yeezy Boost 350", UnitPrice: d("220"), Quantity: 1},
	)}
	linker := &fakeLinker{}
	svc, store := newTestService(t, carts, linker)

	session, err := svc.Begin(ctx, "tok")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if session.OrderRef == "" {
		t.Fatal("expected order ref")
	}
	if session.PaymentURL != "https://square.link/pl-1" {
		t.Fatalf("unexpected payment url %q", session.PaymentURL)
	}
	// 220 subtotal clears the threshold, so no shipping: 22000 cents.
	if linker.lastParams.AmountCents != 22000 {
		t.Fatalf("expected 22000 cents, got %d", linker.lastParams.AmountCents)
	}
	if linker.lastParams.ReferenceID != session.OrderRef {
		t.Fatal("payment link must reference the order")
	}
	if _, ok := store.data[store.CheckoutKey("tok")]; !ok {
		t.Fatal("expected pending session persisted")
	}

	pending, err := svc.Pending(ctx, "tok")
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if pending.OrderRef != session.OrderRef || len(pending.Items) != 1 {
		t.Fatalf("pending session mismatch: %+v", pending)
	}
}

func TestBeginIncludesShippingInCharge(t *testing.T) {
	carts := &fakeCarts{view: cartWith(
		cart.LineItem{ProductID: "4", Name: "Puma RS-X", UnitPrice: d("40"), Quantity: 1},
	)}
	linker := &fakeLinker{}
	svc, _ := newTestService(t, carts, linker)

	session, err := svc.Begin(context.Background(), "tok")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if !session.Totals.Total.Equal(d("50")) {
		t.Fatalf("expected total 50, got %s", session.Totals.Total)
	}
	if linker.lastParams.AmountCents != 5000 {
		t.Fatalf("charge must include shipping, got %d cents", linker.lastParams.AmountCents)
	}
}

func TestBeginRejectsEmptyCart(t *testing.T) {
	carts := &fakeCarts{view: cartWith()}
	svc, _ := newTestService(t, carts, &fakeLinker{})

	_, err := svc.Begin(context.Background(), "tok")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBeginWithoutPaymentLinker(t *testing.T) {
	carts := &fakeCarts{view: cartWith(
		cart.LineItem{ProductID: "6", Name: "Converse Chuck Taylor", UnitPrice: d("70"), Quantity: 1},
	)}
	svc, _ := newTestService(t, carts, nil)

	session, err := svc.Begin(context.Background(), "tok")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if session.PaymentURL != "" {
		t.Fatal("expected no payment url without a linker")
	}
}

func TestBeginPaymentFailureLeavesNoSession(t *testing.T) {
	carts := &fakeCarts{view: cartWith(
		cart.LineItem{ProductID: "2", Name: "Nike Air Force 1", UnitPrice: d("110"), Quantity: 1},
	)}
	linker := &fakeLinker{err: pkgerrors.New(pkgerrors.CodeDependency, "square create payment link failed")}
	svc, store := newTestService(t, carts, linker)

	if _, err := svc.Begin(context.Background(), "tok"); err == nil {
		t.Fatal("expected payment failure to surface")
	}
	if len(store.data) != 0 {
		t.Fatal("failed begin must not persist a session")
	}
}

func TestBeginReplacesExistingSession(t *testing.T) {
	ctx := context.Background()
	carts := &fakeCarts{view: cartWith(
		cart.LineItem{ProductID: "2", Name: "Nike Air Force 1", UnitPrice: d("110"), Quantity: 1},
	)}
	svc, _ := newTestService(t, carts, &fakeLinker{})

	first, err := svc.Begin(ctx, "tok")
	if err != nil {
		t.Fatalf("first begin: %v", err)
	}
	second, err := svc.Begin(ctx, "tok")
	if err != nil {
		t.Fatalf("second begin: %v", err)
	}
	if first.OrderRef == second.OrderRef {
		t.Fatal("expected a fresh order ref per begin")
	}
	pending, err := svc.Pending(ctx, "tok")
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if pending.OrderRef != second.OrderRef {
		t.Fatal("latest begin must win")
	}
}

func TestCompleteClearsCartAndConsumesSession(t *testing.T) {
	ctx := context.Background()
	carts := &fakeCarts{view: cartWith(
		cart.LineItem{ProductID: "5", Name: "Reebok Nano X", UnitPrice: d("130"), Quantity: 1},
	)}
	svc, store := newTestService(t, carts, &fakeLinker{})

	session, err := svc.Begin(ctx, "tok")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	order, err := svc.Complete(ctx, "tok")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if order.OrderRef != session.OrderRef {
		t.Fatal("completed order must carry the session ref")
	}
	if !carts.cleared {
		t.Fatal("complete must clear the cart")
	}
	if len(store.data) != 0 {
		t.Fatal("complete must consume the pending session")
	}

	if _, err := svc.Complete(ctx, "tok"); err == nil {
		t.Fatal("second complete must fail")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCancelKeepsCart(t *testing.T) {
	ctx := context.Background()
	carts := &fakeCarts{view: cartWith(
		cart.LineItem{ProductID: "5", Name: "Reebok Nano X", UnitPrice: d("130"), Quantity: 1},
	)}
	svc, store := newTestService(t, carts, &fakeLinker{})

	if _, err := svc.Begin(ctx, "tok"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := svc.Cancel(ctx, "tok"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if carts.cleared {
		t.Fatal("cancel must not clear the cart")
	}
	if len(store.data) != 0 {
		t.Fatal("cancel must discard the pending session")
	}
}

func TestCompleteWithoutSession(t *testing.T) {
	carts := &fakeCarts{view: cartWith()}
	svc, _ := newTestService(t, carts, &fakeLinker{})

	_, err := svc.Complete(context.Background(), "tok")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestToCentsRounds(t *testing.T) {
	if got := toCents(d("59.98")); got != 5998 {
		t.Fatalf("expected 5998, got %d", got)
	}
	if got := toCents(d("10.005")); got != 1001 {
		t.Fatalf("expected 1001, got %d", got)
	}
}

func TestNewServiceGuards(t *testing.T) {
	store := newFakePendingStore()
	if _, err := NewService(nil, store, nil, config.CheckoutConfig{}, nil); err == nil {
		t.Fatal("expected error for nil carts")
	}
	if _, err := NewService(&fakeCarts{}, nil, nil, config.CheckoutConfig{}, nil); err == nil {
		t.Fatal("expected error for nil store")
	}
}
