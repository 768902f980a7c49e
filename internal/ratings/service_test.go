package ratings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solevibe/solevibe-backend/pkg/db/models"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	pkgredis "github.com/solevibe/solevibe-backend/pkg/redis"
)

type fakeStore struct {
	data map[string]string
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.data[key]
	if !ok {
		return "", pkgredis.Nil
	}
	return value, nil
}

func (f *fakeStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeStore) RatingKey(token, productID string) string {
	return "sv:rating:" + token + ":" + productID
}

type fakeProducts struct{}

func (fakeProducts) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if id != "4" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &models.Product{ID: "4", Name: "Puma RS-X", Price: decimal.NewFromInt(90)}, nil
}

func newTestService(t *testing.T) (Service, *fakeStore) {
	t.Helper()
	store := &fakeStore{data: map[string]string{}}
	svc, err := NewService(store, fakeProducts{})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, store
}

func TestRateAndRead(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.Rate(ctx, "tok", "4", 4); err != nil {
		t.Fatalf("rate: %v", err)
	}
	stars, err := svc.Rating(ctx, "tok", "4")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if stars != 4 {
		t.Fatalf("expected 4 stars, got %d", stars)
	}

	// Re-rating replaces the previous value.
	if err := svc.Rate(ctx, "tok", "4", 2); err != nil {
		t.Fatalf("re-rate: %v", err)
	}
	stars, err = svc.Rating(ctx, "tok", "4")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if stars != 2 {
		t.Fatalf("expected 2 stars, got %d", stars)
	}
}

func TestRateValidatesBounds(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, stars := range []int{0, 6, -1} {
		err := svc.Rate(ctx, "tok", "4", stars)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %d stars, got %v", stars, err)
		}
	}
}

func TestRateUnknownProduct(t *testing.T) {
	err := func() error {
		svc, _ := newTestService(t)
		return svc.Rate(context.Background(), "tok", "nope", 3)
	}()
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUnratedReadsAsZero(t *testing.T) {
	svc, store := newTestService(t)

	stars, err := svc.Rating(context.Background(), "tok", "4")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if stars != 0 {
		t.Fatalf("expected 0 for unrated, got %d", stars)
	}

	// Garbage in the store reads as unrated.
	store.data[store.RatingKey("tok", "4")] = "many"
	stars, err = svc.Rating(context.Background(), "tok", "4")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if stars != 0 {
		t.Fatalf("expected 0 for malformed value, got %d", stars)
	}
}
