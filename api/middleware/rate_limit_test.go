package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/solevibe/solevibe-backend/pkg/config"
)

type fakeLimiterStore struct {
	counts map[string]int64
}

func (f *fakeLimiterStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	f.counts[key]++
	return f.counts[key], nil
}

func TestCheckoutRateLimitBlocksAboveCeiling(t *testing.T) {
	store := &fakeLimiterStore{counts: map[string]int64{}}
	policy := NewCheckoutRateLimitPolicy(config.CheckoutConfig{
		RateLimitWindow: time.Minute,
		RateLimitMax:    2,
	})

	calls := 0
	handler := CheckoutRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("first two requests should pass: %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("third request should be limited, got %d", codes[2])
	}
	if calls != 2 {
		t.Fatalf("expected 2 handler calls, got %d", calls)
	}
}

func TestCheckoutRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	store := &fakeLimiterStore{counts: map[string]int64{}}
	policy := NewCheckoutRateLimitPolicy(config.CheckoutConfig{})

	calls := 0
	handler := CheckoutRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	for i := 0; i < 5; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil))
	}
	if calls != 5 {
		t.Fatalf("disabled policy must not limit, got %d calls", calls)
	}
}
