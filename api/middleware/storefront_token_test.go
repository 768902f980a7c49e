package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStorefrontTokenMintsWhenAbsent(t *testing.T) {
	var seen string
	handler := StorefrontToken(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = StorefrontTokenFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("expected a minted token in context")
	}
	if got := rec.Header().Get("X-Storefront-Token"); got != seen {
		t.Fatalf("response header %q does not match context token %q", got, seen)
	}
}

func TestStorefrontTokenEchoesExisting(t *testing.T) {
	var seen string
	handler := StorefrontToken(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = StorefrontTokenFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Storefront-Token", "existing-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "existing-token" {
		t.Fatalf("expected existing token, got %q", seen)
	}
	if got := rec.Header().Get("X-Storefront-Token"); got != "existing-token" {
		t.Fatalf("expected header echoed, got %q", got)
	}
}
