package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/solevibe/solevibe-backend/api/middleware"
	eventsvc "github.com/solevibe/solevibe-backend/internal/events"
	pkgredis "github.com/solevibe/solevibe-backend/pkg/redis"
)

type fakeSavedStore struct {
	data map[string]string
}

func (f *fakeSavedStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.data[key]
	if !ok {
		return "", pkgredis.Nil
	}
	return value, nil
}

func (f *fakeSavedStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeSavedStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeSavedStore) SavedEventsKey(token string) string {
	return "sv:saved_events:" + token
}

func newEventsRouter(t *testing.T) http.Handler {
	t.Helper()
	repo, err := eventsvc.NewRepository(&fakeSavedStore{data: map[string]string{}})
	if err != nil {
		t.Fatalf("build repo: %v", err)
	}
	svc, err := eventsvc.NewService(repo)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.StorefrontToken(nil))
	r.Route("/api/v1/events", func(r chi.Router) {
		r.Get("/", EventList(svc, nil))
		r.Get("/saved", EventSavedList(svc, nil))
		r.Post("/saved/{eventId}", EventSave(svc, nil))
		r.Delete("/saved/{eventId}", EventUnsave(svc, nil))
		r.Get("/{eventId}", EventDetail(svc, nil))
		r.Get("/{eventId}/countdown", EventCountdown(svc, nil))
	})
	return r
}

func savedIDs(t *testing.T, router http.Handler, token string) []string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/saved", nil)
	req.Header.Set("X-Storefront-Token", token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("saved list: %d %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode saved list: %v", err)
	}
	return envelope.Data
}

func TestEventSaveIsIdempotent(t *testing.T) {
	router := newEventsRouter(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/events/saved/designer-collab", nil)
		req.Header.Set("X-Storefront-Token", "tok")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("save attempt %d: %d %s", i, rec.Code, rec.Body.String())
		}
	}

	ids := savedIDs(t, router, "tok")
	if len(ids) != 1 || ids[0] != "designer-collab" {
		t.Fatalf("expected one saved event, got %v", ids)
	}
}

func TestEventUnsaveIsIdempotent(t *testing.T) {
	router := newEventsRouter(t)

	// Unsaving something never saved succeeds and stays empty.
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/events/saved/designer-collab", nil)
	req.Header.Set("X-Storefront-Token", "tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unsave: %d %s", rec.Code, rec.Body.String())
	}

	if ids := savedIDs(t, router, "tok"); len(ids) != 0 {
		t.Fatalf("expected nothing saved, got %v", ids)
	}
}

func TestEventSaveUnknownEvent(t *testing.T) {
	router := newEventsRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/saved/nope", nil)
	req.Header.Set("X-Storefront-Token", "tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown event, got %d", rec.Code)
	}
}

func TestEventListFiltersByType(t *testing.T) {
	router := newEventsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?type=Sale", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list: %d", rec.Code)
	}
	var envelope struct {
		Data []eventsvc.Event `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].ID != "black-friday-sneaker-drop" {
		t.Fatalf("unexpected filtered list: %v", envelope.Data)
	}
}
