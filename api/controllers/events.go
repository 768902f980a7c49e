package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solevibe/solevibe-backend/api/middleware"
	"github.com/solevibe/solevibe-backend/api/responses"
	eventsvc "github.com/solevibe/solevibe-backend/internal/events"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	"github.com/solevibe/solevibe-backend/pkg/logger"
)

// EventList serves the promotional event catalog with filters and sorting.
func EventList(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "events service unavailable"))
			return
		}

		query := r.URL.Query()
		events := svc.List(r.Context(), eventsvc.ListFilters{
			Query:    query.Get("q"),
			Type:     query.Get("type"),
			Status:   query.Get("status"),
			Category: query.Get("category"),
			SortBy:   query.Get("sort_by"),
		})

		responses.WriteSuccess(w, events)
	}
}

// EventDetail serves one event by id.
func EventDetail(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "events service unavailable"))
			return
		}

		event, err := svc.Get(r.Context(), chi.URLParam(r, "eventId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, event)
	}
}

// EventCountdown reports the time remaining until the event starts.
func EventCountdown(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "events service unavailable"))
			return
		}

		countdown, err := svc.CountdownFor(r.Context(), chi.URLParam(r, "eventId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, countdown)
	}
}

// EventSavedList returns the event IDs the token has saved.
func EventSavedList(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "events service unavailable"))
			return
		}

		ids, err := svc.SavedIDs(r.Context(), middleware.StorefrontTokenFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ids)
	}
}

// EventSave marks the event as saved for the token. Saving an already
// saved event is a no-op.
func EventSave(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return setSavedState(svc, logg, true)
}

// EventUnsave removes the saved event. Removing an unsaved event is a
// no-op.
func EventUnsave(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return setSavedState(svc, logg, false)
}

func setSavedState(svc eventsvc.Service, logg *logger.Logger, want bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "events service unavailable"))
			return
		}

		token := middleware.StorefrontTokenFromContext(r.Context())
		eventID := chi.URLParam(r, "eventId")

		ids, err := svc.SavedIDs(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved := false
		for _, id := range ids {
			if id == eventID {
				saved = true
				break
			}
		}

		if saved != want {
			if _, err := svc.ToggleSaved(r.Context(), token, eventID); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		} else if _, err := svc.Get(r.Context(), eventID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"saved": want})
	}
}
