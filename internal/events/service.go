package events

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
)

const (
	StatusUpcoming = "Upcoming"
	StatusOngoing  = "Ongoing"
	StatusPast     = "Past"

	SortByDate       = "date"
	SortByPopularity = "popularity"
)

// countdownEpoch anchors the progress ring for upcoming events.
var countdownEpoch = time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)

// Event is one promotional storefront event.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	PromoCode   *string   `json:"promo_code,omitempty"`
	Category    string    `json:"category"`
	IsExclusive bool      `json:"is_exclusive"`
	Location    string    `json:"location"`
	Tags        []string  `json:"tags"`
	Popularity  int       `json:"popularity"`
	Attendees   int       `json:"attendees"`
}

// Countdown is the time remaining until an event starts.
type Countdown struct {
	Text     string  `json:"text"`
	Progress float64 `json:"progress"`
	Started  bool    `json:"started"`
}

// ListFilters narrow and order the event list.
type ListFilters struct {
	Query    string
	Type     string
	Status   string
	Category string
	SortBy   string
}

type savedRepo interface {
	ListIDs(ctx context.Context, token string) ([]string, error)
	Toggle(ctx context.Context, token, eventID string) (bool, error)
}

// Service serves the fixed promotional event catalog plus per-token saves.
type Service interface {
	List(ctx context.Context, filters ListFilters) []Event
	Get(ctx context.Context, eventID string) (*Event, error)
	CountdownFor(ctx context.Context, eventID string) (*Countdown, error)
	SavedIDs(ctx context.Context, token string) ([]string, error)
	ToggleSaved(ctx context.Context, token, eventID string) (bool, error)
}

type service struct {
	saved  savedRepo
	events []Event
	now    func() time.Time
}

// NewService builds the events service over the fixed catalog.
func NewService(saved savedRepo) (Service, error) {
	if saved == nil {
		return nil, fmt.Errorf("saved events repo required")
	}
	return &service{
		saved:  saved,
		events: fixedEvents(),
		now:    time.Now,
	}, nil
}

// List filters and sorts the catalog. Default order is date, newest first.
func (s *service) List(ctx context.Context, filters ListFilters) []Event {
	result := make([]Event, 0, len(s.events))
	for _, event := range s.events {
		if !matches(event, filters) {
			continue
		}
		result = append(result, event)
	}

	if filters.SortBy == SortByPopularity {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Popularity > result[j].Popularity
		})
	} else {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Date.After(result[j].Date)
		})
	}
	return result
}

// Get returns one event by ID.
func (s *service) Get(ctx context.Context, eventID string) (*Event, error) {
	for i := range s.events {
		if s.events[i].ID == eventID {
			event := s.events[i]
			return &event, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
}

// CountdownFor reports the remaining time until the event date.
func (s *service) CountdownFor(ctx context.Context, eventID string) (*Countdown, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	remaining := event.Date.Sub(now)
	if remaining < 0 {
		return &Countdown{Text: "Event Started!", Progress: 100, Started: true}, nil
	}

	total := event.Date.Sub(countdownEpoch)
	progress := 0.0
	if total > 0 {
		progress = float64(total-remaining) / float64(total) * 100
		if progress > 100 {
			progress = 100
		}
		if progress < 0 {
			progress = 0
		}
	}

	days := int(remaining.Hours()) / 24
	hours := int(remaining.Hours()) % 24
	minutes := int(remaining.Minutes()) % 60
	seconds := int(remaining.Seconds()) % 60
	return &Countdown{
		Text:     fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds),
		Progress: progress,
	}, nil
}

// SavedIDs lists the event IDs the token has saved.
func (s *service) SavedIDs(ctx context.Context, token string) ([]string, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storefront token is required")
	}
	return s.saved.ListIDs(ctx, token)
}

// ToggleSaved flips the saved state for the event and reports the new state.
func (s *service) ToggleSaved(ctx context.Context, token, eventID string) (bool, error) {
	if strings.TrimSpace(token) == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "storefront token is required")
	}
	if _, err := s.Get(ctx, eventID); err != nil {
		return false, err
	}
	return s.saved.Toggle(ctx, token, eventID)
}

func matches(event Event, filters ListFilters) bool {
	if query := strings.TrimSpace(strings.ToLower(filters.Query)); query != "" {
		if !strings.Contains(strings.ToLower(event.Title), query) &&
			!strings.Contains(strings.ToLower(event.Description), query) {
			return false
		}
	}
	if !matchesFacet(event.Type, filters.Type) {
		return false
	}
	if !matchesFacet(event.Status, filters.Status) {
		return false
	}
	if !matchesFacet(event.Category, filters.Category) {
		return false
	}
	return true
}

func matchesFacet(value, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" || strings.EqualFold(filter, "all") {
		return true
	}
	return strings.EqualFold(value, filter)
}

func strPtr(value string) *string {
	return &value
}

func fixedEvents() []Event {
	return []Event{
		{
			ID:          "black-friday-sneaker-drop",
			Title:       "Black Friday Sneaker Drop",
			Type:        "Sale",
			Status:      StatusUpcoming,
			Date:        time.Date(2025, time.November, 28, 0, 0, 0, 0, time.UTC),
			Description: "Exclusive discounts on our hottest sneakers. Don't miss out!",
			ImageURL:    "https://res.cloudinary.com/dood2c2ca/image/upload/v1749587441/reeebok_pmbmpc.webp",
			PromoCode:   strPtr("BLACKVIBE25"),
			Category:    "Men",
			IsExclusive: true,
			Location:    "SOLEVIBE NYC Store",
			Tags:        []string{"Trending", "Limited Stock"},
			Popularity:  95,
			Attendees:   1200,
		},
		{
			ID:          "designer-collab",
			Title:       "SOLEVIBE x Designer Collab",
			Type:        "Collaboration",
			Status:      StatusOngoing,
			Date:        time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
			Description: "Limited-edition sneakers with top designers. Shop now!",
			ImageURL:    "https://res.cloudinary.com/dood2c2ca/image/upload/v1749597137/bro_zinpay.jpg",
			PromoCode:   strPtr("DESIGNVIBE10"),
			Category:    "Women",
			Location:    "Online Only",
			Tags:        []string{"Designer", "Limited Edition"},
			Popularity:  85,
			Attendees:   800,
		},
		{
			ID:          "summer-vibe-launch",
			Title:       "Summer Vibe Launch",
			Type:        "Launch",
			Status:      StatusPast,
			Date:        time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
			Description: "Our summer collection brought the heat. Check out the highlights!",
			ImageURL:    "https://res.cloudinary.com/dood2c2ca/image/upload/v1749597235/note_w1qxbe.jpg",
			Category:    "Kids",
			Location:    "SOLEVIBE LA Store",
			Tags:        []string{"Summer", "Family-Friendly"},
			Popularity:  70,
			Attendees:   500,
		},
	}
}
