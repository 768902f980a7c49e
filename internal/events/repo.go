package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	pkgredis "github.com/solevibe/solevibe-backend/pkg/redis"
)

// SavedStore is the key-value surface saved events persist through.
type SavedStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SavedEventsKey(token string) string
}

// Repository keeps each token's saved event IDs as a JSON array.
type Repository struct {
	store SavedStore
}

// NewRepository constructs a saved-events repository.
func NewRepository(store SavedStore) (*Repository, error) {
	if store == nil {
		return nil, fmt.Errorf("saved events store required")
	}
	return &Repository{store: store}, nil
}

// ListIDs returns the saved event IDs. Missing or malformed data reads
// as nothing saved.
func (r *Repository) ListIDs(ctx context.Context, token string) ([]string, error) {
	raw, err := r.store.Get(ctx, r.store.SavedEventsKey(token))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return []string{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load saved events")
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return []string{}, nil
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Toggle adds the event when absent and removes it when present,
// returning true when the event ends up saved.
func (r *Repository) Toggle(ctx context.Context, token, eventID string) (bool, error) {
	ids, err := r.ListIDs(ctx, token)
	if err != nil {
		return false, err
	}

	kept := ids[:0]
	found := false
	for _, id := range ids {
		if id == eventID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		kept = append(kept, eventID)
	}

	if len(kept) == 0 {
		if err := r.store.Del(ctx, r.store.SavedEventsKey(token)); err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear saved events")
		}
		return false, nil
	}

	payload, err := json.Marshal(kept)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode saved events")
	}
	if err := r.store.Set(ctx, r.store.SavedEventsKey(token), string(payload), 0); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist saved events")
	}
	return !found, nil
}
