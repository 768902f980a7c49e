package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	pkgredis "github.com/solevibe/solevibe-backend/pkg/redis"
)

// SnapshotStore is the key-value surface the cart persists through.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(token string) string
}

// Repository reads and writes cart snapshots as JSON arrays keyed by
// storefront token.
type Repository struct {
	store SnapshotStore
	ttl   time.Duration
}

// NewRepository constructs a snapshot repository bound to the provided store.
func NewRepository(store SnapshotStore, ttl time.Duration) (*Repository, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	return &Repository{store: store, ttl: ttl}, nil
}

// Load returns the persisted lines for the token. A missing key yields an
// empty list. A snapshot that is not a valid JSON array of lines is
// discarded and reported through the second return value; it is never an
// error to the caller.
func (r *Repository) Load(ctx context.Context, token string) ([]LineItem, bool, error) {
	raw, err := r.store.Get(ctx, r.store.CartKey(token))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return []LineItem{}, false, nil
		}
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart snapshot")
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []LineItem{}, true, nil
	}
	if items == nil {
		items = []LineItem{}
	}
	for i := range items {
		items[i] = items[i].normalize()
	}
	return items, false, nil
}

// Save replaces the persisted snapshot for the token.
func (r *Repository) Save(ctx context.Context, token string, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	if err := r.store.Set(ctx, r.store.CartKey(token), string(payload), r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart snapshot")
	}
	return nil
}

// Clear removes the snapshot key entirely so the next Load starts fresh.
func (r *Repository) Clear(ctx context.Context, token string) error {
	if err := r.store.Del(ctx, r.store.CartKey(token)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart snapshot")
	}
	return nil
}
