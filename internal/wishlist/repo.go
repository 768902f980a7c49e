package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	pkgredis "github.com/solevibe/solevibe-backend/pkg/redis"
)

// ListStore is the key-value surface the wishlist persists through.
type ListStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	WishlistKey(token string) string
}

// Repository keeps each token's liked product IDs as a JSON array in
// insertion order. Unlike the cart, the wishlist is a set: duplicates
// are dropped on write.
type Repository struct {
	store ListStore
}

// NewRepository constructs a wishlist repository over the provided store.
func NewRepository(store ListStore) (*Repository, error) {
	if store == nil {
		return nil, fmt.Errorf("wishlist store required")
	}
	return &Repository{store: store}, nil
}

// ListIDs returns the liked product IDs. Missing or malformed data reads
// as an empty wishlist.
func (r *Repository) ListIDs(ctx context.Context, token string) ([]string, error) {
	raw, err := r.store.Get(ctx, r.store.WishlistKey(token))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return []string{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
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

// Add appends the product ID if it is not already present.
func (r *Repository) Add(ctx context.Context, token, productID string) error {
	ids, err := r.ListIDs(ctx, token)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == productID {
			return nil
		}
	}
	return r.save(ctx, token, append(ids, productID))
}

// Remove drops the product ID regardless of prior state.
func (r *Repository) Remove(ctx context.Context, token, productID string) error {
	ids, err := r.ListIDs(ctx, token)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, id := range ids {
		if id != productID {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		if err := r.store.Del(ctx, r.store.WishlistKey(token)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear wishlist")
		}
		return nil
	}
	return r.save(ctx, token, kept)
}

func (r *Repository) save(ctx context.Context, token string, ids []string) error {
	payload, err := json.Marshal(ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode wishlist")
	}
	if err := r.store.Set(ctx, r.store.WishlistKey(token), string(payload), 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist wishlist")
	}
	return nil
}
