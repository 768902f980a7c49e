package ratings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/solevibe/solevibe-backend/pkg/db/models"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	pkgredis "github.com/solevibe/solevibe-backend/pkg/redis"
)

// RatingStore is the key-value surface ratings persist through.
type RatingStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	RatingKey(token, productID string) string
}

type productLoader interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
}

// Service stores one star rating per token and product. Ratings are a
// personal note, not an aggregate review system.
type Service interface {
	Rate(ctx context.Context, token, productID string, stars int) error
	Rating(ctx context.Context, token, productID string) (int, error)
}

type service struct {
	store    RatingStore
	products productLoader
}

// NewService builds the ratings service.
func NewService(store RatingStore, products productLoader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("rating store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{store: store, products: products}, nil
}

// Rate records the star value, replacing any previous rating.
func (s *service) Rate(ctx context.Context, token, productID string, stars int) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "storefront token is required")
	}
	if stars < 1 || stars > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5 stars")
	}
	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return err
	}
	if err := s.store.Set(ctx, s.store.RatingKey(token, productID), strconv.Itoa(stars), 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist rating")
	}
	return nil
}

// Rating returns the stored stars, or zero when the token has not rated
// the product.
func (s *service) Rating(ctx context.Context, token, productID string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "storefront token is required")
	}
	raw, err := s.store.Get(ctx, s.store.RatingKey(token, productID))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return 0, nil
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rating")
	}
	stars, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || stars < 1 || stars > 5 {
		return 0, nil
	}
	return stars, nil
}
