package wishlist

import (
	"context"
	"strings"

	"github.com/solevibe/solevibe-backend/pkg/db/models"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
)

type listRepo interface {
	ListIDs(ctx context.Context, token string) ([]string, error)
	Add(ctx context.Context, token, productID string) error
	Remove(ctx context.Context, token, productID string) error
}

type productLoader interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Repo     listRepo
	Products productLoader
}

// Service exposes business rules for wishlist management.
type Service interface {
	List(ctx context.Context, token string) ([]models.Product, error)
	ListIDs(ctx context.Context, token string) ([]string, error)
	AddItem(ctx context.Context, token, productID string) error
	RemoveItem(ctx context.Context, token, productID string) error
}

type service struct {
	repo     listRepo
	products productLoader
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product loader is required")
	}
	return &service{repo: params.Repo, products: params.Products}, nil
}

// List hydrates the liked product IDs against the catalog. Products that
// have left the catalog are skipped rather than failing the whole list.
func (s *service) List(ctx context.Context, token string) ([]models.Product, error) {
	ids, err := s.ListIDs(ctx, token)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.products.GetProduct(ctx, id)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				continue
			}
			return nil, err
		}
		products = append(products, *product)
	}
	return products, nil
}

// ListIDs returns the liked product IDs for the token.
func (s *service) ListIDs(ctx context.Context, token string) ([]string, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	return s.repo.ListIDs(ctx, token)
}

// AddItem ensures the product exists and adds it to the wishlist.
func (s *service) AddItem(ctx context.Context, token, productID string) error {
	if err := requireToken(token); err != nil {
		return err
	}
	if strings.TrimSpace(productID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return err
	}
	return s.repo.Add(ctx, token, productID)
}

// RemoveItem drops the wishlist entry regardless of prior state.
func (s *service) RemoveItem(ctx context.Context, token, productID string) error {
	if err := requireToken(token); err != nil {
		return err
	}
	return s.repo.Remove(ctx, token, productID)
}

func requireToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "storefront token is required")
	}
	return nil
}
