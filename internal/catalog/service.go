package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/solevibe/solevibe-backend/pkg/db/models"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
)

type productRepo interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, filters ListFilters) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// Service exposes catalog reads. The catalog is reference data; carts
// snapshot prices at add time and never depend on it afterwards.
type Service interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	ListProducts(ctx context.Context, filters ListFilters) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type service struct {
	repo productRepo
}

// NewService builds a catalog service over the provided repository.
func NewService(repo productRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	products, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}
