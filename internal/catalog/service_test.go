package catalog

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/solevibe/solevibe-backend/pkg/db/models"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
)

type stubRepo struct {
	products map[string]*models.Product
	listErr  error
}

func (s *stubRepo) FindByID(ctx context.Context, id string) (*models.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func (s *stubRepo) List(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.Product
	for _, product := range s.products {
		out = append(out, *product)
	}
	return out, nil
}

func (s *stubRepo) ListCategories(ctx context.Context) ([]string, error) {
	return []string{"Men", "Women"}, nil
}

func TestGetProductMapsNotFound(t *testing.T) {
	svc, err := NewService(&stubRepo{products: map[string]*models.Product{}})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.GetProduct(context.Background(), "42")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = svc.GetProduct(context.Background(), "  ")
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank id, got %v", err)
	}
}

func TestListProductsWrapsRepoFailure(t *testing.T) {
	svc, err := NewService(&stubRepo{listErr: errors.New("disk gone")})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.ListProducts(context.Background(), ListFilters{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
}
