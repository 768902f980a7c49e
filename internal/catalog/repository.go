package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/solevibe/solevibe-backend/pkg/db/models"
)

// ListFilters describe the browse knobs the storefront exposes.
type ListFilters struct {
	Category     string
	Query        string
	FeaturedOnly bool
}

// Repository wires product persistence over the catalog database.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products matching the filters in catalog order.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if category := strings.TrimSpace(filters.Category); category != "" && !strings.EqualFold(category, "all") {
		query = query.Where("category = ?", category)
	}
	if filters.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if text := strings.TrimSpace(filters.Query); text != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(text)+"%")
	}

	var products []models.Product
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories returns the distinct categories present in the catalog.
func (r *Repository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Count returns the number of products in the catalog.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpsertAll inserts the provided products, replacing existing rows by id.
func (r *Repository) UpsertAll(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&products).Error
}
