package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/solevibe/solevibe-backend/pkg/db/models"
	"github.com/solevibe/solevibe-backend/pkg/logger"
)

//go:embed seed/products.json
var seedProducts []byte

type seedProduct struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   *string          `json:"description,omitempty"`
	ImageURL      string           `json:"image_url"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Category      string           `json:"category"`
	Sizes         []string         `json:"sizes,omitempty"`
	Colors        []string         `json:"colors,omitempty"`
	IsFeatured    bool             `json:"is_featured,omitempty"`
}

type seedRepo interface {
	Count(ctx context.Context) (int64, error)
	UpsertAll(ctx context.Context, products []models.Product) error
}

// Seed loads the embedded catalog into an empty database. A catalog that
// already has rows is left untouched.
func Seed(ctx context.Context, repo seedRepo, logg *logger.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting catalog rows: %w", err)
	}
	if count > 0 {
		return nil
	}

	products, err := ParseSeed()
	if err != nil {
		return err
	}
	if err := repo.UpsertAll(ctx, products); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "products", len(products)), "catalog seeded")
	}
	return nil
}

// ParseSeed decodes the embedded product fixture.
func ParseSeed() ([]models.Product, error) {
	var rows []seedProduct
	if err := json.Unmarshal(seedProducts, &rows); err != nil {
		return nil, fmt.Errorf("decoding catalog seed: %w", err)
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, models.Product{
			ID:            row.ID,
			Name:          row.Name,
			Description:   row.Description,
			ImageURL:      row.ImageURL,
			Price:         row.Price,
			OriginalPrice: row.OriginalPrice,
			Category:      row.Category,
			Sizes:         row.Sizes,
			Colors:        row.Colors,
			IsFeatured:    row.IsFeatured,
		})
	}
	return products, nil
}
