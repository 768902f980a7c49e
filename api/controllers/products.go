package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/solevibe/solevibe-backend/api/responses"
	"github.com/solevibe/solevibe-backend/internal/catalog"
	"github.com/solevibe/solevibe-backend/pkg/db/models"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	"github.com/solevibe/solevibe-backend/pkg/logger"
)

type productView struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   *string          `json:"description,omitempty"`
	ImageURL      string           `json:"image_url"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Category      string           `json:"category"`
	Sizes         []string         `json:"sizes,omitempty"`
	Colors        []string         `json:"colors,omitempty"`
	IsFeatured    bool             `json:"is_featured"`
}

func newProductView(product models.Product) productView {
	return productView{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		ImageURL:      product.ImageURL,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		Category:      product.Category,
		Sizes:         product.Sizes,
		Colors:        product.Colors,
		IsFeatured:    product.IsFeatured,
	}
}

func newProductViews(products []models.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, product := range products {
		views = append(views, newProductView(product))
	}
	return views
}

// ProductList serves the browsable catalog with optional filters.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := r.URL.Query()
		filters := catalog.ListFilters{
			Category:     query.Get("category"),
			Query:        query.Get("q"),
			FeaturedOnly: strings.EqualFold(query.Get("featured"), "true"),
		}

		products, err := svc.ListProducts(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductViews(products))
	}
}

// ProductDetail serves one product by id.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product, err := svc.GetProduct(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductView(*product))
	}
}

// ProductCategories lists the distinct categories in the catalog.
func ProductCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}
