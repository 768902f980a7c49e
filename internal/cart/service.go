package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/solevibe/solevibe-backend/pkg/config"
	"github.com/solevibe/solevibe-backend/pkg/db/models"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	"github.com/solevibe/solevibe-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

type snapshotRepo interface {
	Load(ctx context.Context, token string) ([]LineItem, bool, error)
	Save(ctx context.Context, token string, items []LineItem) error
	Clear(ctx context.Context, token string) error
}

type productLoader interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
}

// View is the cart as returned to callers: the ordered lines plus the
// derived totals.
type View struct {
	Items  []LineItem `json:"items"`
	Totals Totals     `json:"totals"`
}

// Service exposes the cart operations. Every mutation reloads the
// snapshot, applies the change, and persists before reporting the result,
// so the stored snapshot is always the authoritative state.
type Service interface {
	Get(ctx context.Context, token string) (*View, error)
	AddItem(ctx context.Context, token string, input AddItemInput) (*View, error)
	AddLine(ctx context.Context, token string, line LineItem) (*View, error)
	RemoveItem(ctx context.Context, token string, index int) (*View, error)
	UpdateQuantity(ctx context.Context, token string, index, delta int) (*View, error)
	Clear(ctx context.Context, token string) error
}

type service struct {
	repo      snapshotRepo
	products  productLoader
	threshold decimal.Decimal
	flatFee   decimal.Decimal
	metrics   *metrics.CartMetrics
}

// NewService builds a cart service backed by the provided stack. Metrics
// may be nil.
func NewService(repo snapshotRepo, products productLoader, cfg config.CartConfig, m *metrics.CartMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{
		repo:      repo,
		products:  products,
		threshold: cfg.ShippingThreshold(),
		flatFee:   cfg.ShippingFee(),
		metrics:   m,
	}, nil
}

// AddItemInput captures the payload to add a catalog product to the cart.
type AddItemInput struct {
	ProductID string
	Quantity  int
	Size      string
	Color     string
}

// Get loads the current snapshot and prices it.
func (s *service) Get(ctx context.Context, token string) (*View, error) {
	items, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.view(items), nil
}

// AddItem resolves the product, snapshots its current price into a new
// line, and appends it. The same product added twice produces two lines.
func (s *service) AddItem(ctx context.Context, token string, input AddItemInput) (*View, error) {
	productID := strings.TrimSpace(input.ProductID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := validateVariant(input, product); err != nil {
		return nil, err
	}

	line := LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		ImageURL:  product.ImageURL,
		UnitPrice: product.Price,
		Quantity:  input.Quantity,
	}
	if input.Size != "" || input.Color != "" {
		line.Variant = &Variant{Size: input.Size, Color: input.Color}
	}

	return s.AddLine(ctx, token, line)
}

// AddLine appends an already-priced line. Gift card purchases use this
// path since they have no catalog product behind them.
func (s *service) AddLine(ctx context.Context, token string, line LineItem) (*View, error) {
	if strings.TrimSpace(line.ProductID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if line.UnitPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}

	items, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	items = append(items, line.normalize())
	if err := s.repo.Save(ctx, token, items); err != nil {
		return nil, err
	}

	s.metrics.IncMutation("add_item")
	s.metrics.ObserveCartSize(len(items))
	return s.view(items), nil
}

// RemoveItem deletes the line at index, preserving the order of the rest.
func (s *service) RemoveItem(ctx context.Context, token string, index int) (*View, error) {
	items, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := checkIndex(index, len(items)); err != nil {
		return nil, err
	}

	items = append(items[:index], items[index+1:]...)
	if err := s.repo.Save(ctx, token, items); err != nil {
		return nil, err
	}

	s.metrics.IncMutation("remove_item")
	s.metrics.ObserveCartSize(len(items))
	return s.view(items), nil
}

// UpdateQuantity applies a signed delta to the line at index. The
// quantity clamps at one; it never removes the line.
func (s *service) UpdateQuantity(ctx context.Context, token string, index, delta int) (*View, error) {
	items, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := checkIndex(index, len(items)); err != nil {
		return nil, err
	}

	next := items[index].Quantity + delta
	if next < 1 {
		next = 1
	}
	items[index].Quantity = next

	if err := s.repo.Save(ctx, token, items); err != nil {
		return nil, err
	}

	s.metrics.IncMutation("update_quantity")
	s.metrics.ObserveCartSize(len(items))
	return s.view(items), nil
}

// Clear drops the persisted snapshot entirely.
func (s *service) Clear(ctx context.Context, token string) error {
	if err := s.repo.Clear(ctx, token); err != nil {
		return err
	}
	s.metrics.IncMutation("clear")
	return nil
}

func (s *service) load(ctx context.Context, token string) ([]LineItem, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storefront token is required")
	}
	items, discarded, err := s.repo.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	if discarded {
		s.metrics.IncLoadFailure()
	}
	return items, nil
}

func (s *service) view(items []LineItem) *View {
	return &View{
		Items:  items,
		Totals: ComputeTotals(items, s.threshold, s.flatFee),
	}
}

func checkIndex(index, length int) error {
	if index < 0 || index >= length {
		return pkgerrors.New(pkgerrors.CodeOutOfRange, "cart line index out of range")
	}
	return nil
}

func validateVariant(input AddItemInput, product *models.Product) error {
	if input.Size != "" && len(product.Sizes) > 0 && !contains(product.Sizes, input.Size) {
		return pkgerrors.New(pkgerrors.CodeValidation, "size is not offered for this product")
	}
	if input.Color != "" && len(product.Colors) > 0 && !contains(product.Colors, input.Color) {
		return pkgerrors.New(pkgerrors.CodeValidation, "color is not offered for this product")
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(value, target) {
			return true
		}
	}
	return false
}
