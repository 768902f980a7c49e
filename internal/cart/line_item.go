package cart

import (
	"github.com/shopspring/decimal"
)

// LineItem is one entry in a persisted cart snapshot. The unit price is
// captured when the line is created and never re-read from the catalog.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Variant   *Variant        `json:"variant,omitempty"`
}

// Variant carries the attributes chosen when the line was added. It is
// informational only and never affects pricing.
type Variant struct {
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

// LineTotal returns unit price times quantity for this line.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// normalize clamps the quantity floor. Lines never drop below one unit.
func (l LineItem) normalize() LineItem {
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	return l
}
