package cart

import (
	"github.com/shopspring/decimal"
)

// Totals is the priced summary of a snapshot. Values are kept at full
// precision; rounding to two places happens only when rendering.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals prices a list of lines. The flat shipping fee is waived
// only when the subtotal strictly exceeds the threshold; a subtotal equal
// to the threshold still pays shipping.
func ComputeTotals(items []LineItem, shippingThreshold, flatShippingFee decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	shipping := flatShippingFee
	if subtotal.GreaterThan(shippingThreshold) {
		shipping = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
