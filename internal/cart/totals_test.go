package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(value string) decimal.Decimal {
	out, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return out
}

func TestComputeTotals(t *testing.T) {
	threshold := d("100")
	fee := d("10")

	tests := []struct {
		name     string
		items    []LineItem
		subtotal string
		shipping string
		total    string
	}{
		{
			name: "free shipping above threshold",
			items: []LineItem{
				{ProductID: "p1", UnitPrice: d("50"), Quantity: 2},
				{ProductID: "p2", UnitPrice: d("30"), Quantity: 1},
			},
			subtotal: "130",
			shipping: "0",
			total:    "130",
		},
		{
			name: "flat fee below threshold",
			items: []LineItem{
				{ProductID: "p1", UnitPrice: d("40"), Quantity: 1},
			},
			subtotal: "40",
			shipping: "10",
			total:    "50",
		},
		{
			name: "boundary subtotal still pays shipping",
			items: []LineItem{
				{ProductID: "p1", UnitPrice: d("100"), Quantity: 1},
			},
			subtotal: "100",
			shipping: "10",
			total:    "110",
		},
		{
			name:     "empty list",
			items:    nil,
			subtotal: "0",
			shipping: "10",
			total:    "10",
		},
		{
			name: "cent precision accumulates exactly",
			items: []LineItem{
				{ProductID: "p1", UnitPrice: d("19.99"), Quantity: 3},
				{ProductID: "p2", UnitPrice: d("0.01"), Quantity: 1},
			},
			subtotal: "59.98",
			shipping: "10",
			total:    "69.98",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, threshold, fee)
			if !got.Subtotal.Equal(d(tt.subtotal)) {
				t.Fatalf("subtotal: expected %s got %s", tt.subtotal, got.Subtotal)
			}
			if !got.Shipping.Equal(d(tt.shipping)) {
				t.Fatalf("shipping: expected %s got %s", tt.shipping, got.Shipping)
			}
			if !got.Total.Equal(d(tt.total)) {
				t.Fatalf("total: expected %s got %s", tt.total, got.Total)
			}
		})
	}
}

func TestComputeTotalsSubtotalIsExactSum(t *testing.T) {
	items := []LineItem{
		{ProductID: "a", UnitPrice: d("12.37"), Quantity: 7},
		{ProductID: "b", UnitPrice: d("0.99"), Quantity: 13},
		{ProductID: "c", UnitPrice: d("250"), Quantity: 1},
	}
	expected := decimal.Zero
	for _, item := range items {
		expected = expected.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	got := ComputeTotals(items, d("100"), d("10"))
	if !got.Subtotal.Equal(expected) {
		t.Fatalf("expected exact subtotal %s got %s", expected, got.Subtotal)
	}
}
