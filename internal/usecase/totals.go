package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/phenrril/shopmarket/internal/domain"
)

var (
	taxRate               = decimal.RequireFromString("0.08")
	shippingRate          = decimal.RequireFromString("9.99")
	freeShippingThreshold = decimal.NewFromInt(75)
)

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// CartTotals derives the money figures of a set of cart lines. Tax is
// rounded half up to cents before it is added to the total.
func CartTotals(lines []domain.CartLine) Totals {
	sub := decimal.Zero
	for _, l := range lines {
		sub = sub.Add(decimal.NewFromFloat(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	sub = sub.Round(2)
	tax := sub.Mul(taxRate).Round(2)
	shipping := decimal.Zero
	if sub.LessThan(freeShippingThreshold) {
		shipping = shippingRate
	}
	return Totals{
		Subtotal: sub.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Total:    sub.Add(tax).Add(shipping).InexactFloat64(),
	}
}
