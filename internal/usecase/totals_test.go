package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phenrril/shopmarket/internal/domain"
)

func TestCartTotals(t *testing.T) {
	tests := []struct {
		name  string
		lines []domain.CartLine
		want  Totals
	}{
		{
			name: "free shipping over threshold",
			lines: []domain.CartLine{
				{UnitPrice: 29.99, Quantity: 2},
				{UnitPrice: 50, Quantity: 1},
			},
			want: Totals{Subtotal: 109.98, Tax: 8.80, Shipping: 0, Total: 118.78},
		},
		{
			name:  "shipping below threshold",
			lines: []domain.CartLine{{UnitPrice: 20, Quantity: 2}},
			want:  Totals{Subtotal: 40, Tax: 3.2, Shipping: 9.99, Total: 53.19},
		},
		{
			name:  "exactly at threshold ships free",
			lines: []domain.CartLine{{UnitPrice: 75, Quantity: 1}},
			want:  Totals{Subtotal: 75, Tax: 6, Shipping: 0, Total: 81},
		},
		{
			name: "empty cart",
			want: Totals{Shipping: 9.99, Total: 9.99},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CartTotals(tt.lines))
		})
	}
}
