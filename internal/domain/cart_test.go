package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shirt() Product {
	return Product{
		ID: "shirt", Name: "Linen Shirt", Price: 29.99,
		Colors: []string{"White", "Navy"}, Sizes: []string{"M", "L"},
		StockCount: 5, InStock: true, Gender: GenderMen, IsVisible: true,
	}
}

func TestCartAddLineMergesSameKey(t *testing.T) {
	var c Cart
	first, err := c.AddLine(shirt(), 1, "white", "M", "l1")
	require.NoError(t, err)
	assert.Equal(t, "White", first.SelectedColor)

	merged, err := c.AddLine(shirt(), 2, "White", "M", "l2")
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, "l1", merged.ID)
	assert.Equal(t, 3, c[0].Quantity)

	_, err = c.AddLine(shirt(), 1, "Navy", "M", "l3")
	require.NoError(t, err)
	assert.Len(t, c, 2)
	assert.Equal(t, 4, c.ItemCount())
}

func TestCartAddLineRejects(t *testing.T) {
	out := shirt()
	out.InStock = false
	bare := Product{ID: "mug", Name: "Mug", Price: 5, InStock: true}

	tests := []struct {
		name    string
		p       Product
		qty     int
		color   string
		size    string
		wantErr error
	}{
		{"zero quantity", shirt(), 0, "White", "M", ErrInvalidQuantity},
		{"quantity above line cap", shirt(), MaxLineQuantity + 1, "White", "M", ErrInvalidQuantity},
		{"max int quantity", shirt(), math.MaxInt, "White", "M", ErrInvalidQuantity},
		{"out of stock", out, 1, "White", "M", ErrOutOfStock},
		{"unknown color", shirt(), 1, "Red", "M", ErrInvalidOption},
		{"unknown size", shirt(), 1, "White", "XS", ErrInvalidOption},
		{"missing color", shirt(), 1, "", "M", ErrInvalidOption},
		{"option on bare product", bare, 1, "Blue", "", ErrInvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cart
			_, err := c.AddLine(tt.p, tt.qty, tt.color, tt.size, "x")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, c)
		})
	}

	var c Cart
	_, err := c.AddLine(bare, 1, "", "", "x")
	assert.NoError(t, err)
}

func TestCartSetQuantity(t *testing.T) {
	var c Cart
	_, err := c.AddLine(shirt(), 1, "White", "M", "l1")
	require.NoError(t, err)

	require.NoError(t, c.SetQuantity("l1", 4))
	assert.Equal(t, 4, c[0].Quantity)

	require.NoError(t, c.SetQuantity("unknown", 9))
	assert.Equal(t, 4, c[0].Quantity)

	assert.ErrorIs(t, c.SetQuantity("l1", MaxLineQuantity+1), ErrInvalidQuantity)
	assert.Equal(t, 4, c[0].Quantity)

	require.NoError(t, c.SetQuantity("l1", 0))
	assert.Empty(t, c)

	c.RemoveLine("l1")
	assert.Empty(t, c)
}

func TestCartUnitPriceCapturedAtAdd(t *testing.T) {
	var c Cart
	p := shirt()
	_, err := c.AddLine(p, 1, "White", "M", "l1")
	require.NoError(t, err)
	p.Price = 99
	_, err = c.AddLine(p, 1, "White", "M", "l2")
	require.NoError(t, err)
	assert.Equal(t, 29.99, c[0].UnitPrice)

	snap := c.Snapshot()
	c.Clear()
	assert.Len(t, snap, 1)
	assert.Empty(t, c)
}

func TestCartMergeStaysWithinLineCap(t *testing.T) {
	var c Cart
	_, err := c.AddLine(shirt(), MaxLineQuantity, "White", "M", "l1")
	require.NoError(t, err)

	_, err = c.AddLine(shirt(), 1, "White", "M", "l2")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	require.Len(t, c, 1)
	assert.Equal(t, MaxLineQuantity, c[0].Quantity)
	assert.Positive(t, c.ItemCount())
}
