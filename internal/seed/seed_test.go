package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/shopmarket/internal/domain"
)

func TestLoadEmbedded(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, d.Products)
	require.Len(t, d.Users, 3)

	byID := map[string]domain.Product{}
	for _, p := range d.Products {
		byID[p.ID] = p
		assert.Equal(t, p.StockCount > 0, p.InStock, p.ID)
	}
	assert.True(t, byID["men-tshirt-1"].IsVisible)
	assert.True(t, byID["men-tshirt-1"].IsNew)
	assert.False(t, byID["men-watch-1"].InStock)
	assert.False(t, byID["women-jewelry-1"].IsVisible)
	assert.Equal(t, domain.RoleAdmin, d.Users[0].Role)
	assert.False(t, d.Users[2].IsActive)
}

func TestParseRejects(t *testing.T) {
	_, err := Parse([]byte("products:\n  - id: a\n    name: A\n    gender: kids\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("products:\n  - id: a\n    name: A\n    gender: men\n  - id: a\n    name: B\n    gender: men\n"))
	assert.ErrorContains(t, err, "duplicate")

	_, err = Parse([]byte("products:\n  - id: a\n    name: A\n    price: -3\n    gender: men\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
}
