package simulated

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/shopmarket/internal/domain"
)

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	o := &domain.Order{ID: "ORD-1", Total: 10}

	require.NoError(t, NewGateway(0).Authorize(ctx, o))

	g := NewGateway(2)
	assert.ErrorIs(t, g.Authorize(ctx, o), domain.ErrPaymentFailed)

	g = NewGateway(0.5)
	g.roll = func() float64 { return 0.7 }
	assert.NoError(t, g.Authorize(ctx, o))
	g.roll = func() float64 { return 0.2 }
	assert.ErrorIs(t, g.Authorize(ctx, o), domain.ErrPaymentFailed)
}

func TestAuthorizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewGateway(0).Authorize(ctx, &domain.Order{}), context.Canceled)
}
