// Package simulated is a payment gateway that approves or declines
// payments without talking to a provider.
package simulated

import (
	"context"
	"fmt"
	"math/rand/v2"

	zlog "github.com/rs/zerolog/log"

	"github.com/phenrril/shopmarket/internal/domain"
)

type Gateway struct {
	failRate float64
	roll     func() float64
}

// NewGateway declines roughly failRate of all authorizations. A rate of 0
// approves everything.
func NewGateway(failRate float64) *Gateway {
	if failRate < 0 {
		failRate = 0
	}
	if failRate > 1 {
		failRate = 1
	}
	return &Gateway{failRate: failRate, roll: rand.Float64}
}

func (g *Gateway) Authorize(ctx context.Context, o *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if o.Total < 0 {
		return fmt.Errorf("%w: negative total", domain.ErrPaymentFailed)
	}
	if g.failRate > 0 && g.roll() < g.failRate {
		zlog.Warn().Str("order", o.ID).Float64("total", o.Total).Msg("payment declined")
		return fmt.Errorf("%w: declined by issuer", domain.ErrPaymentFailed)
	}
	zlog.Debug().Str("order", o.ID).Str("method", o.PaymentMethod).Float64("total", o.Total).Msg("payment authorized")
	return nil
}
