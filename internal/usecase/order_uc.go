package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/phenrril/shopmarket/internal/domain"
)

const (
	deliveryWindow   = 7 * 24 * time.Hour
	trackingLen      = 9
	trackingAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// CheckoutRequest carries what the checkout form submits.
type CheckoutRequest struct {
	ShippingAddress domain.Address `json:"shipping_address"`
	BillingAddress  domain.Address `json:"billing_address"`
	SameAsShipping  bool           `json:"same_as_shipping"`
	PaymentMethodID string         `json:"payment_method_id"`
}

type OrderUC struct {
	Sessions *SessionUC
	Gateway  domain.PaymentGateway
	// Delay simulates payment processing before anything is written.
	Delay time.Duration
}

func (uc *OrderUC) List(ctx context.Context, sid string) (domain.OrderLog, error) {
	st, err := uc.Sessions.View(ctx, sid)
	if err != nil {
		return nil, err
	}
	return st.Orders, nil
}

// Place turns the session cart into an order. The order is prepended to the
// log and the cart cleared in the same write. A failed payment leaves the
// session untouched.
func (uc *OrderUC) Place(ctx context.Context, sid string, req CheckoutRequest) (domain.Order, error) {
	st, err := uc.Sessions.View(ctx, sid)
	if err != nil {
		return domain.Order{}, err
	}
	if len(st.Cart) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}
	if err := wait(ctx, uc.Delay); err != nil {
		return domain.Order{}, err
	}

	var order domain.Order
	_, err = uc.Sessions.Update(ctx, sid, func(st *domain.SessionState) error {
		if len(st.Cart) == 0 {
			return domain.ErrEmptyCart
		}
		order = uc.build(st, req, uc.Sessions.now())
		if uc.Gateway != nil {
			if err := uc.Gateway.Authorize(ctx, &order); err != nil {
				return err
			}
		}
		st.Orders.Prepend(order)
		st.Cart.Clear()
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (uc *OrderUC) build(st *domain.SessionState, req CheckoutRequest, now time.Time) domain.Order {
	items := st.Cart.Snapshot()
	t := CartTotals(items)

	ship := req.ShippingAddress
	ship.ID, ship.Label, ship.IsDefault = "addr-1", "Shipping", true
	bill := req.BillingAddress
	if req.SameAsShipping {
		bill = ship
	}
	bill.ID, bill.Label, bill.IsDefault = "addr-2", "Billing", false

	label := domain.DefaultPaymentLabel
	if m, ok := st.PaymentMethod(req.PaymentMethodID); ok {
		label = m.Label()
	}
	eta := now.Add(deliveryWindow)
	return domain.Order{
		ID:                fmt.Sprintf("ORD-%d%03d", now.UnixMilli(), rand.IntN(1000)),
		UserID:            st.UserID(),
		Items:             items,
		Subtotal:          t.Subtotal,
		Tax:               t.Tax,
		Shipping:          t.Shipping,
		Total:             t.Total,
		Status:            domain.OrderStatusProcessing,
		ShippingAddress:   ship,
		BillingAddress:    bill,
		PaymentMethod:     label,
		PaymentStatus:     domain.PaymentStatusCompleted,
		CreatedAt:         now,
		UpdatedAt:         now,
		TrackingNumber:    trackingNumber(),
		EstimatedDelivery: &eta,
	}
}

func trackingNumber() string {
	var b strings.Builder
	b.WriteString("TRK")
	for range trackingLen {
		b.WriteByte(trackingAlphabet[rand.IntN(len(trackingAlphabet))])
	}
	return b.String()
}

// UpdateStatus moves an order of the session along the status machine.
func (uc *OrderUC) UpdateStatus(ctx context.Context, sid, orderID string, to domain.OrderStatus) (domain.Order, error) {
	var out domain.Order
	_, err := uc.Sessions.Update(ctx, sid, func(st *domain.SessionState) error {
		var err error
		out, err = st.Orders.SetStatus(orderID, to, uc.Sessions.now())
		return err
	})
	return out, err
}

var errStopScan = errors.New("stop scan")

// UpdateStatusAny finds the session owning orderID and updates it there.
func (uc *OrderUC) UpdateStatusAny(ctx context.Context, orderID string, to domain.OrderStatus) (domain.Order, error) {
	owner := ""
	err := uc.Sessions.ForEach(ctx, func(sid string, st *domain.SessionState) error {
		if _, ok := st.Orders.Find(orderID); ok {
			owner = sid
			return errStopScan
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopScan) {
		return domain.Order{}, err
	}
	if owner == "" {
		return domain.Order{}, domain.ErrNotFound
	}
	return uc.UpdateStatus(ctx, owner, orderID, to)
}

// AllOrders collects the orders of every stored session.
func (uc *OrderUC) AllOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := uc.Sessions.ForEach(ctx, func(_ string, st *domain.SessionState) error {
		out = append(out, st.Orders...)
		return nil
	})
	return out, err
}
