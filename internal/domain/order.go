package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// GuestUserID owns orders placed without a signed-in user.
const GuestUserID = "guest"

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(s); st {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return st, true
	}
	return "", false
}

// CanTransition reports whether an order may move from one status to another.
// Delivered and cancelled are terminal.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Address struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

type Order struct {
	ID                string        `json:"id"`
	UserID            string        `json:"user_id"`
	Items             []CartLine    `json:"items"`
	Subtotal          float64       `json:"subtotal"`
	Tax               float64       `json:"tax"`
	Shipping          float64       `json:"shipping"`
	Total             float64       `json:"total"`
	Status            OrderStatus   `json:"status"`
	ShippingAddress   Address       `json:"shipping_address"`
	BillingAddress    Address       `json:"billing_address"`
	PaymentMethod     string        `json:"payment_method"`
	PaymentStatus     PaymentStatus `json:"payment_status"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	TrackingNumber    string        `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time    `json:"estimated_delivery,omitempty"`
}

// OrderLog keeps orders newest first. Orders are immutable except for status.
type OrderLog []Order

func (l *OrderLog) Prepend(o Order) {
	*l = append(OrderLog{o}, *l...)
}

func (l OrderLog) Find(id string) (Order, bool) {
	for _, o := range l {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// SetStatus applies a legal status change. Setting the current status again
// is a no-op.
func (l OrderLog) SetStatus(id string, to OrderStatus, now time.Time) (Order, error) {
	for i := range l {
		if l[i].ID != id {
			continue
		}
		if l[i].Status == to {
			return l[i], nil
		}
		if !CanTransition(l[i].Status, to) {
			return l[i], fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, l[i].Status, to)
		}
		l[i].Status = to
		l[i].UpdatedAt = now
		return l[i], nil
	}
	return Order{}, ErrNotFound
}
