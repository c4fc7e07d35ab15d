package domain

import (
	"context"
	"time"
)

type ProductRepo interface {
	List(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Save(ctx context.Context, p *Product) error
	SaveAll(ctx context.Context, ps []Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type UserRepo interface {
	List(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, u *User) error
	Count(ctx context.Context) (int64, error)
}

// SnapshotRepo stores opaque JSON documents under string keys.
type SnapshotRepo interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
	// Scan calls fn for every key starting with prefix. Returning an error
	// from fn stops the scan.
	Scan(ctx context.Context, prefix string, fn func(key string, payload []byte) error) error
}

// PaymentGateway authorizes the payment of an order about to be placed.
type PaymentGateway interface {
	Authorize(ctx context.Context, o *Order) error
}

type Clock func() time.Time
