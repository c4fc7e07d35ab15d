// Package memory holds process-local repositories for development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/phenrril/shopmarket/internal/domain"
)

// ProductRepo keeps products in insertion order.
type ProductRepo struct {
	mu    sync.RWMutex
	items []domain.Product
}

func NewProductRepo(seed ...domain.Product) *ProductRepo {
	r := &ProductRepo{}
	for _, p := range seed {
		r.put(p)
	}
	return r
}

func (r *ProductRepo) put(p domain.Product) {
	for i := range r.items {
		if r.items[i].ID == p.ID {
			r.items[i] = p
			return
		}
	}
	r.items = append(r.items, p)
}

func (r *ProductRepo) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Product, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *ProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ProductRepo) Save(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(*p)
	return nil
}

func (r *ProductRepo) SaveAll(_ context.Context, ps []domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range ps {
		r.put(p)
	}
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ProductRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}
