package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/phenrril/shopmarket/internal/domain"
)

type UserRepo struct {
	mu    sync.RWMutex
	users []domain.User
}

func NewUserRepo(seed ...domain.User) *UserRepo {
	return &UserRepo{users: append([]domain.User(nil), seed...)}
}

func (r *UserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.User(nil), r.users...), nil
}

func (r *UserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.ToLower(u.Email) == e {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepo) Save(_ context.Context, u *domain.User) error {
	u.Email = strings.ToLower(u.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == u.ID {
			r.users[i] = *u
			return nil
		}
	}
	r.users = append(r.users, *u)
	return nil
}

func (r *UserRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}
