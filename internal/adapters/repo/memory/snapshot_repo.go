package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/phenrril/shopmarket/internal/domain"
)

type SnapshotRepo struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewSnapshotRepo() *SnapshotRepo {
	return &SnapshotRepo{docs: map[string][]byte{}}
}

func (r *SnapshotRepo) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.docs[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (r *SnapshotRepo) Save(_ context.Context, key string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[key] = append([]byte(nil), payload...)
	return nil
}

func (r *SnapshotRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, key)
	return nil
}

// Scan visits matching keys in lexical order. fn runs without the lock held.
func (r *SnapshotRepo) Scan(ctx context.Context, prefix string, fn func(key string, payload []byte) error) error {
	r.mu.RLock()
	keys := make([]string, 0, len(r.docs))
	for k := range r.docs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	r.mu.RUnlock()
	sort.Strings(keys)
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		b, err := r.Load(ctx, k)
		if err != nil {
			continue
		}
		if err := fn(k, b); err != nil {
			return err
		}
	}
	return nil
}
