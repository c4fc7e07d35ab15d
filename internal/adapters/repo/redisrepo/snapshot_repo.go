// Package redisrepo stores session snapshots as Redis string values.
package redisrepo

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/phenrril/shopmarket/internal/domain"
)

const scanBatch = 100

type SnapshotRepo struct{ rdb redis.UniversalClient }

func NewSnapshotRepo(rdb redis.UniversalClient) *SnapshotRepo { return &SnapshotRepo{rdb: rdb} }

// NewClient connects to addr and verifies the connection with PING.
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (r *SnapshotRepo) Load(ctx context.Context, key string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func (r *SnapshotRepo) Save(ctx context.Context, key string, payload []byte) error {
	return r.rdb.Set(ctx, key, payload, 0).Err()
}

func (r *SnapshotRepo) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

// Scan walks the keyspace with SCAN MATCH prefix*. Keys deleted between the
// scan and the read are skipped.
func (r *SnapshotRepo) Scan(ctx context.Context, prefix string, fn func(key string, payload []byte) error) error {
	it := r.rdb.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()
	for it.Next(ctx) {
		key := it.Val()
		b, err := r.Load(ctx, key)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := fn(key, b); err != nil {
			return err
		}
	}
	return it.Err()
}
