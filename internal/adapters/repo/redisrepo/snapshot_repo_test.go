package redisrepo

import (
	"context"
	"os"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/shopmarket/internal/domain"
)

// Runs against a live server; set REDIS_ADDR to enable.
func newRepo(t *testing.T) (*SnapshotRepo, string) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := NewClient(ctx, addr, os.Getenv("REDIS_PASSWORD"))
	require.NoError(t, err)
	prefix := "shopmarket-test:" + uuid.NewString()[:8] + ":"
	t.Cleanup(func() {
		keys, _ := rdb.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			rdb.Del(ctx, keys...)
		}
		_ = rdb.Close()
	})
	return NewSnapshotRepo(rdb), prefix
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	r, prefix := newRepo(t)

	_, err := r.Load(ctx, prefix+"missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, r.Save(ctx, prefix+"a", []byte(`{"is_dark_mode":true}`)))
	b, err := r.Load(ctx, prefix+"a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_dark_mode":true}`, string(b))

	require.NoError(t, r.Delete(ctx, prefix+"a"))
	_, err = r.Load(ctx, prefix+"a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshotScanByPrefix(t *testing.T) {
	ctx := context.Background()
	r, prefix := newRepo(t)
	for _, k := range []string{"s1", "s2", "s3"} {
		require.NoError(t, r.Save(ctx, prefix+k, []byte("{}")))
	}

	var got []string
	require.NoError(t, r.Scan(ctx, prefix, func(k string, _ []byte) error {
		got = append(got, k[len(prefix):])
		return nil
	}))
	sort.Strings(got)
	assert.Equal(t, []string{"s1", "s2", "s3"}, got)
}
