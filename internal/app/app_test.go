package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/shopmarket/internal/adapters/spreadsheet"
	"github.com/phenrril/shopmarket/internal/config"
)

func sqliteConfig(t *testing.T) config.Config {
	return config.Config{
		DBDriver:     "sqlite",
		DBDSN:        "file:" + t.Name() + "?mode=memory&cache=shared",
		StateBackend: "db",
		SessionKey:   "k",
		AdminSecret:  "k",
	}
}

func TestMigrateAndSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)
	db, err := OpenDB(cfg)
	require.NoError(t, err)
	a, err := NewApp(ctx, cfg, db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NoError(t, a.MigrateAndSeed(ctx))
	require.NoError(t, a.MigrateAndSeed(ctx))

	all, err := a.ProductUC.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 12)
	users, err := a.UserUC.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	rec := httptest.NewRecorder()
	a.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMemoryBackends(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{DBDriver: "memory", StateBackend: "memory"}
	db, err := OpenDB(cfg)
	require.NoError(t, err)
	assert.Nil(t, db)
	a, err := NewApp(ctx, cfg, db)
	require.NoError(t, err)
	require.NoError(t, a.MigrateAndSeed(ctx))

	out := filepath.Join(t.TempDir(), "catalog.csv")
	n, err := a.ExportCatalog(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	ps, err := spreadsheet.ReadCSV(f)
	require.NoError(t, err)
	assert.Len(t, ps, 12)
}

func TestNewAppRejectsBadConfig(t *testing.T) {
	ctx := context.Background()
	_, err := OpenDB(config.Config{DBDriver: "oracle"})
	assert.Error(t, err)

	_, err = NewApp(ctx, config.Config{StateBackend: "db"}, nil)
	assert.Error(t, err)

	_, err = NewApp(ctx, config.Config{StateBackend: "etcd"}, nil)
	assert.Error(t, err)
}
