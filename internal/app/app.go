package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phenrril/shopmarket/internal/adapters/httpserver"
	"github.com/phenrril/shopmarket/internal/adapters/payments/simulated"
	"github.com/phenrril/shopmarket/internal/adapters/repo/gormrepo"
	"github.com/phenrril/shopmarket/internal/adapters/repo/memory"
	"github.com/phenrril/shopmarket/internal/adapters/repo/redisrepo"
	"github.com/phenrril/shopmarket/internal/adapters/spreadsheet"
	"github.com/phenrril/shopmarket/internal/config"
	"github.com/phenrril/shopmarket/internal/domain"
	"github.com/phenrril/shopmarket/internal/seed"
	"github.com/phenrril/shopmarket/internal/usecase"
)

type App struct {
	Config config.Config
	DB     *gorm.DB
	Redis  *redis.Client

	ProductUC  *usecase.ProductUC
	SessionUC  *usecase.SessionUC
	CartUC     *usecase.CartUC
	WishlistUC *usecase.WishlistUC
	OrderUC    *usecase.OrderUC
	AuthUC     *usecase.AuthUC
	UserUC     *usecase.UserUC
	StatsUC    *usecase.StatsUC
}

// OpenDB connects to the configured SQL database. The "memory" driver
// returns a nil handle.
func OpenDB(cfg config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	switch cfg.DBDriver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DBDSN), gcfg)
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DBDSN), gcfg)
	case "memory":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
}

func NewApp(ctx context.Context, cfg config.Config, db *gorm.DB) (*App, error) {
	a := &App{Config: cfg, DB: db}

	var (
		products domain.ProductRepo
		users    domain.UserRepo
	)
	if db != nil {
		products = gormrepo.NewProductRepo(db)
		users = gormrepo.NewUserRepo(db)
	} else {
		products = memory.NewProductRepo()
		users = memory.NewUserRepo()
	}

	var store domain.SnapshotRepo
	switch cfg.StateBackend {
	case "db":
		if db == nil {
			return nil, errors.New("STATE_BACKEND=db needs a SQL database")
		}
		store = gormrepo.NewSnapshotRepo(db)
	case "redis":
		rdb, err := redisrepo.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.Redis = rdb
		store = redisrepo.NewSnapshotRepo(rdb)
	case "memory":
		store = memory.NewSnapshotRepo()
	default:
		return nil, fmt.Errorf("unknown STATE_BACKEND %q", cfg.StateBackend)
	}

	a.ProductUC = &usecase.ProductUC{Products: products}
	a.SessionUC = &usecase.SessionUC{Store: store}
	a.CartUC = &usecase.CartUC{Sessions: a.SessionUC, Catalog: a.ProductUC}
	a.WishlistUC = &usecase.WishlistUC{Sessions: a.SessionUC, Catalog: a.ProductUC}
	a.OrderUC = &usecase.OrderUC{
		Sessions: a.SessionUC,
		Gateway:  simulated.NewGateway(cfg.PaymentFailPct),
		Delay:    cfg.CheckoutDelay,
	}
	a.AuthUC = &usecase.AuthUC{Sessions: a.SessionUC, Users: users, Delay: cfg.LoginDelay}
	a.UserUC = &usecase.UserUC{Users: users}
	a.StatsUC = &usecase.StatsUC{Catalog: a.ProductUC, Users: users, Orders: a.OrderUC}

	zlog.Info().
		Str("db", cfg.DBDriver).
		Str("state", cfg.StateBackend).
		Dur("checkout_delay", cfg.CheckoutDelay).
		Float64("payment_fail_rate", cfg.PaymentFailPct).
		Msg("app wired")
	return a, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(httpserver.Deps{
		Products:      a.ProductUC,
		Sessions:      a.SessionUC,
		Cart:          a.CartUC,
		Wishlist:      a.WishlistUC,
		Orders:        a.OrderUC,
		Auth:          a.AuthUC,
		Users:         a.UserUC,
		Stats:         a.StatsUC,
		SessionKey:    []byte(a.Config.SessionKey),
		AdminSecret:   []byte(a.Config.AdminSecret),
		AdminUser:     a.Config.AdminUser,
		AdminPass:     a.Config.AdminPass,
		AdminTokenTTL: a.Config.AdminTokenTTL,
		SecureCookies: a.Config.IsProduction(),
		RateLimit:     a.Config.RateLimit,

		TrustedProxies: a.Config.TrustedProxies,
	})
}

// MigrateAndSeed creates the tables and loads the seed catalog and users
// into empty stores.
func (a *App) MigrateAndSeed(ctx context.Context) error {
	if a.DB != nil {
		if err := gormrepo.AutoMigrate(a.DB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	data, err := seed.Load(a.Config.SeedFile)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	np, err := a.ProductUC.Seed(ctx, data.Products)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	nu, err := a.UserUC.Seed(ctx, data.Users)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if np > 0 || nu > 0 {
		zlog.Info().Int("products", np).Int("users", nu).Msg("seeded")
	}
	return nil
}

// ExportCatalog writes every product as a spreadsheet; a ".csv" path gets
// CSV, anything else XLSX.
func (a *App) ExportCatalog(ctx context.Context, path string) (int, error) {
	ps, err := a.ProductUC.All(ctx)
	if err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	write := spreadsheet.WriteXLSX
	if isCSV(path) {
		write = spreadsheet.WriteCSV
	}
	if err := write(f, ps); err != nil {
		_ = f.Close()
		return 0, err
	}
	return len(ps), f.Close()
}

func isCSV(path string) bool { return strings.EqualFold(filepath.Ext(path), ".csv") }

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
