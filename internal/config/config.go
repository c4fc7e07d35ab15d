// Package config reads process settings from the environment.
package config

import (
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
)

type Config struct {
	Port   string
	AppEnv string

	DBDriver string
	DBDSN    string

	StateBackend  string
	RedisAddr     string
	RedisPassword string

	SessionKey     string
	AdminSecret    string
	AdminUser      string
	AdminPass      string
	AdminTokenTTL  time.Duration
	CheckoutDelay  time.Duration
	LoginDelay     time.Duration
	PaymentFailPct float64
	SeedFile       string
	// RateLimit is requests per minute per client IP; 0 disables it.
	RateLimit int
	// TrustedProxies lists the proxies allowed to set X-Forwarded-For.
	TrustedProxies []netip.Prefix
}

// Load reads .env when present and then the environment.
func Load() Config {
	_ = godotenv.Load()

	c := Config{
		Port:          env("PORT", "8080"),
		AppEnv:        strings.ToLower(env("APP_ENV", "development")),
		DBDriver:      strings.ToLower(env("DB_DRIVER", "postgres")),
		StateBackend:  strings.ToLower(env("STATE_BACKEND", "db")),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SessionKey:    os.Getenv("SESSION_KEY"),
		AdminSecret:   os.Getenv("JWT_ADMIN_SECRET"),
		AdminUser:     env("ADMIN_USER", "admin@shopmarket.com"),
		AdminPass:     os.Getenv("ADMIN_PASS"),
		AdminTokenTTL: duration("ADMIN_TOKEN_TTL", 30*time.Minute),
		CheckoutDelay: duration("CHECKOUT_DELAY", 2*time.Second),
		LoginDelay:    duration("LOGIN_DELAY", time.Second),
		SeedFile:      os.Getenv("SEED_FILE"),
	}
	c.DBDSN = dsn(c.DBDriver)
	if f, err := strconv.ParseFloat(os.Getenv("PAYMENT_FAIL_RATE"), 64); err == nil {
		c.PaymentFailPct = f
	}
	c.RateLimit = 300
	if n, err := strconv.Atoi(os.Getenv("RATE_LIMIT")); err == nil && n >= 0 {
		c.RateLimit = n
	}
	c.TrustedProxies = prefixes("TRUSTED_PROXIES")
	if c.SessionKey == "" {
		c.SessionKey = "dev-insecure"
		if c.IsProduction() {
			zlog.Warn().Msg("SESSION_KEY missing, using development key")
		}
	}
	if c.AdminSecret == "" {
		c.AdminSecret = c.SessionKey
	}
	return c
}

func (c Config) IsProduction() bool { return c.AppEnv == "production" || c.AppEnv == "prod" }

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// duration accepts Go durations ("1500ms") and plain milliseconds.
func duration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	zlog.Warn().Str("key", key).Str("value", raw).Msg("invalid duration, using default")
	return def
}

// prefixes parses a comma separated list of CIDRs or bare addresses.
func prefixes(key string) []netip.Prefix {
	var out []netip.Prefix
	for _, raw := range strings.Split(os.Getenv(key), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if p, err := netip.ParsePrefix(raw); err == nil {
			out = append(out, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(raw); err == nil {
			out = append(out, netip.PrefixFrom(a.Unmap(), a.Unmap().BitLen()))
			continue
		}
		zlog.Warn().Str("key", key).Str("value", raw).Msg("invalid proxy address, skipping")
	}
	return out
}

func dsn(driver string) string {
	if v := strings.TrimSpace(os.Getenv("DB_DSN")); v != "" {
		return v
	}
	if driver == "sqlite" {
		return "shopmarket.db"
	}
	host := env("DB_HOST", "localhost")
	port := env("DB_PORT", "5432")
	user := os.Getenv("DB_USER")
	if user == "" {
		user = env("POSTGRES_USER", "postgres")
	}
	pass := os.Getenv("DB_PASSWORD")
	if pass == "" {
		pass = env("POSTGRES_PASSWORD", "postgres")
	}
	name := os.Getenv("DB_NAME")
	if name == "" {
		name = env("POSTGRES_DB", "shopmarket")
	}
	ssl := env("DB_SSLMODE", "disable")
	return "host=" + host + " user=" + user + " password=" + pass + " dbname=" + name + " port=" + port + " sslmode=" + ssl
}
