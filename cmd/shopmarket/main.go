package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/phenrril/shopmarket/internal/app"
	"github.com/phenrril/shopmarket/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "shopmarket",
	Short:         "Storefront API server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func main() {
	cfg = config.Load()
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(serveCmd, seedCmd, exportCmd)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		zlog.Error().Err(err).Msg("shopmarket")
		stop()
		os.Exit(1)
	}
}

func setupLogger(c config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.IsProduction() {
		zlog.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
}

// bootstrap opens the database, wires the app and migrates it.
func bootstrap(ctx context.Context) (*app.App, error) {
	db, err := app.OpenDB(cfg)
	if err != nil {
		return nil, err
	}
	a, err := app.NewApp(ctx, cfg, db)
	if err != nil {
		return nil, err
	}
	if err := a.MigrateAndSeed(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}
