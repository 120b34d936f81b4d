package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/instance"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/migrate"
	"github.com/angelmondragon/storefront/pkg/redis"
)

func main() {
	interval := flag.Duration("interval", 0, "repeat the sync on this cadence; 0 runs once")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "catalog-sync"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "catalog-sync",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	params := ServiceParams{
		Logger: logg,
		Source: catalog.NewHTTPSource(cfg.Catalog.URL, catalog.WithTimeout(cfg.Catalog.Timeout)),
		Store:  catalog.NewRepository(dbClient.DB()),
		Owner:  instance.GetID(),
	}

	if cfg.Redis.Configured() {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		params.Locker = redisClient
		params.Cache = redisClient
	}

	service, err := NewService(params)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog sync", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"catalog_url": cfg.Catalog.URL,
		"instance":    instance.GetID(),
	})
	logg.Info(ctx, "starting catalog sync")

	if *interval > 0 {
		if err := service.Loop(ctx, *interval); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "catalog sync loop stopped unexpectedly", err)
			stop()
			os.Exit(1)
		}
		return
	}

	if err := service.Run(ctx); err != nil {
		if errors.Is(err, errSyncInProgress) {
			logg.Warn(ctx, "catalog sync skipped, another run holds the lock")
			return
		}
		logg.Error(ctx, "catalog sync failed", err)
		stop()
		os.Exit(1)
	}
}
