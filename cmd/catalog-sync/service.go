package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const (
	syncLockName = "catalog-sync"
	syncLockTTL  = 5 * time.Minute
)

var errSyncInProgress = errors.New("catalog sync already running")

type catalogStore interface {
	Replace(ctx context.Context, products []catalog.Product) error
}

type syncLocker interface {
	AcquireLock(ctx context.Context, name, owner string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, name, owner string) error
}

type cacheInvalidator interface {
	Del(ctx context.Context, keys ...string) error
	CatalogKey(name string) string
}

type ServiceParams struct {
	Logger *logger.Logger
	Source catalog.Source
	Store  catalogStore
	// Locker and Cache are optional; both are backed by redis when configured.
	Locker syncLocker
	Cache  cacheInvalidator
	// Owner identifies this process as the lock holder.
	Owner string
}

// Service mirrors the remote catalog into the database once per Run.
type Service struct {
	logg   *logger.Logger
	source catalog.Source
	store  catalogStore
	locker syncLocker
	cache  cacheInvalidator
	owner  string
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	owner := params.Owner
	if owner == "" {
		owner = uuid.NewString()
	}
	return &Service{
		logg:   logg,
		source: params.Source,
		store:  params.Store,
		locker: params.Locker,
		cache:  params.Cache,
		owner:  owner,
	}, nil
}

func (s *Service) Run(ctx context.Context) error {
	if s.locker != nil {
		ok, err := s.locker.AcquireLock(ctx, syncLockName, s.owner, syncLockTTL)
		if err != nil {
			return fmt.Errorf("acquire sync lock: %w", err)
		}
		if !ok {
			return errSyncInProgress
		}
		defer func() {
			if err := s.locker.ReleaseLock(context.WithoutCancel(ctx), syncLockName, s.owner); err != nil {
				s.logg.Error(ctx, "catalog_sync.release_lock_failed", err)
			}
		}()
	}

	started := time.Now()
	products, err := s.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}

	if err := s.store.Replace(ctx, products); err != nil {
		return fmt.Errorf("store catalog: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, s.cache.CatalogKey("products")); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog_sync.cache_invalidate_failed")
		}
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"products":    len(products),
		"duration_ms": time.Since(started).Milliseconds(),
	}), "catalog_sync.completed")
	return nil
}

// Loop runs a sync immediately and then every interval until ctx is canceled. A failed
// or skipped cycle is logged and the loop keeps going.
func (s *Service) Loop(ctx context.Context, interval time.Duration) error {
	s.runCycle(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "catalog sync loop stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Service) runCycle(ctx context.Context) {
	err := s.Run(ctx)
	switch {
	case err == nil:
	case errors.Is(err, errSyncInProgress):
		s.logg.Info(ctx, "another catalog sync is running; skipping this cycle")
	default:
		s.logg.Error(ctx, "catalog sync cycle failed", err)
	}
}
