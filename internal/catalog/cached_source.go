package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const cacheFlightKey = "catalog"

// Cache is the key/value surface the cached source needs. *pkg/redis.Client satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogKey(name string) string
}

// CachedSource is a read-through cache in front of another Source. Cache problems
// are logged and bypassed; only the upstream can fail a fetch.
type CachedSource struct {
	next  Source
	cache Cache
	ttl   time.Duration
	key   string
	logg  *logger.Logger
	group singleflight.Group
}

func NewCachedSource(next Source, cache Cache, ttl time.Duration, logg *logger.Logger) *CachedSource {
	if logg == nil {
		logg = logger.Nop()
	}
	return &CachedSource{
		next:  next,
		cache: cache,
		ttl:   ttl,
		key:   cache.CatalogKey("products"),
		logg:  logg,
	}
}

func (s *CachedSource) Fetch(ctx context.Context) ([]Product, error) {
	v, err, _ := s.group.Do(cacheFlightKey, func() (any, error) {
		if products, ok := s.readCache(ctx); ok {
			return products, nil
		}

		products, err := s.next.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.writeCache(ctx, products)
		return products, nil
	})
	if err != nil {
		return nil, err
	}

	// Each caller gets its own slice; singleflight hands every waiter the same value.
	shared := v.([]Product)
	out := make([]Product, len(shared))
	copy(out, shared)
	return out, nil
}

func (s *CachedSource) readCache(ctx context.Context) ([]Product, bool) {
	raw, err := s.cache.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog.cache_read_failed")
		}
		return nil, false
	}

	var products []Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil || products == nil {
		s.logg.Warn(ctx, "catalog.cache_corrupt")
		return nil, false
	}
	s.logg.Debug(s.logg.WithField(ctx, "products", len(products)), "catalog.cache_hit")
	return products, true
}

func (s *CachedSource) writeCache(ctx context.Context, products []Product) {
	payload, err := json.Marshal(products)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog.cache_encode_failed")
		return
	}
	if err := s.cache.Set(ctx, s.key, string(payload), s.ttl); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog.cache_write_failed")
	}
}
