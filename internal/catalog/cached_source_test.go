package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type stubCache struct {
	mu      sync.Mutex
	data    map[string]string
	getErr  error
	setErr  error
	lastTTL time.Duration
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string]string)}
}

func (c *stubCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (c *stubCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value.(string)
	c.lastTTL = ttl
	return nil
}

func (c *stubCache) CatalogKey(name string) string {
	return "test:catalog:" + name
}

func countingSource(calls *int32, products []Product, err error) Source {
	return SourceFunc(func(context.Context) ([]Product, error) {
		atomic.AddInt32(calls, 1)
		if err != nil {
			return nil, err
		}
		return products, nil
	})
}

func TestCachedSourceMissThenHit(t *testing.T) {
	var calls int32
	cache := newStubCache()
	upstream := []Product{{ID: 7, Title: "Monitor", Price: decimal.RequireFromString("599.99"), Category: "electronics"}}
	source := NewCachedSource(countingSource(&calls, upstream, nil), cache, 5*time.Minute, nil)

	first, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected one upstream call, got %d", calls)
	}
	if cache.lastTTL != 5*time.Minute {
		t.Fatalf("unexpected ttl %v", cache.lastTTL)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("unexpected results %v %v", first, second)
	}
	if !second[0].Price.Equal(decimal.RequireFromString("599.99")) || second[0].Title != "Monitor" {
		t.Fatalf("cached product did not survive round trip: %+v", second[0])
	}
}

func TestCachedSourceUpstreamFailure(t *testing.T) {
	var calls int32
	cache := newStubCache()
	source := NewCachedSource(countingSource(&calls, nil, retrievalFailure(errors.New("boom"))), cache, time.Minute, nil)

	if _, err := source.Fetch(context.Background()); !errors.Is(err, ErrRetrievalFailed) {
		t.Fatalf("expected ErrRetrievalFailed, got %v", err)
	}
	if len(cache.data) != 0 {
		t.Fatalf("failures must not be cached")
	}
}

func TestCachedSourceBypassesBrokenCache(t *testing.T) {
	var calls int32
	cache := newStubCache()
	cache.getErr = errors.New("connection reset")
	cache.setErr = errors.New("connection reset")
	upstream := []Product{{ID: 1, Title: "Backpack"}}
	source := NewCachedSource(countingSource(&calls, upstream, nil), cache, time.Minute, nil)

	products, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("cache errors should not fail the fetch: %v", err)
	}
	if len(products) != 1 || calls != 1 {
		t.Fatalf("expected upstream result, got %v (calls=%d)", products, calls)
	}
}

func TestCachedSourceIgnoresCorruptEntry(t *testing.T) {
	var calls int32
	cache := newStubCache()
	cache.data[cache.CatalogKey("products")] = "{not json"
	source := NewCachedSource(countingSource(&calls, []Product{{ID: 2}}, nil), cache, time.Minute, nil)

	products, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(products) != 1 || products[0].ID != 2 || calls != 1 {
		t.Fatalf("expected upstream refresh, got %v calls=%d", products, calls)
	}
}

func TestCachedSourceReturnsIndependentSlices(t *testing.T) {
	var calls int32
	source := NewCachedSource(countingSource(&calls, []Product{{ID: 1, Title: "A"}}, nil), newStubCache(), time.Minute, nil)

	first, _ := source.Fetch(context.Background())
	first[0].Title = "mutated"
	second, _ := source.Fetch(context.Background())
	if second[0].Title != "A" {
		t.Fatalf("callers must not share backing arrays, got %q", second[0].Title)
	}
}
