// Package cache holds the expiry-aware, single-flight cache shared by the
// token and user-record caches.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
	"golang.org/x/sync/singleflight"
)

// Loader produces a value and its absolute expiry. A zero expiry means the
// value never expires.
type Loader[V any] func(ctx context.Context) (V, time.Time, error)

// Stats counts cache activity.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Loads     uint64
	Failures  uint64
	Expired   uint64
	Evictions uint64
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Cache maps composite keys to values. While a load is outstanding for a key
// the in-flight call is registered in the group under that key, so every
// concurrent Get for the key joins it instead of starting another load.
// Expiry is checked at lookup time only.
type Cache[V any] struct {
	name    string
	mu      sync.Mutex
	entries map[string]entry[V]
	group   singleflight.Group
	now     func() time.Time
	logger  xcoobee.Logger
	stats   Stats
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now    func() time.Time
	logger xcoobee.Logger
}

// WithClock sets the clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger xcoobee.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates an empty cache. name appears in log fields.
func New[V any](name string, opts ...Option) *Cache[V] {
	o := &options{now: time.Now, logger: xcoobee.NopLogger{}}
	for _, opt := range opts {
		opt(o)
	}

	return &Cache[V]{
		name:    name,
		entries: make(map[string]entry[V]),
		now:     o.now,
		logger:  o.logger,
	}
}

// Get returns the live value for key, joins an in-flight load for key, or
// starts a load. A failed load evicts key and its error is returned to every
// caller that joined it.
//
// The load runs detached from ctx cancellation so one caller giving up does
// not fail the others; ctx only bounds how long this caller waits.
func (c *Cache[V]) Get(ctx context.Context, key string, load Loader[V]) (V, error) {
	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		// A load that finished between our lookup and joining the group has
		// already stored its value.
		if value, ok := c.peek(key); ok {
			return value, nil
		}

		return c.load(loadCtx, key, load)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero V

			return zero, res.Err
		}

		value, _ := res.Val.(V)

		return value, nil
	case <-ctx.Done():
		var zero V

		return zero, ctx.Err()
	}
}

func (c *Cache[V]) load(ctx context.Context, key string, load Loader[V]) (V, error) {
	c.mu.Lock()
	c.stats.Loads++
	c.mu.Unlock()

	value, expiresAt, err := load(ctx)
	if err != nil {
		c.mu.Lock()
		c.stats.Failures++
		c.mu.Unlock()
		c.Evict(key)

		c.logger.Warn("cache load failed", map[string]interface{}{
			"cache": c.name,
			"error": err.Error(),
		})

		var zero V

		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
	c.mu.Unlock()

	fields := map[string]interface{}{"cache": c.name}
	if !expiresAt.IsZero() {
		fields["expires_at"] = expiresAt.UTC().Format(time.RFC3339)
	}

	c.logger.Debug("cache entry stored", fields)

	return value, nil
}

// lookup returns a live entry, dropping it if it has expired, and counts the
// outcome.
func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if ok && ent.expired(c.now()) {
		delete(c.entries, key)
		c.stats.Expired++
		ok = false
	}

	if !ok {
		c.stats.Misses++

		var zero V

		return zero, false
	}

	c.stats.Hits++

	return ent.value, true
}

func (c *Cache[V]) peek(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok || ent.expired(c.now()) {
		var zero V

		return zero, false
	}

	return ent.value, true
}

// Evict removes key. An in-flight load for key is not cancelled.
func (c *Cache[V]) Evict(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.stats.Evictions++
	}
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry[V])
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns a snapshot of the counters.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stats
}
