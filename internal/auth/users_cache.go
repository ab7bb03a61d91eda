package auth

import (
	"context"
	"time"

	"github.com/xcoobee/xcoobee-go-sdk/internal/cache"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

// UserLookup fetches the user record behind an access token.
type UserLookup interface {
	GetUser(ctx context.Context, urlRoot, token string) (*xcoobee.User, error)
}

// UserLookupFunc adapts a function to UserLookup.
type UserLookupFunc func(ctx context.Context, urlRoot, token string) (*xcoobee.User, error)

// GetUser calls f.
func (f UserLookupFunc) GetUser(ctx context.Context, urlRoot, token string) (*xcoobee.User, error) {
	return f(ctx, urlRoot, token)
}

// UsersCache caches user records per (url root, key, secret) with the same
// single-flight and eviction rules as TokenCache. It does not watch the token
// cache: a record stays until its own TTL runs out or a lookup fails.
type UsersCache struct {
	tokens  TokenSource
	lookup  UserLookup
	entries *cache.Cache[*xcoobee.User]
	now     func() time.Time
	ttl     time.Duration
}

// NewUsersCache creates a user cache that authenticates through tokens.
func NewUsersCache(tokens TokenSource, lookup UserLookup, opts ...Option) *UsersCache {
	o := buildOptions(opts)

	return &UsersCache{
		tokens:  tokens,
		lookup:  lookup,
		entries: cache.New[*xcoobee.User]("users", cache.WithClock(o.now), cache.WithLogger(o.logger)),
		now:     o.now,
		ttl:     o.ttl,
	}
}

// Get returns the user record for the triple.
func (c *UsersCache) Get(ctx context.Context, urlRoot, key, secret string) (*xcoobee.User, error) {
	creds := xcoobee.Credentials{URLRoot: urlRoot, Key: key, Secret: secret}

	return c.entries.Get(ctx, creds.CacheKey(), func(ctx context.Context) (*xcoobee.User, time.Time, error) {
		token, err := c.tokens.Get(ctx, urlRoot, key, secret)
		if err != nil {
			return nil, time.Time{}, xcoobee.TransformError(err)
		}

		user, err := c.lookup.GetUser(ctx, urlRoot, token)
		if err != nil {
			return nil, time.Time{}, xcoobee.TransformError(err)
		}

		var expiresAt time.Time
		if c.ttl > 0 {
			expiresAt = c.now().Add(c.ttl)
		}

		return user, expiresAt, nil
	})
}

// Invalidate drops the cached record for the triple.
func (c *UsersCache) Invalidate(urlRoot, key, secret string) {
	c.entries.Evict(xcoobee.Credentials{URLRoot: urlRoot, Key: key, Secret: secret}.CacheKey())
}

// Stats returns the underlying cache counters.
func (c *UsersCache) Stats() cache.Stats {
	return c.entries.Stats()
}
