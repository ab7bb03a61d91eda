package auth

import (
	"context"
	"time"

	"github.com/xcoobee/xcoobee-go-sdk/internal/cache"
	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

// Exchanger trades API credentials for an access token.
type Exchanger interface {
	ExchangeToken(ctx context.Context, creds xcoobee.Credentials) (*Token, error)
}

// ExchangerFunc adapts a function to Exchanger.
type ExchangerFunc func(ctx context.Context, creds xcoobee.Credentials) (*Token, error)

// ExchangeToken calls f.
func (f ExchangerFunc) ExchangeToken(ctx context.Context, creds xcoobee.Credentials) (*Token, error) {
	return f(ctx, creds)
}

// TokenSource hands out access tokens for a connection.
type TokenSource interface {
	Get(ctx context.Context, urlRoot, key, secret string) (string, error)
}

// Option configures the caches in this package.
type Option func(*cacheOptions)

type cacheOptions struct {
	now    func() time.Time
	logger xcoobee.Logger
	ttl    time.Duration
}

// WithClock sets the clock used to compute and check expiry.
func WithClock(now func() time.Time) Option {
	return func(o *cacheOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger xcoobee.Logger) Option {
	return func(o *cacheOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTTL sets how long looked-up records stay cached. It has no effect on
// tokens, whose lifetime comes from the exchange.
func WithTTL(ttl time.Duration) Option {
	return func(o *cacheOptions) {
		o.ttl = ttl
	}
}

func buildOptions(opts []Option) *cacheOptions {
	o := &cacheOptions{
		now:    time.Now,
		logger: xcoobee.NopLogger{},
		ttl:    constants.DefaultUserRecordTTL,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// TokenCache caches access tokens per (url root, key, secret). Concurrent
// requests for the same triple share one exchange; a failed exchange is
// evicted so the next Get starts over.
type TokenCache struct {
	exchanger Exchanger
	entries   *cache.Cache[string]
	now       func() time.Time
	logger    xcoobee.Logger
}

// NewTokenCache creates a token cache backed by exchanger.
func NewTokenCache(exchanger Exchanger, opts ...Option) *TokenCache {
	o := buildOptions(opts)

	return &TokenCache{
		exchanger: exchanger,
		entries:   cache.New[string]("tokens", cache.WithClock(o.now), cache.WithLogger(o.logger)),
		now:       o.now,
		logger:    o.logger,
	}
}

// Get returns a live token for the triple, exchanging credentials only on a
// miss or after expiry. Errors are normalized *xcoobee.Error values.
func (c *TokenCache) Get(ctx context.Context, urlRoot, key, secret string) (string, error) {
	creds := xcoobee.Credentials{URLRoot: urlRoot, Key: key, Secret: secret}

	return c.entries.Get(ctx, creds.CacheKey(), func(ctx context.Context) (string, time.Time, error) {
		c.logger.Debug("exchanging API credentials for token", map[string]interface{}{
			"api_url_root": urlRoot,
			"api_key":      key,
		})

		token, err := c.exchanger.ExchangeToken(ctx, creds)
		if err != nil {
			return "", time.Time{}, xcoobee.TransformError(err)
		}

		if token == nil || token.AccessToken == "" {
			return "", time.Time{}, xcoobee.TransformError(constants.ErrEmptyToken)
		}

		return token.AccessToken, token.Expiry(c.now()), nil
	})
}

// Invalidate drops the cached token for the triple.
func (c *TokenCache) Invalidate(urlRoot, key, secret string) {
	c.entries.Evict(xcoobee.Credentials{URLRoot: urlRoot, Key: key, Secret: secret}.CacheKey())
}

// Stats returns the underlying cache counters.
func (c *TokenCache) Stats() cache.Stats {
	return c.entries.Stats()
}
