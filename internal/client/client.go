package client

import (
	"net/http"
	"sync"
	"time"

	"github.com/xcoobee/xcoobee-go-sdk/internal/api"
	"github.com/xcoobee/xcoobee-go-sdk/internal/auth"
	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
	xchttp "github.com/xcoobee/xcoobee-go-sdk/internal/http"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

// Options tunes the pieces a Client is assembled from. Zero values select
// the defaults.
type Options struct {
	Logger        xcoobee.Logger
	Debug         bool
	UserAgent     string
	Headers       map[string]string
	HTTPClient    *http.Client
	HTTPTimeout   time.Duration
	RetryMax      int
	RetryWaitMin  time.Duration
	RetryWaitMax  time.Duration
	UserRecordTTL time.Duration
	PageSize      int
	Clock         func() time.Time
}

// Client implements the xcoobee.Client interface.
type Client struct {
	mu     sync.RWMutex
	config *xcoobee.Config

	api      *api.API
	tokens   *auth.TokenCache
	users    *auth.UsersCache
	logger   xcoobee.Logger
	pageSize int

	consents *ConsentsClient
}

// New creates a client. config may be nil and set later with SetConfig.
func New(config *xcoobee.Config, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = xcoobee.NopLogger{}
	}

	platform := api.New(xchttp.NewClient(createHTTPClientOptions(opts, logger)...))

	cacheOpts := []auth.Option{auth.WithLogger(logger)}
	if opts.Clock != nil {
		cacheOpts = append(cacheOpts, auth.WithClock(opts.Clock))
	}

	tokens := auth.NewTokenCache(platform, cacheOpts...)

	userTTL := constants.DefaultUserRecordTTL
	if opts.UserRecordTTL > 0 {
		userTTL = opts.UserRecordTTL
	}

	users := auth.NewUsersCache(tokens, platform, append(cacheOpts, auth.WithTTL(userTTL))...)

	client := &Client{
		api:      platform,
		tokens:   tokens,
		users:    users,
		logger:   logger,
		pageSize: opts.PageSize,
	}
	client.SetConfig(config)
	client.consents = NewConsentsClient(client)

	return client
}

// createHTTPClientOptions builds HTTP client options from opts.
func createHTTPClientOptions(opts Options, logger xcoobee.Logger) []xchttp.Option {
	httpOpts := []xchttp.Option{xchttp.WithLogger(logger)}

	if opts.HTTPClient != nil {
		httpOpts = append(httpOpts, xchttp.WithHTTPClient(opts.HTTPClient))
	}

	if opts.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, xchttp.WithTimeout(opts.HTTPTimeout))
	}

	if opts.Debug {
		httpOpts = append(httpOpts, xchttp.WithDebug(true))
	}

	if opts.UserAgent != "" {
		httpOpts = append(httpOpts, xchttp.WithUserAgent(opts.UserAgent))
	}

	if len(opts.Headers) > 0 {
		httpOpts = append(httpOpts, xchttp.WithHeaders(opts.Headers))
	}

	if opts.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if opts.RetryWaitMin > 0 {
			retryWaitMin = opts.RetryWaitMin
		}

		if opts.RetryWaitMax > 0 {
			retryWaitMax = opts.RetryWaitMax
		}

		httpOpts = append(httpOpts, xchttp.WithRetryConfig(opts.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// Consents implements xcoobee.Client.Consents.
func (c *Client) Consents() xcoobee.ConsentsClient {
	return c.consents
}

// SetConfig implements xcoobee.Client.SetConfig. The config is copied.
func (c *Client) SetConfig(config *xcoobee.Config) {
	var stored *xcoobee.Config

	if config != nil {
		clone := *config
		stored = &clone
	}

	c.mu.Lock()
	c.config = stored
	c.mu.Unlock()
}

// Config implements xcoobee.Client.Config. It returns a copy, or nil when no
// default config is set.
func (c *Client) Config() *xcoobee.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.config == nil {
		return nil
	}

	clone := *c.config

	return &clone
}

// TokenCache exposes the token cache, mainly for cache statistics.
func (c *Client) TokenCache() *auth.TokenCache {
	return c.tokens
}

// UsersCache exposes the user record cache.
func (c *Client) UsersCache() *auth.UsersCache {
	return c.users
}

func (c *Client) defaultConfig() (*xcoobee.Config, error) {
	config := c.Config()
	if config == nil {
		return nil, &xcoobee.ConfigError{Err: xcoobee.ErrNoDefaultConfig}
	}

	return config, nil
}
