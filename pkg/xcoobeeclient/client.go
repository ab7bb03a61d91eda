// Package xcoobeeclient provides the main entry point for creating XcooBee SDK clients
package xcoobeeclient

import (
	"crypto/tls"
	"net/http"
	"strings"
	"time"

	"github.com/xcoobee/xcoobee-go-sdk/internal/client"
	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

// Option configures a client built by New.
type Option func(*client.Options)

// WithLogger sets the logger used by caches and transport.
func WithLogger(logger xcoobee.Logger) Option {
	return func(o *client.Options) {
		o.Logger = logger
	}
}

// WithDebug logs every HTTP request and response at debug level.
func WithDebug(debug bool) Option {
	return func(o *client.Options) {
		o.Debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *client.Options) {
		o.UserAgent = userAgent
	}
}

// WithHeaders adds fixed headers to every request sent to the platform.
func WithHeaders(headers map[string]string) Option {
	return func(o *client.Options) {
		if o.Headers == nil {
			o.Headers = make(map[string]string, len(headers))
		}

		for key, value := range headers {
			o.Headers[key] = value
		}
	}
}

// WithHTTPTimeout sets the per-request timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(o *client.Options) {
		o.HTTPTimeout = timeout
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *client.Options) {
		o.HTTPClient = httpClient
	}
}

// WithSkipTLSVerify disables certificate verification. Intended for local
// development servers only.
func WithSkipTLSVerify(skip bool) Option {
	return func(o *client.Options) {
		if !skip {
			return
		}

		o.HTTPClient = &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // opt-in for development servers
			},
		}
	}
}

// WithRetryConfig enables transport retries of 5xx, 429 and connection
// failures. Nothing is retried by default.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(o *client.Options) {
		o.RetryMax = maxRetries
		o.RetryWaitMin = waitMin
		o.RetryWaitMax = waitMax
	}
}

// WithUserRecordTTL sets how long user records stay cached.
func WithUserRecordTTL(ttl time.Duration) Option {
	return func(o *client.Options) {
		o.UserRecordTTL = ttl
	}
}

// WithPageSize sets the page size requested by list operations. Zero leaves
// the choice to the platform.
func WithPageSize(size int) Option {
	return func(o *client.Options) {
		o.PageSize = size
	}
}

// WithClock sets the clock the caches use for expiry.
func WithClock(now func() time.Time) Option {
	return func(o *client.Options) {
		o.Clock = now
	}
}

// New creates a new XcooBee client. config becomes the default config and may
// be nil, in which case every operation fails until SetConfig is called. The
// caller's config is not modified.
func New(config *xcoobee.Config, opts ...Option) xcoobee.Client {
	var options client.Options
	for _, opt := range opts {
		opt(&options)
	}

	if config != nil {
		normalized := *config
		normalized.APIURLRoot = NormalizeURLRoot(normalized.APIURLRoot)
		config = &normalized
	}

	return client.New(config, options)
}

// NewWithCredentials creates a new client from an API URL root, key and secret.
func NewWithCredentials(urlRoot, key, secret string, opts ...Option) xcoobee.Client {
	return New(&xcoobee.Config{
		APIURLRoot: urlRoot,
		APIKey:     key,
		APISecret:  secret,
	}, opts...)
}

// NormalizeURLRoot drops trailing slashes and defaults the scheme to https.
// An empty root stays empty.
func NormalizeURLRoot(urlRoot string) string {
	urlRoot = strings.TrimRight(strings.TrimSpace(urlRoot), "/")
	if urlRoot == "" {
		return ""
	}

	if !strings.HasPrefix(urlRoot, "http://") && !strings.HasPrefix(urlRoot, "https://") {
		urlRoot = "https://" + urlRoot
	}

	return urlRoot
}
