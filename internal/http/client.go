package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

// Client is the transport shared by every platform call. It is not bound to
// one API root: each Request names the root it targets.
type Client struct {
	httpClient   *retryablehttp.Client
	logger       xcoobee.Logger
	debug        bool
	userAgent    string
	interceptors *InterceptorChain
}

// Request represents an HTTP request.
type Request struct {
	Method  string
	URLRoot string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
	// Token is sent verbatim in the Authorization header when set.
	Token string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger xcoobee.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig enables retries of 5xx, 429 and connection failures.
// Retries are off unless this option is given.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithInterceptors sets the request/response interceptor chain. It replaces
// headers added by an earlier WithHeaders.
func WithInterceptors(chain *InterceptorChain) Option {
	return func(c *Client) {
		if chain != nil {
			c.interceptors = chain
		}
	}
}

// WithHeaders adds fixed headers to every request. Headers set on a Request
// take precedence.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		if len(headers) > 0 {
			c.interceptors.AddRequestInterceptor(HeaderInterceptor(headers))
		}
	}
}

// NewClient creates a new HTTP client.
func NewClient(opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	// Keep the final response instead of a "giving up" error so callers can
	// read the status and body.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		httpClient:   retryClient,
		logger:       xcoobee.NopLogger{},
		userAgent:    constants.DefaultUserAgent,
		interceptors: NewInterceptorChain(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.debug {
		client.interceptors.AddRequestInterceptor(LoggingRequestInterceptor(client.logger))
		client.interceptors.AddResponseInterceptor(LoggingResponseInterceptor(client.logger))
	}

	return client
}

// Do executes an HTTP request. A non-2xx status returns both the response and
// a *xcoobee.ResponseError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	err := c.interceptors.ExecuteRequestInterceptors(ctx, req)
	if err != nil {
		return nil, err
	}

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Headers:    httpResp.Header,
	}

	err = c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil {
		return resp, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, parseErrorBody(resp)
	}

	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	target, err := url.Parse(strings.TrimRight(req.URLRoot, "/") + req.Path)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}

	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	var body io.Reader

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		body = bytes.NewReader(data)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if req.Token != "" {
		httpReq.Header.Set("Authorization", req.Token)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

func parseErrorBody(resp *Response) error {
	respErr, err := xcoobee.ParseResponseError(resp.StatusCode, resp.Body)
	if err != nil || respErr == nil {
		return &xcoobee.ResponseError{StatusCode: resp.StatusCode}
	}

	return respErr
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, urlRoot, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, URLRoot: urlRoot, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, urlRoot, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, URLRoot: urlRoot, Path: path, Body: body})
}
