package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/angelmondragon/mahalaxmi-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/logger"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	errorBodyReadLimit int64 = 4096
	userAgent                = "mahalaxmi-storefront"
)

var (
	errBaseURLRequired = errors.New("backend base url is required")
	numericSegment     = regexp.MustCompile(`/\d+(/|$)`)
)

// API is the request surface the domain services depend on.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, query url.Values, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// Client talks JSON to the commerce backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logg       *logger.Logger
	metrics    *metrics.BackendMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the instrumented default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logg = logg
	}
}

func WithMetrics(m *metrics.BackendMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New builds a backend client from config. The transport is traced through otelhttp;
// no timeout is applied unless one is configured.
func New(cfg config.BackendConfig, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" {
		return nil, errBaseURLRequired
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.MaxIdleConns > 0 {
		transport.MaxIdleConns = cfg.MaxIdleConns
		transport.MaxIdleConnsPerHost = cfg.MaxIdleConns
	}

	client := &Client{
		baseURL: base,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   cfg.Timeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.logg == nil {
		client.logg = logger.Nop()
	}
	return client, nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, query, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do performs one backend call. A non-2xx status comes back as a pkg/errors value;
// a 401 is always CodeUnauthorized and is never retried here.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "backend client not configured")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal backend request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build backend request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	route := RouteLabel(path)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.Observe(method, route, 0, time.Since(start))
		c.logg.Error(c.logg.WithFields(ctx, map[string]any{"method": method, "route": route}), "backend.request", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "backend unreachable")
	}
	defer func() { _ = resp.Body.Close() }()
	c.metrics.Observe(method, route, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		callErr := newStatusError(method, path, resp.StatusCode, raw)
		c.logg.Warn(c.logg.WithFields(ctx, map[string]any{
			"method": method,
			"route":  route,
			"status": resp.StatusCode,
		}), "backend.request")
		return callErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode backend response")
	}
	return nil
}

func (c *Client) buildURL(path string, query url.Values) string {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

// RouteLabel collapses numeric path segments so metric labels stay bounded.
func RouteLabel(path string) string {
	path = "/" + strings.Trim(path, "/")
	for numericSegment.MatchString(path) {
		path = numericSegment.ReplaceAllString(path, "/{id}$1")
	}
	return path
}
