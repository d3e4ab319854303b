package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"

	logging "github.com/ipfs/go-log/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/familycoin/go-familycoin/transport"
)

var log = logging.Logger("transport/http")

// maxErrorBodySize bounds how much of an unsuccessful response is buffered.
const maxErrorBodySize = 1 << 20

// Option is an option configuring a HTTP channel.
type Option func(cfg *chanConfig)

type chanConfig struct {
	client   *http.Client
	method   string
	statuses []int
	headers  http.Header
}

// WithClient configures the HTTP client the channel should use to make
// requests.
func WithClient(c *http.Client) Option {
	return func(cfg *chanConfig) {
		cfg.client = c
	}
}

// WithMethod configures the HTTP method the channel should use when a request
// does not specify one.
func WithMethod(method string) Option {
	return func(cfg *chanConfig) {
		cfg.method = method
	}
}

// WithSuccessStatusCode configures the HTTP status code(s) that will indicate a
// successful request. By default any 2xx status is successful.
func WithSuccessStatusCode(codes ...int) Option {
	return func(cfg *chanConfig) {
		cfg.statuses = codes
	}
}

// WithHeaders configures additional HTTP headers to send with every request.
// Headers set on the request itself take precedence.
func WithHeaders(h http.Header) Option {
	return func(cfg *chanConfig) {
		cfg.headers = h
	}
}

type channel struct {
	url      *url.URL
	client   *http.Client
	method   string
	statuses []int
	headers  http.Header
}

func (c *channel) Request(ctx context.Context, req transport.HTTPRequest) (transport.HTTPResponse, error) {
	method := req.Method()
	if method == "" {
		method = c.method
	}

	u, err := c.resolve(req.Path(), req.Query())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", transport.ErrInvalidRequest, err)
	}

	hr, err := http.NewRequestWithContext(ctx, method, u.String(), req.Body())
	if err != nil {
		return nil, fmt.Errorf("%w: creating HTTP request: %w", transport.ErrInvalidRequest, err)
	}

	hr.Header = c.headers.Clone()
	if hr.Header == nil {
		hr.Header = http.Header{}
	}
	for k, v := range req.Headers() {
		hr.Header[k] = v
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(hr.Header))

	res, err := c.client.Do(hr)
	if err != nil {
		return nil, fmt.Errorf("doing HTTP request: %w", err)
	}
	log.Debugw("HTTP request", "method", hr.Method, "url", u.Redacted(), "status", res.StatusCode)

	if !c.success(res.StatusCode) {
		defer res.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodySize))
		return nil, NewHTTPError(fmt.Sprintf("HTTP Request failed. %s %s → %d", hr.Method, u.Redacted(), res.StatusCode), res.StatusCode, res.Header, body)
	}

	rctx := otel.GetTextMapPropagator().Extract(ctx, propagation.HeaderCarrier(res.Header))
	return NewResponseWithContext(rctx, res.StatusCode, res.Body, res.Header), nil
}

// resolve joins path below the endpoint. Query parameters of the endpoint, of
// path and of query are all kept, in that order.
func (c *channel) resolve(path string, query url.Values) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parsing path: %w", err)
	}
	if ref.Scheme != "" || ref.Host != "" {
		return nil, fmt.Errorf("path %q must be relative to the endpoint", path)
	}

	u := c.url.JoinPath(ref.EscapedPath())
	q := c.url.Query()
	for _, vs := range []url.Values{ref.Query(), query} {
		for k, v := range vs {
			q[k] = append(q[k], v...)
		}
	}
	u.RawQuery = q.Encode()
	return u, nil
}

func (c *channel) success(status int) bool {
	if len(c.statuses) == 0 {
		return status >= 200 && status < 300
	}
	return slices.Contains(c.statuses, status)
}

// NewChannel creates a [transport.Channel] that sends requests to paths below
// url.
func NewChannel(url *url.URL, options ...Option) transport.Channel {
	cfg := chanConfig{}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.client == nil {
		cfg.client = &http.Client{}
	}
	if cfg.method == "" {
		cfg.method = http.MethodPost
	}
	return &channel{
		url:      url,
		client:   cfg.client,
		method:   cfg.method,
		statuses: cfg.statuses,
		headers:  cfg.headers,
	}
}
