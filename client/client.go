// Package client sends requests to the FamilyCoin HTTP API and turns every
// outcome into either response data or a classified error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"
	logging "github.com/ipfs/go-log/v2"

	"github.com/familycoin/go-familycoin/client/deauth"
	"github.com/familycoin/go-familycoin/core/payload"
	"github.com/familycoin/go-familycoin/principal"
	"github.com/familycoin/go-familycoin/transport"
	thttp "github.com/familycoin/go-familycoin/transport/http"
	tjson "github.com/familycoin/go-familycoin/transport/json"
)

var log = logging.Logger("client")

type Client struct {
	endpoint   *url.URL
	channel    transport.Channel
	codec      transport.OutboundCodec
	notifier   deauth.Notifier
	classifier AuthClassifier
	headers    http.Header
	cache      *expirable.LRU[string, json.RawMessage]
}

// New creates a client for the API served at endpoint.
func New(endpoint *url.URL, options ...Option) (*Client, error) {
	if endpoint == nil {
		return nil, errors.New("missing endpoint")
	}
	if endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q", endpoint.String())
	}

	cfg := clientConfig{timeout: DefaultTimeout}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.channel == nil {
		hc := cfg.httpClient
		if hc == nil {
			hc = &http.Client{Timeout: cfg.timeout}
		}
		cfg.channel = thttp.NewChannel(endpoint, thttp.WithClient(hc))
	}
	if cfg.codec == nil {
		cfg.codec = tjson.NewOutboundCodec()
	}
	if cfg.classifier == nil {
		cfg.classifier = StatusClassifier
	}

	c := Client{
		endpoint:   endpoint,
		channel:    cfg.channel,
		codec:      cfg.codec,
		notifier:   cfg.notifier,
		classifier: cfg.classifier,
		headers:    cfg.headers,
	}
	if cfg.cacheSize > 0 {
		c.cache = expirable.NewLRU[string, json.RawMessage](cfg.cacheSize, nil, cfg.cacheTTL)
	}
	return &c, nil
}

// Endpoint returns the base URL requests are sent to.
func (c *Client) Endpoint() *url.URL {
	return c.endpoint
}

// Issue sends a request and returns the response data. Exactly one of the
// returned values is non-nil. The error is a [RequestSetupError],
// [NetworkError] or [ServerError]. When a [ServerError] is classified as an
// authentication failure the deauth notifier is invoked once before Issue
// returns.
func (c *Client) Issue(ctx context.Context, method, path string, body any, headers http.Header, params url.Values) (json.RawMessage, error) {
	method = strings.ToUpper(method)
	if method == "" {
		method = http.MethodGet
	}

	var key string
	if c.cache != nil && method == http.MethodGet {
		key = cacheKey(path, params)
		if data, ok := c.cache.Get(key); ok {
			log.Debugw("cache hit", "path", path)
			return bytes.Clone(data), nil
		}
	}

	hdrs := c.headers.Clone()
	if hdrs == nil {
		hdrs = http.Header{}
	}
	for k, v := range headers {
		hdrs[k] = v
	}

	req, err := c.codec.Encode(method, path, body, hdrs, params)
	if err != nil {
		return nil, newRequestSetupError(err)
	}

	res, err := c.channel.Request(ctx, req)
	if err != nil {
		var herr transport.HTTPError
		if errors.As(err, &herr) {
			return nil, c.serverError(method, path, herr)
		}
		if errors.Is(err, transport.ErrInvalidRequest) {
			return nil, newRequestSetupError(err)
		}
		log.Warnw("no response", "method", method, "path", path, "error", err)
		return nil, newNetworkError(err)
	}

	data, err := c.codec.Decode(res)
	if err != nil {
		return nil, newServerError(res.Status(), "", err)
	}

	if key != "" {
		c.cache.Add(key, bytes.Clone(data))
	}
	return data, nil
}

func (c *Client) serverError(method, path string, herr transport.HTTPError) ServerError {
	serr := newServerError(herr.Status(), parseDetail(herr.Body()), herr)
	if c.classifier.IsAuthFailure(serr) {
		log.Warnw("authentication failure", "method", method, "path", path, "status", serr.Status)
		if c.notifier != nil {
			c.notifier.Notify()
		}
	} else {
		log.Debugw("request failed", "method", method, "path", path, "status", serr.Status)
	}
	return serr
}

// parseDetail extracts the "detail" field of an error body. Non-string
// details, such as validation error lists, are returned as compact JSON.
func parseDetail(body []byte) string {
	var e struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err != nil || len(e.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return s
	}
	if string(e.Detail) == "null" {
		return ""
	}
	return string(e.Detail)
}

func cacheKey(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

// Get issues a GET request with query parameters.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	return c.Issue(ctx, http.MethodGet, path, nil, nil, params)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Issue(ctx, http.MethodPost, path, body, nil, nil)
}

// SignedPost signs msg with s and posts the resulting payload.
func (c *Client) SignedPost(ctx context.Context, path string, s principal.Signer, msg any) (json.RawMessage, error) {
	p, err := payload.SignWith(s, msg)
	if err != nil {
		return nil, err
	}
	log.Debugw("posting signed message", "path", path, "signer", s.DID(), "link", payload.Link(p))
	return c.Post(ctx, path, p)
}

// Purge drops all cached GET responses.
func (c *Client) Purge() {
	if c.cache != nil {
		c.cache.Purge()
	}
}
