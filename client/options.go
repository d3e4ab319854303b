package client

import (
	"fmt"
	"net/http"
	"time"

	"github.com/familycoin/go-familycoin/client/deauth"
	"github.com/familycoin/go-familycoin/transport"
)

const (
	// DefaultTimeout bounds a whole request, including reading the response.
	DefaultTimeout = 15 * time.Second
	// DefaultCacheTTL is how long a cached GET response stays fresh.
	DefaultCacheTTL = 60 * time.Second
	// DefaultCacheSize is the number of GET responses kept by the cache.
	DefaultCacheSize = 256
)

// Option is an option configuring a client.
type Option func(cfg *clientConfig) error

type clientConfig struct {
	channel    transport.Channel
	codec      transport.OutboundCodec
	httpClient *http.Client
	timeout    time.Duration
	notifier   deauth.Notifier
	classifier AuthClassifier
	headers    http.Header
	cacheSize  int
	cacheTTL   time.Duration
}

// WithChannel configures the channel requests are sent over. It takes
// precedence over [WithHTTPClient] and [WithTimeout].
func WithChannel(ch transport.Channel) Option {
	return func(cfg *clientConfig) error {
		cfg.channel = ch
		return nil
	}
}

// WithCodec configures how request bodies are encoded and responses decoded.
func WithCodec(codec transport.OutboundCodec) Option {
	return func(cfg *clientConfig) error {
		cfg.codec = codec
		return nil
	}
}

// WithHTTPClient configures the HTTP client used by the default channel. The
// client's own timeout is used as is.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithTimeout configures the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
		cfg.timeout = d
		return nil
	}
}

// WithDeauthNotifier configures the notifier invoked when a response is
// classified as an authentication failure.
func WithDeauthNotifier(n deauth.Notifier) Option {
	return func(cfg *clientConfig) error {
		cfg.notifier = n
		return nil
	}
}

// WithAuthClassifier configures how server errors are classified. The default
// is [StatusClassifier].
func WithAuthClassifier(c AuthClassifier) Option {
	return func(cfg *clientConfig) error {
		cfg.classifier = c
		return nil
	}
}

// WithHeader adds a header sent with every request. Headers passed to
// [Client.Issue] take precedence.
func WithHeader(key, value string) Option {
	return func(cfg *clientConfig) error {
		if cfg.headers == nil {
			cfg.headers = http.Header{}
		}
		cfg.headers.Add(key, value)
		return nil
	}
}

// WithResponseCache caches successful GET responses in memory. A size less
// than 1 uses [DefaultCacheSize] and a ttl less than or equal to 0 uses
// [DefaultCacheTTL].
func WithResponseCache(size int, ttl time.Duration) Option {
	return func(cfg *clientConfig) error {
		if size <= 0 {
			size = DefaultCacheSize
		}
		if ttl <= 0 {
			ttl = DefaultCacheTTL
		}
		cfg.cacheSize = size
		cfg.cacheTTL = ttl
		return nil
	}
}
