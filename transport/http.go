package transport

import (
	"io"
	"net/http"
	"net/url"

	"github.com/familycoin/go-familycoin/core/result/failure"
)

type HTTPRequest interface {
	Method() string
	// Path is resolved against the channel endpoint.
	Path() string
	Query() url.Values
	Headers() http.Header
	Body() io.Reader
}

type HTTPResponse interface {
	Status() int
	Headers() http.Header
	Body() io.ReadCloser
}

// HTTPError is returned by a channel when the server answered with a status
// that is not considered successful.
type HTTPError interface {
	failure.Failure
	Status() int
	Headers() http.Header
	// Body is the (possibly truncated) response body.
	Body() []byte
}
