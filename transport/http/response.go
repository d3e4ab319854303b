package http

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/familycoin/go-familycoin/transport"
)

type Request struct {
	method string
	path   string
	query  url.Values
	hdrs   http.Header
	body   io.Reader
}

func (req *Request) Method() string {
	return req.method
}

func (req *Request) Path() string {
	return req.path
}

func (req *Request) Query() url.Values {
	return req.query
}

func (req *Request) Headers() http.Header {
	return req.hdrs
}

func (req *Request) Body() io.Reader {
	return req.body
}

var _ transport.HTTPRequest = (*Request)(nil)

type Response struct {
	ctx    context.Context
	status int
	hdrs   http.Header
	body   io.ReadCloser
}

func (res *Response) Status() int {
	return res.status
}

func (res *Response) Headers() http.Header {
	return res.hdrs
}

func (res *Response) Body() io.ReadCloser {
	return res.body
}

// Context carries the trace context extracted from the response headers.
func (res *Response) Context() context.Context {
	if res.ctx == nil {
		return context.Background()
	}
	return res.ctx
}

var _ transport.HTTPResponse = (*Response)(nil)

func NewResponse(status int, body io.ReadCloser, headers http.Header) *Response {
	return NewResponseWithContext(context.Background(), status, body, headers)
}

func NewResponseWithContext(ctx context.Context, status int, body io.ReadCloser, headers http.Header) *Response {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Response{ctx: ctx, status: status, hdrs: headers, body: body}
}

// NewRequest creates a [transport.HTTPRequest] using the channel's default
// method and endpoint path.
func NewRequest(body io.Reader, headers http.Header) *Request {
	return &Request{hdrs: headers, body: body}
}

// NewRequestTo creates a [transport.HTTPRequest] for method and path, relative
// to the channel endpoint.
func NewRequestTo(method, path string, query url.Values, body io.Reader, headers http.Header) *Request {
	return &Request{method, path, query, headers, body}
}
