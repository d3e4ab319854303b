package http

import (
	nethttp "net/http"

	"github.com/familycoin/go-familycoin/transport"
)

type httpError struct {
	message string
	status  int
	headers nethttp.Header
	body    []byte
}

func (err *httpError) Error() string {
	return err.message
}

func (err *httpError) Name() string {
	return "HTTPError"
}

func (err *httpError) Status() int {
	return err.status
}

func (err *httpError) Headers() nethttp.Header {
	return err.headers
}

func (err *httpError) Body() []byte {
	return err.body
}

func NewHTTPError(message string, status int, headers nethttp.Header, body []byte) transport.HTTPError {
	return &httpError{message, status, headers, body}
}
