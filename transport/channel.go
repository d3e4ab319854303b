package transport

import (
	"context"
	"errors"
)

// ErrInvalidRequest is wrapped by channels when a request cannot be built
// before anything is sent.
var ErrInvalidRequest = errors.New("invalid request")

type Channel interface {
	Request(ctx context.Context, request HTTPRequest) (HTTPResponse, error)
}
