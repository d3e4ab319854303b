package client

import (
	"fmt"
	"net/http"

	"github.com/familycoin/go-familycoin/core/result/failure"
)

const (
	requestSetupMessage = "request could not be sent"
	networkMessage      = "failed to connect to the backend, please make sure the service is running"
)

// RequestSetupError is returned when a request could not be built, so nothing
// was sent.
type RequestSetupError struct {
	failure.NamedWithStackTrace
	cause error
}

func newRequestSetupError(cause error) RequestSetupError {
	return RequestSetupError{failure.NamedWithCurrentStackTrace("RequestSetupError"), cause}
}

func (e RequestSetupError) Error() string {
	return requestSetupMessage
}

func (e RequestSetupError) Unwrap() error {
	return e.cause
}

// NetworkError is returned when a request was sent but no response arrived.
type NetworkError struct {
	failure.NamedWithStackTrace
	cause error
}

func newNetworkError(cause error) NetworkError {
	return NetworkError{failure.NamedWithCurrentStackTrace("NetworkError"), cause}
}

func (e NetworkError) Error() string {
	return networkMessage
}

func (e NetworkError) Unwrap() error {
	return e.cause
}

// ServerError is returned when the backend answered with an unsuccessful
// status, or with a body that could not be read.
type ServerError struct {
	failure.NamedWithStackTrace
	// Status is the HTTP status code of the response.
	Status int
	// Detail is the "detail" field of the response body, if present.
	Detail string
	cause  error
}

func newServerError(status int, detail string, cause error) ServerError {
	return ServerError{failure.NamedWithCurrentStackTrace("ServerError"), status, detail, cause}
}

func (e ServerError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, http.StatusText(e.Status))
}

func (e ServerError) Unwrap() error {
	return e.cause
}
