package client

import (
	"net/http"
	"strings"
)

// AuthClassifier decides whether a server error means the session is no
// longer authenticated.
type AuthClassifier interface {
	IsAuthFailure(err ServerError) bool
}

// AuthClassifierFunc adapts a function to the [AuthClassifier] interface.
type AuthClassifierFunc func(err ServerError) bool

func (f AuthClassifierFunc) IsAuthFailure(err ServerError) bool {
	return f(err)
}

// StatusClassifier treats only 401 Unauthorized as an authentication failure.
var StatusClassifier AuthClassifier = AuthClassifierFunc(func(err ServerError) bool {
	return err.Status == http.StatusUnauthorized
})

var authFailureDetails = []string{"unauthorized", "not found", "invalid signature", "签名无效"}

// DetailClassifier additionally treats 403 and 404 responses as
// authentication failures when their detail mentions an unknown or
// unauthorized key. It matches text, so it can misfire on unrelated 404s.
var DetailClassifier AuthClassifier = AuthClassifierFunc(func(err ServerError) bool {
	switch err.Status {
	case http.StatusUnauthorized:
		return true
	case http.StatusForbidden, http.StatusNotFound:
		detail := strings.ToLower(err.Detail)
		for _, s := range authFailureDetails {
			if strings.Contains(detail, s) {
				return true
			}
		}
	}
	return false
})
