package transport

import (
	"encoding/json"
	"net/http"
	"net/url"
)

type RequestEncoder interface {
	Encode(method, path string, body any, headers http.Header, params url.Values) (HTTPRequest, error)
}

type ResponseDecoder interface {
	Decode(response HTTPResponse) (json.RawMessage, error)
}

type OutboundCodec interface {
	RequestEncoder
	ResponseDecoder
}
