// Package json implements the outbound codec for the JSON HTTP API: request
// bodies are JSON documents and successful responses are returned as raw JSON.
package json

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/familycoin/go-familycoin/transport"
	thttp "github.com/familycoin/go-familycoin/transport/http"
)

const ContentType = "application/json"

var null = stdjson.RawMessage("null")

type codec struct{}

// Encode builds a request for method and path. A nil body sends no content.
func (codec) Encode(method, path string, body any, headers http.Header, params url.Values) (transport.HTTPRequest, error) {
	hdrs := headers.Clone()
	if hdrs == nil {
		hdrs = http.Header{}
	}
	hdrs.Set("Accept", ContentType)

	var r io.Reader
	if body != nil {
		b, err := stdjson.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding body: %w", transport.ErrInvalidRequest, err)
		}
		r = bytes.NewReader(b)
		if hdrs.Get("Content-Type") == "" {
			hdrs.Set("Content-Type", ContentType)
		}
	}
	return thttp.NewRequestTo(method, path, params, r, hdrs), nil
}

// Decode reads the whole response body. An empty body decodes to null.
func (codec) Decode(response transport.HTTPResponse) (stdjson.RawMessage, error) {
	defer response.Body().Close()
	b, err := io.ReadAll(response.Body())
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return null, nil
	}
	if !stdjson.Valid(b) {
		return nil, fmt.Errorf("response body is not valid JSON")
	}
	return stdjson.RawMessage(b), nil
}

// NewOutboundCodec creates the JSON [transport.OutboundCodec].
func NewOutboundCodec() transport.OutboundCodec {
	return codec{}
}
