package json

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/familycoin/go-familycoin/transport"
	thttp "github.com/familycoin/go-familycoin/transport/http"
)

func TestEncode(t *testing.T) {
	codec := NewOutboundCodec()

	t.Run("body", func(t *testing.T) {
		hdrs := http.Header{"X-Request-Id": {"1"}}
		req, err := codec.Encode(http.MethodPost, "/transaction", map[string]string{"message_json": "{}"}, hdrs, nil)
		require.NoError(t, err)
		require.Equal(t, http.MethodPost, req.Method())
		require.Equal(t, "/transaction", req.Path())
		require.Equal(t, ContentType, req.Headers().Get("Content-Type"))
		require.Equal(t, ContentType, req.Headers().Get("Accept"))
		require.Equal(t, "1", req.Headers().Get("X-Request-Id"))
		require.Empty(t, hdrs.Get("Accept"))

		b, err := io.ReadAll(req.Body())
		require.NoError(t, err)
		require.JSONEq(t, `{"message_json":"{}"}`, string(b))
	})

	t.Run("no body", func(t *testing.T) {
		req, err := codec.Encode(http.MethodGet, "/balance", nil, nil, nil)
		require.NoError(t, err)
		require.Nil(t, req.Body())
		require.Empty(t, req.Headers().Get("Content-Type"))
	})

	t.Run("unencodable body", func(t *testing.T) {
		_, err := codec.Encode(http.MethodPost, "/", make(chan int), nil, nil)
		require.ErrorIs(t, err, transport.ErrInvalidRequest)
	})
}

func TestDecode(t *testing.T) {
	codec := NewOutboundCodec()
	respond := func(body string) transport.HTTPResponse {
		return thttp.NewResponse(http.StatusOK, io.NopCloser(strings.NewReader(body)), http.Header{})
	}

	data, err := codec.Decode(respond(`{"balance": 5}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"balance":5}`, string(data))

	data, err = codec.Decode(respond(""))
	require.NoError(t, err)
	require.Equal(t, "null", string(data))

	_, err = codec.Decode(respond("<html>"))
	require.Error(t, err)
}
