package signature

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignature(t *testing.T) {
	t.Run("format parse", func(t *testing.T) {
		raw := bytes.Repeat([]byte{7}, 64)
		s := NewSignature(raw)
		require.Equal(t, uint64(EdDSA), s.Code())
		require.Equal(t, uint64(64), s.Size())

		str := Format(s)
		d, err := Parse(str)
		require.NoError(t, err)
		require.Equal(t, raw, d.Raw())
	})

	t.Run("copies input", func(t *testing.T) {
		raw := bytes.Repeat([]byte{1}, 64)
		s := NewSignature(raw)
		raw[0] = 9
		require.Equal(t, byte(1), s.Raw()[0])
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := Parse("not base64!")
		require.Error(t, err)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := Parse(Format(NewSignature([]byte{1, 2, 3})))
		require.ErrorContains(t, err, "invalid signature length")
	})
}
