package verifier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/familycoin/go-familycoin/testing/fixtures"
)

func TestMemoryCache(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		cache, err := NewMemoryCache(5)
		require.NoError(t, err)

		v, err := cache.Get(fixtures.AlicePublicKeyPEM)
		require.NoError(t, err)
		require.Equal(t, fixtures.AliceDID, v.DID().String())
		require.Equal(t, 1, cache.Len())

		again, err := cache.Get(fixtures.AlicePublicKeyPEM)
		require.NoError(t, err)
		require.Equal(t, v, again)
		require.Equal(t, 1, cache.Len())
	})

	t.Run("evicts", func(t *testing.T) {
		cache, err := NewMemoryCache(1)
		require.NoError(t, err)

		_, err = cache.Get(fixtures.AlicePublicKeyPEM)
		require.NoError(t, err)
		_, err = cache.Get(fixtures.BobPublicKeyPEM)
		require.NoError(t, err)
		require.Equal(t, 1, cache.Len())
	})

	t.Run("invalid is not cached", func(t *testing.T) {
		cache, err := NewMemoryCache(5)
		require.NoError(t, err)

		_, err = cache.Get("not a pem")
		require.Error(t, err)
		require.Equal(t, 0, cache.Len())
	})

	t.Run("uses default size if not specified", func(t *testing.T) {
		cache, err := NewMemoryCache(-1)
		require.NoError(t, err)
		require.NotNil(t, cache)
	})
}
