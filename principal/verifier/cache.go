// Package verifier caches parsed public keys so that verifying many payloads
// from the same wallet does not re-parse its PEM every time.
package verifier

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/familycoin/go-familycoin/principal"
	edverifier "github.com/familycoin/go-familycoin/principal/ed25519/verifier"
)

var MemoryCacheSize = 100

type MemoryCache struct {
	data *lru.Cache[string, principal.Verifier]
}

// Get returns the verifier for a SubjectPublicKeyInfo PEM, parsing and caching
// it on a miss. Parse failures are not cached.
func (m *MemoryCache) Get(pem string) (principal.Verifier, error) {
	if v, ok := m.data.Get(pem); ok {
		return v, nil
	}
	v, err := edverifier.ParsePEM(pem)
	if err != nil {
		return nil, err
	}
	m.data.Add(pem, v)
	return v, nil
}

// Len returns the number of cached verifiers.
func (m *MemoryCache) Len() int {
	return m.data.Len()
}

// NewMemoryCache creates a new in memory LRU cache of verifiers keyed by PEM.
// Pass a value less than 1 to use the default cache size [MemoryCacheSize].
func NewMemoryCache(size int) (*MemoryCache, error) {
	if size <= 0 {
		size = MemoryCacheSize
	}
	cache, err := lru.New[string, principal.Verifier](size)
	if err != nil {
		return nil, fmt.Errorf("creating verifier LRU: %w", err)
	}
	return &MemoryCache{data: cache}, nil
}
