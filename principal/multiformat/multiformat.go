// Package multiformat prefixes key bytes with the varint multicodec code that
// identifies them, the layout did:key identifiers and encoded signers use.
package multiformat

import (
	"fmt"

	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-varint"
)

// Tag returns b prefixed with the varint encoding of code.
func Tag(code uint64, b []byte) []byte {
	offset := varint.UvarintSize(code)
	tagged := make([]byte, offset+len(b))
	varint.PutUvarint(tagged, code)
	copy(tagged[offset:], b)
	return tagged
}

// Code reads the multicodec tag at the start of b and returns it along with
// the number of bytes it occupies.
func Code(b []byte) (uint64, int, error) {
	code, n, err := varint.FromUvarint(b)
	if err != nil {
		return 0, 0, fmt.Errorf("reading multicodec tag: %w", err)
	}
	return code, n, nil
}

// Untag checks that b is tagged with code and returns the bytes that follow
// the tag. The result aliases b.
func Untag(code uint64, b []byte) ([]byte, error) {
	tag, n, err := Code(b)
	if err != nil {
		return nil, err
	}
	if tag != code {
		return nil, fmt.Errorf("expected %s tag, got %s", multicodec.Code(code), multicodec.Code(tag))
	}
	return b[n:], nil
}
