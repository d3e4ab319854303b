// Package did implements the subset of decentralized identifiers used to name
// wallet keys in logs and tooling: did:key identifiers for Ed25519 public keys.
package did

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multicodec"

	"github.com/familycoin/go-familycoin/principal/multiformat"
)

const Prefix = "did:"
const KeyPrefix = "did:key:"

const ed25519PublicKeySize = 32

// DID is a decentralized identifier. The zero value is [Undef].
type DID struct {
	str string
}

// Undef is the undefined DID.
var Undef = DID{}

// Defined reports whether the DID is not [Undef].
func (d DID) Defined() bool {
	return d.str != ""
}

// Bytes returns the multicodec tagged public key for a did:key, or nil for
// other DID methods.
func (d DID) Bytes() []byte {
	if !strings.HasPrefix(d.str, KeyPrefix) {
		return nil
	}
	_, b, err := multibase.Decode(d.str[len(KeyPrefix):])
	if err != nil {
		return nil
	}
	return b
}

func (d DID) String() string {
	return d.str
}

func (d DID) MarshalJSON() ([]byte, error) {
	if !d.Defined() {
		return json.Marshal(nil)
	}
	return json.Marshal(d.str)
}

func (d *DID) UnmarshalJSON(b []byte) error {
	var str *string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	if str == nil || *str == "" {
		*d = Undef
		return nil
	}
	parsed, err := Parse(*str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Decode builds a did:key from a multicodec tagged Ed25519 public key.
func Decode(b []byte) (DID, error) {
	key, err := multiformat.Untag(uint64(multicodec.Ed25519Pub), b)
	if err != nil {
		return Undef, fmt.Errorf("decoding public key: %w", err)
	}
	if len(key) != ed25519PublicKeySize {
		return Undef, fmt.Errorf("invalid public key length: %d wanted: %d", len(key), ed25519PublicKeySize)
	}
	str, err := multibase.Encode(multibase.Base58BTC, b)
	if err != nil {
		return Undef, fmt.Errorf("encoding multibase string: %w", err)
	}
	return DID{KeyPrefix + str}, nil
}

// FromPublicKey builds a did:key from a raw 32 byte Ed25519 public key.
func FromPublicKey(pub []byte) (DID, error) {
	return Decode(multiformat.Tag(uint64(multicodec.Ed25519Pub), pub))
}

// Parse parses a DID string. did:key identifiers must carry an Ed25519 key.
func Parse(str string) (DID, error) {
	if !strings.HasPrefix(str, Prefix) {
		return Undef, fmt.Errorf("must start with '%s'", Prefix)
	}
	if strings.HasPrefix(str, KeyPrefix) {
		_, b, err := multibase.Decode(str[len(KeyPrefix):])
		if err != nil {
			return Undef, fmt.Errorf("decoding multibase string: %w", err)
		}
		return Decode(b)
	}
	if len(strings.SplitN(str[len(Prefix):], ":", 2)) != 2 {
		return Undef, fmt.Errorf("missing method specific identifier: %s", str)
	}
	return DID{str}, nil
}
