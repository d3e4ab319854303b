package verifier

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-varint"

	"github.com/familycoin/go-familycoin/did"
	"github.com/familycoin/go-familycoin/principal"
	"github.com/familycoin/go-familycoin/principal/multiformat"
	"github.com/familycoin/go-familycoin/signature"
)

const Code = uint64(multicodec.Ed25519Pub)
const Name = signature.Name

// PEMType is the PEM block type of a SubjectPublicKeyInfo encoded key.
const PEMType = "PUBLIC KEY"

var publicTagSize = varint.UvarintSize(Code)

const keySize = ed25519.PublicKeySize

var size = publicTagSize + keySize

// Decode decodes a multicodec tagged Ed25519 public key.
func Decode(b []byte) (principal.Verifier, error) {
	if len(b) != size {
		return nil, fmt.Errorf("invalid length: %d wanted: %d", len(b), size)
	}

	if _, err := multiformat.Untag(Code, b); err != nil {
		return nil, fmt.Errorf("reading public key codec: %w", err)
	}

	v := make(Ed25519Verifier, size)
	copy(v, b)

	return v, nil
}

// FromRaw takes raw 32 bytes of an Ed25519 public key.
func FromRaw(b []byte) (principal.Verifier, error) {
	if len(b) != keySize {
		return nil, fmt.Errorf("invalid length: %d wanted: %d", len(b), keySize)
	}
	return Ed25519Verifier(multiformat.Tag(Code, b)), nil
}

// Parse parses a did:key string.
func Parse(str string) (principal.Verifier, error) {
	id, err := did.Parse(str)
	if err != nil {
		return nil, fmt.Errorf("parsing DID: %w", err)
	}
	return Decode(id.Bytes())
}

// ParsePEM parses a SubjectPublicKeyInfo PEM block holding an Ed25519 key.
func ParsePEM(str string) (principal.Verifier, error) {
	block, _ := pem.Decode([]byte(str))
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}
	if block.Type != PEMType {
		return nil, fmt.Errorf("unexpected PEM block type: %s", block.Type)
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	edpub, ok := pub.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("unsupported public key type: %T", pub)
	}
	return FromRaw(edpub)
}

type Ed25519Verifier []byte

func (v Ed25519Verifier) Code() uint64 {
	return Code
}

func (v Ed25519Verifier) Verify(msg []byte, sig signature.Signature) bool {
	if sig.Code() != signature.EdDSA {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(v.Raw()), msg, sig.Raw())
}

func (v Ed25519Verifier) DID() did.DID {
	id, _ := did.Decode(v)
	return id
}

func (v Ed25519Verifier) Encode() []byte {
	return v
}

func (v Ed25519Verifier) Raw() []byte {
	return v[publicTagSize:]
}

func (v Ed25519Verifier) PEM() string {
	der, err := x509.MarshalPKIXPublicKey(ed25519.PublicKey(v.Raw()))
	if err != nil {
		return ""
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: PEMType, Bytes: der}))
}
