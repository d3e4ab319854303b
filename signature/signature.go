package signature

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"

	"github.com/multiformats/go-multicodec"
)

// EdDSA is the multicodec code for an Ed25519 signature (varsig).
const EdDSA = 0xd0ed

// Name of the only signature algorithm spoken by the backend.
const Name = "Ed25519"

type Signature interface {
	Code() uint64
	Size() uint64
	// Raw signature bytes, as sent on the wire after base64 encoding.
	Raw() []byte
}

type Verifier interface {
	Code() uint64
	// Takes byte encoded message and verifies that it is signed by corresponding
	// signer.
	Verify(msg []byte, sig Signature) bool
}

// NewSignature wraps raw Ed25519 signature bytes.
func NewSignature(raw []byte) Signature {
	s := make(signature, len(raw))
	copy(s, raw)
	return s
}

type signature []byte

func (s signature) Code() uint64 {
	return EdDSA
}

func (s signature) Size() uint64 {
	return uint64(len(s))
}

func (s signature) Raw() []byte {
	return s
}

// Format encodes the signature in the standard base64 alphabet with padding.
func Format(s Signature) string {
	return base64.StdEncoding.EncodeToString(s.Raw())
}

// Parse decodes a standard base64 signature string.
func Parse(str string) (Signature, error) {
	raw, err := base64.StdEncoding.DecodeString(str)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 signature: %w", err)
	}
	if len(raw) != ed25519.SignatureSize {
		return nil, fmt.Errorf("invalid signature length: %d wanted: %d", len(raw), ed25519.SignatureSize)
	}
	return signature(raw), nil
}

type SignatureView interface {
	Signature
	// Verify that the signature was produced by the given message.
	Verify(msg []byte, signer Verifier) bool
}

func NewSignatureView(s Signature) SignatureView {
	return signatureView(NewSignature(s.Raw()).(signature))
}

type signatureView signature

func (v signatureView) Code() uint64 {
	return signature(v).Code()
}

func (v signatureView) Raw() []byte {
	return signature(v).Raw()
}

func (v signatureView) Size() uint64 {
	return signature(v).Size()
}

func (v signatureView) Verify(msg []byte, signer Verifier) bool {
	if signer.Code() != uint64(multicodec.Ed25519Pub) {
		return false
	}
	return signer.Verify(msg, v)
}
