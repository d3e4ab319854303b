// Package payload signs messages into the {message_json, signature} pairs
// carried by authenticated requests, and verifies them.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"
	logging "github.com/ipfs/go-log/v2"
	"github.com/ipld/go-ipld-prime"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/multiformats/go-multihash"

	"github.com/familycoin/go-familycoin/core/canonical"
	"github.com/familycoin/go-familycoin/core/result/failure"
	"github.com/familycoin/go-familycoin/principal"
	"github.com/familycoin/go-familycoin/principal/ed25519/signer"
	"github.com/familycoin/go-familycoin/principal/verifier"
	"github.com/familycoin/go-familycoin/signature"
)

var log = logging.Logger("payload")

// ErrInvalidSignature is returned when a payload's signature does not verify
// against its message_json bytes.
var ErrInvalidSignature = errors.New("invalid signature")

// SignedPayload is the body addition carried by authenticated requests.
type SignedPayload struct {
	MessageJSON string `json:"message_json"`
	Signature   string `json:"signature"`
}

// SigningError wraps any failure that prevented a payload from being signed.
type SigningError struct {
	failure.NamedWithStackTrace
	cause error
}

func newSigningError(cause error) SigningError {
	return SigningError{failure.NamedWithCurrentStackTrace("SigningError"), cause}
}

func (e SigningError) Error() string {
	return fmt.Sprintf("signing message: %s", e.cause)
}

func (e SigningError) Unwrap() error {
	return e.cause
}

// Sign parses the PKCS8 PEM private key, canonicalizes msg and signs the
// canonical bytes. The key is parsed on every call and is not retained.
func Sign(privateKeyPEM string, msg any) (SignedPayload, error) {
	s, err := signer.Parse(privateKeyPEM)
	if err != nil {
		return SignedPayload{}, newSigningError(err)
	}
	return SignWith(s, msg)
}

// SignWith canonicalizes msg and signs it with s.
func SignWith(s principal.Signer, msg any) (p SignedPayload, err error) {
	defer func() {
		if r := recover(); r != nil {
			p = SignedPayload{}
			err = newSigningError(fmt.Errorf("signature primitive: %v", r))
		}
	}()

	canon, err := canonical.Encode(msg)
	if err != nil {
		return SignedPayload{}, newSigningError(err)
	}

	sig := s.Sign(canon)
	if !sig.Verify(canon, s.Verifier()) {
		return SignedPayload{}, newSigningError(errors.New("signature primitive: produced signature does not verify"))
	}

	p = SignedPayload{MessageJSON: string(canon), Signature: signature.Format(sig)}
	log.Debugw("signed message", "signer", s.DID(), "link", Link(p))
	return p, nil
}

// Verify checks the payload signature against the exact message_json bytes.
func Verify(v principal.Verifier, p SignedPayload) error {
	sig, err := signature.Parse(p.Signature)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}
	if !v.Verify([]byte(p.MessageJSON), sig) {
		return ErrInvalidSignature
	}
	return nil
}

var keys, _ = verifier.NewMemoryCache(verifier.MemoryCacheSize)

// VerifyPEM verifies the payload against a SubjectPublicKeyInfo PEM key.
func VerifyPEM(publicKeyPEM string, p SignedPayload) error {
	v, err := keys.Get(publicKeyPEM)
	if err != nil {
		return fmt.Errorf("parsing public key: %w", err)
	}
	return Verify(v, p)
}

// Decode unmarshals the signed message into bind.
func Decode(p SignedPayload, bind any) error {
	if err := json.Unmarshal([]byte(p.MessageJSON), bind); err != nil {
		return fmt.Errorf("decoding message: %w", err)
	}
	return nil
}

// Link returns a CIDv1 (raw, sha2-256) of the canonical message bytes. It
// identifies a payload in logs without revealing its content.
func Link(p SignedPayload) ipld.Link {
	c, _ := cid.Prefix{
		Version:  1,
		Codec:    cid.Raw,
		MhType:   multihash.SHA2_256,
		MhLength: -1,
	}.Sum([]byte(p.MessageJSON))
	return cidlink.Link{Cid: c}
}

// Verifier verifies payloads whose signer is named inside the message itself,
// the way the backend authenticates requests. Parsed keys are cached.
type Verifier struct {
	keys *verifier.MemoryCache
}

// NewVerifier creates a [Verifier] caching up to size parsed public keys. Pass
// a value less than 1 to use the default size.
func NewVerifier(size int) (*Verifier, error) {
	keys, err := verifier.NewMemoryCache(size)
	if err != nil {
		return nil, err
	}
	return &Verifier{keys: keys}, nil
}

// VerifyClaimed reads the PEM public key from the message field named
// keyField, verifies the payload against it and returns the decoded message.
func (pv *Verifier) VerifyClaimed(p SignedPayload, keyField string) (map[string]any, error) {
	var msg map[string]any
	if err := Decode(p, &msg); err != nil {
		return nil, err
	}
	pem, ok := msg[keyField].(string)
	if !ok || pem == "" {
		return nil, fmt.Errorf("message is missing %q", keyField)
	}
	v, err := pv.keys.Get(pem)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", keyField, err)
	}
	if err := Verify(v, p); err != nil {
		return nil, err
	}
	return msg, nil
}
