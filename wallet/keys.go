package wallet

import (
	"errors"
	"fmt"
	"os"

	"github.com/familycoin/go-familycoin/principal/ed25519/signer"
)

// ErrNoKeys is returned by a [KeySource] that holds no key material yet.
var ErrNoKeys = errors.New("no key material available, log in first")

// KeySource provides the PEM encoded key pair of the current user. It is
// consulted on every signed call and the private key is never retained.
type KeySource interface {
	PrivateKeyPEM() (string, error)
	PublicKeyPEM() (string, error)
}

// StaticKeys is an in-memory [KeySource].
type StaticKeys struct {
	PrivateKey string
	PublicKey  string
}

func (k StaticKeys) PrivateKeyPEM() (string, error) {
	if k.PrivateKey == "" {
		return "", ErrNoKeys
	}
	return k.PrivateKey, nil
}

func (k StaticKeys) PublicKeyPEM() (string, error) {
	if k.PublicKey == "" {
		return "", ErrNoKeys
	}
	return k.PublicKey, nil
}

func (k StaticKeys) String() string {
	return "StaticKeys{PrivateKey: <redacted>}"
}

var _ KeySource = StaticKeys{}

// FileKeys reads a PKCS8 PEM private key from Path on every call. The public
// key is derived from it.
type FileKeys struct {
	Path string
}

func (k FileKeys) PrivateKeyPEM() (string, error) {
	if k.Path == "" {
		return "", ErrNoKeys
	}
	b, err := os.ReadFile(k.Path)
	if err != nil {
		return "", fmt.Errorf("reading key file: %w", err)
	}
	return string(b), nil
}

func (k FileKeys) PublicKeyPEM() (string, error) {
	priv, err := k.PrivateKeyPEM()
	if err != nil {
		return "", err
	}
	s, err := signer.Parse(priv)
	if err != nil {
		return "", err
	}
	return s.Verifier().PEM(), nil
}

var _ KeySource = FileKeys{}
