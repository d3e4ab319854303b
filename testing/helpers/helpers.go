package helpers

import (
	"crypto/ed25519"
	crand "crypto/rand"
	"crypto/x509"
	"encoding/pem"
)

// Must takes return values from a function and returns the non-error one. If
// the error value is non-nil then it panics.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

func RandomBytes(size int) []byte {
	bytes := make([]byte, size)
	_, _ = crand.Read(bytes)
	return bytes
}

// PrivateKeyPEM wraps a 32 byte Ed25519 seed in a PKCS8 PEM block, the format
// the backend hands out at login.
func PrivateKeyPEM(seed []byte) string {
	der := Must(x509.MarshalPKCS8PrivateKey(ed25519.NewKeyFromSeed(seed)))
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

// RandomPrivateKeyPEM returns the PEM of a fresh random seed.
func RandomPrivateKeyPEM() string {
	return PrivateKeyPEM(RandomBytes(ed25519.SeedSize))
}
