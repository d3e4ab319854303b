package principal

import (
	"github.com/familycoin/go-familycoin/signature"
)

type Verifier interface {
	Principal
	Code() uint64
	Verify(msg []byte, sig signature.Signature) bool
	// Raw public key bytes.
	Raw() []byte
	// PEM returns the SubjectPublicKeyInfo PEM encoding of the public key, the
	// form the backend stores as a wallet identity.
	PEM() string
}
