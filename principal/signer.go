package principal

import (
	"github.com/familycoin/go-familycoin/did"
	"github.com/familycoin/go-familycoin/signature"
)

type Principal interface {
	DID() did.DID
}

type Signer interface {
	Principal
	// Takes byte encoded message and produces a verifiable signature.
	Sign(msg []byte) signature.SignatureView
	Code() uint64
	Verifier() Verifier
}
