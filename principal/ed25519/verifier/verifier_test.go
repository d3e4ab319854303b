package verifier

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/familycoin/go-familycoin/signature"
	"github.com/familycoin/go-familycoin/testing/fixtures"
	"github.com/familycoin/go-familycoin/testing/helpers"
)

func TestParse(t *testing.T) {
	str := "did:key:z6MkgZN5cRgWqesJeaZCEs7eKzyQsfpzmhnSEqTL6FZt56Ym"
	v, err := Parse(str)
	if err != nil {
		t.Fatalf("parsing DID: %s", err)
	}
	if v.DID().String() != str {
		t.Fatalf("expected %s to equal %s", v.DID().String(), str)
	}
}

func TestFromRaw(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	v, err := FromRaw(pub)
	require.NoError(t, err)

	fmt.Println(v.DID())

	require.Equal(t, pub, ed25519.PublicKey(v.Raw()))

	_, err = FromRaw(pub[:10])
	require.Error(t, err)
}

func TestParsePEM(t *testing.T) {
	t.Run("alice", func(t *testing.T) {
		v, err := ParsePEM(fixtures.AlicePublicKeyPEM)
		require.NoError(t, err)
		require.Equal(t, fixtures.AlicePublicKeyHex, hex.EncodeToString(v.Raw()))
		require.Equal(t, fixtures.AliceDID, v.DID().String())
		require.Equal(t, fixtures.AlicePublicKeyPEM, v.PEM())
	})

	t.Run("private key block", func(t *testing.T) {
		_, err := ParsePEM(fixtures.AlicePrivateKeyPEM)
		require.ErrorContains(t, err, "unexpected PEM block type")
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParsePEM("hello")
		require.Error(t, err)
	})
}

func TestDecode(t *testing.T) {
	v0 := helpers.Must(ParsePEM(fixtures.BobPublicKeyPEM))
	v1, err := Decode(v0.(Ed25519Verifier).Encode())
	require.NoError(t, err)
	require.Equal(t, fixtures.BobDID, v1.DID().String())

	_, err = Decode([]byte{0xed, 0x01, 0x02})
	require.Error(t, err)
}

func TestVerify(t *testing.T) {
	v := helpers.Must(ParsePEM(fixtures.AlicePublicKeyPEM))

	for _, vec := range fixtures.AliceVectors {
		sig := helpers.Must(signature.Parse(vec.Signature))
		require.True(t, v.Verify([]byte(vec.Canonical), sig), vec.Canonical)
		require.True(t, signature.NewSignatureView(sig).Verify([]byte(vec.Canonical), v))
		require.False(t, v.Verify([]byte(vec.Canonical+" "), sig))
	}

	bob := helpers.Must(ParsePEM(fixtures.BobPublicKeyPEM))
	sig := helpers.Must(signature.Parse(fixtures.AliceVectors[1].Signature))
	require.False(t, bob.Verify([]byte(fixtures.AliceVectors[1].Canonical), sig))
}
