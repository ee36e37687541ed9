package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerEd25519(t *testing.T) {
	signer := SignerEd25519{}

	pub, priv, err := signer.RandomKeyPair()
	require.NoError(t, err)
	assert.Len(t, pub.Bytes, Ed25519PubKeyLen)

	content := []byte("This is a test")
	sig := signer.Sign(priv, content)
	assert.Len(t, sig.Bytes, SignatureLen)
	assert.True(t, signer.Verify(pub, sig, content))

	content[0] = 0x88
	assert.False(t, signer.Verify(pub, sig, content))
}

func TestSignerEd25519BadInputs(t *testing.T) {
	signer := SignerEd25519{}
	pub, priv, err := signer.RandomKeyPair()
	require.NoError(t, err)

	msg := []byte("foo")
	sig := signer.Sign(priv, msg)

	badPub := PublicKeyFromBytes(CryptoTypeEd25519, pub.Bytes[:16])
	assert.False(t, signer.Verify(badPub, sig, msg))

	badSig := SignatureFromBytes(CryptoTypeEd25519, sig.Bytes[:32])
	assert.False(t, signer.Verify(pub, badSig, msg))
}

func TestEd25519PrivateKeyFromSeed(t *testing.T) {
	for _, n := range []int{0, 16, 31, 33, 64} {
		_, err := PrivateKeyFromBytes(CryptoTypeEd25519, bytes.Repeat([]byte{1}, n))
		assert.Error(t, err, "length %d should be rejected", n)
	}

	seed := bytes.Repeat([]byte{0xab}, Ed25519SeedLen)
	priv1, err := PrivateKeyFromBytes(CryptoTypeEd25519, seed)
	require.NoError(t, err)
	priv2, err := PrivateKeyFromBytes(CryptoTypeEd25519, seed)
	require.NoError(t, err)

	signer := SignerEd25519{}
	assert.True(t, bytes.Equal(signer.PubKey(priv1).Bytes, signer.PubKey(priv2).Bytes))
}

func TestCryptoTypeString(t *testing.T) {
	assert.Equal(t, "ed25519", CryptoTypeEd25519.String())
	assert.Equal(t, "secp256k1", CryptoTypeSecp256k1.String())
}
