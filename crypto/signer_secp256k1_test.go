package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerSecp(t *testing.T) {
	signer := SignerSecp256k1{}

	pub, priv, err := signer.RandomKeyPair()
	require.NoError(t, err)
	assert.Len(t, pub.Bytes, Secp256k1PubKeyLen)
	assert.Len(t, priv.Bytes, Secp256k1PrivKeyLen)

	pub2 := signer.PubKey(priv)
	assert.True(t, bytes.Equal(pub.Bytes, pub2.Bytes))

	content := []byte("This is a test")
	sig := signer.Sign(priv, content)
	assert.Len(t, sig.Bytes, SignatureLen)
	assert.True(t, signer.Verify(pub2, sig, content))

	content[0] = 0x88
	assert.False(t, signer.Verify(pub2, sig, content))
}

func TestSignerSecpDeterministicPubkey(t *testing.T) {
	// The EIP-778 sample key.
	raw, _ := hex.DecodeString("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291")
	priv, err := PrivateKeyFromBytes(CryptoTypeSecp256k1, raw)
	require.NoError(t, err)

	signer := SignerSecp256k1{}
	pub := signer.PubKey(priv)
	assert.Equal(t,
		"03ca634cae0d49acb401d8a4c6b6fe8c55b70d115bf400769cc1400f3258cd3138",
		hex.EncodeToString(pub.Bytes))
}

func TestSignerSecpTamperedSignature(t *testing.T) {
	signer := SignerSecp256k1{}
	pub, priv, err := signer.RandomKeyPair()
	require.NoError(t, err)

	msg := []byte("foo")
	sig := signer.Sign(priv, msg)

	bad := SignatureFromBytes(CryptoTypeSecp256k1, append([]byte{}, sig.Bytes...))
	bad.Bytes[10] ^= 0x01
	assert.False(t, signer.Verify(pub, bad, msg))

	short := SignatureFromBytes(CryptoTypeSecp256k1, sig.Bytes[:32])
	assert.False(t, signer.Verify(pub, short, msg))
}

func TestSecpPrivateKeyFromBytes(t *testing.T) {
	for _, n := range []int{0, 16, 31, 33, 64} {
		_, err := PrivateKeyFromBytes(CryptoTypeSecp256k1, bytes.Repeat([]byte{1}, n))
		assert.Error(t, err, "length %d should be rejected", n)
	}
	_, err := PrivateKeyFromBytes(CryptoTypeSecp256k1, make([]byte, 32))
	assert.Error(t, err, "zero scalar should be rejected")

	priv, err := PrivateKeyFromBytes(CryptoTypeSecp256k1, bytes.Repeat([]byte{0xab}, 32))
	require.NoError(t, err)
	assert.Equal(t, CryptoTypeSecp256k1, priv.Type)
}

func TestDecompressPubkey(t *testing.T) {
	signer := SignerSecp256k1{}
	pub, _, err := signer.RandomKeyPair()
	require.NoError(t, err)

	coords, err := DecompressPubkey(pub.Bytes)
	require.NoError(t, err)
	assert.Len(t, coords, 64)

	_, err = DecompressPubkey(pub.Bytes[:32])
	assert.Error(t, err)
	_, err = DecompressPubkey(make([]byte, 33))
	assert.Error(t, err)
}
