package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"

	secp256k1 "github.com/btcsuite/btcd/btcec"
)

var secp256k1halfN = new(big.Int).Rsh(secp256k1.S256().N, 1)

type SignerSecp256k1 struct {
}

func (s *SignerSecp256k1) GetCryptoType() CryptoType {
	return CryptoTypeSecp256k1
}

// Sign calculates a recoverable ECDSA signature over the Keccak256 hash of
// msg. The produced signature is in the 64-byte [R || S] format.
func (s *SignerSecp256k1) Sign(privKey PrivateKey, msg []byte) Signature {
	priv, _ := secp256k1.PrivKeyFromBytes(secp256k1.S256(), privKey.Bytes)
	hash := Keccak256(msg)
	sig, err := secp256k1.SignCompact(secp256k1.S256(), priv, hash, false)
	if err != nil {
		panic(err)
	}
	// SignCompact puts the recovery id first; drop it.
	return SignatureFromBytes(s.GetCryptoType(), sig[1:])
}

func (s *SignerSecp256k1) PubKey(privKey PrivateKey) PublicKey {
	_, pub := secp256k1.PrivKeyFromBytes(secp256k1.S256(), privKey.Bytes)
	return PublicKeyFromBytes(s.GetCryptoType(), pub.SerializeCompressed())
}

// Verify checks the 64-byte [R || S] signature over the Keccak256 hash of
// msg. The public key must be in compressed (33 byte) format.
func (s *SignerSecp256k1) Verify(pubKey PublicKey, signature Signature, msg []byte) bool {
	sigs := signature.Bytes
	if len(sigs) == SignatureLen+1 {
		// Tolerate a trailing recovery id.
		sigs = sigs[:SignatureLen]
	}
	if len(sigs) != SignatureLen {
		return false
	}
	sig := &secp256k1.Signature{R: new(big.Int).SetBytes(sigs[:32]), S: new(big.Int).SetBytes(sigs[32:])}
	// Reject malleable signatures. libsecp256k1 does this check but btcec doesn't.
	if sig.S.Cmp(secp256k1halfN) > 0 {
		return false
	}
	key, err := secp256k1.ParsePubKey(pubKey.Bytes, secp256k1.S256())
	if err != nil {
		return false
	}
	return sig.Verify(Keccak256(msg), key)
}

func (s *SignerSecp256k1) RandomKeyPair() (publicKey PublicKey, privateKey PrivateKey, err error) {
	privKeyBytes := [Secp256k1PrivKeyLen]byte{}
	if _, err = rand.Read(privKeyBytes[:]); err != nil {
		return
	}
	priv, pub := secp256k1.PrivKeyFromBytes(secp256k1.S256(), privKeyBytes[:])
	privateKey, err = PrivateKeyFromBytes(CryptoTypeSecp256k1, priv.Serialize())
	if err != nil {
		return
	}
	publicKey = PublicKeyFromBytes(CryptoTypeSecp256k1, pub.SerializeCompressed())
	return
}

// DecompressPubkey parses a compressed 33-byte secp256k1 public key and
// returns the 64-byte uncompressed X || Y coordinates.
func DecompressPubkey(pubkey []byte) ([]byte, error) {
	if len(pubkey) != Secp256k1PubKeyLen {
		return nil, fmt.Errorf("crypto: compressed public key must be %d bytes, have %d", Secp256k1PubKeyLen, len(pubkey))
	}
	pub, err := secp256k1.ParsePubKey(pubkey, secp256k1.S256())
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 64)
	readBits(pub.X, buf[:32])
	readBits(pub.Y, buf[32:])
	return buf, nil
}

// readBits encodes the absolute value of bigint as big-endian bytes filling
// all of buf.
func readBits(bigint *big.Int, buf []byte) {
	b := bigint.Bytes()
	copy(buf[len(buf)-len(b):], b)
}
