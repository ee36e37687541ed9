package crypto

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"
)

// CryptoType selects the signature algorithm of a key or signature.
type CryptoType int

const (
	CryptoTypeEd25519 CryptoType = iota
	CryptoTypeSecp256k1
)

func (t CryptoType) String() string {
	switch t {
	case CryptoTypeEd25519:
		return "ed25519"
	case CryptoTypeSecp256k1:
		return "secp256k1"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

const (
	// Secp256k1PrivKeyLen is the raw secp256k1 secret scalar length.
	Secp256k1PrivKeyLen = 32
	// Secp256k1PubKeyLen is the compressed secp256k1 point length.
	Secp256k1PubKeyLen = 33
	// Ed25519SeedLen is the raw ed25519 seed length accepted by
	// PrivateKeyFromBytes.
	Ed25519SeedLen = 32
	// Ed25519PubKeyLen is the ed25519 public key length.
	Ed25519PubKeyLen = 32
	// SignatureLen is the fixed signature length for both schemes.
	SignatureLen = 64
)

type PrivateKey struct {
	Type  CryptoType
	Bytes []byte
}

type PublicKey struct {
	Type  CryptoType
	Bytes []byte
}

type Signature struct {
	Type  CryptoType
	Bytes []byte
}

// PrivateKeyFromBytes constructs a private key from raw key material.
// Secp256k1 keys are 32-byte scalars, ed25519 keys are 32-byte seeds.
func PrivateKeyFromBytes(typev CryptoType, bytes []byte) (PrivateKey, error) {
	switch typev {
	case CryptoTypeSecp256k1:
		if len(bytes) != Secp256k1PrivKeyLen {
			return PrivateKey{}, fmt.Errorf("crypto: secp256k1 private key must be %d bytes, have %d", Secp256k1PrivKeyLen, len(bytes))
		}
		d := new(big.Int).SetBytes(bytes)
		if d.Sign() == 0 || d.Cmp(btcec.S256().N) >= 0 {
			return PrivateKey{}, fmt.Errorf("crypto: secp256k1 private key out of range")
		}
		b := make([]byte, Secp256k1PrivKeyLen)
		copy(b, bytes)
		return PrivateKey{Type: typev, Bytes: b}, nil
	case CryptoTypeEd25519:
		if len(bytes) != Ed25519SeedLen {
			return PrivateKey{}, fmt.Errorf("crypto: ed25519 seed must be %d bytes, have %d", Ed25519SeedLen, len(bytes))
		}
		return PrivateKey{Type: typev, Bytes: ed25519.NewKeyFromSeed(bytes)}, nil
	default:
		return PrivateKey{}, fmt.Errorf("crypto: unknown key type %v", typev)
	}
}

func PublicKeyFromBytes(typev CryptoType, bytes []byte) PublicKey {
	return PublicKey{Type: typev, Bytes: bytes}
}

func SignatureFromBytes(typev CryptoType, bytes []byte) Signature {
	return Signature{Type: typev, Bytes: bytes}
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}
