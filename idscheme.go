// Copyright 2018 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package enr

import (
	"fmt"

	"github.com/annchain/enr/crypto"
	"github.com/annchain/enr/rlp"
)

// An IdentityScheme is capable of verifying record signatures and deriving
// node addresses.
type IdentityScheme interface {
	Verify(r *Record, sig []byte) error
	NodeAddr(r *Record) []byte
}

// SchemeMap is a registry of named identity schemes.
type SchemeMap map[string]IdentityScheme

// ValidSchemes lists the scheme tags this package accepts in the "id"
// field. Both key types sign under the "v4" tag, matching EIP-778; records
// produced by implementations that tag ed25519 records explicitly are
// accepted as well.
var ValidSchemes = SchemeMap{
	"v4":      V4ID{},
	"ed25519": Ed25519ID{},
}

// V4ID is the "v4" identity scheme: a secp256k1 public key under the
// "secp256k1" key, signatures over the Keccak256 content hash, node address
// derived from the uncompressed point.
type V4ID struct{}

func (V4ID) Verify(r *Record, sig []byte) error {
	// The record signature is exactly r||s. The signer below tolerates a
	// trailing recovery id, which must not leak into the wire format: it
	// would give every record 256 decodable encodings.
	if len(sig) != crypto.SignatureLen {
		return ErrInvalidSig
	}
	var entry Secp256k1
	if err := r.load(&entry); err != nil {
		return err
	}
	signer := crypto.SignerFor(crypto.CryptoTypeSecp256k1)
	pub := crypto.PublicKeyFromBytes(crypto.CryptoTypeSecp256k1, entry)
	content := rlp.AppendList(nil, r.appendElements(nil))
	if !signer.Verify(pub, crypto.SignatureFromBytes(crypto.CryptoTypeSecp256k1, sig), content) {
		return ErrInvalidSig
	}
	return nil
}

func (V4ID) NodeAddr(r *Record) []byte {
	var entry Secp256k1
	if err := r.load(&entry); err != nil {
		return nil
	}
	coords, err := crypto.DecompressPubkey(entry)
	if err != nil {
		return nil
	}
	return crypto.Keccak256(coords)
}

// Ed25519ID is the "ed25519" identity scheme: an ed25519 public key under
// the "ed25519" key, standard 64-byte signatures over the content, node
// address derived from the 32-byte key.
type Ed25519ID struct{}

func (Ed25519ID) Verify(r *Record, sig []byte) error {
	if len(sig) != crypto.SignatureLen {
		return ErrInvalidSig
	}
	var entry Ed25519
	if err := r.load(&entry); err != nil {
		return err
	}
	signer := crypto.SignerFor(crypto.CryptoTypeEd25519)
	pub := crypto.PublicKeyFromBytes(crypto.CryptoTypeEd25519, entry)
	content := rlp.AppendList(nil, r.appendElements(nil))
	if !signer.Verify(pub, crypto.SignatureFromBytes(crypto.CryptoTypeEd25519, sig), content) {
		return ErrInvalidSig
	}
	return nil
}

func (Ed25519ID) NodeAddr(r *Record) []byte {
	var entry Ed25519
	if err := r.load(&entry); err != nil {
		return nil
	}
	return crypto.Keccak256(entry)
}

// idScheme resolves the identity scheme of the record from which public key
// field is present. Records carrying neither or both key fields, or an
// unknown "id" value, have no usable scheme.
func (r *Record) idScheme() (IdentityScheme, error) {
	var id ID
	if err := r.load(&id); err != nil {
		return nil, ErrUnsupportedScheme
	}
	if _, known := ValidSchemes[string(id)]; !known {
		return nil, ErrUnsupportedScheme
	}
	hasSecp := r.hasKey("secp256k1")
	hasEd := r.hasKey("ed25519")
	switch {
	case hasSecp && !hasEd:
		return V4ID{}, nil
	case hasEd && !hasSecp:
		return Ed25519ID{}, nil
	default:
		return nil, ErrUnsupportedScheme
	}
}

func (r *Record) hasKey(key string) bool {
	for _, p := range r.pairs {
		if p.k == key {
			return true
		}
	}
	return false
}

// signRecord stamps the "id" and public key fields for the given private
// key, signs the canonical content and encodes the record. It is called on
// a scratch copy by the mutation path; r must not be visible to readers.
func signRecord(r *Record, key *crypto.PrivateKey) error {
	if key == nil {
		return fmt.Errorf("enr: nil signing key")
	}
	signer := crypto.SignerFor(key.Type)
	if signer == nil {
		return ErrUnsupportedScheme
	}
	idBlob, err := IDv4.MarshalRLP()
	if err != nil {
		return err
	}
	r.pairs = setPair(r.pairs, IDv4.ENRKey(), idBlob)

	// Replace the public key field. Signing with a key of the other scheme
	// re-keys the record, so the stale field has to go.
	pub := signer.PubKey(*key)
	switch key.Type {
	case crypto.CryptoTypeSecp256k1:
		r.pairs = deletePair(r.pairs, Ed25519(nil).ENRKey())
		blob, err := Secp256k1(pub.Bytes).MarshalRLP()
		if err != nil {
			return err
		}
		r.pairs = setPair(r.pairs, Secp256k1(nil).ENRKey(), blob)
	case crypto.CryptoTypeEd25519:
		r.pairs = deletePair(r.pairs, Secp256k1(nil).ENRKey())
		blob, err := Ed25519(pub.Bytes).MarshalRLP()
		if err != nil {
			return err
		}
		r.pairs = setPair(r.pairs, Ed25519(nil).ENRKey(), blob)
	}

	elements := r.appendElements(nil)
	sig := signer.Sign(*key, rlp.AppendList(nil, elements)).Bytes
	raw := rlp.AppendList(nil, append(rlp.EncodeString(sig), elements...))
	if len(raw) > SizeLimit {
		return ErrTooBig
	}
	r.signature, r.raw = sig, raw
	return nil
}
