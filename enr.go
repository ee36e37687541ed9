// Copyright 2017 The go-ethereum Authors
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

// Package enr implements Ethereum Node Records as defined in EIP-778. A node
// record holds arbitrary information about a node on the peer-to-peer
// network. Node information is stored in sorted key/value pairs; to store
// and retrieve key/values in a record, use the Entry interface.
//
// Records are signed. Decoding verifies the signature against the public key
// the record carries, so a decoded Record is always valid. Every mutation of
// a signed record re-derives the signature with the private key supplied at
// the call site and bumps the sequence number, replacing the record content
// atomically.
//
// Package enr supports the "v4" (secp256k1/keccak) and "ed25519" identity
// schemes.
package enr

import (
	"bytes"
	"net"
	"sort"
	"sync"

	"github.com/annchain/enr/crypto"
	"github.com/annchain/enr/rlp"
)

// SizeLimit is the maximum encoded size of a node record in bytes.
const SizeLimit = 300

// Pair is a key/value pair in a record. The value is kept in its raw RLP
// encoded form.
type Pair struct {
	K string
	V rlp.RawValue
}

// Record represents a node record.
//
// The zero value is an empty, unsigned record. Records obtained from Decode,
// FromBase64 or Builder.Build are always signed. Mutating methods take the
// signing private key and hold the record's write lock for the duration of
// the mutate-and-resign sequence; read methods take the read lock and may
// run concurrently with each other.
type Record struct {
	mu        sync.RWMutex
	seq       uint64 // sequence number
	signature []byte // the signature
	raw       []byte // RLP encoded record
	pairs     []pair // sorted list of all key/value pairs
}

type pair struct {
	k string
	v rlp.RawValue
}

// Decode parses a node record from its binary encoding and verifies the
// signature. No record is returned unless the structure is canonical, the
// identity scheme is known and the signature verifies.
func Decode(input []byte) (*Record, error) {
	if len(input) > SizeLimit {
		return nil, ErrTooBig
	}
	raw := make([]byte, len(input))
	copy(raw, input)

	content, rest, err := rlp.SplitList(raw)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, rlp.ErrMoreThanOneValue
	}
	dec := &Record{raw: raw}
	if dec.signature, content, err = rlp.SplitString(content); err != nil {
		return nil, err
	}
	if dec.seq, content, err = rlp.SplitUint64(content); err != nil {
		return nil, err
	}
	// The rest of the record contains sorted k/v pairs.
	var prevkey string
	for i := 0; len(content) > 0; i++ {
		var kb []byte
		if kb, content, err = rlp.SplitString(content); err != nil {
			return nil, err
		}
		if len(content) == 0 {
			return nil, errIncompletePair
		}
		if _, _, rest, err = rlp.Split(content); err != nil {
			return nil, err
		}
		kv := pair{k: string(kb), v: content[:len(content)-len(rest)]}
		content = rest
		if i > 0 {
			if kv.k == prevkey {
				return nil, errDuplicateKey
			}
			if kv.k < prevkey {
				return nil, errNotSorted
			}
		}
		dec.pairs = append(dec.pairs, kv)
		prevkey = kv.k
	}

	scheme, err := dec.idScheme()
	if err != nil {
		return nil, err
	}
	if err := scheme.Verify(dec, dec.signature); err != nil {
		return nil, err
	}
	return dec, nil
}

// Seq returns the sequence number.
func (r *Record) Seq() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.seq
}

// Signed reports whether the record carries a signature.
func (r *Record) Signed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.signature != nil
}

// Signature returns a copy of the record signature.
func (r *Record) Signature() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyBytes(r.signature)
}

// Load retrieves the value of a key/value pair. The given Entry must be a
// pointer and will be set to the value of the entry in the record.
//
// Errors returned by Load are wrapped in KeyError. You can distinguish
// decoding errors from missing keys using the IsNotFound function.
func (r *Record) Load(e Entry) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.load(e)
}

func (r *Record) load(e Entry) error {
	i := sort.Search(len(r.pairs), func(i int) bool { return r.pairs[i].k >= e.ENRKey() })
	if i < len(r.pairs) && r.pairs[i].k == e.ENRKey() {
		if err := e.UnmarshalRLP(r.pairs[i].v); err != nil {
			return &KeyError{Key: e.ENRKey(), Err: err}
		}
		return nil
	}
	return &KeyError{Key: e.ENRKey(), Err: errNotFound}
}

// Get returns the value stored under the given key as a byte string, or
// false if the key is absent. Values that are not plain byte strings are
// returned in their raw encoded form.
func (r *Record) Get(key string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := sort.Search(len(r.pairs), func(i int) bool { return r.pairs[i].k >= key })
	if i >= len(r.pairs) || r.pairs[i].k != key {
		return nil, false
	}
	if content, rest, err := rlp.SplitString(r.pairs[i].v); err == nil && len(rest) == 0 {
		return copyBytes(content), true
	}
	return copyBytes(r.pairs[i].v), true
}

// Keys returns all keys of the record in ascending order.
func (r *Record) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, len(r.pairs))
	for i, p := range r.pairs {
		keys[i] = p.k
	}
	return keys
}

// Pairs returns all key/value pairs of the record in ascending key order.
// Values are the raw RLP encodings.
func (r *Record) Pairs() []Pair {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pairs := make([]Pair, len(r.pairs))
	for i, p := range r.pairs {
		pairs[i] = Pair{K: p.k, V: copyBytes(p.v)}
	}
	return pairs
}

// Set adds or updates the given entry in the record and re-signs it with
// key. The record is left unchanged if any step fails.
func (r *Record) Set(e Entry, key *crypto.PrivateKey) error {
	blob, err := e.MarshalRLP()
	if err != nil {
		return err
	}
	return r.update(key, nil, func(pairs []pair) []pair {
		return setPair(pairs, e.ENRKey(), blob)
	})
}

// SetValue stores an opaque byte string under the given key and re-signs
// the record with key.
func (r *Record) SetValue(k string, value []byte, key *crypto.PrivateKey) error {
	return r.update(key, nil, func(pairs []pair) []pair {
		return setPair(pairs, k, rlp.EncodeString(value))
	})
}

// SetSeq updates the record sequence number to exactly seq (any value,
// including zero) and re-signs the record with key. Calling SetSeq is
// usually not required because setting any key in a signed record
// increments the sequence number.
func (r *Record) SetSeq(seq uint64, key *crypto.PrivateKey) error {
	return r.update(key, &seq, nil)
}

// SetIP4 parses addr as an IPv4 address and stores it under the "ip" key.
func (r *Record) SetIP4(addr string, key *crypto.PrivateKey) error {
	ip, err := parseIP4(addr)
	if err != nil {
		return err
	}
	v := IP(ip)
	return r.Set(&v, key)
}

// SetIP6 parses addr as an IPv6 address and stores it under the "ip6" key.
func (r *Record) SetIP6(addr string, key *crypto.PrivateKey) error {
	ip, err := parseIP6(addr)
	if err != nil {
		return err
	}
	v := IPv6(ip)
	return r.Set(&v, key)
}

// SetTCP4 stores the TCP port under the "tcp" key.
func (r *Record) SetTCP4(port uint16, key *crypto.PrivateKey) error {
	v := TCP(port)
	return r.Set(&v, key)
}

// SetTCP6 stores the TCP port under the "tcp6" key.
func (r *Record) SetTCP6(port uint16, key *crypto.PrivateKey) error {
	v := TCP6(port)
	return r.Set(&v, key)
}

// SetUDP4 stores the UDP port under the "udp" key.
func (r *Record) SetUDP4(port uint16, key *crypto.PrivateKey) error {
	v := UDP(port)
	return r.Set(&v, key)
}

// SetUDP6 stores the UDP port under the "udp6" key.
func (r *Record) SetUDP6(port uint16, key *crypto.PrivateKey) error {
	v := UDP6(port)
	return r.Set(&v, key)
}

// update runs the mutate-and-resign sequence. It works on a copy of the
// record state and swaps the copy in only after the new content signed and
// encoded successfully, so a failing mutation leaves the record unchanged.
func (r *Record) update(key *crypto.PrivateKey, seq *uint64, mutate func([]pair) []pair) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := Record{seq: r.seq, pairs: r.pairs}
	if mutate != nil {
		cpy.pairs = mutate(cpy.pairs)
	}
	if seq != nil {
		cpy.seq = *seq
	} else {
		cpy.seq++
	}
	if err := signRecord(&cpy, key); err != nil {
		return err
	}
	r.seq, r.signature, r.raw, r.pairs = cpy.seq, cpy.signature, cpy.raw, cpy.pairs
	return nil
}

// IP4 returns the IPv4 address of the record, if present.
func (r *Record) IP4() (net.IP, bool) {
	var v IP
	if r.Load(&v) != nil {
		return nil, false
	}
	ip4 := net.IP(v).To4()
	if ip4 == nil {
		return nil, false
	}
	return ip4, true
}

// IP6 returns the IPv6 address of the record, if present.
func (r *Record) IP6() (net.IP, bool) {
	var v IPv6
	if r.Load(&v) != nil {
		return nil, false
	}
	return net.IP(v).To16(), true
}

// TCP4 returns the TCP port of the record, if present.
func (r *Record) TCP4() (uint16, bool) {
	var v TCP
	if r.Load(&v) != nil {
		return 0, false
	}
	return uint16(v), true
}

// TCP6 returns the IPv6-specific TCP port of the record, if present.
func (r *Record) TCP6() (uint16, bool) {
	var v TCP6
	if r.Load(&v) != nil {
		return 0, false
	}
	return uint16(v), true
}

// UDP4 returns the UDP port of the record, if present.
func (r *Record) UDP4() (uint16, bool) {
	var v UDP
	if r.Load(&v) != nil {
		return 0, false
	}
	return uint16(v), true
}

// UDP6 returns the IPv6-specific UDP port of the record, if present.
func (r *Record) UDP6() (uint16, bool) {
	var v UDP6
	if r.Load(&v) != nil {
		return 0, false
	}
	return uint16(v), true
}

// IdentityScheme returns the name of the identity scheme in the record.
func (r *Record) IdentityScheme() string {
	var id ID
	r.Load(&id)
	return string(id)
}

// PublicKey returns the public key the record is signed with.
func (r *Record) PublicKey() (crypto.PublicKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.publicKey()
}

func (r *Record) publicKey() (crypto.PublicKey, error) {
	var sec Secp256k1
	if r.load(&sec) == nil {
		return crypto.PublicKeyFromBytes(crypto.CryptoTypeSecp256k1, sec), nil
	}
	var ed Ed25519
	if r.load(&ed) == nil {
		return crypto.PublicKeyFromBytes(crypto.CryptoTypeEd25519, ed), nil
	}
	return crypto.PublicKey{}, ErrUnsupportedScheme
}

// NodeAddr returns the 32-byte node address (node id) derived from the
// record's public key, or nil if the record carries no known scheme.
func (r *Record) NodeAddr() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	scheme, err := r.idScheme()
	if err != nil {
		return nil
	}
	return scheme.NodeAddr(r)
}

// VerifySignature checks whether the record is correctly signed under the
// given identity scheme.
func (r *Record) VerifySignature(s IdentityScheme) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return s.Verify(r, r.signature)
}

// Encode returns the canonical binary encoding of the record. Encoding
// fails if the record is unsigned.
func (r *Record) Encode() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.signature == nil {
		return nil, errEncodeUnsigned
	}
	return copyBytes(r.raw), nil
}

// Equal reports whether two records have identical canonical encodings.
func (r *Record) Equal(other *Record) bool {
	if r == other {
		return true
	}
	if r == nil || other == nil {
		return false
	}
	a, err := r.Encode()
	if err != nil {
		return false
	}
	b, err := other.Encode()
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}

// Hash returns the Keccak256 hash of the canonical encoding. Records that
// are Equal hash identically. Hash panics on an unsigned record.
func (r *Record) Hash() [32]byte {
	enc, err := r.Encode()
	if err != nil {
		panic(err)
	}
	var h [32]byte
	copy(h[:], crypto.Keccak256(enc))
	return h
}

// Copy returns an independent copy of the record.
func (r *Record) Copy() *Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cpy := &Record{
		seq:       r.seq,
		signature: copyBytes(r.signature),
		raw:       copyBytes(r.raw),
		pairs:     make([]pair, len(r.pairs)),
	}
	copy(cpy.pairs, r.pairs)
	return cpy
}

// appendElements appends the RLP encoding of the sequence number and all
// key/value pairs to the given buffer. Wrapping the result in a list header
// yields the signing message.
func (r *Record) appendElements(list []byte) []byte {
	list = rlp.AppendUint64(list, r.seq)
	for _, p := range r.pairs {
		list = rlp.AppendString(list, []byte(p.k))
		list = append(list, p.v...)
	}
	return list
}

// setPair inserts or replaces a pair, keeping the slice sorted by key. The
// input slice is not modified.
func setPair(pairs []pair, k string, v rlp.RawValue) []pair {
	out := make([]pair, len(pairs))
	copy(out, pairs)
	i := sort.Search(len(out), func(i int) bool { return out[i].k >= k })
	switch {
	case i < len(out) && out[i].k == k:
		// element is present at out[i]
		out[i].v = v
	case i < len(out):
		// insert pair before i-th elem
		out = append(out, pair{})
		copy(out[i+1:], out[i:])
		out[i] = pair{k, v}
	default:
		// element should be placed at the end
		out = append(out, pair{k, v})
	}
	return out
}

// deletePair removes a pair by key. The input slice is not modified.
func deletePair(pairs []pair, k string) []pair {
	i := sort.Search(len(pairs), func(i int) bool { return pairs[i].k >= k })
	if i >= len(pairs) || pairs[i].k != k {
		return pairs
	}
	out := make([]pair, 0, len(pairs)-1)
	out = append(out, pairs[:i]...)
	return append(out, pairs[i+1:]...)
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func parseIP4(addr string) (net.IP, error) {
	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() == nil {
		return nil, &net.ParseError{Type: "IPv4 address", Text: addr}
	}
	return ip.To4(), nil
}

func parseIP6(addr string) (net.IP, error) {
	ip := net.ParseIP(addr)
	if ip == nil || ip.To16() == nil {
		return nil, &net.ParseError{Type: "IPv6 address", Text: addr}
	}
	return ip.To16(), nil
}
