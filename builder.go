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
	"github.com/annchain/enr/crypto"
	"github.com/annchain/enr/rlp"
)

// Builder accumulates record fields before the first signature exists.
// Build signs the staged content and produces a Record at sequence 1.
// Builders are not safe for concurrent use.
type Builder struct {
	pairs []pair
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Set stages the given entry.
func (b *Builder) Set(e Entry) error {
	blob, err := e.MarshalRLP()
	if err != nil {
		return err
	}
	b.pairs = setPair(b.pairs, e.ENRKey(), blob)
	return nil
}

// Add stages an opaque byte string value under the given key.
func (b *Builder) Add(key string, value []byte) {
	b.pairs = setPair(b.pairs, key, rlp.EncodeString(value))
}

// IP4 stages an IPv4 address, given in textual form.
func (b *Builder) IP4(addr string) error {
	ip, err := parseIP4(addr)
	if err != nil {
		return err
	}
	v := IP(ip)
	return b.Set(&v)
}

// IP6 stages an IPv6 address, given in textual form.
func (b *Builder) IP6(addr string) error {
	ip, err := parseIP6(addr)
	if err != nil {
		return err
	}
	v := IPv6(ip)
	return b.Set(&v)
}

// TCP4 stages the TCP port. Encoding a uint16 cannot fail.
func (b *Builder) TCP4(port uint16) {
	v := TCP(port)
	_ = b.Set(&v)
}

// TCP6 stages the IPv6-specific TCP port.
func (b *Builder) TCP6(port uint16) {
	v := TCP6(port)
	_ = b.Set(&v)
}

// UDP4 stages the UDP port.
func (b *Builder) UDP4(port uint16) {
	v := UDP(port)
	_ = b.Set(&v)
}

// UDP6 stages the IPv6-specific UDP port.
func (b *Builder) UDP6(port uint16) {
	v := UDP6(port)
	_ = b.Set(&v)
}

// Build signs the staged content with key and returns the record. The "id"
// and public key fields are stamped from the key, the sequence number is 1.
func (b *Builder) Build(key *crypto.PrivateKey) (*Record, error) {
	r := &Record{seq: 1, pairs: make([]pair, len(b.pairs))}
	copy(r.pairs, b.pairs)
	if err := signRecord(r, key); err != nil {
		return nil, err
	}
	return r, nil
}
