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

package enr

import (
	"fmt"
	"net"

	"github.com/annchain/enr/crypto"
	"github.com/annchain/enr/rlp"
)

// Entry is implemented by known node record entry types.
//
// To define a new entry that is to be included in a node record, create a Go
// type that satisfies this interface. MarshalRLP returns the complete RLP
// encoding of the value; UnmarshalRLP receives it back and may run
// additional checks on the decoded value.
type Entry interface {
	ENRKey() string
	MarshalRLP() ([]byte, error)
	UnmarshalRLP([]byte) error
}

type generic struct {
	key   string
	value Entry
}

func (g *generic) ENRKey() string { return g.key }

func (g *generic) MarshalRLP() ([]byte, error) {
	return g.value.MarshalRLP()
}

func (g *generic) UnmarshalRLP(b []byte) error {
	return g.value.UnmarshalRLP(b)
}

// WithEntry wraps a value with a key name. It can be used to set and load
// values under arbitrary keys in a record.
func WithEntry(k string, v Entry) Entry {
	return &generic{key: k, value: v}
}

// splitValue decodes a byte string value, rejecting trailing data.
func splitValue(b []byte) ([]byte, error) {
	content, rest, err := rlp.SplitString(b)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, rlp.ErrMoreThanOneValue
	}
	return content, nil
}

// splitPort decodes a port number value.
func splitPort(b []byte) (uint16, error) {
	x, rest, err := rlp.SplitUint64(b)
	if err != nil {
		return 0, err
	}
	if len(rest) > 0 {
		return 0, rlp.ErrMoreThanOneValue
	}
	if x > 0xFFFF {
		return 0, fmt.Errorf("invalid port %d", x)
	}
	return uint16(x), nil
}

// ID is the "id" key, which holds the name of the identity scheme.
type ID string

const IDv4 = ID("v4") // the default identity scheme

func (v ID) ENRKey() string { return "id" }

func (v ID) MarshalRLP() ([]byte, error) {
	return rlp.EncodeString([]byte(v)), nil
}

func (v *ID) UnmarshalRLP(b []byte) error {
	content, err := splitValue(b)
	if err != nil {
		return err
	}
	*v = ID(content)
	return nil
}

// IP is the "ip" key, which holds the IPv4 address of the node.
type IP net.IP

func (v IP) ENRKey() string { return "ip" }

func (v IP) MarshalRLP() ([]byte, error) {
	ip4 := net.IP(v).To4()
	if ip4 == nil {
		return nil, fmt.Errorf("invalid IPv4 address: %v", net.IP(v))
	}
	return rlp.EncodeString(ip4), nil
}

func (v *IP) UnmarshalRLP(b []byte) error {
	content, err := splitValue(b)
	if err != nil {
		return err
	}
	if len(content) != 4 && len(content) != 16 {
		return fmt.Errorf("invalid IP address, want 4 or 16 bytes: %x", content)
	}
	*v = make(IP, len(content))
	copy(*v, content)
	return nil
}

// IPv6 is the "ip6" key, which holds the IPv6 address of the node.
type IPv6 net.IP

func (v IPv6) ENRKey() string { return "ip6" }

func (v IPv6) MarshalRLP() ([]byte, error) {
	ip6 := net.IP(v).To16()
	if ip6 == nil {
		return nil, fmt.Errorf("invalid IPv6 address: %v", net.IP(v))
	}
	return rlp.EncodeString(ip6), nil
}

func (v *IPv6) UnmarshalRLP(b []byte) error {
	content, err := splitValue(b)
	if err != nil {
		return err
	}
	if len(content) != 16 {
		return fmt.Errorf("invalid IPv6 address, want 16 bytes: %x", content)
	}
	*v = make(IPv6, len(content))
	copy(*v, content)
	return nil
}

// TCP is the "tcp" key, which holds the TCP port of the node.
type TCP uint16

func (v TCP) ENRKey() string { return "tcp" }

func (v TCP) MarshalRLP() ([]byte, error) {
	return rlp.EncodeUint64(uint64(v)), nil
}

func (v *TCP) UnmarshalRLP(b []byte) error {
	port, err := splitPort(b)
	if err != nil {
		return err
	}
	*v = TCP(port)
	return nil
}

// TCP6 is the "tcp6" key, which holds the IPv6-specific TCP port of the node.
type TCP6 uint16

func (v TCP6) ENRKey() string { return "tcp6" }

func (v TCP6) MarshalRLP() ([]byte, error) {
	return rlp.EncodeUint64(uint64(v)), nil
}

func (v *TCP6) UnmarshalRLP(b []byte) error {
	port, err := splitPort(b)
	if err != nil {
		return err
	}
	*v = TCP6(port)
	return nil
}

// UDP is the "udp" key, which holds the UDP port of the node.
type UDP uint16

func (v UDP) ENRKey() string { return "udp" }

func (v UDP) MarshalRLP() ([]byte, error) {
	return rlp.EncodeUint64(uint64(v)), nil
}

func (v *UDP) UnmarshalRLP(b []byte) error {
	port, err := splitPort(b)
	if err != nil {
		return err
	}
	*v = UDP(port)
	return nil
}

// UDP6 is the "udp6" key, which holds the IPv6-specific UDP port of the node.
type UDP6 uint16

func (v UDP6) ENRKey() string { return "udp6" }

func (v UDP6) MarshalRLP() ([]byte, error) {
	return rlp.EncodeUint64(uint64(v)), nil
}

func (v *UDP6) UnmarshalRLP(b []byte) error {
	port, err := splitPort(b)
	if err != nil {
		return err
	}
	*v = UDP6(port)
	return nil
}

// Secp256k1 is the "secp256k1" key, which holds a compressed secp256k1
// public key.
type Secp256k1 []byte

func (v Secp256k1) ENRKey() string { return "secp256k1" }

func (v Secp256k1) MarshalRLP() ([]byte, error) {
	if len(v) != crypto.Secp256k1PubKeyLen {
		return nil, fmt.Errorf("invalid secp256k1 public key, want %d bytes: %x", crypto.Secp256k1PubKeyLen, []byte(v))
	}
	return rlp.EncodeString(v), nil
}

func (v *Secp256k1) UnmarshalRLP(b []byte) error {
	content, err := splitValue(b)
	if err != nil {
		return err
	}
	if len(content) != crypto.Secp256k1PubKeyLen {
		return fmt.Errorf("invalid secp256k1 public key, want %d bytes: %x", crypto.Secp256k1PubKeyLen, content)
	}
	*v = make(Secp256k1, len(content))
	copy(*v, content)
	return nil
}

// Ed25519 is the "ed25519" key, which holds an ed25519 public key.
type Ed25519 []byte

func (v Ed25519) ENRKey() string { return "ed25519" }

func (v Ed25519) MarshalRLP() ([]byte, error) {
	if len(v) != crypto.Ed25519PubKeyLen {
		return nil, fmt.Errorf("invalid ed25519 public key, want %d bytes: %x", crypto.Ed25519PubKeyLen, []byte(v))
	}
	return rlp.EncodeString(v), nil
}

func (v *Ed25519) UnmarshalRLP(b []byte) error {
	content, err := splitValue(b)
	if err != nil {
		return err
	}
	if len(content) != crypto.Ed25519PubKeyLen {
		return fmt.Errorf("invalid ed25519 public key, want %d bytes: %x", crypto.Ed25519PubKeyLen, content)
	}
	*v = make(Ed25519, len(content))
	copy(*v, content)
	return nil
}
