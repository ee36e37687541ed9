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

// Package rlp implements the subset of the RLP serialization format needed
// by node records: byte strings, unsigned integers and lists, split and
// appended on raw byte slices.
//
// Decoding is canonical: inputs that use a longer encoding than necessary
// (padded sizes, leading zero bytes, single bytes wrapped in a string
// header) are rejected. Records are re-encoded for signing, so accepting a
// non-canonical form would let two different encodings carry the same
// signature.
package rlp

import (
	"errors"
	"io"
)

// RawValue represents an encoded RLP value and can be used to keep a pair
// value in its wire form.
type RawValue []byte

// Kind represents the kind of value contained in an RLP stream.
type Kind int

const (
	Byte Kind = iota
	String
	List
)

func (k Kind) String() string {
	switch k {
	case Byte:
		return "Byte"
	case String:
		return "String"
	case List:
		return "List"
	default:
		return "Unknown"
	}
}

var (
	// ErrCanonSize is returned when a value carries non-minimal size
	// information.
	ErrCanonSize = errors.New("rlp: non-canonical size information")
	// ErrCanonInt is returned when an integer has leading zero bytes.
	ErrCanonInt = errors.New("rlp: non-canonical integer format")
	// ErrExpectedString is returned when a list appears where a byte
	// string is required.
	ErrExpectedString = errors.New("rlp: expected String or Byte")
	// ErrExpectedList is returned when a byte string appears where a list
	// is required.
	ErrExpectedList = errors.New("rlp: expected List")
	// ErrValueTooLarge is returned when a declared size exceeds the input.
	ErrValueTooLarge = errors.New("rlp: value size exceeds available input length")
	// ErrMoreThanOneValue is returned when trailing bytes follow a
	// well-formed value.
	ErrMoreThanOneValue = errors.New("rlp: input contains more than one value")
	// ErrUintOverflow is returned when an integer does not fit in 64 bits.
	ErrUintOverflow = errors.New("rlp: uint overflow")
)

// Split returns the content of the first RLP value in b, its kind, and the
// rest of the input after the value.
func Split(b []byte) (k Kind, content, rest []byte, err error) {
	k, ts, cs, err := readKind(b)
	if err != nil {
		return 0, nil, b, err
	}
	return k, b[ts : ts+cs], b[ts+cs:], nil
}

// SplitString splits b into the content of an RLP string and the remaining
// input. It fails if b does not start with a string.
func SplitString(b []byte) (content, rest []byte, err error) {
	k, content, rest, err := Split(b)
	if err != nil {
		return nil, b, err
	}
	if k == List {
		return nil, b, ErrExpectedString
	}
	return content, rest, nil
}

// SplitList splits b into the content of an RLP list and the remaining
// input. It fails if b does not start with a list.
func SplitList(b []byte) (content, rest []byte, err error) {
	k, content, rest, err := Split(b)
	if err != nil {
		return nil, b, err
	}
	if k != List {
		return nil, b, ErrExpectedList
	}
	return content, rest, nil
}

// SplitUint64 decodes an integer at the start of b and returns the
// remaining input. It rejects non-canonical integers.
func SplitUint64(b []byte) (x uint64, rest []byte, err error) {
	content, rest, err := SplitString(b)
	if err != nil {
		return 0, b, err
	}
	switch {
	case len(content) == 0:
		return 0, rest, nil
	case len(content) == 1:
		if content[0] == 0 {
			return 0, b, ErrCanonInt
		}
		return uint64(content[0]), rest, nil
	case len(content) > 8:
		return 0, b, ErrUintOverflow
	default:
		if content[0] == 0 {
			return 0, b, ErrCanonInt
		}
		for _, v := range content {
			x = x<<8 | uint64(v)
		}
		return x, rest, nil
	}
}

func readKind(buf []byte) (k Kind, tagsize, contentsize uint64, err error) {
	if len(buf) == 0 {
		return 0, 0, 0, io.ErrUnexpectedEOF
	}
	b := buf[0]
	switch {
	case b < 0x80:
		k = Byte
		tagsize = 0
		contentsize = 1
	case b < 0xB8:
		k = String
		tagsize = 1
		contentsize = uint64(b - 0x80)
		// Reject strings that should have been single bytes.
		if contentsize == 1 && len(buf) > 1 && buf[1] < 0x80 {
			return 0, 0, 0, ErrCanonSize
		}
	case b < 0xC0:
		k = String
		tagsize = uint64(b-0xB7) + 1
		contentsize, err = readSize(buf[1:], b-0xB7)
	case b < 0xF8:
		k = List
		tagsize = 1
		contentsize = uint64(b - 0xC0)
	default:
		k = List
		tagsize = uint64(b-0xF7) + 1
		contentsize, err = readSize(buf[1:], b-0xF7)
	}
	if err != nil {
		return 0, 0, 0, err
	}
	// Reject values larger than the input slice.
	if contentsize > uint64(len(buf))-tagsize {
		return 0, 0, 0, ErrValueTooLarge
	}
	return k, tagsize, contentsize, nil
}

func readSize(b []byte, slen byte) (uint64, error) {
	if int(slen) > len(b) {
		return 0, io.ErrUnexpectedEOF
	}
	var s uint64
	switch slen {
	case 1:
		s = uint64(b[0])
	case 2:
		s = uint64(b[0])<<8 | uint64(b[1])
	case 3:
		s = uint64(b[0])<<16 | uint64(b[1])<<8 | uint64(b[2])
	case 4:
		s = uint64(b[0])<<24 | uint64(b[1])<<16 | uint64(b[2])<<8 | uint64(b[3])
	case 5:
		s = uint64(b[0])<<32 | uint64(b[1])<<24 | uint64(b[2])<<16 | uint64(b[3])<<8 | uint64(b[4])
	case 6:
		s = uint64(b[0])<<40 | uint64(b[1])<<32 | uint64(b[2])<<24 | uint64(b[3])<<16 | uint64(b[4])<<8 | uint64(b[5])
	case 7:
		s = uint64(b[0])<<48 | uint64(b[1])<<40 | uint64(b[2])<<32 | uint64(b[3])<<24 | uint64(b[4])<<16 | uint64(b[5])<<8 | uint64(b[6])
	case 8:
		s = uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 | uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
	}
	// Sizes below 56 belong in the single-byte header form, and size bytes
	// must not have leading zeros.
	if s < 56 || b[0] == 0 {
		return 0, ErrCanonSize
	}
	return s, nil
}

// AppendString appends the RLP encoding of the byte string str to b.
func AppendString(b, str []byte) []byte {
	if len(str) == 1 && str[0] < 0x80 {
		return append(b, str[0])
	}
	b = appendSize(b, 0x80, uint64(len(str)))
	return append(b, str...)
}

// AppendUint64 appends the RLP encoding of i to b.
func AppendUint64(b []byte, i uint64) []byte {
	if i == 0 {
		return append(b, 0x80)
	} else if i < 0x80 {
		return append(b, byte(i))
	}
	return AppendString(b, intBytes(i))
}

// AppendList appends a list header for content to b, followed by content.
func AppendList(b, content []byte) []byte {
	b = appendSize(b, 0xC0, uint64(len(content)))
	return append(b, content...)
}

// EncodeString returns the RLP encoding of the byte string str.
func EncodeString(str []byte) []byte {
	return AppendString(nil, str)
}

// EncodeUint64 returns the RLP encoding of i.
func EncodeUint64(i uint64) []byte {
	return AppendUint64(nil, i)
}

func appendSize(b []byte, base byte, size uint64) []byte {
	if size < 56 {
		return append(b, base+byte(size))
	}
	sb := intBytes(size)
	b = append(b, base+55+byte(len(sb)))
	return append(b, sb...)
}

// intBytes returns i in big-endian byte order with leading zeros removed.
func intBytes(i uint64) []byte {
	size := intsize(i)
	b := make([]byte, size)
	for n := size; n > 0; n-- {
		b[n-1] = byte(i)
		i >>= 8
	}
	return b
}

func intsize(i uint64) int {
	size := 1
	for ; i >= 0x100; size++ {
		i >>= 8
	}
	return size
}
