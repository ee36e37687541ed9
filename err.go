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
	"errors"
	"fmt"
	"io"

	"github.com/annchain/enr/rlp"
)

var (
	// ErrInvalidSig is returned when a record signature does not verify
	// against the public key the record carries.
	ErrInvalidSig = errors.New("enr: invalid signature on node record")

	// ErrTooBig is returned when the encoded record exceeds SizeLimit.
	ErrTooBig = fmt.Errorf("enr: record bigger than %d bytes", SizeLimit)

	// ErrUnsupportedScheme is returned when a record carries no public key
	// field, carries more than one, or declares an unknown identity scheme.
	ErrUnsupportedScheme = errors.New("enr: unknown or unsupported identity scheme")

	errNotSorted      = errors.New("enr: record key/value pairs are not sorted by key")
	errDuplicateKey   = errors.New("enr: record contains duplicate key")
	errIncompletePair = errors.New("enr: record contains incomplete k/v pair")
	errEncodeUnsigned = errors.New("enr: can't encode unsigned record")
	errNotFound       = errors.New("enr: no such key in record")
)

// KeyError is an error related to a key.
type KeyError struct {
	Key string
	Err error
}

// Error implements error.
func (err *KeyError) Error() string {
	if err.Err == errNotFound {
		return fmt.Sprintf("missing ENR key %q", err.Key)
	}
	return fmt.Sprintf("ENR key %q: %v", err.Key, err.Err)
}

func (err *KeyError) Unwrap() error {
	return err.Err
}

// IsNotFound reports whether the given error means that a key/value pair is
// missing from a record.
func IsNotFound(err error) bool {
	kerr, ok := err.(*KeyError)
	return ok && kerr.Err == errNotFound
}

var malformedErrs = []error{
	errNotSorted,
	errDuplicateKey,
	errIncompletePair,
	rlp.ErrCanonSize,
	rlp.ErrCanonInt,
	rlp.ErrExpectedString,
	rlp.ErrExpectedList,
	rlp.ErrValueTooLarge,
	rlp.ErrMoreThanOneValue,
	rlp.ErrUintOverflow,
	io.ErrUnexpectedEOF,
}

// IsMalformed reports whether the given error means that an encoded record
// was structurally invalid: bad RLP framing, unsorted or duplicate keys, or
// an incomplete pair list. Signature and scheme failures are not malformed
// encodings and report false.
func IsMalformed(err error) bool {
	for _, target := range malformedErrs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
