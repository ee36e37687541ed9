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
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
)

// TextPrefix marks the textual form of a node record.
const TextPrefix = "enr:"

// FromBase64 parses a record from its textual form: unpadded URL-safe
// base64 of the binary encoding, with an optional "enr:" prefix. The prefix
// match is exact; case variants are treated as part of the payload.
func FromBase64(text string) (*Record, error) {
	if text == "" {
		return nil, errors.New("enr: empty input")
	}
	bin, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(text, TextPrefix))
	if err != nil {
		return nil, errors.Wrap(err, "enr: invalid base64")
	}
	r, err := Decode(bin)
	if err != nil {
		return nil, errors.Wrap(err, "enr: invalid node record")
	}
	return r, nil
}

// ToBase64 returns the textual form of the record.
func (r *Record) ToBase64() (string, error) {
	enc, err := r.Encode()
	if err != nil {
		return "", err
	}
	return TextPrefix + base64.RawURLEncoding.EncodeToString(enc), nil
}

// String implements fmt.Stringer. It returns the textual form for signed
// records.
func (r *Record) String() string {
	text, err := r.ToBase64()
	if err != nil {
		return "enr:<unsigned>"
	}
	return text
}
