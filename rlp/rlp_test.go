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

package rlp

import (
	"bytes"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unhex(s string) []byte {
	b, err := hex.DecodeString(strings.Replace(s, " ", "", -1))
	if err != nil {
		panic(err)
	}
	return b
}

func TestAppendUint64(t *testing.T) {
	tests := []struct {
		input  uint64
		output string
	}{
		{0, "80"},
		{1, "01"},
		{2, "02"},
		{127, "7f"},
		{128, "8180"},
		{129, "8181"},
		{256, "820100"},
		{1024, "820400"},
		{30303, "82765f"},
		{0xFFFFFF, "83ffffff"},
		{0x102030405060708, "880102030405060708"},
		{0xFFFFFFFFFFFFFFFF, "88ffffffffffffffff"},
	}
	for _, tt := range tests {
		enc := AppendUint64(nil, tt.input)
		assert.Equal(t, unhex(tt.output), enc, "encoding mismatch for %d", tt.input)

		dec, rest, err := SplitUint64(enc)
		require.NoError(t, err, "decoding %q", tt.output)
		assert.Equal(t, tt.input, dec)
		assert.Len(t, rest, 0)
	}
}

func TestAppendString(t *testing.T) {
	tests := []struct {
		input  string
		output string
	}{
		{"", "80"},
		{"\x00", "00"},
		{"\x7f", "7f"},
		{"\x80", "8180"},
		{"d", "64"},
		{"dog", "83646f67"},
		{strings.Repeat("a", 55), "b7" + strings.Repeat("61", 55)},
		{strings.Repeat("a", 56), "b838" + strings.Repeat("61", 56)},
	}
	for _, tt := range tests {
		enc := AppendString(nil, []byte(tt.input))
		assert.Equal(t, unhex(tt.output), enc, "encoding mismatch for %x", tt.input)

		content, rest, err := SplitString(enc)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(content, []byte(tt.input)))
		assert.Len(t, rest, 0)
	}
}

func TestAppendList(t *testing.T) {
	// [ "cat", "dog" ]
	content := AppendString(nil, []byte("cat"))
	content = AppendString(content, []byte("dog"))
	enc := AppendList(nil, content)
	assert.Equal(t, unhex("c88363617483646f67"), enc)

	inner, rest, err := SplitList(enc)
	require.NoError(t, err)
	assert.Len(t, rest, 0)
	assert.Equal(t, content, inner)
}

func TestSplit(t *testing.T) {
	k, content, rest, err := Split(unhex("c50183040404"))
	require.NoError(t, err)
	assert.Equal(t, List, k)
	assert.Equal(t, unhex("0183040404"), content)
	assert.Len(t, rest, 0)

	k, content, rest, err = Split(unhex("82765fff"))
	require.NoError(t, err)
	assert.Equal(t, String, k)
	assert.Equal(t, unhex("765f"), content)
	assert.Equal(t, unhex("ff"), rest)

	k, content, _, err = Split(unhex("01"))
	require.NoError(t, err)
	assert.Equal(t, Byte, k)
	assert.Equal(t, unhex("01"), content)
}

func TestSplitErrors(t *testing.T) {
	tests := []struct {
		input string
		err   error
	}{
		{"", io.ErrUnexpectedEOF},
		{"8100", ErrCanonSize},           // single byte wrapped in string header
		{"817f", ErrCanonSize},           // same, boundary value
		{"b8", io.ErrUnexpectedEOF},      // missing size byte
		{"b800", ErrCanonSize},           // long form for zero size
		{"b801ff", ErrCanonSize},         // long form for short size
		{"b838", ErrValueTooLarge},       // declared size beyond input
		{"b90000", ErrCanonSize},         // leading zero in size
		{"8501020304", ErrValueTooLarge}, // declared size beyond input
		{"c501020304", ErrValueTooLarge}, // same for lists
		{"f80180", ErrCanonSize},         // long form list for short size
	}
	for _, tt := range tests {
		_, _, _, err := Split(unhex(tt.input))
		assert.Equal(t, tt.err, err, "input %q", tt.input)
	}
}

func TestSplitUint64Errors(t *testing.T) {
	_, _, err := SplitUint64(unhex("8400010203"))
	assert.Equal(t, ErrCanonInt, err, "leading zero byte")

	_, _, err = SplitUint64(unhex("8100"))
	assert.Equal(t, ErrCanonSize, err, "zero wrapped in string header")

	_, _, err = SplitUint64(unhex("89010203040506070809"))
	assert.Equal(t, ErrUintOverflow, err, "9-byte integer")

	_, _, err = SplitUint64(unhex("c0"))
	assert.Equal(t, ErrExpectedString, err)
}

func TestSplitStringOnList(t *testing.T) {
	_, _, err := SplitString(unhex("c0"))
	assert.Equal(t, ErrExpectedString, err)

	_, _, err = SplitList(unhex("80"))
	assert.Equal(t, ErrExpectedList, err)
}

func TestRoundtripNested(t *testing.T) {
	// list containing a uint, a string and an empty list
	content := AppendUint64(nil, 42)
	content = AppendString(content, []byte("hello"))
	content = AppendList(content, nil)
	enc := AppendList(nil, content)

	inner, rest, err := SplitList(enc)
	require.NoError(t, err)
	require.Len(t, rest, 0)

	x, inner, err := SplitUint64(inner)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), x)

	s, inner, err := SplitString(inner)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), s)

	l, inner, err := SplitList(inner)
	require.NoError(t, err)
	assert.Len(t, l, 0)
	assert.Len(t, inner, 0)
}
