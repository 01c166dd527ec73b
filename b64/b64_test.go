// Copyright (C) 2025 The fieldjson authors. All Rights Reserved.

package b64_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldjson/fieldjson/b64"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"f", "Zg=="},
		{"fo", "Zm8="},
		{"foo", "Zm9v"},
		{"foob", "Zm9vYg=="},
		{"fooba", "Zm9vYmE="},
		{"foobar", "Zm9vYmFy"},
		{"HELLO\x00", "SEVMTE8A"},
		{"\x00\x00\x00", "AAAA"},
		{"\xff\xfe\xfd", "//79"},
	}
	for _, tc := range tests {
		dst := make([]byte, b64.EncodedLen(len(tc.input)))
		n, err := b64.Encode(dst, []byte(tc.input))
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, string(dst[:n]), "input %q", tc.input)
	}
}

func TestEncodeSpace(t *testing.T) {
	src := []byte("HELLO")
	short := make([]byte, b64.EncodedLen(len(src))-1)
	n, err := b64.Encode(short, src)
	assert.ErrorIs(t, err, b64.ErrSpace)
	assert.Zero(t, n)

	// A short destination must not be written at all.
	for i, c := range short {
		assert.Zero(t, c, "byte %d written despite ErrSpace", i)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"Zg==", "f"},
		{"Zm8=", "fo"},
		{"Zm9v", "foo"},
		{"Zm9vYmFy", "foobar"},
		{"SEVMTE8A", "HELLO\x00"},

		// Unpadded terminal groups.
		{"Zg", "f"},
		{"Zm8", "fo"},

		// Whitespace anywhere is skipped.
		{" Zm9v ", "foo"},
		{"Zm\t9v", "foo"},
		{"Zm9v\r\nYmFy", "foobar"},

		// Padding ends the input; trailing garbage is not examined.
		{"Zm8=9v", "fo"},
	}
	for _, tc := range tests {
		dst := make([]byte, len(tc.input))
		n, err := b64.Decode(dst, []byte(tc.input))
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, string(dst[:n]), "input %q", tc.input)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	for _, input := range []string{"Zm9v!", "*", "Zm_v", "Zm9v\x00"} {
		dst := make([]byte, 16)
		n, err := b64.Decode(dst, []byte(input))
		assert.ErrorIs(t, err, b64.ErrCorrupt, "input %q", input)
		assert.Zero(t, n, "input %q", input)
	}
}

func TestDecodeSpace(t *testing.T) {
	dst := make([]byte, 2) // "foo" needs 3
	_, err := b64.Decode(dst, []byte("Zm9v"))
	assert.ErrorIs(t, err, b64.ErrSpace)

	dst = make([]byte, 3)
	_, err = b64.Decode(dst, []byte("Zm9vYg=="))
	assert.ErrorIs(t, err, b64.ErrSpace)
}

func TestAgainstStdlib(t *testing.T) {
	inputs := []string{"", "a", "ab", "abc", "abcd", "Hello, World!", "\x00\x01\x02\xfd\xfe\xff"}
	for _, in := range inputs {
		want := base64.StdEncoding.EncodeToString([]byte(in))

		dst := make([]byte, b64.EncodedLen(len(in)))
		n, err := b64.Encode(dst, []byte(in))
		require.NoError(t, err)
		assert.Equal(t, want, string(dst[:n]), "encode %q", in)

		back := make([]byte, len(in))
		n, err = b64.Decode(back, dst)
		require.NoError(t, err)
		assert.Equal(t, in, string(back[:n]), "decode %q", want)
	}
}

func TestLens(t *testing.T) {
	for n := 0; n <= 10; n++ {
		assert.Equal(t, base64.StdEncoding.EncodedLen(n), b64.EncodedLen(n), "EncodedLen(%d)", n)
	}
	assert.Equal(t, 3, b64.DecodedLen(4))
	assert.Equal(t, 6, b64.DecodedLen(8))
}
