// Copyright (C) 2025 The fieldjson authors. All Rights Reserved.

// Package b64 implements a base64 codec over fixed caller buffers.
//
// Unlike the standard encoding/base64, both directions are pure functions
// over caller storage with no allocation: the encoder checks the exact
// destination capacity up front, and the decoder skips whitespace, treats
// '=' as end of data, and fails the moment its output would exceed the
// destination, which is what a codec for fixed embedded buffers needs.
package b64

import "errors"

var (
	// ErrSpace means the destination buffer cannot hold the result.
	ErrSpace = errors.New("b64: destination too small")

	// ErrCorrupt means the input contained a byte outside the alphabet.
	ErrCorrupt = errors.New("b64: invalid input byte")
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// padLen[n%3] is the number of '=' bytes terminating the encoding of an
// n-byte input.
var padLen = [3]int{0, 2, 1}

// Classification codes for decode, stored above the 0..63 digit values.
const (
	ws = 64 + iota // whitespace, skipped
	eq             // '=', terminates the input
	xx             // invalid
)

var dtab [256]byte

func init() {
	for i := range dtab {
		dtab[i] = xx
	}
	for i := 0; i < len(alphabet); i++ {
		dtab[alphabet[i]] = byte(i)
	}
	for _, c := range []byte(" \t\r\n") {
		dtab[c] = ws
	}
	dtab['='] = eq
}

// EncodedLen reports the exact encoded size of n source bytes.
func EncodedLen(n int) int { return 4 * ((n + 2) / 3) }

// DecodedLen reports an upper bound on the decoded size of n input bytes.
func DecodedLen(n int) int { return n * 3 / 4 }

// Encode writes the base64 encoding of src into dst and reports the number
// of bytes written. It fails with ErrSpace, before writing anything, if dst
// is smaller than EncodedLen(len(src)).
func Encode(dst, src []byte) (int, error) {
	n := EncodedLen(len(src))
	if len(dst) < n {
		return 0, ErrSpace
	}
	for i, j := 0, 0; i < len(src); j += 4 {
		var b, c uint32
		a := uint32(src[i])
		i++
		if i < len(src) {
			b = uint32(src[i])
			i++
		}
		if i < len(src) {
			c = uint32(src[i])
			i++
		}
		triple := a<<16 | b<<8 | c
		dst[j] = alphabet[triple>>18&0x3F]
		dst[j+1] = alphabet[triple>>12&0x3F]
		dst[j+2] = alphabet[triple>>6&0x3F]
		dst[j+3] = alphabet[triple&0x3F]
	}
	for i := 0; i < padLen[len(src)%3]; i++ {
		dst[n-1-i] = '='
	}
	return n, nil
}

// Decode writes the decoded form of src into dst and reports the number of
// bytes written. Whitespace in src is skipped and '=' ends the input. It
// fails with ErrCorrupt on any other byte outside the alphabet, and with
// ErrSpace as soon as the output would exceed dst.
func Decode(dst, src []byte) (int, error) {
	var (
		window uint32
		group  int
		n      int
	)
scan:
	for _, c := range src {
		switch d := dtab[c]; d {
		case ws:
			continue
		case xx:
			return 0, ErrCorrupt
		case eq:
			break scan
		default:
			window = window<<6 | uint32(d)
			group++
			if group == 4 {
				if n+3 > len(dst) {
					return 0, ErrSpace
				}
				dst[n] = byte(window >> 16)
				dst[n+1] = byte(window >> 8)
				dst[n+2] = byte(window)
				n += 3
				window, group = 0, 0
			}
		}
	}

	// A terminal group of 3 digits decodes to 2 bytes, 2 digits to 1 byte.
	// A single leftover digit carries no complete byte and is dropped.
	switch group {
	case 3:
		if n+2 > len(dst) {
			return 0, ErrSpace
		}
		dst[n] = byte(window >> 10)
		dst[n+1] = byte(window >> 2)
		n += 2
	case 2:
		if n+1 > len(dst) {
			return 0, ErrSpace
		}
		dst[n] = byte(window >> 4)
		n++
	}
	return n, nil
}
