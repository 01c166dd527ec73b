// Copyright (C) 2025 The fieldjson authors. All Rights Reserved.

// Package numtext converts integers to and from base-N text over fixed
// caller buffers. It exists so the codec can format and parse numbers
// without allocating and without pulling in locale-aware formatting;
// parsing checks for overflow on every accumulation step.
package numtext

import (
	"errors"
	"math"
)

// MaxLen is the worst-case formatted size: 64 digits for a uint64 in
// base 2, plus one byte for a leading sign.
const MaxLen = 65

var (
	ErrSyntax = errors.New("numtext: invalid number syntax")
	ErrRange  = errors.New("numtext: value out of range")
)

const digits = "0123456789ABCDEF"

// FormatUint writes the base-b text of u into dst and returns the number
// of bytes written. Digits are accumulated least-significant first and
// reversed in place. dst must have room for MaxLen bytes; base must be in
// 2..16.
func FormatUint(dst []byte, u, base uint64) int {
	i := 0
	for {
		dst[i] = digits[u%base]
		i++
		u /= base
		if u == 0 {
			break
		}
	}
	reverse(dst[:i])
	return i
}

// FormatInt is FormatUint with a leading '-' for negative values. The
// magnitude goes through uint64 so that the minimum int64 does not
// overflow when negated.
func FormatInt(dst []byte, s int64, base uint64) int {
	if s < 0 {
		dst[0] = '-'
		return 1 + FormatUint(dst[1:], -uint64(s), base)
	}
	return FormatUint(dst, uint64(s), base)
}

// ParseUint parses src as an unsigned integer in the given base. Empty
// input, a byte that is not a digit of the base, or overflow are rejected;
// the result is zero on every failure path.
func ParseUint(src []byte, base uint64) (uint64, error) {
	if len(src) == 0 {
		return 0, ErrSyntax
	}
	var t uint64
	for _, c := range src {
		d := digit(c, base)
		if d < 0 {
			return 0, ErrSyntax
		}
		n := t * base
		if n/base != t {
			return 0, ErrRange
		}
		if n+uint64(d) < n {
			return 0, ErrRange
		}
		t = n + uint64(d)
	}
	return t, nil
}

// ParseInt parses src as a signed integer in the given base, accepting an
// optional leading '-'. The result is zero on failure.
func ParseInt(src []byte, base uint64) (int64, error) {
	neg := len(src) > 0 && src[0] == '-'
	if neg {
		src = src[1:]
	}
	u, err := ParseUint(src, base)
	if err != nil {
		return 0, err
	}
	if neg {
		if u > 1<<63 {
			return 0, ErrRange
		}
		if u == 1<<63 {
			return math.MinInt64, nil
		}
		return -int64(u), nil
	}
	if u > math.MaxInt64 {
		return 0, ErrRange
	}
	return int64(u), nil
}

func digit(c byte, base uint64) int {
	var d int
	switch {
	case c >= '0' && c <= '9':
		d = int(c - '0')
	case c >= 'a' && c <= 'f':
		d = int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		d = int(c-'A') + 10
	default:
		return -1
	}
	if uint64(d) >= base {
		return -1
	}
	return d
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
