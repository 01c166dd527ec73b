// Copyright (C) 2025 The fieldjson authors. All Rights Reserved.

package fieldjson

import (
	"strconv"
	"strings"

	"github.com/fieldjson/fieldjson/b64"
	"github.com/fieldjson/fieldjson/internal/numtext"
)

// Build-time feature toggles. They are reported in the flags byte of
// Version so a peer can tell how the library was built.
const (
	enableSelfTest     = true // built-in self checks compiled in
	enableEscape       = true // escape control characters on output
	enableUsedTracking = true // arrays record how many elements were bound
)

// Feature flag bits in the top byte of the packed version.
const (
	FlagSelfTest     = 1 << 0
	FlagEscape       = 1 << 1
	FlagUsedTracking = 1 << 2
)

func init() {
	if enableSelfTest {
		selfTest()
	}
}

// selfTest exercises the table-driven codecs once at startup. A failure
// means the tables were corrupted, so it panics.
func selfTest() {
	var enc [8]byte
	if n, err := b64.Encode(enc[:], []byte("OK")); err != nil || n != 4 || string(enc[:4]) != "T0s=" {
		panic("fieldjson: base64 self test failed")
	}
	var dec [2]byte
	if n, err := b64.Decode(dec[:], enc[:4]); err != nil || n != 2 || string(dec[:2]) != "OK" {
		panic("fieldjson: base64 self test failed")
	}
	var num [numtext.MaxLen]byte
	if k := numtext.FormatInt(num[:], -12345, 10); string(num[:k]) != "-12345" {
		panic("fieldjson: integer self test failed")
	}
}

// versionString is stamped by the build system, for example:
//
//	go build -ldflags "-X github.com/fieldjson/fieldjson.versionString=1.2.3"
var versionString string

// Version reports the library version packed as major, minor and patch
// bytes (patch in the low byte) with the feature flags in the top byte.
// It reports ErrVersion if the build did not stamp a version.
func Version() (uint32, error) {
	var flags uint32
	if enableSelfTest {
		flags |= FlagSelfTest
	}
	if enableEscape {
		flags |= FlagEscape
	}
	if enableUsedTracking {
		flags |= FlagUsedTracking
	}

	var v uint32
	rest := versionString
	for i := 0; i < 3; i++ {
		part, tail, _ := strings.Cut(rest, ".")
		n, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return 0, ErrVersion
		}
		v = v<<8 | uint32(n)
		rest = tail
	}
	if rest != "" {
		return 0, ErrVersion
	}
	return flags<<24 | v, nil
}
