// Copyright (C) 2025 The fieldjson authors. All Rights Reserved.

package fieldjson

import "errors"

// Errors reported by the codec. The set is closed: every failure from a
// public operation is exactly one of these values, and the first error hit
// during a traversal is the one returned; later failures in the same call
// are suppressed.
//
// Three semantically distinct groups share the channel: configuration
// errors (ErrConfig: the descriptor tree itself is malformed), data errors
// (ErrParse, ErrIncomplete, ErrType, ErrNumber, ErrBase64: the input is
// bad), and capacity errors (ErrSpace, ErrDepth, ErrShortToks: a caller
// bound was reached).
var (
	ErrUnknown    = errors.New("fieldjson: unspecified error")
	ErrDepth      = errors.New("fieldjson: recursion limit exceeded")
	ErrBase64     = errors.New("fieldjson: base64 codec failed")
	ErrSpace      = errors.New("fieldjson: not enough space")
	ErrDisabled   = errors.New("fieldjson: feature disabled")
	ErrParse      = errors.New("fieldjson: input is not valid JSON")
	ErrIncomplete = errors.New("fieldjson: incomplete JSON input")
	ErrType       = errors.New("fieldjson: type mismatch")
	ErrNumber     = errors.New("fieldjson: invalid number")
	ErrVersion    = errors.New("fieldjson: version not set")
	ErrConfig     = errors.New("fieldjson: invalid field configuration")
	ErrShortToks  = errors.New("fieldjson: token stream too short")
)
