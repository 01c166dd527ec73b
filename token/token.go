// Copyright (C) 2025 The fieldjson authors. All Rights Reserved.

// Package token implements a flat, allocation-free JSON tokenizer.
//
// Parse fills a caller-provided token array in pre-order: each token
// records its kind, the byte span of its text in the source, the number of
// its immediate children, and the index of its parent. The token array is
// the unit of exchange with the binder in the parent package: sizing it is
// the caller's way of bounding the work a hostile input can cause.
//
// The grammar accepted is a superset of JSON: primitives are any run of
// bytes up to a structural delimiter, and no pairing of keys to object
// positions is enforced here. Semantic checking belongs to the consumer of
// the token array.
package token

import "errors"

// Kind is the type of a parsed token.
type Kind byte

// Constants defining the valid Kind values.
const (
	Undefined Kind = iota // no token
	Object                // { ... }
	Array                 // [ ... ]
	String                // quoted string; span excludes the quotes
	Primitive             // number, true, false, null
)

var kindStr = [...]string{
	Undefined: "undefined",
	Object:    "object",
	Array:     "array",
	String:    "string",
	Primitive: "primitive",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Undefined]
	}
	return kindStr[k]
}

// A Token records one JSON value, or one object key, in pre-order.
//
// For containers, Children counts immediate members: element values for an
// array, keys for an object. A key string token has Children == 1, its
// value; the value is laid out directly after the key. Parent is an index
// into the token array, -1 at top level; it exists for diagnostics and is
// never required to walk the array.
type Token struct {
	Kind     Kind
	Pos, End int // byte span [Pos, End) in the source
	Children int
	Parent   int
}

var (
	// ErrNoSpace means the token array is too small for the input.
	ErrNoSpace = errors.New("token: out of token storage")

	// ErrSyntax means the input is not valid JSON.
	ErrSyntax = errors.New("token: invalid syntax")

	// ErrIncomplete means the input ended inside a value. The caller may
	// accumulate more bytes and parse again.
	ErrIncomplete = errors.New("token: incomplete input")
)

// Parse tokenizes src into toks and reports the number of tokens produced.
// On error no tokens are reported. Parse performs no allocation; if toks
// fills up it fails with ErrNoSpace.
func Parse(src []byte, toks []Token) (int, error) {
	p := parser{src: src, toks: toks, super: -1}
	if err := p.run(); err != nil {
		return 0, err
	}
	return p.next, nil
}

type parser struct {
	src   []byte
	toks  []Token
	pos   int
	next  int // next unallocated token slot
	super int // enclosing container or key token, or -1
}

func (p *parser) run() error {
	for ; p.pos < len(p.src); p.pos++ {
		switch c := p.src[p.pos]; c {
		case '{', '[':
			i, err := p.alloc()
			if err != nil {
				return err
			}
			t := &p.toks[i]
			if c == '{' {
				t.Kind = Object
			} else {
				t.Kind = Array
			}
			t.Pos = p.pos
			if p.super != -1 {
				p.toks[p.super].Children++
				t.Parent = p.super
			}
			p.super = i

		case '}', ']':
			if err := p.close(c); err != nil {
				return err
			}

		case '"':
			if err := p.scanString(); err != nil {
				return err
			}

		case ' ', '\t', '\r', '\n':
			// skip whitespace

		case ':':
			// The preceding key token owns the value that follows.
			p.super = p.next - 1

		case ',':
			// Step back from a key to its enclosing object.
			if p.super != -1 &&
				p.toks[p.super].Kind != Object &&
				p.toks[p.super].Kind != Array {
				p.super = p.toks[p.super].Parent
			}

		default:
			if err := p.scanPrimitive(); err != nil {
				return err
			}
		}
	}

	for i := p.next - 1; i >= 0; i-- {
		if p.toks[i].Pos != -1 && p.toks[i].End == -1 {
			return ErrIncomplete
		}
	}
	return nil
}

// close finishes the innermost open container, found by following parent
// links back from the most recent token.
func (p *parser) close(c byte) error {
	kind := Object
	if c == ']' {
		kind = Array
	}
	if p.next < 1 {
		return ErrSyntax
	}
	i := p.next - 1
	for {
		t := &p.toks[i]
		if t.Pos != -1 && t.End == -1 {
			if t.Kind != kind {
				return ErrSyntax
			}
			t.End = p.pos + 1
			p.super = t.Parent
			return nil
		}
		if t.Parent == -1 {
			if t.Kind != kind || p.super == -1 {
				return ErrSyntax
			}
			return nil
		}
		i = t.Parent
	}
}

func (p *parser) scanString() error {
	start := p.pos + 1
	for i := start; i < len(p.src); i++ {
		c := p.src[i]
		if c == '"' {
			if err := p.emit(String, start, i); err != nil {
				return err
			}
			p.pos = i
			return nil
		}
		if c == '\\' && i+1 < len(p.src) {
			i++
			switch p.src[i] {
			case '"', '/', '\\', 'b', 'f', 'n', 'r', 't':
			case 'u':
				for k := 0; k < 4; k++ {
					i++
					if i >= len(p.src) || !isHex(p.src[i]) {
						return ErrSyntax
					}
				}
			default:
				return ErrSyntax
			}
		}
	}
	return ErrIncomplete
}

func (p *parser) scanPrimitive() error {
	start := p.pos
	i := start
scan:
	for ; i < len(p.src); i++ {
		switch c := p.src[i]; {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n',
			c == ',' || c == ']' || c == '}' || c == ':':
			break scan
		case c < ' ' || c >= 0x7F:
			return ErrSyntax
		}
	}
	if err := p.emit(Primitive, start, i); err != nil {
		return err
	}
	p.pos = i - 1 // the delimiter is reprocessed by the main loop
	return nil
}

// emit allocates a leaf token covering src[pos:end] and links it under the
// current parent.
func (p *parser) emit(kind Kind, pos, end int) error {
	i, err := p.alloc()
	if err != nil {
		return err
	}
	t := &p.toks[i]
	t.Kind = kind
	t.Pos, t.End = pos, end
	if p.super != -1 {
		t.Parent = p.super
		p.toks[p.super].Children++
	}
	return nil
}

func (p *parser) alloc() (int, error) {
	if p.next >= len(p.toks) {
		return 0, ErrNoSpace
	}
	i := p.next
	p.next++
	p.toks[i] = Token{Pos: -1, End: -1, Parent: -1}
	return i, nil
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
