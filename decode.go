// Copyright (C) 2025 The fieldjson authors. All Rights Reserved.

package fieldjson

import (
	"go4.org/mem"

	"github.com/fieldjson/fieldjson/b64"
	"github.com/fieldjson/fieldjson/internal/numtext"
	"github.com/fieldjson/fieldjson/token"
)

// Unmarshal deserializes the JSON text in src.Data[:src.Used] onto fields.
// toks is caller-provided token storage; its size bounds the structure the
// input may have.
//
// Only fields whose attribute appears in the input are written; unknown
// keys are skipped, values and all. On failure, fields bound before the
// failure point keep their new values and everything else is untouched.
func Unmarshal(fields []Field, opt Options, toks []token.Token, src *Buffer) error {
	return unmarshal(fields, opt, toks, src.Data[:src.Used])
}

// UnmarshalText is Unmarshal over plain text. If src contains a NUL, only
// the bytes before it are parsed, matching the terminator MarshalText
// writes.
func UnmarshalText(fields []Field, opt Options, toks []token.Token, src []byte) error {
	for i, c := range src {
		if c == 0 {
			src = src[:i]
			break
		}
	}
	return unmarshal(fields, opt, toks, src)
}

func unmarshal(fields []Field, opt Options, toks []token.Token, src []byte) error {
	for i := range toks {
		toks[i] = token.Token{}
	}
	n, err := token.Parse(src, toks)
	switch err {
	case nil:
	case token.ErrNoSpace:
		return ErrSpace
	case token.ErrIncomplete:
		return ErrIncomplete
	case token.ErrSyntax:
		return ErrParse
	default:
		return ErrUnknown
	}
	if n == 0 {
		return nil // nothing to bind
	}

	c := context{max: opt.MaxDepth}
	d := &binder{c: &c, src: src, toks: toks[:n]}
	if _, err := d.bindLevel(fields, 0, 0); err != nil {
		return c.err
	}
	return nil
}

// binder walks the descriptor tree and the flat token array in lock-step.
type binder struct {
	c    *context
	src  []byte
	toks []token.Token
}

// bindLevel binds the object token at ti onto one level of fields,
// returning the total number of tokens consumed including the container
// itself.
func (d *binder) bindLevel(fields []Field, ti, depth int) (int, error) {
	if d.c.max != 0 && depth > d.c.max {
		return 0, d.c.fail(ErrDepth)
	}
	t := &d.toks[ti]
	if t.Kind != token.Object {
		return 0, d.c.fail(ErrParse)
	}

	n := 1 // the container token itself
	j := ti + 1
	for m := 0; m < t.Children; m++ {
		if j >= len(d.toks) {
			return 0, d.c.fail(ErrShortToks)
		}
		key := &d.toks[j]
		if key.Kind != token.String {
			// Only strings can be attributes.
			return 0, d.c.fail(ErrUnknown)
		}
		if key.Children == 0 || j+1 >= len(d.toks) {
			return 0, d.c.fail(ErrShortToks)
		}

		vi := j + 1
		var vn int
		if f := d.find(fields, key); f != nil {
			var err error
			if vn, err = d.bindValue(f, vi, depth); err != nil {
				return 0, err
			}
		} else {
			// Unknown key: skip the whole value subtree, however nested.
			if vn = d.span(vi); vn < 0 {
				return 0, d.c.fail(ErrShortToks)
			}
		}
		j = vi + vn
		n += 1 + vn
	}
	return n, nil
}

// bindValue binds one value token onto f, dispatching on the token kind,
// and returns the number of tokens the value occupied.
func (d *binder) bindValue(f *Field, ti, depth int) (int, error) {
	if err := f.check(); err != nil {
		return 0, d.c.fail(err)
	}
	switch t := &d.toks[ti]; t.Kind {
	case token.Object:
		if f.typ != TypeObject {
			return 0, d.c.fail(ErrType)
		}
		return d.bindLevel(f.kids[:f.used], ti, depth+1)
	case token.Array:
		if f.typ != TypeArray {
			return 0, d.c.fail(ErrType)
		}
		return d.bindArray(f, ti, depth+1)
	case token.String:
		return 1, d.bindString(f, t)
	case token.Primitive:
		return 1, d.bindPrimitive(f, t)
	}
	return 0, d.c.fail(ErrUnknown)
}

// bindArray binds consecutive element tokens into the next available child
// slots of an Array field. With used tracking enabled the field's count is
// reset first and reflects the elements actually bound, even if a later
// element fails.
func (d *binder) bindArray(f *Field, ti, depth int) (int, error) {
	if d.c.max != 0 && depth > d.c.max {
		return 0, d.c.fail(ErrDepth)
	}
	t := &d.toks[ti]
	if enableUsedTracking {
		f.used = 0
	}
	n := 1
	j := ti + 1
	for k := 0; k < t.Children; k++ {
		if j >= len(d.toks) {
			return 0, d.c.fail(ErrShortToks)
		}
		if k >= len(f.kids) {
			return 0, d.c.fail(ErrSpace)
		}
		vn, err := d.bindValue(&f.kids[k], j, depth)
		if err != nil {
			return 0, err
		}
		if enableUsedTracking {
			f.used = k + 1
		}
		j += vn
		n += vn
	}
	return n, nil
}

func (d *binder) bindString(f *Field, t *token.Token) error {
	val := d.src[t.Pos:t.End]
	switch f.typ {
	case TypeBuffer:
		if f.homog {
			return d.c.fail(ErrType)
		}
		b := f.buf
		b.Used = 0
		n, err := b64.Decode(b.Data, val)
		if err != nil {
			return d.c.fail(ErrBase64)
		}
		b.Used = n
		return nil

	case TypeString:
		// The declared capacity doubles as the byte budget: the value and
		// its terminator must fit, and a zero-capacity destination can
		// never be a decode target.
		if len(f.str) == 0 {
			return d.c.fail(ErrType)
		}
		if len(val) >= len(f.str) {
			return d.c.fail(ErrType)
		}
		copy(f.str, val)
		f.str[len(val)] = 0
		return nil
	}
	return d.c.fail(ErrType)
}

func (d *binder) bindPrimitive(f *Field, t *token.Token) error {
	val := d.src[t.Pos:t.End]
	if len(val) == 0 {
		return d.c.fail(ErrParse)
	}
	switch val[0] {
	case 'n':
		// null values are unsupported.
		return d.c.fail(ErrType)

	case 't', 'f':
		if f.typ != TypeBool || f.homog {
			return d.c.fail(ErrType)
		}
		switch {
		case mem.B(val).EqualString("true"):
			*f.pb = true
		case mem.B(val).EqualString("false"):
			*f.pb = false
		default:
			return d.c.fail(ErrType)
		}
		return nil

	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if f.homog {
			return d.c.fail(ErrType)
		}
		switch f.typ {
		case TypeUint:
			u, err := numtext.ParseUint(val, 10)
			if err != nil {
				return d.c.fail(ErrNumber)
			}
			*f.pu = u
		case TypeInt:
			v, err := numtext.ParseInt(val, 10)
			if err != nil {
				return d.c.fail(ErrNumber)
			}
			*f.pi = v
		default:
			return d.c.fail(ErrType)
		}
		return nil
	}
	return d.c.fail(ErrParse)
}

// find scans one level's fields for an attribute equal to the key token's
// bytes. Matching is exact, case-sensitive and byte-wise; there is no path
// syntax here.
func (d *binder) find(fields []Field, key *token.Token) *Field {
	name := mem.B(d.src[key.Pos:key.End])
	for i := range fields {
		if name.EqualString(fields[i].Name) {
			return &fields[i]
		}
	}
	return nil
}

// span reports the number of tokens making up the value at ti, derived
// purely from child counts, never from byte content. A key token owns its
// value as a child, so the same walk covers object members, array
// elements, and arbitrary nesting of both. It reports -1 if the stream
// ends before the value does.
func (d *binder) span(ti int) int {
	if ti >= len(d.toks) {
		return -1
	}
	n := 1
	j := ti + 1
	for k := 0; k < d.toks[ti].Children; k++ {
		m := d.span(j)
		if m < 0 {
			return -1
		}
		n += m
		j += m
	}
	return n
}
