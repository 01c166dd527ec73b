// Copyright (C) 2025 The fieldjson authors. All Rights Reserved.

package fieldjson

import (
	"go4.org/mem"

	"github.com/fieldjson/fieldjson/internal/numtext"
)

// Options controls a single serialize or deserialize call.
type Options struct {
	// Pretty enables tab indentation and newlines in serialized output.
	// It has no effect on deserialization or retrieval.
	Pretty bool

	// MaxDepth bounds recursion over nested containers. Zero means no
	// limit. The limit is the only guard on stack growth for adversarial
	// trees, so callers handling untrusted schemas should set it.
	MaxDepth int
}

// Marshal serializes fields as a JSON object into out, appending at
// out.Used. It fails with ErrSpace the moment the output would exceed the
// buffer capacity; the buffer then holds a partial prefix and Used records
// how far it got.
func Marshal(fields []Field, opt Options, out *Buffer) error {
	c := context{max: opt.MaxDepth, pretty: opt.Pretty}
	if encodeLevel(&c, fields, out, false, 0) != nil {
		return c.err
	}
	return nil
}

// MarshalLen reports the exact number of bytes Marshal would produce,
// without writing any. It runs the same traversal as Marshal with writes
// suppressed, so the two cannot disagree.
func MarshalLen(fields []Field, opt Options) (int, error) {
	c := context{max: opt.MaxDepth, pretty: opt.Pretty, dry: true}
	var b Buffer
	if encodeLevel(&c, fields, &b, false, 0) != nil {
		return 0, c.err
	}
	return b.Used, nil
}

// MarshalText serializes fields into dst and NUL-terminates it, reporting
// the length excluding the terminator. On failure dst[0] is cleared so the
// destination never holds a stale unterminated prefix.
func MarshalText(fields []Field, opt Options, dst []byte) (int, error) {
	if len(dst) < 1 {
		return 0, ErrSpace
	}
	b := Buffer{Data: dst[:len(dst)-1]}
	c := context{max: opt.MaxDepth, pretty: opt.Pretty}
	if encodeLevel(&c, fields, &b, false, 0) != nil {
		dst[0] = 0
		return 0, c.err
	}
	dst[b.Used] = 0
	return b.Used, nil
}

// encodeLevel emits one container level: the fields of an object as
// "name":value members, or of an array as bare values. Depth is checked
// and errors latch on every frame.
func encodeLevel(c *context, fields []Field, b *Buffer, inArray bool, depth int) error {
	if c.max != 0 && depth > c.max {
		return c.fail(ErrDepth)
	}
	open, shut := byte('{'), byte('}')
	if inArray {
		open, shut = '[', ']'
	}
	if err := c.indent(b, depth); err != nil {
		return err
	}
	if err := c.putByte(b, open); err != nil {
		return err
	}
	if err := c.newline(b); err != nil {
		return err
	}

	for i := range fields {
		f := &fields[i]
		if err := f.check(); err != nil {
			return c.fail(err)
		}
		if err := c.indent(b, depth+1); err != nil {
			return err
		}
		if !inArray {
			if f.Name == "" {
				return c.fail(ErrConfig)
			}
			if err := c.putAttr(b, f.Name); err != nil {
				return err
			}
			if err := c.space(b); err != nil {
				return err
			}
		}
		if err := encodeField(c, f, b, depth); err != nil {
			return err
		}
		if i != len(fields)-1 {
			if err := c.putByte(b, ','); err != nil {
				return err
			}
		}
		if err := c.newline(b); err != nil {
			return err
		}
	}

	if err := c.indent(b, depth); err != nil {
		return err
	}
	return c.putByte(b, shut)
}

// encodeField emits one field's value: a nested level for containers, a
// bracketed run for homogeneous fields, a single scalar otherwise.
func encodeField(c *context, f *Field, b *Buffer, depth int) error {
	switch f.typ {
	case TypeObject:
		if err := c.newline(b); err != nil {
			return err
		}
		return encodeLevel(c, f.kids[:f.used], b, false, depth+1)
	case TypeArray:
		if err := c.newline(b); err != nil {
			return err
		}
		return encodeLevel(c, f.kids[:f.used], b, true, depth+1)
	}

	if f.homog {
		if err := c.putByte(b, '['); err != nil {
			return err
		}
		n := f.runLen()
		for i := 0; i < n; i++ {
			if err := encodeScalar(c, f, b, i); err != nil {
				return err
			}
			if i != n-1 {
				if err := c.putByte(b, ','); err != nil {
					return err
				}
			}
		}
		return c.putByte(b, ']')
	}
	return encodeScalar(c, f, b, 0)
}

// encodeScalar emits the i'th value of f; i is zero unless f is a
// homogeneous run.
func encodeScalar(c *context, f *Field, b *Buffer, i int) error {
	var tmp [numtext.MaxLen]byte
	switch f.typ {
	case TypeInt:
		v := int64(0)
		if f.homog {
			v = f.is[i]
		} else {
			v = *f.pi
		}
		return c.putRaw(b, tmp[:numtext.FormatInt(tmp[:], v, 10)])

	case TypeUint:
		v := uint64(0)
		if f.homog {
			v = f.us[i]
		} else {
			v = *f.pu
		}
		return c.putRaw(b, tmp[:numtext.FormatUint(tmp[:], v, 10)])

	case TypeBool:
		v := false
		if f.homog {
			v = f.bs[i]
		} else {
			v = *f.pb
		}
		s := "false"
		if v {
			s = "true"
		}
		return c.putString(b, mem.S(s))

	case TypeString:
		return c.putQuoted(b, mem.B(cstr(f.str)))

	case TypeText:
		return c.putQuoted(b, mem.S(f.text))

	case TypeBuffer:
		v := f.buf
		if f.homog {
			v = &f.bufs[i]
		}
		return c.putBase64(b, v)
	}
	return c.fail(ErrType)
}

// cstr returns the NUL-terminated content of a string destination buffer.
func cstr(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}
