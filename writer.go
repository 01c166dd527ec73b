// Copyright (C) 2025 The fieldjson authors. All Rights Reserved.

package fieldjson

import (
	"go4.org/mem"

	"github.com/fieldjson/fieldjson/b64"
)

// context is the call-scoped state of one traversal: formatting, the depth
// limit, the dry-run switch, and the first-error latch. It is created per
// call and discarded; nothing here survives a public operation.
type context struct {
	max    int // depth limit, 0 = unlimited
	pretty bool
	dry    bool // count output bytes without writing them
	err    error
}

// fail latches the first error of the call and returns err. Later failures
// keep the original, so the caller sees one root cause.
func (c *context) fail(err error) error {
	if c.err == nil {
		c.err = err
	}
	return err
}

// indentText is emitted once per depth level in pretty mode.
const indentText = "\t"

// putByte appends one byte to b. Every emitted byte funnels through here:
// the capacity check happens in one place, and a dry run advances Used
// without storing, so measuring and writing are the same traversal.
func (c *context) putByte(b *Buffer, ch byte) error {
	if !c.dry {
		if b.Used+1 > len(b.Data) {
			return c.fail(ErrSpace)
		}
		b.Data[b.Used] = ch
	}
	b.Used++
	return nil
}

// escFor maps a control character to its short escape letter.
var escFor = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
}

func (c *context) putEscaped(b *Buffer, ch byte) error {
	if err := c.putByte(b, '\\'); err != nil {
		return err
	}
	return c.putByte(b, ch)
}

// putString appends s, escaping the characters JSON requires. With
// escaping compiled out it degrades to a bounded raw copy.
func (c *context) putString(b *Buffer, s mem.RO) error {
	if !enableEscape {
		if !c.dry {
			if b.Used+s.Len() > len(b.Data) {
				return c.fail(ErrSpace)
			}
			for i := 0; i < s.Len(); i++ {
				b.Data[b.Used+i] = s.At(i)
			}
		}
		b.Used += s.Len()
		return nil
	}
	for i := 0; i < s.Len(); i++ {
		ch := s.At(i)
		switch {
		case ch == '\\' || ch == '"':
			if err := c.putEscaped(b, ch); err != nil {
				return err
			}
		case int(ch) < len(escFor) && escFor[ch] != 0:
			if err := c.putEscaped(b, escFor[ch]); err != nil {
				return err
			}
		default:
			if err := c.putByte(b, ch); err != nil {
				return err
			}
		}
	}
	return nil
}

// putRaw appends s without escaping; used for number text.
func (c *context) putRaw(b *Buffer, s []byte) error {
	for _, ch := range s {
		if err := c.putByte(b, ch); err != nil {
			return err
		}
	}
	return nil
}

func (c *context) putQuoted(b *Buffer, s mem.RO) error {
	if err := c.putByte(b, '"'); err != nil {
		return err
	}
	if err := c.putString(b, s); err != nil {
		return err
	}
	return c.putByte(b, '"')
}

func (c *context) putAttr(b *Buffer, name string) error {
	if err := c.putQuoted(b, mem.S(name)); err != nil {
		return err
	}
	return c.putByte(b, ':')
}

// indent, space and newline are no-ops unless pretty-printing is enabled.

func (c *context) indent(b *Buffer, depth int) error {
	if !c.pretty {
		return nil
	}
	for i := 0; i < depth; i++ {
		for j := 0; j < len(indentText); j++ {
			if err := c.putByte(b, indentText[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *context) space(b *Buffer) error {
	if !c.pretty {
		return nil
	}
	return c.putByte(b, ' ')
}

func (c *context) newline(b *Buffer) error {
	if !c.pretty {
		return nil
	}
	return c.putByte(b, '\n')
}

// putBase64 appends the quoted base64 form of v. The exact encoded size is
// known up front, so the space check happens before any of it is written;
// a dry run advances by the same exact size.
func (c *context) putBase64(b *Buffer, v *Buffer) error {
	if v.Used > len(v.Data) {
		return c.fail(ErrConfig)
	}
	if err := c.putByte(b, '"'); err != nil {
		return err
	}
	n := b64.EncodedLen(v.Used)
	if !c.dry {
		if n > len(b.Data)-b.Used {
			return c.fail(ErrSpace)
		}
		if _, err := b64.Encode(b.Data[b.Used:], v.Data[:v.Used]); err != nil {
			return c.fail(ErrBase64)
		}
	}
	b.Used += n
	return c.putByte(b, '"')
}
