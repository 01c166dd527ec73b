// Copyright (C) 2025 The fieldjson authors. All Rights Reserved.

package fieldjson

// Type identifies what kind of data a Field references.
type Type byte

// Constants defining the valid Type values.
const (
	TypeInvalid Type = iota // no reference; the zero Field
	TypeInt                 // signed 64-bit integer
	TypeUint                // unsigned 64-bit integer
	TypeBool                // boolean
	TypeString              // NUL-terminated string in a destination buffer
	TypeText                // string value, serialize-only
	TypeBuffer              // binary buffer, serialized as base64
	TypeObject              // nested object of child fields
	TypeArray               // array of child fields
)

var typeStr = [...]string{
	TypeInvalid: "invalid",
	TypeInt:     "int",
	TypeUint:    "uint",
	TypeBool:    "bool",
	TypeString:  "string",
	TypeText:    "text",
	TypeBuffer:  "buffer",
	TypeObject:  "object",
	TypeArray:   "array",
}

func (t Type) String() string {
	if int(t) >= len(typeStr) {
		return typeStr[TypeInvalid]
	}
	return typeStr[t]
}

// A Buffer is a caller-owned byte region with an explicit capacity.
// len(Data) is the capacity; Used counts the bytes holding data and never
// exceeds it. Buffer is the common currency for binary fields and for the
// serialized text itself.
type Buffer struct {
	Data []byte
	Used int
}

// A Field describes one named piece of caller data: where it lives and how
// it appears in JSON. Fields are built with the constructor functions
// below, which pair each reference with its type so the two cannot
// disagree. The library never owns the referenced storage; serializing
// reads through the reference and deserializing writes through it.
//
// A slice of Fields describes the members of one JSON object, in
// serialization order. Object and Array fields nest further slices.
type Field struct {
	// Name is the JSON attribute. It must be non-empty unless the field
	// is an element of an Array level.
	Name string

	typ   Type
	homog bool // the reference is a packed run of scalars, not one value

	// Exactly one of the following is set, according to typ and homog.
	pi   *int64
	pu   *uint64
	pb   *bool
	is   []int64
	us   []uint64
	bs   []bool
	str  []byte // destination buffer; content is NUL-terminated
	text string
	buf  *Buffer
	bufs []Buffer
	kids []Field

	used int // containers: populated child count
}

// Int describes a signed integer stored at v.
func Int(name string, v *int64) Field { return Field{Name: name, typ: TypeInt, pi: v} }

// Uint describes an unsigned integer stored at v.
func Uint(name string, v *uint64) Field { return Field{Name: name, typ: TypeUint, pu: v} }

// Bool describes a boolean stored at v.
func Bool(name string, v *bool) Field { return Field{Name: name, typ: TypeBool, pb: v} }

// String describes a NUL-terminated string held in buf. Serialization
// reads up to the first NUL; deserialization writes the value and a NUL
// terminator, so the incoming text must fit in len(buf)-1 bytes.
func String(name string, buf []byte) Field {
	return Field{Name: name, typ: TypeString, str: buf}
}

// Text describes a string value with no destination storage. It can only
// be serialized; binding input to it reports ErrType.
func Text(name, s string) Field { return Field{Name: name, typ: TypeText, text: s} }

// Buf describes a binary buffer, serialized as a base64-encoded string.
func Buf(name string, b *Buffer) Field { return Field{Name: name, typ: TypeBuffer, buf: b} }

// Ints describes a packed run of signed integers, serialized as a JSON
// array of numbers. Runs are serialize-only; a decodable array is built
// from per-element fields with Array.
func Ints(name string, v []int64) Field {
	return Field{Name: name, typ: TypeInt, homog: true, is: v}
}

// Uints describes a packed run of unsigned integers.
func Uints(name string, v []uint64) Field {
	return Field{Name: name, typ: TypeUint, homog: true, us: v}
}

// Bools describes a packed run of booleans.
func Bools(name string, v []bool) Field {
	return Field{Name: name, typ: TypeBool, homog: true, bs: v}
}

// Bufs describes a packed run of binary buffers, each serialized as a
// base64-encoded string.
func Bufs(name string, v []Buffer) Field {
	return Field{Name: name, typ: TypeBuffer, homog: true, bufs: v}
}

// Object describes a nested JSON object whose members are kids, in order.
func Object(name string, kids []Field) Field {
	return Field{Name: name, typ: TypeObject, kids: kids, used: len(kids)}
}

// Array describes a JSON array whose elements are described by kids.
// Element fields need no names. len(kids) is the capacity when
// deserializing; the number of elements actually bound is recorded by
// Used when active-count tracking is enabled.
func Array(name string, kids []Field) Field {
	return Field{Name: name, typ: TypeArray, kids: kids, used: len(kids)}
}

// Type reports the field's type.
func (f *Field) Type() Type { return f.typ }

// Kids returns the populated child fields of an Object or Array field, or
// nil for leaves.
func (f *Field) Kids() []Field {
	if f.typ == TypeObject || f.typ == TypeArray {
		return f.kids[:f.used]
	}
	return nil
}

// Cap reports the child capacity of a container field.
func (f *Field) Cap() int { return len(f.kids) }

// Used reports the populated child count of a container field.
func (f *Field) Used() int { return f.used }

// check validates type/reference consistency. A failure means the
// descriptor tree itself is malformed, which is a caller bug reported as
// ErrConfig rather than a data error.
func (f *Field) check() error {
	switch f.typ {
	case TypeInt:
		if f.homog {
			if f.is == nil {
				return ErrConfig
			}
		} else if f.pi == nil {
			return ErrConfig
		}
	case TypeUint:
		if f.homog {
			if f.us == nil {
				return ErrConfig
			}
		} else if f.pu == nil {
			return ErrConfig
		}
	case TypeBool:
		if f.homog {
			if f.bs == nil {
				return ErrConfig
			}
		} else if f.pb == nil {
			return ErrConfig
		}
	case TypeString:
		if f.homog || f.str == nil {
			return ErrConfig
		}
	case TypeText:
		if f.homog {
			return ErrConfig
		}
	case TypeBuffer:
		if f.homog {
			if f.bufs == nil {
				return ErrConfig
			}
		} else if f.buf == nil {
			return ErrConfig
		}
	case TypeObject:
		// An object is a single value; a packed run of objects has no
		// meaning and is the classic misconfiguration.
		if f.homog {
			return ErrConfig
		}
		if f.used > len(f.kids) {
			return ErrConfig
		}
	case TypeArray:
		if f.used > len(f.kids) {
			return ErrConfig
		}
	default:
		return ErrConfig
	}
	return nil
}

// runLen reports the element count of a homogeneous run.
func (f *Field) runLen() int {
	switch f.typ {
	case TypeInt:
		return len(f.is)
	case TypeUint:
		return len(f.us)
	case TypeBool:
		return len(f.bs)
	case TypeBuffer:
		return len(f.bufs)
	}
	return 0
}
