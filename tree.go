// Copyright (C) 2025 The fieldjson authors. All Rights Reserved.

package fieldjson

import "strings"

// Retrieve resolves a /-separated sequence of attribute names against the
// tree and returns the matching field. The boolean reports whether the
// path matched; not-found is not an error. Lookup is exact-match at every
// level and descends through Object fields only, so array elements and
// names containing '/' cannot be addressed. Only opt.MaxDepth applies.
func Retrieve(fields []Field, path string, opt Options) (*Field, bool, error) {
	c := context{max: opt.MaxDepth}
	f, ok, err := retrieve(&c, fields, path, 0)
	if err != nil {
		return nil, false, c.err
	}
	return f, ok, nil
}

func retrieve(c *context, fields []Field, path string, depth int) (*Field, bool, error) {
	if c.max != 0 && depth > c.max {
		return nil, false, c.fail(ErrDepth)
	}
	for path != "" && path[0] == '/' {
		path = path[1:]
	}
	if path == "" {
		return nil, false, nil
	}
	seg, rest, nested := strings.Cut(path, "/")
	for i := range fields {
		f := &fields[i]
		if f.Name != seg {
			continue
		}
		if !nested {
			return f, true, nil
		}
		if f.typ != TypeObject {
			return nil, false, nil
		}
		return retrieve(c, f.kids[:f.used], rest, depth+1)
	}
	return nil, false, nil
}

// Walk visits every field in depth-first pre-order: each container first,
// then its children. If visit returns an error the walk stops there and
// Walk returns that error.
func Walk(fields []Field, visit func(f *Field) error) error {
	for i := range fields {
		f := &fields[i]
		if err := visit(f); err != nil {
			return err
		}
		if f.typ == TypeObject || f.typ == TypeArray {
			if err := Walk(f.kids[:f.used], visit); err != nil {
				return err
			}
		}
	}
	return nil
}

// Count reports the number of fields in the tree, containers included.
func Count(fields []Field) int {
	var n int
	Walk(fields, func(*Field) error { n++; return nil })
	return n
}

// CopyTree deep-copies a descriptor tree into pool, a flat caller-provided
// array, without allocating. Each level's fields occupy a contiguous block
// and containers are re-pointed at their copied children, so pool[:len(src)]
// is the copied top level. Only populated children are carried over; spare
// container capacity is not. It reports the number of pool entries
// consumed; if pool is exhausted it reports zero and ErrSpace. Size the
// pool with Count.
func CopyTree(src, pool []Field) (int, error) {
	n, err := copyTree(src, pool, 0)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func copyTree(src, pool []Field, k int) (int, error) {
	if k+len(src) > len(pool) {
		return 0, ErrSpace
	}
	base := k
	k += len(src)
	copy(pool[base:k], src)
	for i := range src {
		f := &pool[base+i]
		if f.typ != TypeObject && f.typ != TypeArray {
			continue
		}
		start := k
		var err error
		if k, err = copyTree(src[i].kids[:src[i].used], pool, k); err != nil {
			return 0, err
		}
		f.kids = pool[start : start+f.used : start+f.used]
	}
	return k, nil
}
