// Copyright (C) 2025 The fieldjson authors. All Rights Reserved.

package fieldjson_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fieldjson/fieldjson"
	"github.com/fieldjson/fieldjson/token"
)

// unText parses input over fields with a fresh token array.
func unText(fields []fieldjson.Field, input string) error {
	var toks [32]token.Token
	return fieldjson.UnmarshalText(fields, fieldjson.Options{}, toks[:], []byte(input))
}

func TestUnmarshalSelective(t *testing.T) {
	a, b, c := int64(1), int64(2), int64(3)
	fields := []fieldjson.Field{
		fieldjson.Int("a", &a),
		fieldjson.Int("b", &b),
		fieldjson.Int("c", &c),
	}
	if err := unText(fields, `{"a":4}`); err != nil {
		t.Fatalf("UnmarshalText: unexpected error: %v", err)
	}
	if a != 4 || b != 2 || c != 3 {
		t.Errorf("got (%d, %d, %d), want (4, 2, 3)", a, b, c)
	}
}

func TestUnmarshalScalars(t *testing.T) {
	var (
		i int64
		u uint64
		v bool
		s [8]byte
	)
	fields := []fieldjson.Field{
		fieldjson.Int("i", &i),
		fieldjson.Uint("u", &u),
		fieldjson.Bool("v", &v),
		fieldjson.String("s", s[:]),
	}
	input := `{"i":-42,"u":18446744073709551615,"v":true,"s":"hey"}`
	if err := unText(fields, input); err != nil {
		t.Fatalf("UnmarshalText: unexpected error: %v", err)
	}
	if i != -42 {
		t.Errorf("i = %d, want -42", i)
	}
	if u != 18446744073709551615 {
		t.Errorf("u = %d, want 18446744073709551615", u)
	}
	if !v {
		t.Error("v = false, want true")
	}
	if got := string(s[:4]); got != "hey\x00" {
		t.Errorf("s = %q, want %q", got, "hey\x00")
	}

	if err := unText(fields, `{"v":false}`); err != nil {
		t.Fatalf("UnmarshalText: unexpected error: %v", err)
	}
	if v {
		t.Error("v = true, want false")
	}
}

func TestUnmarshalNested(t *testing.T) {
	var outer, inner int64
	fields := []fieldjson.Field{
		fieldjson.Int("a", &outer),
		fieldjson.Object("j", []fieldjson.Field{
			fieldjson.Int("b", &inner),
		}),
	}
	if err := unText(fields, `{"a":1,"j":{"b":2}}`); err != nil {
		t.Fatalf("UnmarshalText: unexpected error: %v", err)
	}
	if outer != 1 || inner != 2 {
		t.Errorf("got (%d, %d), want (1, 2)", outer, inner)
	}
}

func TestUnmarshalSkipsUnknown(t *testing.T) {
	var a int64
	fields := []fieldjson.Field{fieldjson.Int("a", &a)}

	// The unknown value's whole subtree must be skipped, however nested,
	// and binding must stay aligned for the keys that follow it.
	inputs := []string{
		`{"z":1,"a":9}`,
		`{"z":"s","a":9}`,
		`{"z":[1,2,3],"a":9}`,
		`{"z":{"deep":[1,{"x":2}],"more":true},"a":9}`,
		`{"z":[[["deep"]]],"a":9}`,
	}
	for _, input := range inputs {
		a = 0
		if err := unText(fields, input); err != nil {
			t.Errorf("UnmarshalText(%#q): unexpected error: %v", input, err)
			continue
		}
		if a != 9 {
			t.Errorf("UnmarshalText(%#q): a = %d, want 9", input, a)
		}
	}
}

func TestUnmarshalBuffer(t *testing.T) {
	var store [8]byte
	key := fieldjson.Buffer{Data: store[:]}
	fields := []fieldjson.Field{fieldjson.Buf("k", &key)}

	if err := unText(fields, `{"k":"SEVMTE8A"}`); err != nil {
		t.Fatalf("UnmarshalText: unexpected error: %v", err)
	}
	if key.Used != 6 || !bytes.Equal(store[:6], []byte("HELLO\x00")) {
		t.Errorf("decoded %d bytes %q, want 6 bytes %q", key.Used, store[:key.Used], "HELLO\x00")
	}

	if err := unText(fields, `{"k":"S!"}`); !errors.Is(err, fieldjson.ErrBase64) {
		t.Errorf("corrupt input: got %v, want %v", err, fieldjson.ErrBase64)
	}

	// Decoded data larger than the destination is a base64-level failure.
	if err := unText(fields, `{"k":"AAAAAAAAAAAAAAAA"}`); !errors.Is(err, fieldjson.ErrBase64) {
		t.Errorf("oversized input: got %v, want %v", err, fieldjson.ErrBase64)
	}
}

func TestUnmarshalString(t *testing.T) {
	var s [4]byte
	fields := []fieldjson.Field{fieldjson.String("s", s[:])}

	// Value plus terminator must fit the destination.
	if err := unText(fields, `{"s":"abc"}`); err != nil {
		t.Fatalf("UnmarshalText: unexpected error: %v", err)
	}
	if !bytes.Equal(s[:], []byte("abc\x00")) {
		t.Errorf("s = %q, want %q", s[:], "abc\x00")
	}
	if err := unText(fields, `{"s":"abcd"}`); !errors.Is(err, fieldjson.ErrType) {
		t.Errorf("oversized value: got %v, want %v", err, fieldjson.ErrType)
	}
}

func TestUnmarshalArray(t *testing.T) {
	var p [3]uint64
	fields := []fieldjson.Field{
		fieldjson.Array("ports", []fieldjson.Field{
			fieldjson.Uint("", &p[0]),
			fieldjson.Uint("", &p[1]),
			fieldjson.Uint("", &p[2]),
		}),
	}

	if err := unText(fields, `{"ports":[80,443]}`); err != nil {
		t.Fatalf("UnmarshalText: unexpected error: %v", err)
	}
	if p[0] != 80 || p[1] != 443 {
		t.Errorf("ports = %v, want [80 443 0]", p)
	}
	if got := fields[0].Used(); got != 2 {
		t.Errorf("Used = %d, want 2", got)
	}
	if got := len(fields[0].Kids()); got != 2 {
		t.Errorf("len(Kids) = %d, want 2", got)
	}

	// More elements than slots.
	if err := unText(fields, `{"ports":[1,2,3,4]}`); !errors.Is(err, fieldjson.ErrSpace) {
		t.Errorf("overfull array: got %v, want %v", err, fieldjson.ErrSpace)
	}
}

func TestUnmarshalArrayOfObjects(t *testing.T) {
	var x, y int64
	fields := []fieldjson.Field{
		fieldjson.Array("arr", []fieldjson.Field{
			fieldjson.Object("", []fieldjson.Field{fieldjson.Int("v", &x)}),
			fieldjson.Object("", []fieldjson.Field{fieldjson.Int("v", &y)}),
		}),
	}
	if err := unText(fields, `{"arr":[{"v":1},{"v":2}]}`); err != nil {
		t.Fatalf("UnmarshalText: unexpected error: %v", err)
	}
	if x != 1 || y != 2 {
		t.Errorf("got (%d, %d), want (1, 2)", x, y)
	}
}

func TestUnmarshalTypeErrors(t *testing.T) {
	var (
		i int64
		v bool
		s [8]byte
		k = fieldjson.Buffer{Data: make([]byte, 8)}
	)
	tests := []struct {
		name   string
		fields []fieldjson.Field
		input  string
		want   error
	}{
		{"null", []fieldjson.Field{fieldjson.Int("a", &i)}, `{"a":null}`, fieldjson.ErrType},
		{"number to bool", []fieldjson.Field{fieldjson.Bool("a", &v)}, `{"a":1}`, fieldjson.ErrType},
		{"bool to int", []fieldjson.Field{fieldjson.Int("a", &i)}, `{"a":true}`, fieldjson.ErrType},
		{"string to int", []fieldjson.Field{fieldjson.Int("a", &i)}, `{"a":"5"}`, fieldjson.ErrType},
		{"number to string", []fieldjson.Field{fieldjson.String("a", s[:])}, `{"a":5}`, fieldjson.ErrType},
		{"object to int", []fieldjson.Field{fieldjson.Int("a", &i)}, `{"a":{}}`, fieldjson.ErrType},
		{"array to buffer", []fieldjson.Field{fieldjson.Buf("a", &k)}, `{"a":[1]}`, fieldjson.ErrType},
		{"text is write-only", []fieldjson.Field{fieldjson.Text("a", "x")}, `{"a":"y"}`, fieldjson.ErrType},
		{"run is write-only", []fieldjson.Field{fieldjson.Ints("a", []int64{0})}, `{"a":[1]}`, fieldjson.ErrType},
		{"negative to uint", []fieldjson.Field{fieldjson.Uint("a", new(uint64))}, `{"a":-1}`, fieldjson.ErrNumber},
		{"int overflow", []fieldjson.Field{fieldjson.Int("a", &i)}, `{"a":99999999999999999999}`, fieldjson.ErrNumber},
		{"truncated bool", []fieldjson.Field{fieldjson.Bool("a", &v)}, `{"a":tru}`, fieldjson.ErrType},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := unText(tc.fields, tc.input); !errors.Is(err, tc.want) {
				t.Errorf("UnmarshalText(%#q): got %v, want %v", tc.input, err, tc.want)
			}
		})
	}
}

func TestUnmarshalParseErrors(t *testing.T) {
	var a int64
	fields := []fieldjson.Field{fieldjson.Int("a", &a)}
	tests := []struct {
		input string
		want  error
	}{
		{`{"a":4`, fieldjson.ErrIncomplete},
		{`{"a"`, fieldjson.ErrIncomplete},
		{`}`, fieldjson.ErrParse},
		{`{"a":1]`, fieldjson.ErrParse},
		{`[1,2]`, fieldjson.ErrParse},
		{`5`, fieldjson.ErrParse},
		{`{1:2}`, fieldjson.ErrUnknown},
	}
	for _, tc := range tests {
		a = 7
		if err := unText(fields, tc.input); !errors.Is(err, tc.want) {
			t.Errorf("UnmarshalText(%#q): got %v, want %v", tc.input, err, tc.want)
		}
		if a != 7 {
			t.Errorf("UnmarshalText(%#q): modified a to %d before failing", tc.input, a)
		}
	}
}

func TestUnmarshalEmpty(t *testing.T) {
	a := int64(7)
	fields := []fieldjson.Field{fieldjson.Int("a", &a)}
	for _, input := range []string{"", "   ", "\x00junk"} {
		if err := unText(fields, input); err != nil {
			t.Errorf("UnmarshalText(%#q): unexpected error: %v", input, err)
		}
		if a != 7 {
			t.Errorf("UnmarshalText(%#q): modified a to %d", input, a)
		}
	}
}

func TestUnmarshalTokenSpace(t *testing.T) {
	var a int64
	fields := []fieldjson.Field{fieldjson.Int("a", &a)}
	var toks [2]token.Token
	err := fieldjson.UnmarshalText(fields, fieldjson.Options{}, toks[:], []byte(`{"a":1,"b":2}`))
	if !errors.Is(err, fieldjson.ErrSpace) {
		t.Errorf("UnmarshalText with 2 token slots: got %v, want %v", err, fieldjson.ErrSpace)
	}
}

func TestUnmarshalDepth(t *testing.T) {
	var v int64
	fields := []fieldjson.Field{
		fieldjson.Object("a", []fieldjson.Field{
			fieldjson.Object("b", []fieldjson.Field{fieldjson.Int("c", &v)}),
		}),
	}
	var toks [16]token.Token
	input := []byte(`{"a":{"b":{"c":1}}}`)
	err := fieldjson.UnmarshalText(fields, fieldjson.Options{MaxDepth: 1}, toks[:], input)
	if !errors.Is(err, fieldjson.ErrDepth) {
		t.Errorf("UnmarshalText with depth 1: got %v, want %v", err, fieldjson.ErrDepth)
	}
	if err := fieldjson.UnmarshalText(fields, fieldjson.Options{MaxDepth: 3}, toks[:], input); err != nil {
		t.Errorf("UnmarshalText with depth 3: unexpected error: %v", err)
	}
	if v != 1 {
		t.Errorf("c = %d, want 1", v)
	}
}

func TestUnmarshalNulTerminated(t *testing.T) {
	var a int64
	fields := []fieldjson.Field{fieldjson.Int("a", &a)}
	input := []byte("{\"a\":3}\x00{\"a\":9}")
	if err := unText(fields, string(input)); err != nil {
		t.Fatalf("UnmarshalText: unexpected error: %v", err)
	}
	if a != 3 {
		t.Errorf("a = %d, want 3", a)
	}
}

func TestUnmarshalFromBuffer(t *testing.T) {
	var a int64
	fields := []fieldjson.Field{fieldjson.Int("a", &a)}

	// Only Used bytes are parsed; the tail of Data is inert.
	data := []byte(`{"a":5}{"a":9}`)
	src := fieldjson.Buffer{Data: data, Used: 7}
	var toks [8]token.Token
	if err := fieldjson.Unmarshal(fields, fieldjson.Options{}, toks[:], &src); err != nil {
		t.Fatalf("Unmarshal: unexpected error: %v", err)
	}
	if a != 5 {
		t.Errorf("a = %d, want 5", a)
	}
}

func TestRoundTrip(t *testing.T) {
	var (
		i1 = int64(-99)
		u1 = uint64(1 << 40)
		v1 = true
		s1 = [16]byte{'r', 'o', 'u', 'n', 'd', 0}
		k1 = fieldjson.Buffer{Data: []byte("\x01\x02\x03"), Used: 3}
		p1 = uint64(6)
		p2 = uint64(7)
	)
	src := []fieldjson.Field{
		fieldjson.Int("i", &i1),
		fieldjson.Object("j", []fieldjson.Field{
			fieldjson.Uint("u", &u1),
			fieldjson.Bool("v", &v1),
			fieldjson.Buf("k", &k1),
		}),
		fieldjson.String("s", s1[:]),
		fieldjson.Array("p", []fieldjson.Field{
			fieldjson.Uint("", &p1),
			fieldjson.Uint("", &p2),
		}),
	}
	text := marshalString(t, src, fieldjson.Options{})

	var (
		i2 int64
		u2 uint64
		v2 bool
		s2 [16]byte
		b2 [8]byte
		k2 = fieldjson.Buffer{Data: b2[:]}
		q1 uint64
		q2 uint64
	)
	dst := []fieldjson.Field{
		fieldjson.Int("i", &i2),
		fieldjson.Object("j", []fieldjson.Field{
			fieldjson.Uint("u", &u2),
			fieldjson.Bool("v", &v2),
			fieldjson.Buf("k", &k2),
		}),
		fieldjson.String("s", s2[:]),
		fieldjson.Array("p", []fieldjson.Field{
			fieldjson.Uint("", &q1),
			fieldjson.Uint("", &q2),
		}),
	}
	if err := unText(dst, text); err != nil {
		t.Fatalf("UnmarshalText(%#q): unexpected error: %v", text, err)
	}

	if i2 != i1 || u2 != u1 || v2 != v1 {
		t.Errorf("scalars: got (%d, %d, %v), want (%d, %d, %v)", i2, u2, v2, i1, u1, v1)
	}
	if !bytes.Equal(s2[:6], s1[:6]) {
		t.Errorf("string: got %q, want %q", s2[:6], s1[:6])
	}
	if k2.Used != 3 || !bytes.Equal(b2[:3], []byte("\x01\x02\x03")) {
		t.Errorf("buffer: got %d bytes %v", k2.Used, b2[:k2.Used])
	}
	if q1 != p1 || q2 != p2 {
		t.Errorf("array: got (%d, %d), want (%d, %d)", q1, q2, p1, p2)
	}
}
