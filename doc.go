// Copyright (C) 2025 The fieldjson authors. All Rights Reserved.

// Package fieldjson implements a schema-driven JSON codec for caller-owned
// storage. The caller describes their data as a tree of Field descriptors,
// each naming a JSON attribute and referencing a variable, buffer, or
// nested container the caller already owns. The same tree drives both
// directions: Marshal renders the referenced values as JSON text, and
// Unmarshal parses JSON text and writes matching values back through the
// references.
//
// The package performs no heap allocation on any codec path. Output goes
// into a caller-provided Buffer, parsing uses a caller-provided token
// array, and decoded values land directly in the storage the descriptors
// reference. This makes the package suitable for constrained and
// long-running environments where allocation is rationed.
//
// # Describing data
//
// A []Field describes the members of one JSON object, in serialization
// order. Leaf constructors pair a name with a typed reference; Object and
// Array nest further slices:
//
//	cfg := []Field{
//	    fieldjson.Int("retries", &retries),
//	    fieldjson.String("host", hostBuf[:]),
//	    fieldjson.Object("limits", []Field{
//	        fieldjson.Uint("rate", &rate),
//	    }),
//	}
//
// # Serializing
//
// Marshal appends the JSON text to a Buffer; MarshalText targets a plain
// byte slice and NUL-terminates it. MarshalLen runs the identical
// traversal with writes suppressed and reports the exact output size, so
// a caller can size a buffer before committing to it.
//
//	var out fieldjson.Buffer
//	out.Data = make([]byte, 256)
//	if err := fieldjson.Marshal(cfg, fieldjson.Options{}, &out); err != nil {
//	    log.Fatalf("Marshal failed: %v", err)
//	}
//
// # Deserializing
//
// Unmarshal parses the input with caller-provided token storage and binds
// values by attribute name. Keys absent from the descriptor tree are
// skipped along with their whole values; fields absent from the input keep
// their current values. Parsing and binding stop at the first error.
//
//	var toks [32]token.Token
//	err := fieldjson.UnmarshalText(cfg, fieldjson.Options{}, toks[:], input)
//
// # Traversal
//
// Retrieve resolves a /-separated attribute path to a single field. Walk
// visits every field in pre-order, Count sizes a tree, and CopyTree clones
// one into a flat caller-provided pool.
//
// All failures are values from the closed error set in this package
// (ErrSpace, ErrParse, ErrType, and so on), compared with errors.Is.
package fieldjson
