// Copyright (C) 2025 The fieldjson authors. All Rights Reserved.

// fieldjson is a demonstration and debugging tool for the fieldjson
// codec. It maintains a small example configuration tree and can
// serialize it, deserialize a file over it, or look up single fields by
// path.
//
// Input files may be JWCC (JSON with comments and trailing commas); they
// are standardized to plain JSON before decoding.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/tailscale/hujson"

	"github.com/fieldjson/fieldjson"
	"github.com/fieldjson/fieldjson/token"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// config is the example data the tool serializes and decodes over. The
// storage lives here; the descriptor tree below references it.
type config struct {
	retries  int64
	rate     uint64
	verbose  bool
	host     [64]byte
	key      fieldjson.Buffer
	keyStore [32]byte
	ports    [4]uint64
	peerA    [32]byte
	peerB    [32]byte
}

// fields builds the descriptor tree over c. Rebuilt per use; descriptors
// are cheap and hold no state beyond the references.
func (c *config) fields() []fieldjson.Field {
	c.key.Data = c.keyStore[:]
	return []fieldjson.Field{
		fieldjson.Int("retries", &c.retries),
		fieldjson.Bool("verbose", &c.verbose),
		fieldjson.String("host", c.host[:]),
		fieldjson.Buf("key", &c.key),
		fieldjson.Object("limits", []fieldjson.Field{
			fieldjson.Uint("rate", &c.rate),
			fieldjson.Uints("ports", c.ports[:]),
		}),
		fieldjson.Array("peers", []fieldjson.Field{
			fieldjson.String("", c.peerA[:]),
			fieldjson.String("", c.peerB[:]),
		}),
	}
}

func (c *config) init() {
	c.retries = 3
	c.rate = 1000
	c.verbose = true
	copy(c.host[:], "localhost\x00")
	copy(c.keyStore[:6], "HELLO\x00")
	c.key.Data = c.keyStore[:]
	c.key.Used = 6
	c.ports = [4]uint64{80, 443, 8080, 8443}
	copy(c.peerA[:], "alpha\x00")
	copy(c.peerB[:], "beta\x00")
}

func run() error {
	var (
		doSerialize bool
		doExamples  bool
		lookupPath  string
		doVersion   bool
		pretty      bool
	)
	fs := pflag.NewFlagSet("fieldjson", pflag.ContinueOnError)
	fs.BoolVarP(&doSerialize, "serialize", "s", false, "serialize the example configuration to stdout")
	fs.BoolVarP(&doExamples, "examples", "e", false, "run the built-in examples")
	fs.StringVarP(&lookupPath, "lookup", "x", "", "look up a field of the example configuration by /-separated path")
	fs.BoolVarP(&doVersion, "version", "V", false, "print the library version and feature flags")
	fs.BoolVar(&pretty, "pretty", false, "indent serialized output")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fieldjson [options] [file.json]\n\n"+
			"With a file argument, deserialize it over the example configuration\n"+
			"and print the result.\n\nOptions:\n%s", fs.FlagUsages())
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	opt := fieldjson.Options{Pretty: pretty, MaxDepth: 16}

	if doVersion {
		return printVersion()
	}
	if doExamples {
		return runExamples(opt)
	}

	var cfg config
	cfg.init()

	if lookupPath != "" {
		return lookup(&cfg, lookupPath, opt)
	}
	if args := fs.Args(); len(args) > 0 {
		if err := decodeFile(&cfg, args[0], opt); err != nil {
			return err
		}
		doSerialize = true
	}
	if doSerialize {
		return serialize(&cfg, opt)
	}
	fs.Usage()
	return nil
}

func serialize(cfg *config, opt fieldjson.Options) error {
	fields := cfg.fields()
	n, err := fieldjson.MarshalLen(fields, opt)
	if err != nil {
		return fmt.Errorf("measure: %w", err)
	}
	out := fieldjson.Buffer{Data: make([]byte, n)}
	if err := fieldjson.Marshal(fields, opt, &out); err != nil {
		return fmt.Errorf("serialize: %w", err)
	}
	fmt.Println(string(out.Data[:out.Used]))
	return nil
}

func decodeFile(cfg *config, path string, opt fieldjson.Options) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	std, err := hujson.Standardize(raw)
	if err != nil {
		return fmt.Errorf("standardize %s: %w", path, err)
	}
	var toks [64]token.Token
	if err := fieldjson.UnmarshalText(cfg.fields(), opt, toks[:], std); err != nil {
		return fmt.Errorf("deserialize %s: %w", path, err)
	}
	return nil
}

func lookup(cfg *config, path string, opt fieldjson.Options) error {
	f, ok, err := fieldjson.Retrieve(cfg.fields(), path, opt)
	if err != nil {
		return fmt.Errorf("retrieve %q: %w", path, err)
	}
	if !ok {
		return fmt.Errorf("retrieve %q: no such field", path)
	}
	fmt.Printf("%s: %v\n", path, f.Type())
	return nil
}

func printVersion() error {
	v, err := fieldjson.Version()
	if err != nil {
		fmt.Println("version not stamped (build with -ldflags -X ...versionString=M.m.p)")
		return nil
	}
	fmt.Printf("version %d.%d.%d flags %#02x\n",
		v>>16&0xff, v>>8&0xff, v&0xff, v>>24)
	return nil
}

// runExamples exercises the codec end to end: serialize, mutate, decode
// back, and walk the tree. It doubles as a smoke test of the library from
// the outside.
func runExamples(opt fieldjson.Options) error {
	var cfg config
	cfg.init()
	fields := cfg.fields()

	fmt.Printf("fields in tree: %d\n", fieldjson.Count(fields))
	if err := serialize(&cfg, opt); err != nil {
		return err
	}

	patch := []byte(`{"retries": 7, "limits": {"rate": 250}}`)
	var toks [16]token.Token
	if err := fieldjson.UnmarshalText(fields, opt, toks[:], patch); err != nil {
		return fmt.Errorf("deserialize patch: %w", err)
	}
	fmt.Printf("after patch: retries=%d rate=%d\n", cfg.retries, cfg.rate)

	f, ok, err := fieldjson.Retrieve(fields, "limits/rate", opt)
	if err != nil || !ok {
		return fmt.Errorf("retrieve limits/rate: ok=%v err=%v", ok, err)
	}
	fmt.Printf("limits/rate is a %v field\n", f.Type())
	return nil
}
