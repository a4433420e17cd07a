// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package node

import (
	"sync"

	"github.com/creachadair/jindex"
	"go4.org/mem"
)

// A Root is the top of a tree. It holds the complete token list and source
// of a document, and delegates to the node for its root value, which it
// constructs on first use.
type Root struct {
	toks        *jindex.TokenList
	src         *jindex.Source
	keysEncoded bool

	once sync.Once
	val  Node
}

// Parse scans data using the default configuration and returns the root of
// the resulting tree.
func Parse(data []byte) (*Root, error) {
	return ParseSource(jindex.DefaultConfig(), jindex.NewSource(data))
}

// ParseString scans s using the default configuration and returns the root
// of the resulting tree.
func ParseString(s string) (*Root, error) {
	return ParseSource(jindex.DefaultConfig(), jindex.NewSourceString(s))
}

// ParseSource scans src using cfg and returns the root of the resulting
// tree. In case of a syntax error, the error has concrete type
// *jindex.SyntaxError.
func ParseSource(cfg jindex.Config, src *jindex.Source) (*Root, error) {
	toks, err := jindex.NewScanner(cfg).Scan(src)
	if err != nil {
		return nil, err
	}
	return NewRoot(toks, src, cfg.KeysEncoded), nil
}

// NewRoot constructs a root over a token list previously scanned from src.
// The list must be nonempty.
func NewRoot(toks *jindex.TokenList, src *jindex.Source, keysEncoded bool) *Root {
	return &Root{toks: toks, src: src, keysEncoded: keysEncoded}
}

// Value returns the node for the root value of r.
func (r *Root) Value() Node {
	r.once.Do(func() { r.val = build(r.toks.All(), r.src, r.keysEncoded) })
	return r.val
}

// Tokens returns the complete token list of r.
func (r *Root) Tokens() *jindex.TokenList { return r.toks }

// Object returns the root value of r as an object.
func (r *Root) Object() (*Object, error) { return As[*Object](r.Value()) }

// Array returns the root value of r as an array.
func (r *Root) Array() (*Array, error) { return As[*Array](r.Value()) }

func (r *Root) Kind() jindex.Kind      { return r.Value().Kind() }
func (r *Root) Token() jindex.Token    { return r.Value().Token() }
func (r *Root) Source() *jindex.Source { return r.src }
func (r *Root) Equal(n Node) bool      { return r.Value().Equal(n) }
func (r *Root) Hash() uint64           { return r.Value().Hash() }

// Original returns a copy of the source text of the root value. Unlike the
// Original method of a String, the quotation marks of a root string are
// included.
func (r *Root) Original() string { return r.Text().StringCopy() }

// Text returns a view of the source text of the root value, as Original.
func (r *Root) Text() mem.RO {
	tok := r.Token()
	if tok.Kind == jindex.String {
		return r.src.Text(tok.Start-1, tok.End+1)
	}
	return r.src.Text(tok.Start, tok.End)
}

// Len reports the number of children of the root value, or 0 if it is not a
// collection.
func (r *Root) Len() int {
	if c, ok := r.Value().(Collection); ok {
		return c.Len()
	}
	return 0
}

// Lookup implements the Collection interface by delegating to the root
// value.
func (r *Root) Lookup(key string) (Node, error) {
	c, ok := r.Value().(Collection)
	if !ok {
		return nil, &TypeError{Want: "collection", Got: r.Kind()}
	}
	return c.Lookup(key)
}
