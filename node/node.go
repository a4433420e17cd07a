// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package node presents a scanned token list as a tree of typed values.
//
// A node is a view of a span of tokens and the source text they describe.
// Nodes do not copy the source text: scalar values are decoded from the
// source each time they are requested, and the children of objects and
// arrays are constructed the first time they are visited and cached
// thereafter. Navigating to one value of a large document therefore costs
// work proportional to the path, not to the size of the document.
//
// Nodes are safe for concurrent use once constructed. Their caches may be
// filled more than once under contention, but a reader never observes a
// partially-constructed value.
package node

import (
	"errors"
	"fmt"

	"github.com/creachadair/jindex"
	"go4.org/mem"
)

// A Node is a value in the tree. The concrete type of a Node is one of
// *Root, *Object, *Array, *String, *Number, *Bool, or *Null, or one of the
// path element types of package path.
type Node interface {
	// Kind reports the kind of the node's token.
	Kind() jindex.Kind

	// Token returns the token that spans the node.
	Token() jindex.Token

	// Source returns the input the node refers to.
	Source() *jindex.Source

	// Original returns a copy of the source text of the node.
	Original() string

	// Text returns a view of the source text of the node.
	Text() mem.RO

	// Equal reports whether the node has the same content as another.
	Equal(Node) bool

	// Hash returns a hash of the content of the node. Equal nodes have
	// equal hashes.
	Hash() uint64
}

// A Collection is a node whose children can be looked up by key.
type Collection interface {
	Node

	// Len reports the number of children of the collection.
	Len() int

	// Lookup returns the child with the given key. For arrays, the key is a
	// decimal index.
	Lookup(key string) (Node, error)
}

// A Scalar is a node with a single decodable value.
type Scalar interface {
	Node

	// Decode returns the value of the node as a Go value.
	Decode() (any, error)
}

// ErrNotFound is reported, possibly wrapped, when an object has no member
// with a requested key or an array index is out of range.
var ErrNotFound = errors.New("not found")

// TypeError is the concrete type of errors reported when a node is used as a
// kind of value that it is not.
type TypeError struct {
	Want string      // a description of the expected value
	Got  jindex.Kind // the kind of the node
}

func (t *TypeError) Error() string {
	return fmt.Sprintf("cannot use %v node as %s", t.Got, t.Want)
}

// New constructs a node for the subtree whose tokens are toks. If keysEncoded
// is true, object keys are decoded before comparison.
func New(toks jindex.SubList, src *jindex.Source, keysEncoded bool) (Node, error) {
	if toks.Len() == 0 {
		return nil, errors.New("empty token list")
	}
	if n := build(toks, src, keysEncoded); n != nil {
		return n, nil
	}
	return nil, &TypeError{Want: "value", Got: toks.Root().Kind}
}

func build(toks jindex.SubList, src *jindex.Source, keysEncoded bool) Node {
	b := base{src: src, tok: toks.Root()}
	switch b.tok.Kind {
	case jindex.Object:
		return &Object{base: b, toks: toks, keysEncoded: keysEncoded}
	case jindex.Array:
		return &Array{base: b, toks: toks, keysEncoded: keysEncoded}
	case jindex.String:
		return &String{b}
	case jindex.Int, jindex.Float:
		return &Number{b}
	case jindex.Bool:
		return &Bool{b}
	case jindex.Null:
		return &Null{b}
	}
	return nil
}

// As returns n as a value of type T, or a *TypeError if it is not one. A
// *Root is replaced by its value before conversion.
func As[T Node](n Node) (T, error) {
	n = unwrap(n)
	v, ok := n.(T)
	if !ok {
		var got jindex.Kind
		if n != nil {
			got = n.Kind()
		}
		return v, &TypeError{Want: typeLabel[T](), Got: got}
	}
	return v, nil
}

func typeLabel[T Node]() string {
	var zero T
	switch any(&zero).(type) {
	case **Object:
		return "object"
	case **Array:
		return "array"
	case **String:
		return "string"
	case **Number:
		return "number"
	case **Bool:
		return "bool"
	case **Null:
		return "null"
	case *Collection:
		return "collection"
	case *Scalar:
		return "scalar"
	}
	return fmt.Sprintf("%T", zero)
}

func unwrap(n Node) Node {
	if r, ok := n.(*Root); ok {
		return r.Value()
	}
	return n
}

// base carries the token and source common to all nodes.
type base struct {
	src *jindex.Source
	tok jindex.Token
}

func (b base) Kind() jindex.Kind      { return b.tok.Kind }
func (b base) Token() jindex.Token    { return b.tok }
func (b base) Source() *jindex.Source { return b.src }
func (b base) Original() string       { return b.src.String(b.tok.Start, b.tok.End) }
func (b base) Text() mem.RO           { return b.src.Text(b.tok.Start, b.tok.End) }
