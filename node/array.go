// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package node

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/creachadair/jindex"
)

// An Array is a sequence of values.
type Array struct {
	base
	toks        jindex.SubList
	keysEncoded bool

	once  sync.Once
	elems []jindex.SubList
	vals  []atomic.Pointer[slot]
	hash  hashCache
}

func (a *Array) init() {
	a.once.Do(func() {
		a.elems = a.toks.Children()
		a.vals = make([]atomic.Pointer[slot], len(a.elems))
	})
}

// Len reports the number of elements in a.
func (a *Array) Len() int { a.init(); return len(a.elems) }

// At returns the ith element of a. If i is out of range, the error wraps
// ErrNotFound.
func (a *Array) At(i int) (Node, error) {
	a.init()
	if i < 0 || i >= len(a.elems) {
		return nil, fmt.Errorf("index %d out of range (n=%d): %w", i, len(a.elems), ErrNotFound)
	}
	if s := a.vals[i].Load(); s != nil {
		return s.Node, nil
	}
	n := build(a.elems[i], a.src, a.keysEncoded)
	a.vals[i].Store(&slot{n})
	return n, nil
}

// Values returns all the elements of a.
func (a *Array) Values() []Node {
	out := make([]Node, a.Len())
	for i := range out {
		out[i], _ = a.At(i)
	}
	return out
}

// Lookup implements the Collection interface. The key must be the decimal
// representation of an index.
func (a *Array) Lookup(key string) (Node, error) {
	i, err := strconv.Atoi(key)
	if err != nil {
		return nil, &TypeError{Want: "object", Got: jindex.Array}
	}
	return a.At(i)
}

// Equal reports whether n is an array of the same length as a, whose
// elements are pairwise equal to those of a.
func (a *Array) Equal(n Node) bool {
	b, ok := unwrap(n).(*Array)
	if !ok {
		return false
	} else if a == b {
		return true
	} else if a.Len() != b.Len() {
		return false
	}
	for i := range a.Len() {
		av, _ := a.At(i)
		bv, _ := b.At(i)
		if !av.Equal(bv) {
			return false
		}
	}
	return true
}

// Hash returns a hash of the content of a.
func (a *Array) Hash() uint64 {
	return a.hash.get(func() uint64 {
		d := xxhash.New()
		d.Write([]byte{byte(jindex.Array)})
		for i := range a.Len() {
			v, _ := a.At(i)
			writeUint64(d, v.Hash())
		}
		return d.Sum64()
	})
}
