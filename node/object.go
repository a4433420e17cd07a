// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package node

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/creachadair/jindex"
)

// An Object is a collection of key-value members.
type Object struct {
	base
	toks        jindex.SubList
	keysEncoded bool

	once    sync.Once
	members []member
	keys    []atomic.Pointer[string]
	vals    []atomic.Pointer[slot]
	hash    hashCache
}

// A member records the key token and value tokens of an object member.
type member struct {
	key jindex.Token   // the String token of the key
	val jindex.SubList // the tokens of the value, without its AttrValue
}

// A slot holds a cached child node.
type slot struct{ Node }

func (o *Object) init() {
	o.once.Do(func() {
		groups := o.toks.Children()

		// Groups alternate between a key (AttrKey, String) and a value
		// (AttrValue, value tokens...).
		ms := make([]member, 0, len(groups)/2)
		for i := 0; i+1 < len(groups); i += 2 {
			kg, vg := groups[i], groups[i+1]
			ms = append(ms, member{key: kg.At(1), val: vg.Sub(1, vg.Len())})
		}
		o.members = ms
		o.keys = make([]atomic.Pointer[string], len(ms))
		o.vals = make([]atomic.Pointer[slot], len(ms))
	})
}

// Len reports the number of members in o.
func (o *Object) Len() int { o.init(); return len(o.members) }

// Key returns the decoded key of the ith member of o.
func (o *Object) Key(i int) (string, error) {
	o.init()
	if i < 0 || i >= len(o.members) {
		return "", fmt.Errorf("member %d of %d: %w", i, len(o.members), ErrNotFound)
	}
	if p := o.keys[i].Load(); p != nil {
		return *p, nil
	}
	tok := o.members[i].key
	var key string
	if tok.Escaped && o.keysEncoded {
		k, err := o.src.Decoded(tok.Start, tok.End)
		if err != nil {
			return "", err
		}
		key = k
	} else {
		key = o.src.String(tok.Start, tok.End)
	}
	o.keys[i].Store(&key)
	return key, nil
}

// Keys returns the decoded keys of o in order of occurrence.
func (o *Object) Keys() ([]string, error) {
	o.init()
	keys := make([]string, len(o.members))
	for i := range o.members {
		k, err := o.Key(i)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	return keys, nil
}

// Value returns the value of the ith member of o.
func (o *Object) Value(i int) (Node, error) {
	o.init()
	if i < 0 || i >= len(o.members) {
		return nil, fmt.Errorf("member %d of %d: %w", i, len(o.members), ErrNotFound)
	}
	if s := o.vals[i].Load(); s != nil {
		return s.Node, nil
	}
	n := build(o.members[i].val, o.src, o.keysEncoded)
	o.vals[i].Store(&slot{n})
	return n, nil
}

// index returns the offset of the first member of o whose key is key, or -1.
func (o *Object) index(key string) int {
	o.init()
	for i, m := range o.members {
		if !m.key.Escaped {
			if o.src.MatchString(m.key.Start, m.key.End, key) {
				return i
			}
		} else if k, err := o.Key(i); err == nil && k == key {
			return i
		}
	}
	return -1
}

// Get returns the value of the first member of o with the given key. If no
// such member exists, the error wraps ErrNotFound.
func (o *Object) Get(key string) (Node, error) {
	if i := o.index(key); i >= 0 {
		return o.Value(i)
	}
	return nil, fmt.Errorf("key %q: %w", key, ErrNotFound)
}

// Lookup implements the Collection interface. It is equivalent to Get.
func (o *Object) Lookup(key string) (Node, error) { return o.Get(key) }

// Find returns the value of the first member of o with the given key, or
// nil if there is none.
func (o *Object) Find(key string) Node {
	v, err := o.Get(key)
	if err != nil {
		return nil
	}
	return v
}

// Has reports whether o has a member with the given key.
func (o *Object) Has(key string) bool { return o.index(key) >= 0 }

// GetString returns the decoded string value of the member with the given
// key.
func (o *Object) GetString(key string) (string, error) {
	s, err := getAs[*String](o, key)
	if err != nil {
		return "", err
	}
	return s.Value()
}

// GetInt64 returns the integer value of the member with the given key.
func (o *Object) GetInt64(key string) (int64, error) {
	z, err := getAs[*Number](o, key)
	if err != nil {
		return 0, err
	}
	return z.Int64()
}

// GetFloat64 returns the numeric value of the member with the given key.
func (o *Object) GetFloat64(key string) (float64, error) {
	z, err := getAs[*Number](o, key)
	if err != nil {
		return 0, err
	}
	return z.Float64()
}

// GetBool returns the Boolean value of the member with the given key.
func (o *Object) GetBool(key string) (bool, error) {
	b, err := getAs[*Bool](o, key)
	if err != nil {
		return false, err
	}
	return b.Bool(), nil
}

// GetObject returns the object value of the member with the given key.
func (o *Object) GetObject(key string) (*Object, error) { return getAs[*Object](o, key) }

// GetArray returns the array value of the member with the given key.
func (o *Object) GetArray(key string) (*Array, error) { return getAs[*Array](o, key) }

func getAs[T Node](o *Object, key string) (T, error) {
	v, err := o.Get(key)
	if err != nil {
		var zero T
		return zero, err
	}
	t, err := As[T](v)
	if err != nil {
		return t, fmt.Errorf("key %q: %w", key, err)
	}
	return t, nil
}

// firsts returns the offset of the first member of o for each distinct key.
// A key that cannot be decoded is represented by its source text, and ok is
// false.
func (o *Object) firsts() (idx map[string]int, ok bool) {
	idx = make(map[string]int, o.Len())
	ok = true
	for i := range o.Len() {
		k, err := o.Key(i)
		if err != nil {
			tok := o.members[i].key
			k, ok = o.src.String(tok.Start, tok.End), false
		}
		if _, dup := idx[k]; !dup {
			idx[k] = i
		}
	}
	return idx, ok
}

// Equal reports whether n is an object with the same keys as o, whose
// values are equal to those of o. The order of members does not matter.
// Where a key is repeated, only its first occurrence is compared.
func (o *Object) Equal(n Node) bool {
	p, ok := unwrap(n).(*Object)
	if !ok {
		return false
	} else if p == o {
		return true
	}
	om, ok := o.firsts()
	if !ok {
		return false
	}
	pm, ok := p.firsts()
	if !ok || len(om) != len(pm) {
		return false
	}
	for k, i := range om {
		j, ok := pm[k]
		if !ok {
			return false
		}
		ov, _ := o.Value(i)
		pv, _ := p.Value(j)
		if !ov.Equal(pv) {
			return false
		}
	}
	return true
}

// Hash returns a hash of the content of o, independent of member order. As
// with Equal, only the first occurrence of a repeated key contributes.
func (o *Object) Hash() uint64 {
	return o.hash.get(func() uint64 {
		om, _ := o.firsts()
		var sum uint64
		for k, i := range om {
			v, _ := o.Value(i)
			d := xxhash.New()
			d.WriteString(k)
			writeUint64(d, v.Hash())
			sum += d.Sum64()
		}
		d := xxhash.New()
		d.Write([]byte{byte(jindex.Object)})
		writeUint64(d, sum)
		return d.Sum64()
	})
}
