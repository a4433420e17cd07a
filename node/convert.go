// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package node

import "fmt"

// ToAny converts n and all its descendants into plain Go values. Objects
// become map[string]any, arrays become []any, and scalars are converted by
// their Decode methods. For duplicate object keys, the first occurrence is
// kept.
func ToAny(n Node) (any, error) {
	switch t := unwrap(n).(type) {
	case *Object:
		return t.Map()
	case *Array:
		return t.Slice()
	case Scalar:
		return t.Decode()
	case nil:
		return nil, fmt.Errorf("no value")
	default:
		return nil, &TypeError{Want: "value", Got: t.Kind()}
	}
}

// Map converts o into a map from keys to plain Go values, as ToAny.
func (o *Object) Map() (map[string]any, error) {
	m := make(map[string]any, o.Len())
	for i := range o.Len() {
		k, err := o.Key(i)
		if err != nil {
			return nil, err
		}
		if _, ok := m[k]; ok {
			continue
		}
		v, _ := o.Value(i)
		m[k], err = ToAny(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
	}
	return m, nil
}

// Slice converts a into a slice of plain Go values, as ToAny.
func (a *Array) Slice() ([]any, error) {
	s := make([]any, a.Len())
	for i := range s {
		v, _ := a.At(i)
		var err error
		s[i], err = ToAny(v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
	}
	return s, nil
}
