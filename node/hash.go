// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package node

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// hashCache holds a lazily-computed hash value. Concurrent callers may
// compute the value more than once, but all compute the same value.
type hashCache struct {
	ok  atomic.Bool
	val atomic.Uint64
}

func (h *hashCache) get(f func() uint64) uint64 {
	if h.ok.Load() {
		return h.val.Load()
	}
	v := f()
	h.val.Store(v)
	h.ok.Store(true)
	return v
}

func writeUint64(d *xxhash.Digest, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	d.Write(buf[:])
}

// hashText hashes a scalar of the given kind with the given content.
func hashText(kind byte, text string) uint64 {
	d := xxhash.New()
	d.Write([]byte{kind})
	d.WriteString(text)
	return d.Sum64()
}
