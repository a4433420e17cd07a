// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jindex

import (
	"os"
	"strconv"
	"sync"
)

// DefaultMaxDepth is the nesting depth limit applied by a strict scan whose
// configuration does not set one.
const DefaultMaxDepth = 2000

// Environment variables consulted once by DefaultConfig.
const (
	StrictEnv      = "JINDEX_STRICT"
	KeysEncodedEnv = "JINDEX_KEYS_ENCODED"
)

// Config carries the settings for a scan. The zero value selects the fast
// grammar with unencoded object keys.
//
// A Config is a plain value; each scan uses the copy it was given.
type Config struct {
	// Strict selects the strict grammar, which rejects leading zeros and
	// plus signs in numbers, trailing commas, input nested more deeply than
	// MaxDepth, and non-whitespace content after the root value.
	Strict bool

	// KeysEncoded reports whether object keys may contain escape sequences.
	// When false, keys are scanned to the next quotation mark and compared
	// verbatim.
	KeysEncoded bool

	// MaxDepth bounds the nesting of objects and arrays. If zero, strict
	// scans use DefaultMaxDepth and fast scans are unbounded.
	MaxDepth int

	HashComments  bool // allow "# ..." line comments
	SlashComments bool // allow "// ..." line comments
	BlockComments bool // allow "/* ... */" block comments

	// BareKeys allows object keys to be unquoted identifiers.
	BareKeys bool
}

// Comments reports whether any comment syntax is enabled by c.
func (c Config) Comments() bool { return c.HashComments || c.SlashComments || c.BlockComments }

func (c Config) maxDepth() int {
	if c.MaxDepth > 0 {
		return c.MaxDepth
	} else if c.Strict {
		return DefaultMaxDepth
	}
	return 0
}

var defaultConfig = sync.OnceValue(func() Config {
	return Config{
		Strict:      envBool(StrictEnv),
		KeysEncoded: envBool(KeysEncodedEnv),
	}
})

// DefaultConfig returns the process-wide default configuration. It is seeded
// from the JINDEX_STRICT and JINDEX_KEYS_ENCODED environment variables the
// first time it is called, and does not change thereafter.
func DefaultConfig() Config { return defaultConfig() }

func envBool(name string) bool {
	ok, _ := strconv.ParseBool(os.Getenv(name))
	return ok
}
