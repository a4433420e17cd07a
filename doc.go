// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jindex implements an index-overlay JSON scanner.
//
// Rather than decoding its input into Go values, the scanner records the
// structure of the input as a flat list of tokens, each giving the kind and
// byte offsets of one syntactic unit. Values are decoded from the input only
// when they are needed; see package node for a tree view of a token list,
// and package path for addressing single values within it.
//
// # Sources
//
// A Source is a cursor over an input buffer, with methods to find the end of
// each kind of JSON value starting at the cursor and to decode values from
// byte ranges of the input:
//
//	src := jindex.NewSource(data)
//
// The input must not be modified while the Source is in use.
//
// # Scanning
//
// A Scanner tokenizes a Source according to a Config. The Scan method returns
// the complete token list in pre-order, so that every object or array token
// appears before the tokens of its contents:
//
//	toks, err := jindex.NewScanner(jindex.Config{Strict: true}).Scan(src)
//	if err != nil {
//	   log.Fatalf("Scan failed: %v", err)
//	}
//
// In case of error, scanning stops and an error of concrete type
// *jindex.SyntaxError is returned. A strict scan that exceeds the nesting
// depth limit or finds content after the root value reports a SyntaxError
// that wraps ErrDepthLimit or ErrTrailingContent respectively.
//
// # Tokens
//
// For each object member the scanner emits an AttrKey token spanning the key
// through its colon, a String token for the key text, an AttrValue token
// spanning the value up to the following comma or close brace, and then the
// tokens of the value:
//
//	Kind       | Span
//	---------- | ------------------------------------------------
//	Object     | "{" through "}"
//	Array      | "[" through "]"
//	AttrKey    | the key through ":"
//	AttrValue  | the value up to "," or "}"
//	String     | the contents between the quotation marks
//	Int, Float | the number
//	Bool, Null | the constant
//
// # Listeners
//
// To receive the structure of the input as it is scanned rather than as a
// token list, call Stream with a Listener. The events delivered to the
// listener correspond one-for-one with the tokens Scan would return.
//
// # Modes
//
// A fast scan (the default) accepts some input that is not valid JSON: a
// leading plus sign or redundant leading zeros in numbers, trailing commas in
// objects and arrays, and content following the root value. A strict scan
// rejects all of these. For valid JSON, the two modes produce identical
// tokens. Comments and unquoted object keys are accepted in either mode if
// enabled in the Config.
package jindex
