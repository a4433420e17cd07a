// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jindex

import "fmt"

// Kind is the type of a token in a token list.
type Kind byte

// Constants defining the valid Kind values.
const (
	Object    Kind = iota // object: { ... }
	AttrKey               // object member key, through its ":"
	AttrValue             // object member value, up to its "," or "}"
	Array                 // array: [ ... ]
	ArrayItem             // array element (reserved, not emitted)
	Int                   // number: integer with no fraction or exponent
	Float                 // number with fraction and/or exponent
	String                // string, without its quotation marks
	Bool                  // constant: true or false
	Null                  // constant: null
	PathKey               // path expression: object key
	PathIndex             // path expression: array index

	// Kinds up to and including ArrayItem are complex and span their
	// descendants. Do not reorder these constants without updating
	// IsComplex.
)

var kindStr = [...]string{
	Object:    "object",
	AttrKey:   "attribute key",
	AttrValue: "attribute value",
	Array:     "array",
	ArrayItem: "array item",
	Int:       "int",
	Float:     "float",
	String:    "string",
	Bool:      "bool",
	Null:      "null",
	PathKey:   "path key",
	PathIndex: "path index",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return fmt.Sprintf("kind(%d)", v)
	}
	return kindStr[v]
}

// IsComplex reports whether tokens of kind k span descendant tokens.
func (k Kind) IsComplex() bool { return k <= ArrayItem }

// A Token records the extent and kind of one syntactic unit of the input.
type Token struct {
	Start int  // the start offset, 0-based
	End   int  // the end offset, 0-based (noninclusive)
	Kind  Kind // the kind of the token

	// Escaped is set for string and path key tokens whose text contains at
	// least one escape sequence.
	Escaped bool
}

// Span returns the span of the token.
func (t Token) Span() Span { return Span{Pos: t.Start, End: t.End} }

// Len reports the length of the token's span in bytes.
func (t Token) Len() int { return t.End - t.Start }

// Contains reports whether the span of u lies within the span of t.
func (t Token) Contains(u Token) bool { return u.Start >= t.Start && u.End <= t.End }

func (t Token) String() string {
	return fmt.Sprintf("%v[%d:%d]", t.Kind, t.Start, t.End)
}

// A TokenList is an append-only sequence of tokens in pre-order. A slot can
// be reserved with Placeholder before its token is known, and filled in later
// with Set.
type TokenList struct {
	toks []Token
}

// NewTokenList constructs an empty token list with room for n tokens.
func NewTokenList(n int) *TokenList { return &TokenList{toks: make([]Token, 0, n)} }

// Append adds tok to the end of the list.
func (t *TokenList) Append(tok Token) { t.toks = append(t.toks, tok) }

// Placeholder reserves a slot at the end of the list and returns its index.
func (t *TokenList) Placeholder() int {
	t.toks = append(t.toks, Token{})
	return len(t.toks) - 1
}

// Set replaces the token at index i. It panics if i is out of range.
func (t *TokenList) Set(i int, tok Token) { t.toks[i] = tok }

// Undo discards the most recently reserved or appended token.
func (t *TokenList) Undo() {
	if n := len(t.toks); n > 0 {
		t.toks = t.toks[:n-1]
	}
}

// Len reports the number of tokens in the list.
func (t *TokenList) Len() int { return len(t.toks) }

// At returns the token at index i. It panics if i is out of range.
func (t *TokenList) At(i int) Token { return t.toks[i] }

// Tokens returns the contents of t. The caller must not modify the slice.
func (t *TokenList) Tokens() []Token { return t.toks }

// All returns a view of the complete list.
func (t *TokenList) All() SubList { return SubList{toks: t.toks} }

// Sub returns a view of the tokens in the range [i, j).
func (t *TokenList) Sub(i, j int) SubList { return SubList{toks: t.toks[i:j:j]} }

// Compact returns a copy of t whose storage is exactly the size of its
// contents.
func (t *TokenList) Compact() *TokenList {
	cp := make([]Token, len(t.toks))
	copy(cp, t.toks)
	return &TokenList{toks: cp}
}

// A SubList is a window onto a contiguous range of a token list. It shares
// storage with the list it was taken from.
type SubList struct {
	toks []Token
}

// NewSubList returns a view of toks. The caller must not modify the slice
// while the view is in use.
func NewSubList(toks []Token) SubList { return SubList{toks: toks} }

// Len reports the number of tokens in the view.
func (s SubList) Len() int { return len(s.toks) }

// At returns the token at offset i of the view.
func (s SubList) At(i int) Token { return s.toks[i] }

// Root returns the first token of the view. It panics if the view is empty.
func (s SubList) Root() Token { return s.toks[0] }

// Sub returns a view of the tokens in the range [i, j) of s.
func (s SubList) Sub(i, j int) SubList { return SubList{toks: s.toks[i:j:j]} }

// Tokens returns the contents of s. The caller must not modify the slice.
func (s SubList) Tokens() []Token { return s.toks }

// Extent reports the number of tokens, starting at offset i, that belong to
// the subtree rooted at the token at i. For a scalar token the extent is 1.
func (s SubList) Extent(i int) int {
	root := s.toks[i]
	if !root.Kind.IsComplex() {
		return 1
	}
	j := i + 1
	for j < len(s.toks) && root.Contains(s.toks[j]) {
		j++
	}
	return j - i
}

// Children returns the child groups of the root token of s. Each group is
// the view of one direct child of the root together with its descendants.
func (s SubList) Children() []SubList {
	var out []SubList
	for i := 1; i < len(s.toks); {
		n := s.Extent(i)
		out = append(out, s.Sub(i, i+n))
		i += n
	}
	return out
}
