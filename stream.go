// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jindex

// A Listener receives the structure of an input from Scanner.Stream as a
// sequence of events, in the same order the corresponding tokens would
// appear in the token list returned by Scan. If a method reports an error,
// scanning stops and that error is returned to the caller.
//
// The scanner ensures that calls to Begin and End are correctly paired.
type Listener interface {
	// Begin a complex token (Object, AttrKey, AttrValue, or Array) whose
	// span starts at pos.
	Begin(kind Kind, pos int) error

	// End the most recently begun complex token, whose span ends at end.
	End(kind Kind, end int) error

	// Value reports a scalar token.
	Value(tok Token) error
}

// Stream tokenizes the complete input of src and delivers its structure to
// lst. In case of a syntax error, the returned error has concrete type
// [*SyntaxError]. If a method of lst reports an error, Stream returns that
// error unmodified.
func (s *Scanner) Stream(src *Source, lst Listener) error {
	return s.run(src, listenerSink{lst})
}

// A sink receives tokens from the scanner. A complex token is reserved by
// begin, which returns a handle, and completed by end with that handle once
// its extent is known.
type sink interface {
	begin(kind Kind, pos int) int
	end(h int, kind Kind, pos, end int)
	scalar(tok Token)
}

// listSink collects tokens into a TokenList using placeholders.
type listSink struct{ toks *TokenList }

func (s *listSink) begin(kind Kind, pos int) int {
	h := s.toks.Placeholder()
	s.toks.Set(h, Token{Start: pos, End: pos, Kind: kind})
	return h
}

func (s *listSink) end(h int, kind Kind, pos, end int) {
	s.toks.Set(h, Token{Start: pos, End: end, Kind: kind})
}

func (s *listSink) scalar(tok Token) { s.toks.Append(tok) }

// listenerSink forwards tokens to a Listener.
type listenerSink struct{ lst Listener }

func (s listenerSink) begin(kind Kind, pos int) int {
	checkSink(s.lst.Begin(kind, pos))
	return -1
}

func (s listenerSink) end(_ int, kind Kind, _, end int) { checkSink(s.lst.End(kind, end)) }

func (s listenerSink) scalar(tok Token) { checkSink(s.lst.Value(tok)) }

func checkSink(err error) {
	if err != nil {
		panic(sinkError{err})
	}
}

type sinkError struct{ error }

func (s sinkError) Unwrap() error { return s.error }

// Collector is a Listener that rebuilds the token list from the events it
// receives. Its result is identical to the list returned by Scan for the
// same input.
type Collector struct {
	toks *TokenList
	stk  []int
}

// Begin implements part of the Listener interface.
func (c *Collector) Begin(kind Kind, pos int) error {
	if c.toks == nil {
		c.toks = new(TokenList)
	}
	h := c.toks.Placeholder()
	c.toks.Set(h, Token{Start: pos, End: pos, Kind: kind})
	c.stk = append(c.stk, h)
	return nil
}

// End implements part of the Listener interface.
func (c *Collector) End(kind Kind, end int) error {
	n := len(c.stk) - 1
	h := c.stk[n]
	c.stk = c.stk[:n]
	tok := c.toks.At(h)
	tok.End = end
	c.toks.Set(h, tok)
	return nil
}

// Value implements part of the Listener interface.
func (c *Collector) Value(tok Token) error {
	if c.toks == nil {
		c.toks = new(TokenList)
	}
	c.toks.Append(tok)
	return nil
}

// Tokens returns the tokens collected so far.
func (c *Collector) Tokens() *TokenList {
	if c.toks == nil {
		return new(TokenList)
	}
	return c.toks
}
