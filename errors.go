// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jindex

import (
	"errors"
	"fmt"
)

var (
	// ErrDepthLimit is reported, wrapped in a *SyntaxError, when a strict
	// scan exceeds the configured maximum nesting depth.
	ErrDepthLimit = errors.New("nesting depth limit exceeded")

	// ErrTrailingContent is reported, wrapped in a *SyntaxError, when a
	// strict scan finds non-whitespace input after the root value.
	ErrTrailingContent = errors.New("unexpected content after value")
)

// SyntaxError is the concrete type of errors reported by the scanner and by
// the lookahead methods of a Source.
type SyntaxError struct {
	Op       string  // the production being parsed, e.g., "Parsing Value"
	Message  string  // a description of the problem
	Char     byte    // the offending character, or ETX at end of input
	Offset   int     // the byte offset of the offending character
	Location LineCol // the line and column of the offending character
	Excerpt  string  // a rendering of the surrounding source text

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s: %s (%s)", s.Location, s.Op, s.Message, charLabel(s.Char))
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// Details returns a multi-line rendering of the error including the excerpt
// of the source text around its location.
func (s *SyntaxError) Details() string {
	return s.Op + ": " + s.Excerpt
}

// charLabel renders ch for display in a diagnostic.
func charLabel(ch byte) string {
	switch ch {
	case ' ':
		return "[SPACE]"
	case '\t':
		return "[TAB]"
	case '\n':
		return "[NEWLINE]"
	case ETX:
		return "ETX"
	}
	return fmt.Sprintf("'%c' %d", ch, ch)
}
