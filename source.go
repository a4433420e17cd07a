// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jindex

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/jindex/internal/escape"

	"go4.org/mem"
)

// ETX is the sentinel character reported by a Source at the end of its
// input.
const ETX byte = 3

// A Source is a cursor over an immutable JSON input buffer. In addition to
// moving through the input one byte at a time, a Source provides lookahead
// methods that find the end of a JSON string, number, or literal starting
// at the cursor.
//
// A Source holds no state besides its input and the cursor offset. The
// input must not be modified while the Source or any token list or node
// derived from it is in use.
type Source struct {
	data mem.RO
	pos  int
}

// NewSource constructs a Source positioned before the first byte of data.
func NewSource(data []byte) *Source { return &Source{data: mem.B(data), pos: -1} }

// NewSourceString constructs a Source positioned before the first byte of s.
func NewSourceString(s string) *Source { return &Source{data: mem.S(s), pos: -1} }

// ReadSource reads the complete contents of r and returns a Source over it.
func ReadSource(r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewSource(data), nil
}

// Len reports the length of the input in bytes.
func (s *Source) Len() int { return s.data.Len() }

// Index reports the offset of the cursor. Before the first call to Next, the
// offset is -1; after the end of input it is s.Len().
func (s *Source) Index() int { return s.pos }

// Reset moves the cursor to before the first byte of the input.
func (s *Source) Reset() { s.pos = -1 }

// At returns the byte at offset i, or ETX if i is out of range.
func (s *Source) At(i int) byte {
	if i < 0 || i >= s.data.Len() {
		return ETX
	}
	return s.data.At(i)
}

// Next advances the cursor by one byte and returns the byte there, or ETX
// if the input is exhausted.
func (s *Source) Next() byte {
	if s.pos+1 >= s.data.Len() {
		s.pos = s.data.Len()
		return ETX
	}
	s.pos++
	return s.data.At(s.pos)
}

// NextSkipSpace advances the cursor past the current byte and any following
// whitespace, and returns the first non-whitespace byte or ETX.
func (s *Source) NextSkipSpace() byte {
	s.Next()
	return s.SkipSpace()
}

// SkipSpace advances the cursor past any whitespace at the current position,
// and returns the first non-whitespace byte or ETX.
func (s *Source) SkipSpace() byte {
	if s.pos < 0 {
		s.pos = 0
	}
	n := s.data.Len()
	for s.pos < n && isSpace(s.data.At(s.pos)) {
		s.pos++
	}
	return s.CurrentSafe()
}

// Current returns the byte at the cursor. It panics if the cursor is not
// within the input.
func (s *Source) Current() byte { return s.data.At(s.pos) }

// CurrentSafe returns the byte at the cursor, or ETX if the cursor is not
// within the input.
func (s *Source) CurrentSafe() byte { return s.At(s.pos) }

// FindEndOfNumber scans a JSON number starting at the cursor, and returns
// the offset of the first byte after the number. It reports isFloat as true
// if the number has a fraction or an exponent. The cursor is left at the
// end offset.
func (s *Source) FindEndOfNumber() (end int, isFloat bool, err error) {
	return s.findEndOfNumber(true)
}

// FindEndOfNumberFast is as FindEndOfNumber, but permits a leading plus sign
// and redundant leading zeros in the integer part.
func (s *Source) FindEndOfNumberFast() (end int, isFloat bool, err error) {
	return s.findEndOfNumber(false)
}

func (s *Source) findEndOfNumber(strict bool) (int, bool, error) {
	const op = "Parsing JSON Number"
	i := s.pos
	switch s.At(i) {
	case '-':
		i++
	case '+':
		if strict {
			return 0, false, s.Errorf(op, i, "number cannot begin with a plus sign")
		}
		i++
	}

	if !isDigit(s.At(i)) {
		return 0, false, s.Errorf(op, i, "expected a digit")
	} else if strict && s.At(i) == '0' && isDigit(s.At(i+1)) {
		return 0, false, s.Errorf(op, i, "leading zeros are not allowed")
	}
	i = s.skipDigits(i)

	var isFloat bool
	if s.At(i) == '.' {
		isFloat = true
		i++
		if !isDigit(s.At(i)) {
			return 0, false, s.Errorf(op, i, "expected a digit after decimal point")
		}
		i = s.skipDigits(i)
	}
	if c := s.At(i); c == 'e' || c == 'E' {
		isFloat = true
		i++
		if c := s.At(i); c == '+' || c == '-' {
			i++
		}
		if !isDigit(s.At(i)) {
			return 0, false, s.Errorf(op, i, "expected a digit in exponent")
		}
		i = s.skipDigits(i)
	}

	// A number must not run directly into something that could only be a
	// continuation of a malformed number.
	if c := s.At(i); isNameByte(c) || c == '.' || c == '+' || c == '-' {
		return 0, false, s.Errorf(op, i, "unexpected character in number")
	}
	s.pos = i
	return i, isFloat, nil
}

func (s *Source) skipDigits(i int) int {
	n := s.data.Len()
	for i < n && isDigit(s.data.At(i)) {
		i++
	}
	return i
}

// FindEndString scans a string starting at the quotation mark under the
// cursor, and returns the offset of the closing quotation mark. Escapes are
// not interpreted: the string ends at the next quotation mark. The cursor is
// left just past the closing quotation mark.
func (s *Source) FindEndString() (int, error) {
	i := mem.IndexByte(s.data.SliceFrom(s.pos+1), '"')
	if i < 0 {
		return 0, s.Errorf("Parsing JSON String", s.data.Len(), "unterminated string")
	}
	end := s.pos + 1 + i
	s.pos = end + 1
	return end, nil
}

// FindEndOfEncodedStringFast scans a string starting at the quotation mark
// under the cursor, and returns the offset of the closing quotation mark.
// It reports escaped as true if the string contains a backslash. The
// contents are not otherwise checked. The cursor is left just past the
// closing quotation mark.
func (s *Source) FindEndOfEncodedStringFast() (end int, escaped bool, err error) {
	start := s.pos + 1
	i := start
	for {
		q := mem.IndexByte(s.data.SliceFrom(i), '"')
		if q < 0 {
			return 0, false, s.Errorf("Parsing JSON String", s.data.Len(), "unterminated string")
		}
		i += q

		// The quotation mark is escaped if it follows an odd number of
		// consecutive backslashes.
		nb := 0
		for j := i - 1; j >= start && s.data.At(j) == '\\'; j-- {
			nb++
		}
		if nb%2 == 0 {
			break
		}
		i++
	}
	s.pos = i + 1
	return i, mem.IndexByte(s.data.Slice(start, i), '\\') >= 0, nil
}

// FindEndOfEncodedString is as FindEndOfEncodedStringFast, but checks that
// each escape sequence is valid and that the string contains no unescaped
// control characters.
func (s *Source) FindEndOfEncodedString() (end int, escaped bool, err error) {
	const op = "Parsing JSON String"
	n := s.data.Len()
	for i := s.pos + 1; i < n; {
		switch c := s.data.At(i); {
		case c == '"':
			s.pos = i + 1
			return i, escaped, nil
		case c == '\\':
			escaped = true
			switch s.At(i + 1) {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i += 2
			case 'u':
				for k := i + 2; k < i+6; k++ {
					if !isHexDigit(s.At(k)) {
						return 0, false, s.Errorf(op, k, "invalid Unicode escape")
					}
				}
				i += 6
			default:
				return 0, false, s.Errorf(op, i+1, "invalid escape sequence")
			}
		case c < ' ':
			return 0, false, s.Errorf(op, i, "unescaped control character")
		default:
			i++
		}
	}
	return 0, false, s.Errorf(op, n, "unterminated string")
}

// FindTrueEnd checks that the input at the cursor is "true", and returns
// the offset after it. The cursor is left at that offset.
func (s *Source) FindTrueEnd() (int, error) { return s.findLiteral("true") }

// FindFalseEnd checks that the input at the cursor is "false", and returns
// the offset after it. The cursor is left at that offset.
func (s *Source) FindFalseEnd() (int, error) { return s.findLiteral("false") }

// FindNullEnd checks that the input at the cursor is "null", and returns
// the offset after it. The cursor is left at that offset.
func (s *Source) FindNullEnd() (int, error) { return s.findLiteral("null") }

func (s *Source) findLiteral(want string) (int, error) {
	end := s.pos + len(want)
	if end > s.data.Len() || !s.data.Slice(s.pos, end).EqualString(want) {
		i := s.pos
		for i < end && i < s.data.Len() && s.data.At(i) == want[i-s.pos] {
			i++
		}
		return 0, s.Errorf("Parsing Literal", i, "expected %q", want)
	} else if isNameByte(s.At(end)) {
		return 0, s.Errorf("Parsing Literal", end, "expected %q", want)
	}
	s.pos = end
	return end, nil
}

// FindCommaOrEnd skips whitespace at the cursor and checks that the next
// byte is a comma or a close bracket. It reports end as true for a close
// bracket. The cursor is left on that byte.
func (s *Source) FindCommaOrEnd() (end bool, err error) {
	switch ch := s.SkipSpace(); ch {
	case ',':
		return false, nil
	case ']':
		return true, nil
	default:
		return false, s.Errorf("Parsing Array Item", s.pos, "expected ',' or ']'")
	}
}

// FindObjectEndOrAttributeSep skips whitespace at the cursor and checks that
// the next byte is a comma or a close brace. It reports end as true for a
// close brace. The cursor is left on that byte.
func (s *Source) FindObjectEndOrAttributeSep() (end bool, err error) {
	switch ch := s.SkipSpace(); ch {
	case ',':
		return false, nil
	case '}':
		return true, nil
	default:
		return false, s.Errorf("Parsing Value", s.pos, "expected ',' or '}'")
	}
}

// CheckForJunk reports an error wrapping ErrTrailingContent if anything
// other than whitespace remains at or after the cursor.
func (s *Source) CheckForJunk() error {
	if ch := s.SkipSpace(); ch != ETX {
		return s.errorw("Checking For Junk", s.pos, ErrTrailingContent, "unexpected content after value")
	}
	return nil
}

// Text returns a view of the input in the range [start, end).
func (s *Source) Text(start, end int) mem.RO { return s.data.Slice(start, end) }

// String returns a copy of the input in the range [start, end).
func (s *Source) String(start, end int) string { return s.data.Slice(start, end).StringCopy() }

// Decoded returns the contents of the string whose text (without quotation
// marks) is in the range [start, end), with escape sequences decoded.
func (s *Source) Decoded(start, end int) (string, error) {
	text := s.data.Slice(start, end)
	if mem.IndexByte(text, '\\') < 0 {
		return text.StringCopy(), nil
	}
	dec, err := escape.Unquote(text)
	if err != nil {
		return "", fmt.Errorf("offset %d: %w", start, err)
	}
	return string(dec), nil
}

// MatchString reports whether the input in the range [start, end) is
// exactly the bytes of key.
func (s *Source) MatchString(start, end int, key string) bool {
	return end-start == len(key) && s.data.Slice(start, end).EqualString(key)
}

// Location returns the line and column of the byte at the given offset.
// Offsets outside the input are clamped to its bounds.
func (s *Source) Location(offset int) LineCol {
	offset = min(max(offset, 0), s.data.Len())
	line, lineStart := 1, 0
	for {
		i := mem.IndexByte(s.data.Slice(lineStart, offset), '\n')
		if i < 0 {
			break
		}
		line++
		lineStart += i + 1
	}
	return LineCol{Line: line, Column: offset - lineStart}
}

// ErrorDetails renders a diagnostic for a problem with the character ch at
// the given offset, including the text of the line containing it and a
// marker under the offending column.
func (s *Source) ErrorDetails(message string, offset int, ch byte) string {
	lc := s.Location(offset)
	lineStart := min(max(offset, 0), s.data.Len()) - lc.Column
	lineEnd := s.data.Len()
	if i := mem.IndexByte(s.data.SliceFrom(lineStart), '\n'); i >= 0 {
		lineEnd = lineStart + i
	}

	var buf strings.Builder
	buf.WriteString(message)
	buf.WriteString("\n\n")
	fmt.Fprintf(&buf, "The current character read is %s\n", charLabel(ch))
	fmt.Fprintf(&buf, "line number %d\n", lc.Line)
	fmt.Fprintf(&buf, "index number %d\n", offset)
	buf.WriteString(s.data.Slice(lineStart, lineEnd).StringCopy())
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(".", lc.Column))
	buf.WriteString("^\n")
	return buf.String()
}

// Errorf returns a syntax error for the production op at the given offset,
// with a message formatted from msg and args.
func (s *Source) Errorf(op string, at int, msg string, args ...any) *SyntaxError {
	return s.errorw(op, at, nil, msg, args...)
}

func (s *Source) errorw(op string, at int, err error, msg string, args ...any) *SyntaxError {
	text := fmt.Sprintf(msg, args...)
	ch := s.At(at)
	return &SyntaxError{
		Op:       op,
		Message:  text,
		Char:     ch,
		Offset:   at,
		Location: s.Location(at),
		Excerpt:  s.ErrorDetails(text, at, ch),
		err:      err,
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isNameByte reports whether ch can appear in an identifier.
func isNameByte(ch byte) bool {
	return ch == '_' || ch == '$' || isDigit(ch) || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
