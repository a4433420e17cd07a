// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes the text of a JSON string. The input must have the
// enclosing quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. In
// addition to the JSON escapes, \' is accepted for a single quotation mark.
// Unknown escapes and invalid Unicode escapes are replaced by the Unicode
// replacement rune, and a UTF-16 surrogate pair written as two \u escapes is
// combined into a single rune. Unquote reports an error for an incomplete
// escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	return AppendUnquote(make([]byte, 0, src.Len()), src)
}

// AppendUnquote appends the decoding of src to dst, as Unquote.
func AppendUnquote(dst []byte, src mem.RO) ([]byte, error) {
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dst, src), nil
		}
		dst = mem.Append(dst, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}

		c := src.At(0)
		src = src.SliceFrom(1)
		switch c {
		case '"', '\\', '/', '\'':
			dst = append(dst, c)
		case 'b':
			dst = append(dst, '\b')
		case 'f':
			dst = append(dst, '\f')
		case 'n':
			dst = append(dst, '\n')
		case 'r':
			dst = append(dst, '\r')
		case 't':
			dst = append(dst, '\t')
		case 'u':
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			r, ok := parseHex4(src)
			src = src.SliceFrom(4)
			if !ok {
				r = utf8.RuneError
			} else if utf16.IsSurrogate(r) {
				hi := r
				r = utf8.RuneError
				if src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
					if lo, ok := parseHex4(src.SliceFrom(2)); ok {
						if p := utf16.DecodeRune(hi, lo); p != utf8.RuneError {
							r = p
							src = src.SliceFrom(6)
						}
					}
				}
			}
			dst = utf8.AppendRune(dst, r)
		default:
			dst = utf8.AppendRune(dst, utf8.RuneError)
		}
	}
}

// parseHex4 decodes the four hexadecimal digits at the front of data.
func parseHex4(data mem.RO) (rune, bool) {
	var v rune
	for i := 0; i < 4; i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
