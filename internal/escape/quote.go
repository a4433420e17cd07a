// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  0, // sentinel
}

const hexDigit = "0123456789abcdef"

// Quote encodes src for inclusion in a JSON string. The result does not
// include the enclosing quotation marks.
func Quote(src mem.RO) []byte { return AppendQuote(make([]byte, 0, src.Len()), src) }

// AppendQuote appends the encoding of src to dst, as Quote.
func AppendQuote(dst []byte, src mem.RO) []byte {
	for src.Len() != 0 {
		c := src.At(0)
		if c < utf8.RuneSelf {
			switch {
			case c < ' ' && controlEsc[c] != 0:
				dst = append(dst, '\\', controlEsc[c])
			case c < ' ':
				dst = append(dst, '\\', 'u', '0', '0', hexDigit[c>>4], hexDigit[c&15])
			case c == '\\' || c == '"':
				dst = append(dst, '\\', c)
			default:
				dst = append(dst, c)
			}
			src = src.SliceFrom(1)
			continue
		}

		r, n := mem.DecodeRune(src)
		switch r {
		case utf8.RuneError:
			dst = append(dst, `\ufffd`...)
		case '\u2028', '\u2029':
			dst = append(dst, '\\', 'u', '2', '0', '2', hexDigit[r&15])
		default:
			dst = utf8.AppendRune(dst, r)
		}
		src = src.SliceFrom(n)
	}
	return dst
}
