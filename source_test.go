// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jindex_test

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"testing"

	"github.com/creachadair/jindex"
	"github.com/google/go-cmp/cmp"
)

func TestSourceCursor(t *testing.T) {
	src := jindex.NewSourceString("a \n b")
	if src.Index() != -1 {
		t.Errorf("Initial index: got %d, want -1", src.Index())
	}
	if ch := src.Next(); ch != 'a' {
		t.Errorf("Next: got %q, want 'a'", ch)
	}
	if ch := src.NextSkipSpace(); ch != 'b' || src.Index() != 4 {
		t.Errorf("NextSkipSpace: got %q at %d, want 'b' at 4", ch, src.Index())
	}
	if ch := src.Next(); ch != jindex.ETX || src.Index() != src.Len() {
		t.Errorf("Next at end: got %q at %d, want ETX at %d", ch, src.Index(), src.Len())
	}
	if ch := src.Next(); ch != jindex.ETX {
		t.Errorf("Next past end: got %q, want ETX", ch)
	}
	if ch := src.CurrentSafe(); ch != jindex.ETX {
		t.Errorf("CurrentSafe at end: got %q, want ETX", ch)
	}
	src.Reset()
	if ch := src.SkipSpace(); ch != 'a' || src.Index() != 0 {
		t.Errorf("SkipSpace after Reset: got %q at %d, want 'a' at 0", ch, src.Index())
	}
	if got := src.At(-1); got != jindex.ETX {
		t.Errorf("At(-1): got %q, want ETX", got)
	}
}

func TestReadSource(t *testing.T) {
	src, err := jindex.ReadSource(strings.NewReader(`{"a": [1]}`))
	if err != nil {
		t.Fatalf("ReadSource failed: %v", err)
	}
	toks, err := jindex.NewScanner(strictConfig).Scan(src)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if toks.Len() != 6 {
		t.Errorf("Scan: got %d tokens, want 6", toks.Len())
	}
}

func TestFindEnd(t *testing.T) {
	t.Run("Number", func(t *testing.T) {
		tests := []struct {
			input   string
			strict  bool
			end     int
			isFloat bool
			ok      bool
		}{
			{"0", true, 1, false, true},
			{"-12,", true, 3, false, true},
			{"1.5]", true, 3, true, true},
			{"2E+10 ", true, 5, true, true},
			{"+1", true, 0, false, false},
			{"+1", false, 2, false, true},
			{"01", true, 0, false, false},
			{"01", false, 2, false, true},
			{"1.", false, 0, false, false},
			{".5", false, 0, false, false},
			{"1e", false, 0, false, false},
			{"12x", false, 0, false, false},
			{"1-2", false, 0, false, false},
		}
		for _, tc := range tests {
			src := jindex.NewSourceString(tc.input)
			src.Next()
			find := src.FindEndOfNumberFast
			if tc.strict {
				find = src.FindEndOfNumber
			}
			end, isFloat, err := find()
			if ok := err == nil; ok != tc.ok {
				t.Errorf("Number %q (strict=%v): got err=%v, want ok=%v", tc.input, tc.strict, err, tc.ok)
				continue
			}
			if tc.ok && (end != tc.end || isFloat != tc.isFloat || src.Index() != end) {
				t.Errorf("Number %q: got end=%d float=%v index=%d, want end=%d float=%v",
					tc.input, end, isFloat, src.Index(), tc.end, tc.isFloat)
			}
		}
	})

	t.Run("String", func(t *testing.T) {
		tests := []struct {
			input   string
			end     int
			escaped bool
		}{
			{`""`, 1, false},
			{`"abc",`, 4, false},
			{`"a\"b"`, 5, true},
			{`"a\\"`, 4, true},
			{`"a\\\"" `, 6, true},
		}
		for _, tc := range tests {
			for _, strict := range []bool{false, true} {
				src := jindex.NewSourceString(tc.input)
				src.Next()
				find := src.FindEndOfEncodedStringFast
				if strict {
					find = src.FindEndOfEncodedString
				}
				end, esc, err := find()
				if err != nil {
					t.Errorf("String %#q (strict=%v): unexpected error: %v", tc.input, strict, err)
					continue
				}
				if end != tc.end || esc != tc.escaped || src.Index() != end+1 {
					t.Errorf("String %#q (strict=%v): got end=%d esc=%v index=%d, want end=%d esc=%v",
						tc.input, strict, end, esc, src.Index(), tc.end, tc.escaped)
				}
			}
		}

		// Unencoded scanning stops at the first quotation mark.
		src := jindex.NewSourceString(`"a\"b"`)
		src.Next()
		if end, err := src.FindEndString(); err != nil || end != 3 {
			t.Errorf("FindEndString: got %d, %v; want 3, nil", end, err)
		}

		for _, bad := range []string{`"abc`, `"a\"`, `"\q"`, `"\u12x4"`, "\"\x01\""} {
			src := jindex.NewSourceString(bad)
			src.Next()
			if _, _, err := src.FindEndOfEncodedString(); err == nil {
				t.Errorf("String %#q: got nil error, want error", bad)
			}
		}
	})

	t.Run("Literal", func(t *testing.T) {
		src := jindex.NewSourceString("true false null")
		src.Next()
		for _, find := range []func() (int, error){src.FindTrueEnd, src.FindFalseEnd, src.FindNullEnd} {
			end, err := find()
			if err != nil {
				t.Fatalf("Find literal at %d: %v", src.Index(), err)
			}
			if end != src.Index() {
				t.Errorf("Literal end %d != cursor %d", end, src.Index())
			}
			src.SkipSpace()
		}

		for _, bad := range []string{"tru", "trux", "nulls", "fals"} {
			src := jindex.NewSourceString(bad)
			src.Next()
			var err error
			switch bad[0] {
			case 't':
				_, err = src.FindTrueEnd()
			case 'f':
				_, err = src.FindFalseEnd()
			default:
				_, err = src.FindNullEnd()
			}
			var serr *jindex.SyntaxError
			if !errors.As(err, &serr) || serr.Op != "Parsing Literal" {
				t.Errorf("Literal %q: got %v, want Parsing Literal error", bad, err)
			}
		}
	})
}

func TestLocation(t *testing.T) {
	src := jindex.NewSourceString("[\n  1,\n  2x\n]")
	tests := []struct {
		offset int
		want   jindex.LineCol
	}{
		{0, jindex.LineCol{Line: 1, Column: 0}},
		{1, jindex.LineCol{Line: 1, Column: 1}},
		{2, jindex.LineCol{Line: 2, Column: 0}},
		{4, jindex.LineCol{Line: 2, Column: 2}},
		{10, jindex.LineCol{Line: 3, Column: 3}},
		{100, jindex.LineCol{Line: 4, Column: 1}},
	}
	for _, tc := range tests {
		if got := src.Location(tc.offset); got != tc.want {
			t.Errorf("Location(%d): got %v, want %v", tc.offset, got, tc.want)
		}
	}

	_, err := jindex.NewScanner(strictConfig).Scan(src)
	var serr *jindex.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Scan: got %v, want *SyntaxError", err)
	}
	if got := (jindex.LineCol{Line: 3, Column: 3}); serr.Location != got {
		t.Errorf("Error location: got %v, want %v", serr.Location, got)
	}
	if !strings.HasSuffix(serr.Excerpt, "index number 10\n  2x\n...^\n") {
		t.Errorf("Excerpt has wrong tail:\n%s", serr.Excerpt)
	}
	if !strings.HasPrefix(serr.Details(), "Parsing JSON Number: ") {
		t.Errorf("Details: got %q", serr.Details())
	}

	loc := jindex.Location{
		Span:  jindex.Span{Pos: 2, End: 6},
		First: jindex.LineCol{Line: 2, Column: 0},
		Last:  jindex.LineCol{Line: 2, Column: 4},
	}
	if got := loc.String(); got != "2:0-4" {
		t.Errorf("Location: got %q, want 2:0-4", got)
	}
	loc.Last.Line = 3
	if got := loc.String(); got != "2:0-3:4" {
		t.Errorf("Location: got %q, want 2:0-3:4", got)
	}
}

func TestNumbers(t *testing.T) {
	t.Run("Int64", func(t *testing.T) {
		tests := []struct {
			input string
			want  int64
			err   error
		}{
			{"0", 0, nil},
			{"-0", 0, nil},
			{"+17", 17, nil},
			{"9223372036854775807", math.MaxInt64, nil},
			{"-9223372036854775808", math.MinInt64, nil},
			{"9223372036854775808", 0, strconv.ErrRange},
			{"-9223372036854775809", 0, strconv.ErrRange},
			{"123456789012345678901234567890", 0, strconv.ErrRange},
		}
		for _, tc := range tests {
			src := jindex.NewSourceString(tc.input)
			got, err := src.Int64(0, src.Len())
			if !errors.Is(err, tc.err) {
				t.Errorf("Int64 %q: got error %v, want %v", tc.input, err, tc.err)
			} else if got != tc.want {
				t.Errorf("Int64 %q: got %d, want %d", tc.input, got, tc.want)
			}
		}
		for _, bad := range []string{"", "-", "1.5", "x"} {
			src := jindex.NewSourceString(bad)
			if _, err := src.Int64(0, src.Len()); err == nil {
				t.Errorf("Int64 %q: got nil error, want error", bad)
			}
		}
	})

	t.Run("Float64", func(t *testing.T) {
		inputs := []string{
			"0", "-0", "1", "0.1", "3.14159", "-2.5e-3", "1e22", "1e23", "123456789012345",
			"1234567890123456789", "9007199254740993", "0.000001", "1.7976931348623157e308",
			"4.9e-324", "2.2250738585072014e-308", "6.02214076e23", "1E-22", "12345.6789e-5",
		}
		for _, input := range inputs {
			want, err := strconv.ParseFloat(input, 64)
			if err != nil {
				t.Fatalf("ParseFloat %q: %v", input, err)
			}
			src := jindex.NewSourceString(input)
			got, err := src.Float64(0, src.Len())
			if err != nil {
				t.Errorf("Float64 %q: unexpected error: %v", input, err)
			} else if math.Float64bits(got) != math.Float64bits(want) {
				t.Errorf("Float64 %q: got %v, want %v", input, got, want)
			}
		}

		src := jindex.NewSourceString("1e400")
		if _, err := src.Float64(0, src.Len()); !errors.Is(err, strconv.ErrRange) {
			t.Errorf("Float64 1e400: got %v, want %v", err, strconv.ErrRange)
		}

		// Only the JSON number grammar is accepted, not Go float syntax.
		for _, bad := range []string{
			"", "-", "+", "1e", "1e+", "1E-", "1.", "-1.e5", ".5", "1.5.2", "1e5e5",
			"inf", "NaN", "0x1p3", "1_000", " 1", "1 ",
		} {
			src := jindex.NewSourceString(bad)
			if got, err := src.Float64(0, src.Len()); !errors.Is(err, strconv.ErrSyntax) {
				t.Errorf("Float64 %q: got %v, %v; want %v", bad, got, err, strconv.ErrSyntax)
			}
			if got, err := src.Float32(0, src.Len()); !errors.Is(err, strconv.ErrSyntax) {
				t.Errorf("Float32 %q: got %v, %v; want %v", bad, got, err, strconv.ErrSyntax)
			}
			if got, err := src.BigRat(0, src.Len()); err == nil {
				t.Errorf("BigRat %q: got %v, want error", bad, got)
			}
		}

		// A span that ends inside a longer number covers only its own digits.
		src = jindex.NewSourceString("1234")
		if got, err := src.Float64(0, 2); err != nil || got != 12 {
			t.Errorf("Float64 [0, 2): got %v, %v; want 12, nil", got, err)
		}
	})

	t.Run("Float32", func(t *testing.T) {
		src := jindex.NewSourceString("0.1")
		if got, err := src.Float32(0, src.Len()); err != nil || got != float32(0.1) {
			t.Errorf("Float32: got %v, %v; want 0.1, nil", got, err)
		}
	})

	t.Run("Big", func(t *testing.T) {
		src := jindex.NewSourceString("123456789012345678901234567890 -0.125 1e3")
		bi, err := src.BigInt(0, 30)
		if err != nil {
			t.Fatalf("BigInt: %v", err)
		}
		want, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
		if bi.Cmp(want) != 0 {
			t.Errorf("BigInt: got %v, want %v", bi, want)
		}
		r, err := src.BigRat(31, 37)
		if err != nil {
			t.Fatalf("BigRat: %v", err)
		}
		if r.Cmp(big.NewRat(-1, 8)) != 0 {
			t.Errorf("BigRat: got %v, want -1/8", r)
		}
		if r, err := src.BigRat(38, 41); err != nil || r.Cmp(big.NewRat(1000, 1)) != 0 {
			t.Errorf("BigRat 1e3: got %v, %v; want 1000", r, err)
		}
		if _, err := src.BigInt(31, 37); err == nil {
			t.Error("BigInt of a fraction: got nil error, want error")
		}
	})
}

func TestQuoteUnquote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"plain", `"plain"`},
		{"a\"b\\c", `"a\"b\\c"`},
		{"tab\there\n", `"tab\there\n"`},
		{"\x00\x1f", `"\u0000\u001f"`},
		{"héllo, 世界", `"héllo, 世界"`},
		{"line\u2028sep", `"line\u2028sep"`},
		{"bad\xffbyte", `"bad\ufffdbyte"`},
	}
	for _, tc := range tests {
		got := jindex.Quote(tc.input)
		if got != tc.want {
			t.Errorf("Quote %q: got %#q, want %#q", tc.input, got, tc.want)
		}
		if tc.input == "bad\xffbyte" {
			continue // invalid UTF-8 does not survive quoting
		}
		dec, err := jindex.Unquote(got)
		if err != nil {
			t.Errorf("Unquote %#q: unexpected error: %v", got, err)
		} else if dec != tc.input {
			t.Errorf("Unquote %#q: got %q, want %q", got, dec, tc.input)
		}
	}

	decodes := []struct {
		input, want string
	}{
		{`"\ud83d\ude00"`, "\U0001F600"},
		{`"é\/\'"`, "é/'"},
		{`"\ud83d"`, "\ufffd"},
		{`"\q"`, "\ufffd"},
		{`"\uzzzz"`, "\ufffd"},
	}
	for _, tc := range decodes {
		got, err := jindex.Unquote(tc.input)
		if err != nil {
			t.Errorf("Unquote %#q: unexpected error: %v", tc.input, err)
		} else if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Unquote %#q (-want, +got):\n%s", tc.input, diff)
		}
	}

	for _, bad := range []string{``, `"`, `abc`, `"abc\"`, `"\u12"`} {
		if got, err := jindex.Unquote(bad); err == nil {
			t.Errorf("Unquote %#q: got %q, want error", bad, got)
		}
	}
}
