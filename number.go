// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jindex

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"go4.org/mem"
)

// Exact powers of ten representable as float64.
var pow10 = [...]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11,
	1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20, 1e21, 1e22,
}

// Int64 parses the integer in the range [start, end) of the input. The text
// must be an optional sign followed by decimal digits.
func (s *Source) Int64(start, end int) (int64, error) {
	i, neg := start, false
	switch s.At(i) {
	case '-':
		neg = true
		i++
	case '+':
		i++
	}
	if i >= end {
		return 0, s.numError("integer", start, end, nil)
	}

	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}
	var v uint64
	for ; i < end; i++ {
		c := s.data.At(i)
		if !isDigit(c) {
			return 0, s.numError("integer", start, end, nil)
		}
		d := uint64(c - '0')
		if v > (limit-d)/10 {
			return 0, s.numError("integer", start, end, strconv.ErrRange)
		}
		v = v*10 + d
	}
	if neg {
		return -int64(v), nil
	}
	return int64(v), nil
}

// Int parses the integer in the range [start, end) of the input, and
// reports an error if it does not fit in an int.
func (s *Source) Int(start, end int) (int, error) {
	v, err := s.Int64(start, end)
	if err != nil {
		return 0, err
	} else if v < math.MinInt || v > math.MaxInt {
		return 0, s.numError("integer", start, end, strconv.ErrRange)
	}
	return int(v), nil
}

// Float64 parses the number in the range [start, end) of the input. The text
// must be a JSON number, optionally with a leading plus sign or redundant
// leading zeros.
func (s *Source) Float64(start, end int) (float64, error) {
	if !s.isNumber(start, end) {
		return 0, s.numError("number", start, end, strconv.ErrSyntax)
	}
	if v, ok := s.fastFloat(start, end); ok {
		return v, nil
	}
	v, err := mem.ParseFloat(s.data.Slice(start, end), 64)
	if err != nil {
		return 0, s.numError("number", start, end, unwrapNumError(err))
	}
	return v, nil
}

// Float32 parses the number in the range [start, end) of the input, as
// Float64.
func (s *Source) Float32(start, end int) (float32, error) {
	if !s.isNumber(start, end) {
		return 0, s.numError("number", start, end, strconv.ErrSyntax)
	}
	v, err := mem.ParseFloat(s.data.Slice(start, end), 32)
	if err != nil {
		return 0, s.numError("number", start, end, unwrapNumError(err))
	}
	return float32(v), nil
}

// BigInt parses the integer in the range [start, end) of the input with
// arbitrary precision.
func (s *Source) BigInt(start, end int) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s.String(start, end), 10)
	if !ok {
		return nil, s.numError("integer", start, end, nil)
	}
	return v, nil
}

// BigRat parses the number in the range [start, end) of the input as an
// exact rational value.
func (s *Source) BigRat(start, end int) (*big.Rat, error) {
	if !s.isNumber(start, end) {
		return nil, s.numError("number", start, end, strconv.ErrSyntax)
	}
	v, ok := new(big.Rat).SetString(s.String(start, end))
	if !ok {
		return nil, s.numError("number", start, end, nil)
	}
	return v, nil
}

// isNumber reports whether [start, end) is exactly a number as accepted by
// FindEndOfNumberFast: every part that is present has at least one digit.
func (s *Source) isNumber(start, end int) bool {
	if start < 0 || end > s.data.Len() || start >= end {
		return false
	}
	i := start
	if c := s.data.At(i); c == '-' || c == '+' {
		i++
	}
	digits := func() bool {
		j := i
		for i < end && isDigit(s.data.At(i)) {
			i++
		}
		return i > j
	}
	if !digits() {
		return false
	}
	if i < end && s.data.At(i) == '.' {
		i++
		if !digits() {
			return false
		}
	}
	if i < end && (s.data.At(i) == 'e' || s.data.At(i) == 'E') {
		i++
		if i < end && (s.data.At(i) == '+' || s.data.At(i) == '-') {
			i++
		}
		if !digits() {
			return false
		}
	}
	return i == end
}

// fastFloat converts the decimal number in [start, end) directly when its
// mantissa and exponent are small enough that a single multiplication or
// division by an exact power of ten gives the correctly rounded result.
// Otherwise it reports false.
func (s *Source) fastFloat(start, end int) (float64, bool) {
	const maxMantissa = 1 << 53
	i, neg := start, false
	switch s.At(i) {
	case '-':
		neg = true
		i++
	case '+':
		i++
	}

	var m uint64
	var exp, nd int
	for ; i < end && isDigit(s.data.At(i)); i++ {
		m = m*10 + uint64(s.data.At(i)-'0')
		if nd++; nd > 15 {
			return 0, false
		}
	}
	if i < end && s.data.At(i) == '.' {
		for i++; i < end && isDigit(s.data.At(i)); i++ {
			m = m*10 + uint64(s.data.At(i)-'0')
			exp--
			if nd++; nd > 15 {
				return 0, false
			}
		}
	}
	if nd == 0 {
		return 0, false
	}
	if i < end && (s.data.At(i) == 'e' || s.data.At(i) == 'E') {
		i++
		eneg := false
		switch s.At(i) {
		case '-':
			eneg = true
			i++
		case '+':
			i++
		}
		var e int
		for ; i < end && isDigit(s.data.At(i)); i++ {
			if e = e*10 + int(s.data.At(i)-'0'); e > 1000 {
				return 0, false
			}
		}
		if eneg {
			e = -e
		}
		exp += e
	}
	if i != end || m > maxMantissa {
		return 0, false
	}

	f := float64(m)
	switch {
	case m == 0:
	case exp == 0:
	case exp > 0 && exp < len(pow10):
		f *= pow10[exp]
	case exp < 0 && -exp < len(pow10):
		f /= pow10[-exp]
	default:
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

func (s *Source) numError(what string, start, end int, err error) error {
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", what, s.String(start, end), err)
	}
	return fmt.Errorf("invalid %s %q", what, s.String(start, end))
}

func unwrapNumError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}
