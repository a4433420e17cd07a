// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package node

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/creachadair/jindex"
)

// A String is a string value. Its token spans the text between the quotation
// marks, so Original returns the undecoded contents without quotes.
type String struct{ base }

// Value returns the decoded contents of s.
func (s *String) Value() (string, error) {
	if !s.tok.Escaped {
		return s.Original(), nil
	}
	return s.src.Decoded(s.tok.Start, s.tok.End)
}

// Decode implements the Scalar interface.
func (s *String) Decode() (any, error) { return s.Value() }

// Equal reports whether n is a string with the same decoded contents as s.
func (s *String) Equal(n Node) bool {
	t, ok := unwrap(n).(*String)
	if !ok {
		return false
	}
	sv, err := s.Value()
	if err != nil {
		return false
	}
	tv, err := t.Value()
	return err == nil && sv == tv
}

// Hash returns a hash of the decoded contents of s.
func (s *String) Hash() uint64 {
	v, err := s.Value()
	if err != nil {
		v = s.Original()
	}
	return hashText(byte(jindex.String), v)
}

// A Number is a numeric value. Its kind is jindex.Int if the source text has
// no fraction or exponent, otherwise jindex.Float.
type Number struct{ base }

// IsInt reports whether z was written as an integer.
func (z *Number) IsInt() bool { return z.tok.Kind == jindex.Int }

// Int returns the value of z as an int. It reports an error if z was not
// written as an integer or does not fit.
func (z *Number) Int() (int, error) { return z.src.Int(z.tok.Start, z.tok.End) }

// Int64 returns the value of z as an int64. It reports an error if z was not
// written as an integer or does not fit.
func (z *Number) Int64() (int64, error) { return z.src.Int64(z.tok.Start, z.tok.End) }

// Float64 returns the value of z as a float64.
func (z *Number) Float64() (float64, error) { return z.src.Float64(z.tok.Start, z.tok.End) }

// Float32 returns the value of z as a float32.
func (z *Number) Float32() (float32, error) { return z.src.Float32(z.tok.Start, z.tok.End) }

// BigInt returns the value of z as an arbitrary-precision integer. A number
// written with a fraction or exponent is accepted if its value is integral.
func (z *Number) BigInt() (*big.Int, error) {
	if z.IsInt() {
		return z.src.BigInt(z.tok.Start, z.tok.End)
	}
	r, err := z.BigRat()
	if err != nil {
		return nil, err
	} else if !r.IsInt() {
		return nil, errors.New("number " + strconv.Quote(z.Original()) + " is not an integer")
	}
	return new(big.Int).Set(r.Num()), nil
}

// BigRat returns the exact value of z as a rational number.
func (z *Number) BigRat() (*big.Rat, error) { return z.src.BigRat(z.tok.Start, z.tok.End) }

// Decode implements the Scalar interface. An integer is decoded as an int64,
// or a *big.Int if it is out of range for int64. Other numbers are decoded as
// float64.
func (z *Number) Decode() (any, error) {
	if !z.IsInt() {
		return z.Float64()
	}
	v, err := z.Int64()
	if errors.Is(err, strconv.ErrRange) {
		return z.BigInt()
	} else if err != nil {
		return nil, err
	}
	return v, nil
}

// Equal reports whether n is a number with the same text as z.
func (z *Number) Equal(n Node) bool {
	w, ok := unwrap(n).(*Number)
	return ok && w.tok.Kind == z.tok.Kind && w.Text().Equal(z.Text())
}

// Hash returns a hash of the text of z.
func (z *Number) Hash() uint64 { return hashText(byte(z.tok.Kind), z.Original()) }

// A Bool is a Boolean constant, true or false.
type Bool struct{ base }

// Bool returns the value of b.
func (b *Bool) Bool() bool { return b.src.At(b.tok.Start) == 't' }

// Decode implements the Scalar interface.
func (b *Bool) Decode() (any, error) { return b.Bool(), nil }

// Equal reports whether n is a Boolean with the same value as b.
func (b *Bool) Equal(n Node) bool {
	c, ok := unwrap(n).(*Bool)
	return ok && c.Bool() == b.Bool()
}

// Hash returns a hash of the value of b.
func (b *Bool) Hash() uint64 { return hashText(byte(jindex.Bool), strconv.FormatBool(b.Bool())) }

// Null represents the null constant.
type Null struct{ base }

// Decode implements the Scalar interface. It always returns nil.
func (Null) Decode() (any, error) { return nil, nil }

// Equal reports whether n is also null.
func (Null) Equal(n Node) bool {
	_, ok := unwrap(n).(*Null)
	return ok
}

// Hash returns a constant.
func (Null) Hash() uint64 { return hashText(byte(jindex.Null), "null") }
