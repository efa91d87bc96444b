//go:build gmp

// GMP-backed realization of the integer contract, conditionally compiled
// with the "gmp" build tag so the default build stays free of cgo and of the
// libgmp system dependency (go build -tags=gmp opts in).

package numeric

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/ncw/gmp"

	apperrors "github.com/primpoly/factorcalc/internal/errors"
)

// GMPArith implements Arith over GMP arbitrary-precision integers. The
// semantics match BigArith exactly; only the arithmetic backend differs.
type GMPArith struct{}

// FromUint constructs a GMP integer from a small unsigned literal.
func (GMPArith) FromUint(v uint64) *gmp.Int { return new(gmp.Int).SetUint64(v) }

// FromString parses a base-10 digit string.
func (GMPArith) FromString(s string) (*gmp.Int, error) {
	v, ok := new(gmp.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, apperrors.NewArithmeticError(apperrors.OpCvt, "%q is not an unsigned decimal integer", s)
	}
	return v, nil
}

// ToUint narrows to uint64, reporting overflow when the value does not fit.
func (GMPArith) ToUint(x *gmp.Int) (uint64, error) {
	if x.BitLen() > 64 {
		return 0, apperrors.NewArithmeticError(apperrors.OpCvt, "%s does not fit in uint64", x.String())
	}
	return x.Uint64(), nil
}

// Cmp compares two values.
func (GMPArith) Cmp(a, b *gmp.Int) int { return a.Cmp(b) }

// Add returns a+b.
func (GMPArith) Add(a, b *gmp.Int) (*gmp.Int, error) {
	return new(gmp.Int).Add(a, b), nil
}

// Sub returns a-b, reporting underflow when a < b.
func (GMPArith) Sub(a, b *gmp.Int) (*gmp.Int, error) {
	if a.Cmp(b) < 0 {
		return nil, apperrors.NewArithmeticError(apperrors.OpSub, "underflow: %s - %s", a.String(), b.String())
	}
	return new(gmp.Int).Sub(a, b), nil
}

// Mul returns a*b.
func (GMPArith) Mul(a, b *gmp.Int) (*gmp.Int, error) {
	return new(gmp.Int).Mul(a, b), nil
}

// QuoRem returns the quotient and remainder of a/b.
func (GMPArith) QuoRem(a, b *gmp.Int) (*gmp.Int, *gmp.Int, error) {
	if b.Sign() == 0 {
		return nil, nil, apperrors.NewArithmeticError(apperrors.OpDiv, "division of %s by zero", a.String())
	}
	q, r := new(gmp.Int).QuoRem(a, b, new(gmp.Int))
	return q, r, nil
}

// AbsDiff returns |a-b|.
func (GMPArith) AbsDiff(a, b *gmp.Int) *gmp.Int {
	d := new(gmp.Int).Sub(a, b)
	return d.Abs(d)
}

// GCD returns the greatest common divisor; GCD(0, b) = b.
func (GMPArith) GCD(a, b *gmp.Int) *gmp.Int {
	if a.Sign() == 0 {
		return new(gmp.Int).Set(b)
	}
	if b.Sign() == 0 {
		return new(gmp.Int).Set(a)
	}
	return new(gmp.Int).GCD(nil, nil, a, b)
}

// ModAdd returns (a+b) mod m.
func (GMPArith) ModAdd(a, b, m *gmp.Int) *gmp.Int {
	s := new(gmp.Int).Add(a, b)
	return s.Mod(s, m)
}

// ModMul returns (a*b) mod m.
func (GMPArith) ModMul(a, b, m *gmp.Int) *gmp.Int {
	p := new(gmp.Int).Mul(a, b)
	return p.Mod(p, m)
}

// ModExp returns base^exp mod m.
func (GMPArith) ModExp(base, exp, m *gmp.Int) *gmp.Int {
	return new(gmp.Int).Exp(base, exp, m)
}

// RandBelow draws a uniform value in [0, n), sampling through math/big and
// converting via the byte representation.
func (GMPArith) RandBelow(r io.Reader, n *gmp.Int) (*gmp.Int, error) {
	if n.Sign() <= 0 {
		return nil, apperrors.NewArithmeticError(apperrors.OpDiv, "random bound must be positive")
	}
	bound := new(big.Int).SetBytes(n.Bytes())
	v, err := rand.Int(r, bound)
	if err != nil {
		return nil, apperrors.WrapError(err, "reading entropy")
	}
	return new(gmp.Int).SetBytes(v.Bytes()), nil
}

// Format renders the value in base 10.
func (GMPArith) Format(x *gmp.Int) string { return x.String() }
