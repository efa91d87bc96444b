package numeric

import (
	"crypto/rand"
	"io"
	"math/big"

	apperrors "github.com/primpoly/factorcalc/internal/errors"
)

// BigArith implements Arith over math/big arbitrary-precision integers.
// Operands are never mutated; every operation allocates its result, which
// keeps the engine's copy semantics identical across representations.
type BigArith struct{}

// FromUint constructs a big integer from a small unsigned literal.
func (BigArith) FromUint(v uint64) *big.Int { return new(big.Int).SetUint64(v) }

// FromString parses a base-10 digit string.
func (BigArith) FromString(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, apperrors.NewArithmeticError(apperrors.OpCvt, "%q is not an unsigned decimal integer", s)
	}
	return v, nil
}

// ToUint narrows to uint64, reporting overflow when the value does not fit.
func (BigArith) ToUint(x *big.Int) (uint64, error) {
	if !x.IsUint64() {
		return 0, apperrors.NewArithmeticError(apperrors.OpCvt, "%s does not fit in uint64", x.String())
	}
	return x.Uint64(), nil
}

// Cmp compares two values.
func (BigArith) Cmp(a, b *big.Int) int { return a.Cmp(b) }

// Add returns a+b. Arbitrary precision cannot overflow.
func (BigArith) Add(a, b *big.Int) (*big.Int, error) {
	return new(big.Int).Add(a, b), nil
}

// Sub returns a-b, reporting underflow when a < b: the contract covers
// non-negative integers only.
func (BigArith) Sub(a, b *big.Int) (*big.Int, error) {
	if a.Cmp(b) < 0 {
		return nil, apperrors.NewArithmeticError(apperrors.OpSub, "underflow: %s - %s", a.String(), b.String())
	}
	return new(big.Int).Sub(a, b), nil
}

// Mul returns a*b.
func (BigArith) Mul(a, b *big.Int) (*big.Int, error) {
	return new(big.Int).Mul(a, b), nil
}

// QuoRem returns the quotient and remainder of a/b.
func (BigArith) QuoRem(a, b *big.Int) (*big.Int, *big.Int, error) {
	if b.Sign() == 0 {
		return nil, nil, apperrors.NewArithmeticError(apperrors.OpDiv, "division of %s by zero", a.String())
	}
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	return q, r, nil
}

// AbsDiff returns |a-b|.
func (BigArith) AbsDiff(a, b *big.Int) *big.Int {
	d := new(big.Int).Sub(a, b)
	return d.Abs(d)
}

// GCD returns the greatest common divisor; GCD(0, b) = b.
func (BigArith) GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, a, b)
}

// ModAdd returns (a+b) mod m.
func (BigArith) ModAdd(a, b, m *big.Int) *big.Int {
	s := new(big.Int).Add(a, b)
	return s.Mod(s, m)
}

// ModMul returns (a*b) mod m.
func (BigArith) ModMul(a, b, m *big.Int) *big.Int {
	p := new(big.Int).Mul(a, b)
	return p.Mod(p, m)
}

// ModExp returns base^exp mod m.
func (BigArith) ModExp(base, exp, m *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, m)
}

// RandBelow draws a uniform value in [0, n) from the entropy source r.
func (BigArith) RandBelow(r io.Reader, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, apperrors.NewArithmeticError(apperrors.OpDiv, "random bound must be positive")
	}
	v, err := rand.Int(r, n)
	if err != nil {
		return nil, apperrors.WrapError(err, "reading entropy")
	}
	return v, nil
}

// Format renders the value in base 10.
func (BigArith) Format(x *big.Int) string { return x.String() }
