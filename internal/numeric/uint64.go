package numeric

import (
	"encoding/binary"
	"io"
	"math/bits"
	"strconv"

	apperrors "github.com/primpoly/factorcalc/internal/errors"
)

// Uint64Arith implements Arith over the native fixed-width unsigned integer.
// All operations are exact: results that would wrap report an error instead.
type Uint64Arith struct{}

// FromUint constructs a uint64 value (the identity).
func (Uint64Arith) FromUint(v uint64) uint64 { return v }

// FromString parses a base-10 digit string.
func (Uint64Arith) FromString(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, apperrors.NewArithmeticError(apperrors.OpCvt, "%q does not fit in uint64", s)
	}
	return v, nil
}

// ToUint is the identity for the native representation.
func (Uint64Arith) ToUint(x uint64) (uint64, error) { return x, nil }

// Cmp compares two values.
func (Uint64Arith) Cmp(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Add returns a+b, reporting overflow.
func (Uint64Arith) Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, apperrors.NewArithmeticError(apperrors.OpAdd, "uint64 overflow: %d + %d", a, b)
	}
	return sum, nil
}

// Sub returns a-b, reporting underflow when a < b.
func (Uint64Arith) Sub(a, b uint64) (uint64, error) {
	if a < b {
		return 0, apperrors.NewArithmeticError(apperrors.OpSub, "uint64 underflow: %d - %d", a, b)
	}
	return a - b, nil
}

// Mul returns a*b, reporting overflow.
func (Uint64Arith) Mul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, apperrors.NewArithmeticError(apperrors.OpMul, "uint64 overflow: %d * %d", a, b)
	}
	return lo, nil
}

// QuoRem returns the quotient and remainder of a/b.
func (Uint64Arith) QuoRem(a, b uint64) (uint64, uint64, error) {
	if b == 0 {
		return 0, 0, apperrors.NewArithmeticError(apperrors.OpDiv, "division of %d by zero", a)
	}
	return a / b, a % b, nil
}

// AbsDiff returns |a-b|.
func (Uint64Arith) AbsDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

// GCD returns the greatest common divisor by Euclid's algorithm.
func (Uint64Arith) GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ModAdd returns (a+b) mod m without intermediate wraparound.
func (Uint64Arith) ModAdd(a, b, m uint64) uint64 {
	a %= m
	b %= m
	// a+b can exceed 64 bits only when both operands are near m; the
	// carry-aware form stays exact for every m.
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 || sum >= m {
		sum -= m
	}
	return sum
}

// ModMul returns (a*b) mod m using a 128-bit intermediate product.
func (Uint64Arith) ModMul(a, b, m uint64) uint64 {
	a %= m
	b %= m
	hi, lo := bits.Mul64(a, b)
	// hi < m is guaranteed because a, b < m, so Div64 cannot panic.
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// ModExp returns base^exp mod m by binary exponentiation.
func (u Uint64Arith) ModExp(base, exp, m uint64) uint64 {
	if m == 1 {
		return 0
	}
	result := uint64(1)
	base %= m
	for exp > 0 {
		if exp&1 == 1 {
			result = u.ModMul(result, base, m)
		}
		base = u.ModMul(base, base, m)
		exp >>= 1
	}
	return result
}

// RandBelow draws a uniform value in [0, n) using unbiased rejection
// sampling over the raw entropy source.
func (Uint64Arith) RandBelow(r io.Reader, n uint64) (uint64, error) {
	if n == 0 {
		return 0, apperrors.NewArithmeticError(apperrors.OpDiv, "random bound must be positive")
	}
	if n&(n-1) == 0 {
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, apperrors.WrapError(err, "reading entropy")
		}
		return binary.BigEndian.Uint64(b[:]) & (n - 1), nil
	}
	// Discard values below the threshold so each residue class mod n is
	// equally likely.
	thresh := -n % n
	for {
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, apperrors.WrapError(err, "reading entropy")
		}
		v := binary.BigEndian.Uint64(b[:])
		if v >= thresh {
			return v % n, nil
		}
	}
}

// Format renders the value in base 10.
func (Uint64Arith) Format(x uint64) string { return strconv.FormatUint(x, 10) }
