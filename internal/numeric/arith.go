package numeric

import (
	"io"
)

// Arith is the operations contract for an unsigned integer representation T.
// The factoring and primality algorithms are written once against this
// interface and instantiated for each representation. It is implemented by
// Uint64Arith, BigArith and (with the gmp build tag) GMPArith.
//
// Values of T are treated as immutable: operations return fresh values and
// never modify their operands. Implementations keep all results
// non-negative; the fallible operations report *apperrors.ArithmeticError
// when exactness cannot be preserved.
type Arith[T any] interface {
	// FromUint constructs a value from a small unsigned literal.
	FromUint(v uint64) T
	// FromString constructs a value from a base-10 digit string.
	FromString(s string) (T, error)
	// ToUint narrows a value to the native fixed-width representation,
	// reporting an overflow error when it does not fit.
	ToUint(x T) (uint64, error)

	// Cmp returns -1, 0 or +1 as a is less than, equal to, or greater than b.
	Cmp(a, b T) int

	// Add returns a+b, reporting overflow for fixed-width representations.
	Add(a, b T) (T, error)
	// Sub returns a-b, reporting underflow when a < b.
	Sub(a, b T) (T, error)
	// Mul returns a*b, reporting overflow for fixed-width representations.
	Mul(a, b T) (T, error)
	// QuoRem returns the quotient and remainder of a/b, reporting division
	// by zero.
	QuoRem(a, b T) (q, r T, err error)

	// AbsDiff returns |a-b|. It cannot fail.
	AbsDiff(a, b T) T
	// GCD returns the greatest common divisor of a and b; GCD(0, b) = b.
	GCD(a, b T) T

	// ModAdd returns (a+b) mod m for m > 0 and a, b in [0, m).
	ModAdd(a, b, m T) T
	// ModMul returns (a*b) mod m for m > 0 and a, b in [0, m). Fixed-width
	// implementations must compute this without intermediate wraparound.
	ModMul(a, b, m T) T
	// ModExp returns base^exp mod m for m > 0.
	ModExp(base, exp, m T) T

	// RandBelow draws a uniform value in [0, n) from the entropy source r.
	// n must be positive.
	RandBelow(r io.Reader, n T) (T, error)

	// Format renders the value in base 10.
	Format(x T) string
}

// IsUint reports whether x equals the small literal v. It is a convenience
// for the frequent small-constant comparisons in the factoring algorithms.
func IsUint[T any](ar Arith[T], x T, v uint64) bool {
	return ar.Cmp(x, ar.FromUint(v)) == 0
}
