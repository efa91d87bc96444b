// Package numeric defines the integer contract the factoring engine is
// generic over, together with its two standard realizations: a fixed-width
// native integer (uint64) and an arbitrary-precision integer (math/big).
// A GMP-backed realization is available behind the "gmp" build tag.
//
// All operations are exact: fixed-width results that would wrap report an
// arithmetic domain error instead of silently truncating, as do subtraction
// below zero, division by zero, and narrowing conversions that overflow.
package numeric
