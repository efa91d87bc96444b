// Package table locates and parses the precomputed factor tables for
// p^n - 1. One text file per covered prime base p holds factorization
// entries of the form
//
//	<n> <#factors> <factor-spec>
//
// where factor-spec is a dot-separated list of prime or prime^exponent
// tokens, possibly continued across physical lines by a trailing backslash
// (a number split mid-digits) or a trailing dot (the factor list continues).
// Entries containing "+" record partial factorizations and are skipped.
//
// The package only produces textual entries; primality and product
// validation of the recorded factors belongs to the factor package.
package table
