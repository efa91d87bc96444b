package factor

import (
	"strconv"
	"strings"

	apperrors "github.com/primpoly/factorcalc/internal/errors"
	"github.com/primpoly/factorcalc/internal/numeric"
)

// Strategy selects the factoring algorithm used by Factorize. Automatic is
// the production path; the named algorithms exist so each can be exercised
// in isolation.
type Strategy int

const (
	// Automatic tries table lookup, then Pollard's rho twice, then trial
	// division. It cannot fail to factor.
	Automatic Strategy = iota
	// FactorTable consults only the precomputed p^n - 1 tables.
	FactorTable
	// PollardRho runs a single rho attempt with the default constant.
	PollardRho
	// TrialDivision runs the always-terminating wheel factorer.
	TrialDivision
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case Automatic:
		return "automatic"
	case FactorTable:
		return "factor-table"
	case PollardRho:
		return "pollard-rho"
	case TrialDivision:
		return "trial-division"
	default:
		return "unknown"
	}
}

// Stats counts the dominating operations of a factorization run. The
// counters only ever increase; they exist for performance introspection and
// carry no algorithmic meaning.
type Stats struct {
	// TrialDivisions counts quotient/remainder computations against trial
	// divisors.
	TrialDivisions uint64
	// GCDCalls counts gcd evaluations in Pollard's rho.
	GCDCalls uint64
	// ModularSquarings counts steps of the rho recurrence x <- x^2 + c.
	ModularSquarings uint64
	// PrimalityTests counts invocations of the almost-surely-prime check.
	PrimalityTests uint64
}

// PrimeFactor is one distinct prime raised to a power.
type PrimeFactor[T any] struct {
	Prime        T
	Multiplicity int
}

// Factorization is the immutable result of one Factorize call: the input,
// the prime factors sorted ascending with multiplicities merged, and the
// operation statistics of the run. Construct it only through Factorize.
type Factorization[T any] struct {
	ar        numeric.Arith[T]
	n         T
	remainder T
	factors   []PrimeFactor[T]
	distinct  []T
	stats     Stats
	strategy  Strategy
}

// N returns the input that was factored.
func (f *Factorization[T]) N() T { return f.n }

// Remainder returns the unfactored residue, which is 1 on full success.
func (f *Factorization[T]) Remainder() T { return f.remainder }

// Strategy returns the strategy the factorization was produced with.
func (f *Factorization[T]) Strategy() Strategy { return f.strategy }

// Stats returns the operation counters accumulated during the run.
func (f *Factorization[T]) Stats() Stats { return f.stats }

// NumDistinctFactors returns the number of distinct prime factors.
func (f *Factorization[T]) NumDistinctFactors() int { return len(f.factors) }

// Factor returns the i-th (prime, multiplicity) pair in ascending prime
// order.
//
// Parameters:
//   - i: Zero-based factor index.
//
// Returns:
//   - PrimeFactor[T]: The i-th factor.
//   - error: A *apperrors.RangeError when i is out of bounds.
func (f *Factorization[T]) Factor(i int) (PrimeFactor[T], error) {
	if i < 0 || i >= len(f.factors) {
		return PrimeFactor[T]{}, &apperrors.RangeError{Index: i, Len: len(f.factors), What: "prime factor"}
	}
	return f.factors[i], nil
}

// PrimeAt returns the i-th distinct prime, or a *apperrors.RangeError when
// i is out of bounds.
func (f *Factorization[T]) PrimeAt(i int) (T, error) {
	pf, err := f.Factor(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return pf.Prime, nil
}

// MultiplicityAt returns the multiplicity of the i-th distinct prime, or a
// *apperrors.RangeError when i is out of bounds.
func (f *Factorization[T]) MultiplicityAt(i int) (int, error) {
	pf, err := f.Factor(i)
	if err != nil {
		return 0, err
	}
	return pf.Multiplicity, nil
}

// DistinctPrimes returns a copy of the distinct prime factors in ascending
// order.
func (f *Factorization[T]) DistinctPrimes() []T {
	out := make([]T, len(f.distinct))
	copy(out, f.distinct)
	return out
}

// SkipTest reports whether the i-th prime factor divides p - 1. The
// primitivity search uses this to skip the order test for that factor.
// p must be at least 2.
//
// Parameters:
//   - p: The field characteristic, p >= 2.
//   - i: Zero-based factor index.
//
// Returns:
//   - bool: true when factor i divides p - 1.
//   - error: A *apperrors.RangeError when i is out of bounds.
func (f *Factorization[T]) SkipTest(p uint64, i int) (bool, error) {
	if i < 0 || i >= len(f.factors) {
		return false, &apperrors.RangeError{Index: i, Len: len(f.factors), What: "prime factor"}
	}
	if p < 2 {
		return false, nil
	}
	pMinus1 := f.ar.FromUint(p - 1)
	// The factor cannot divide a smaller number.
	if f.ar.Cmp(pMinus1, f.factors[i].Prime) < 0 {
		return false, nil
	}
	_, r, err := f.ar.QuoRem(pMinus1, f.factors[i].Prime)
	if err != nil {
		return false, err
	}
	return numeric.IsUint(f.ar, r, 0), nil
}

// String renders the factorization in the dot notation of the factor
// tables, e.g. "2^2.23.281". An empty factorization renders as "1".
func (f *Factorization[T]) String() string {
	if len(f.factors) == 0 {
		return "1"
	}
	var b strings.Builder
	for i, pf := range f.factors {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(f.ar.Format(pf.Prime))
		if pf.Multiplicity > 1 {
			b.WriteByte('^')
			b.WriteString(strconv.Itoa(pf.Multiplicity))
		}
	}
	return b.String()
}
