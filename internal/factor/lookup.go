package factor

import (
	"fmt"

	apperrors "github.com/primpoly/factorcalc/internal/errors"
	"github.com/primpoly/factorcalc/internal/logging"
	"github.com/primpoly/factorcalc/internal/table"
)

// lookupTable factors p^n - 1 from a precomputed table. It reports found =
// false, with no error, when p is outside the covered set or the table has
// no complete entry for n; the caller falls back to another algorithm.
//
// A found entry is never trusted as-is. Every recorded factor must pass the
// primality check and the product of the recorded prime powers must equal
// p^n - 1 exactly; a violation means the table data is corrupt, which is a
// hard *apperrors.CorruptTableError rather than a not-found.
func (e *engine[T]) lookupTable(loc table.Locator, p, n uint) (bool, error) {
	if loc == nil {
		return false, nil
	}

	lines, covered, err := loc.LogicalLines(p)
	if err != nil {
		return false, err
	}
	if !covered {
		return false, nil
	}

	entry, found, err := table.FindEntry(lines, n)
	if err != nil {
		return false, &apperrors.CorruptTableError{P: p, N: n, Reason: err.Error()}
	}
	if !found {
		e.log.Debug("no table entry",
			logging.Uint64("p", uint64(p)),
			logging.Uint64("n", uint64(n)))
		return false, nil
	}

	ar := e.ar
	one := ar.FromUint(1)

	factors := make([]PrimeFactor[T], 0, len(entry.Terms))
	product := one
	for _, term := range entry.Terms {
		prime, err := ar.FromString(term.Prime)
		if err != nil {
			return false, &apperrors.CorruptTableError{
				P: p, N: n,
				Reason: fmt.Sprintf("unreadable factor %q: %v", term.Prime, err),
			}
		}

		isPrime, err := e.isPrime(prime)
		if err != nil {
			return false, err
		}
		if !isPrime {
			return false, &apperrors.CorruptTableError{
				P: p, N: n,
				Reason: fmt.Sprintf("recorded factor %s fails the primality test", term.Prime),
			}
		}

		for j := 0; j < term.Exponent; j++ {
			if product, err = ar.Mul(product, prime); err != nil {
				return false, err
			}
		}
		factors = append(factors, PrimeFactor[T]{Prime: prime, Multiplicity: term.Exponent})
	}

	// Recompute p^n - 1 and compare against the product of the recorded
	// prime powers.
	want := one
	base := ar.FromUint(uint64(p))
	for j := uint(0); j < n; j++ {
		if want, err = ar.Mul(want, base); err != nil {
			return false, err
		}
	}
	if want, err = ar.Sub(want, one); err != nil {
		return false, err
	}
	if ar.Cmp(product, want) != 0 {
		return false, &apperrors.CorruptTableError{
			P: p, N: n,
			Reason: fmt.Sprintf("product of recorded factors is %s, want %s", ar.Format(product), ar.Format(want)),
		}
	}

	e.factors = append(e.factors, factors...)
	e.n = one
	return true, nil
}
