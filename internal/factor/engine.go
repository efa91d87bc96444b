package factor

import (
	"errors"

	"github.com/primpoly/factorcalc/internal/logging"
	"github.com/primpoly/factorcalc/internal/numeric"
	"github.com/primpoly/factorcalc/internal/primality"
)

// ErrPollardRhoFailure signals that a Pollard rho attempt made no further
// progress: the gcd degenerated to the whole residual, or produced a
// composite divisor that rho does not factor recursively. The Automatic
// chain consumes it to fall back; the explicit PollardRho strategy surfaces
// it to the caller.
var ErrPollardRhoFailure = errors.New("pollard rho failed to reduce the residual")

// Rho recurrence constants. The retry constant avoids {0, 1, -2}, which
// degenerate the recurrence x <- x^2 + c.
const (
	defaultRhoConstant = 2
	retryRhoConstant   = 5
)

// engine carries the mutable state of one factorization run: the shrinking
// unfactored residual, the factors found so far (possibly unsorted, with
// duplicates and sentinel units), and the operation counters. A failed rho
// attempt leaves its partial progress behind so the next algorithm resumes
// on the reduced residual.
type engine[T any] struct {
	ar      numeric.Arith[T]
	witness primality.WitnessFunc[T]
	log     logging.Logger

	n       T
	factors []PrimeFactor[T]
	stats   Stats
}

func newEngine[T any](ar numeric.Arith[T], witness primality.WitnessFunc[T], log logging.Logger, n T) *engine[T] {
	return &engine[T]{ar: ar, witness: witness, log: log, n: n}
}

// isPrime runs the bounded probabilistic primality check and counts it.
func (e *engine[T]) isPrime(v T) (bool, error) {
	e.stats.PrimalityTests++
	return primality.AlmostSurelyPrime(e.ar, e.witness, v)
}

// mod returns v mod m.
func (e *engine[T]) mod(v, m T) (T, error) {
	_, r, err := e.ar.QuoRem(v, m)
	return r, err
}

// trialDivide factors the residual completely by trial division. It divides
// out 2 and 3, then sweeps divisors 5, 7, 11, 13, ... alternating increments
// of 2 and 4 so multiples of 2 and 3 are skipped. The sweep stops early when
// the quotient drops below the divisor with a nonzero remainder, which
// proves the residual prime: a composite residual would have a prime factor
// not exceeding its square root, and every candidate up to there has been
// tried.
func (e *engine[T]) trialDivide() error {
	ar := e.ar
	zero := ar.FromUint(0)
	one := ar.FromUint(1)

	e.log.Debug("trial division", logging.String("n", ar.Format(e.n)))

	// Divide out 2 and 3 first so the wheel below never has to visit their
	// multiples.
	for _, small := range []uint64{2, 3} {
		d := ar.FromUint(small)
		count := 0
		for {
			q, r, err := ar.QuoRem(e.n, d)
			if err != nil {
				return err
			}
			e.stats.TrialDivisions++
			if ar.Cmp(r, zero) != 0 {
				break
			}
			e.n = q
			count++
		}
		if count > 0 {
			e.factors = append(e.factors, PrimeFactor[T]{Prime: d, Multiplicity: count})
		}
	}

	if numeric.IsUint(ar, e.n, 1) {
		return nil
	}

	d := ar.FromUint(5)
	addTwo := true // increments alternate 2, 4, 2, 4, ...
	newDivisor := true
	for {
		q, r, err := ar.QuoRem(e.n, d)
		if err != nil {
			return err
		}
		e.stats.TrialDivisions++

		if ar.Cmp(r, zero) == 0 {
			e.n = q
			if newDivisor {
				e.factors = append(e.factors, PrimeFactor[T]{Prime: d, Multiplicity: 1})
				newDivisor = false
			} else {
				e.factors[len(e.factors)-1].Multiplicity++
			}
			if numeric.IsUint(ar, e.n, 1) {
				return nil
			}
			continue
		}

		// Stopping test: q < d with r != 0 certifies the residual prime.
		if ar.Cmp(q, d) < 0 {
			e.factors = append(e.factors, PrimeFactor[T]{Prime: e.n, Multiplicity: 1})
			e.n = one
			return nil
		}

		step := uint64(4)
		if addTwo {
			step = 2
		}
		d, err = ar.Add(d, ar.FromUint(step))
		if err != nil {
			return err
		}
		addTwo = !addTwo
		newDivisor = true
	}
}

// pollardRho attempts to factor the residual with Brent's variant of
// Pollard's rho method (Knuth volume 2, pages 250-265), using the recurrence
// x <- x^2 + c mod n with checkpointed cycle detection. A unit factor is
// seeded first; the orchestrator's cleanup strips it out again.
//
// The attempt succeeds when the residual is reduced to a prime and fails
// with ErrPollardRhoFailure when a gcd yields the whole residual or a
// composite divisor. On failure the factors found so far and the reduced
// residual are kept, so a retry continues where this attempt stopped.
func (e *engine[T]) pollardRho(c uint64) error {
	ar := e.ar
	one := ar.FromUint(1)

	e.log.Debug("pollard rho",
		logging.String("n", ar.Format(e.n)),
		logging.Uint64("c", c))

	e.factors = append(e.factors, PrimeFactor[T]{Prime: one, Multiplicity: 1})
	if numeric.IsUint(ar, e.n, 1) {
		return nil
	}

	x := ar.FromUint(5)
	xp := ar.FromUint(2)
	k := uint64(1)
	l := uint64(1)
	cval := ar.FromUint(c)

	for {
		prime, err := e.isPrime(e.n)
		if err != nil {
			return err
		}
		if prime {
			e.factors = append(e.factors, PrimeFactor[T]{Prime: e.n, Multiplicity: 1})
			e.n = one
			return nil
		}

		for {
			g := ar.GCD(ar.AbsDiff(x, xp), e.n)
			e.stats.GCDCalls++

			if ar.Cmp(g, one) == 0 {
				// No divisor yet: advance the sequence. When the countdown
				// expires, checkpoint x and double the cycle bound.
				k--
				if k == 0 {
					xp = x
					l *= 2
					k = l
				}
				xr, err := e.mod(x, e.n)
				if err != nil {
					return err
				}
				cr, err := e.mod(cval, e.n)
				if err != nil {
					return err
				}
				x = ar.ModAdd(ar.ModMul(xr, xr, e.n), cr, e.n)
				e.stats.ModularSquarings++
				continue
			}

			if ar.Cmp(g, e.n) == 0 {
				// The gcd swallowed the whole residual: no progress possible
				// with this constant.
				return ErrPollardRhoFailure
			}

			prime, err := e.isPrime(g)
			if err != nil {
				return err
			}
			if !prime {
				// Composite divisor; rho does not factor it recursively.
				return ErrPollardRhoFailure
			}

			e.factors = append(e.factors, PrimeFactor[T]{Prime: g, Multiplicity: 1})
			q, _, err := ar.QuoRem(e.n, g)
			if err != nil {
				return err
			}
			e.n = q
			if x, err = e.mod(x, e.n); err != nil {
				return err
			}
			if xp, err = e.mod(xp, e.n); err != nil {
				return err
			}
			break
		}
	}
}
