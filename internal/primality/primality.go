package primality

import (
	"io"

	"github.com/primpoly/factorcalc/internal/numeric"
)

// Verdict is the outcome of a single primality trial. Prime and Composite
// are definite; ProbablyPrime carries the one-sided error of the
// Miller-Rabin test (at most 1/4 per independent trial).
type Verdict int

const (
	// Composite means n is definitely not prime.
	Composite Verdict = iota
	// Prime means n is definitely prime (small-value lookup only).
	Prime
	// ProbablyPrime means one Miller-Rabin trial passed.
	ProbablyPrime
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case Composite:
		return "composite"
	case Prime:
		return "prime"
	case ProbablyPrime:
		return "probably-prime"
	default:
		return "unknown"
	}
}

// TrialBudget is the number of Miller-Rabin trials run by AlmostSurelyPrime.
// With independent witnesses the probability of accepting a composite is at
// most 4^-14, about 3.7e-9.
const TrialBudget = 14

// MillerRabin runs a single Miller-Rabin trial of n with the given witness.
//
// Small values (0, 1, 4 and 2, 3, 5) and multiples of 2, 3 or 5 resolve to a
// definite verdict without consulting the witness. Otherwise n-1 is written
// as 2^k * q with q odd and the witness sequence y = x^q, x^2q, ... mod n is
// examined per Knuth volume 2, algorithm P.
//
// The caller should supply 1 < witness < n for n > 6; the trial terminates
// for any witness regardless.
func MillerRabin[T any](ar numeric.Arith[T], n, witness T) (Verdict, error) {
	zero := ar.FromUint(0)
	one := ar.FromUint(1)
	two := ar.FromUint(2)

	// Small composite and prime lookups.
	if numeric.IsUint(ar, n, 0) || numeric.IsUint(ar, n, 1) || numeric.IsUint(ar, n, 4) {
		return Composite, nil
	}
	if numeric.IsUint(ar, n, 2) || numeric.IsUint(ar, n, 3) || numeric.IsUint(ar, n, 5) {
		return Prime, nil
	}
	for _, d := range []uint64{2, 3, 5} {
		_, r, err := ar.QuoRem(n, ar.FromUint(d))
		if err != nil {
			return Composite, err
		}
		if ar.Cmp(r, zero) == 0 {
			return Composite, nil
		}
	}

	// Factor n-1 = 2^k * q with q odd.
	nMinus1, err := ar.Sub(n, one)
	if err != nil {
		return Composite, err
	}
	q := nMinus1
	k := 0
	for {
		half, r, err := ar.QuoRem(q, two)
		if err != nil {
			return Composite, err
		}
		if ar.Cmp(r, zero) != 0 {
			break
		}
		q = half
		k++
	}

	y := ar.ModExp(witness, q, n)

	for j := 0; j < k; j++ {
		switch {
		case j == 0 && ar.Cmp(y, one) == 0:
			// x^q = 1 immediately.
			return ProbablyPrime, nil
		case ar.Cmp(y, nMinus1) == 0:
			return ProbablyPrime, nil
		case j > 0 && ar.Cmp(y, one) == 0:
			// A square root of 1 other than n-1 exists, so n is composite.
			return Composite, nil
		}
		y = ar.ModMul(y, y, n)
	}

	// No 1 or n-1 term appeared in the sequence.
	return Composite, nil
}

// WitnessFunc produces the witness for one Miller-Rabin trial of n. It is
// injectable so tests can assert against fixed witness sequences.
type WitnessFunc[T any] func(n T) (T, error)

// RandomWitnesses returns a WitnessFunc drawing uniform values in [0, n)
// from the entropy source r.
func RandomWitnesses[T any](ar numeric.Arith[T], r io.Reader) WitnessFunc[T] {
	return func(n T) (T, error) {
		return ar.RandBelow(r, n)
	}
}

// AlmostSurelyPrime reports whether n is prime with error probability at
// most 4^-TrialBudget. Composites are always detected as such. The trial
// loop is strictly bounded, which anchors termination for every
// primality-dependent branch of the factoring engine.
func AlmostSurelyPrime[T any](ar numeric.Arith[T], witness WitnessFunc[T], n T) (bool, error) {
	// Values up to 6 resolve definitively in a single trial.
	if ar.Cmp(n, ar.FromUint(6)) <= 0 {
		v, err := MillerRabin(ar, n, ar.FromUint(3))
		return v == Prime, err
	}

	nMinus1, err := ar.Sub(n, ar.FromUint(1))
	if err != nil {
		return false, err
	}

	for trial := 0; trial < TrialBudget; trial++ {
		x, err := witness(n)
		if err != nil {
			return false, err
		}
		// Witnesses outside (1, n-1) carry no information; x = 0 in
		// particular would declare every n composite. Substitute 3, which is
		// in range for the n > 6 handled here.
		if ar.Cmp(x, ar.FromUint(1)) <= 0 || ar.Cmp(x, nMinus1) >= 0 {
			x = ar.FromUint(3)
		}

		v, err := MillerRabin(ar, n, x)
		if err != nil {
			return false, err
		}
		switch v {
		case Composite:
			return false, nil
		case Prime:
			return true, nil
		}
		// ProbablyPrime: keep trying.
	}

	return true, nil
}
