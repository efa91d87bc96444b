package factor

import (
	"context"
	"crypto/rand"
	"errors"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/primpoly/factorcalc/internal/errors"
	"github.com/primpoly/factorcalc/internal/logging"
	"github.com/primpoly/factorcalc/internal/numeric"
	"github.com/primpoly/factorcalc/internal/primality"
	"github.com/primpoly/factorcalc/internal/table"
)

// ErrNoTableEntry is returned by the explicit FactorTable strategy when the
// covered tables hold no complete entry for the requested (p, exponent)
// pair. Under Automatic this condition is not an error; it triggers the
// fallback chain instead.
var ErrNoTableEntry = errors.New("no complete factor table entry")

// Config carries the collaborators and strategy of one Factorize call. The
// zero value selects the Automatic strategy with random witnesses and no
// table lookup.
type Config[T any] struct {
	// Strategy selects the algorithm; see the Strategy constants.
	Strategy Strategy

	// P and Exponent identify the input as p^exponent - 1 for table lookup.
	// Lookup is skipped when P < 2, Exponent < 1 or Tables is nil.
	P        uint
	Exponent uint

	// Tables locates factor table data. Production binds it to a
	// table.FSLocator; tests bind in-memory fixtures.
	Tables table.Locator

	// Witness supplies Miller-Rabin witnesses. Defaults to uniform random
	// draws from crypto/rand.
	Witness primality.WitnessFunc[T]

	// Logger receives debug output. Defaults to a no-op logger.
	Logger logging.Logger
}

// Factorize factors n into primes according to the configured strategy.
//
// The Automatic strategy is total for n >= 1: table lookup and Pollard's
// rho may decline, but trial division at the end of the chain always
// succeeds. The only errors it can return are a missing or corrupt factor
// table, an arithmetic domain violation from the numeric representation,
// or context cancellation between algorithm stages.
//
// Parameters:
//   - ctx: Carries cancellation, honored between stages of the fallback
//     chain. The algorithms themselves run to completion once started.
//   - ar: The numeric representation to compute in.
//   - n: The integer to factor, n >= 1.
//   - cfg: Strategy and collaborators.
//
// Returns:
//   - *Factorization[T]: The sorted, merged, verified factorization.
//   - error: See above; additionally ErrPollardRhoFailure for the explicit
//     PollardRho strategy and ErrNoTableEntry for the explicit FactorTable
//     strategy.
func Factorize[T any](ctx context.Context, ar numeric.Arith[T], n T, cfg Config[T]) (*Factorization[T], error) {
	ctx, span := otel.Tracer("factorcalc/factor").Start(ctx, "factor.Factorize",
		trace.WithAttributes(
			attribute.String("strategy", cfg.Strategy.String()),
			attribute.String("n", ar.Format(n)),
		))
	defer span.End()

	result, err := factorize(ctx, ar, n, cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("distinct_factors", result.NumDistinctFactors()))
	return result, nil
}

func factorize[T any](ctx context.Context, ar numeric.Arith[T], n T, cfg Config[T]) (*Factorization[T], error) {
	if numeric.IsUint(ar, n, 0) {
		return nil, apperrors.NewArithmeticError(apperrors.OpDiv, "cannot factor 0")
	}

	witness := cfg.Witness
	if witness == nil {
		witness = primality.RandomWitnesses(ar, rand.Reader)
	}
	log := cfg.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	e := newEngine(ar, witness, log, n)

	switch cfg.Strategy {
	case TrialDivision:
		if err := e.trialDivide(); err != nil {
			return nil, err
		}

	case PollardRho:
		if err := e.pollardRho(defaultRhoConstant); err != nil {
			return nil, err
		}

	case FactorTable:
		found, err := e.lookupTable(cfg.Tables, cfg.P, cfg.Exponent)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, ErrNoTableEntry
		}

	case Automatic:
		if err := e.automatic(ctx, cfg); err != nil {
			return nil, err
		}

	default:
		return nil, apperrors.NewConfigError("unknown factoring strategy %d", cfg.Strategy)
	}

	return e.finish(ar, n, cfg.Strategy)
}

// automatic runs the fallback chain: table lookup, rho with the default
// constant, rho with the retry constant, trial division. A failed rho
// attempt keeps its partial factors, so each later stage works on the
// already-reduced residual. Hard errors (missing or corrupt table,
// arithmetic violations) abort the chain.
func (e *engine[T]) automatic(ctx context.Context, cfg Config[T]) error {
	if cfg.Tables != nil && cfg.P >= 2 && cfg.Exponent >= 1 {
		found, err := e.lookupTable(cfg.Tables, cfg.P, cfg.Exponent)
		if err != nil {
			return err
		}
		if found {
			return nil
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	err := e.pollardRho(defaultRhoConstant)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrPollardRhoFailure) {
		return err
	}

	e.log.Debug("pollard rho failed, retrying with alternate constant",
		logging.String("residual", e.ar.Format(e.n)))
	if err := ctx.Err(); err != nil {
		return err
	}
	err = e.pollardRho(retryRhoConstant)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrPollardRhoFailure) {
		return err
	}

	e.log.Debug("pollard rho failed twice, falling back to trial division",
		logging.String("residual", e.ar.Format(e.n)))
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.trialDivide()
}

// finish normalizes the raw factor list into a Factorization: stable sort
// by prime, merge equal primes by summing multiplicities, drop units and
// zero multiplicities (which removes the sentinel seeded by rho), then
// verify the product of the prime powers reproduces the input.
func (e *engine[T]) finish(ar numeric.Arith[T], original T, strategy Strategy) (*Factorization[T], error) {
	sort.SliceStable(e.factors, func(i, j int) bool {
		return ar.Cmp(e.factors[i].Prime, e.factors[j].Prime) < 0
	})

	merged := make([]PrimeFactor[T], 0, len(e.factors))
	for _, pf := range e.factors {
		if pf.Multiplicity == 0 || numeric.IsUint(ar, pf.Prime, 1) {
			continue
		}
		if len(merged) > 0 && ar.Cmp(merged[len(merged)-1].Prime, pf.Prime) == 0 {
			merged[len(merged)-1].Multiplicity += pf.Multiplicity
			continue
		}
		merged = append(merged, pf)
	}

	distinct := make([]T, len(merged))
	product := ar.FromUint(1)
	var err error
	for i, pf := range merged {
		distinct[i] = pf.Prime
		for j := 0; j < pf.Multiplicity; j++ {
			if product, err = ar.Mul(product, pf.Prime); err != nil {
				return nil, err
			}
		}
	}
	if product, err = ar.Mul(product, e.n); err != nil {
		return nil, err
	}
	if ar.Cmp(product, original) != 0 {
		// Reachable only when a table entry was requested for a (p,
		// exponent) pair that does not describe the input.
		return nil, apperrors.NewConfigError(
			"factorization product %s does not reproduce input %s", ar.Format(product), ar.Format(original))
	}

	return &Factorization[T]{
		ar:        ar,
		n:         original,
		remainder: e.n,
		factors:   merged,
		distinct:  distinct,
		stats:     e.stats,
		strategy:  strategy,
	}, nil
}
