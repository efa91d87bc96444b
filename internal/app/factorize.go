package app

import (
	"context"
	"math/big"

	"github.com/primpoly/factorcalc/internal/factor"
	"github.com/primpoly/factorcalc/internal/logging"
	"github.com/primpoly/factorcalc/internal/numeric"
	"github.com/primpoly/factorcalc/internal/table"
)

// factorInput factors a parsed input, picking the machine-word
// representation when the value fits in a uint64 and math/big otherwise.
// forceBig selects math/big regardless of magnitude.
func factorInput(ctx context.Context, in Input, strategy factor.Strategy, tables table.Locator, log logging.Logger, forceBig bool) (value, factors string, stats factor.Stats, err error) {
	if !forceBig && in.Value.IsUint64() {
		return runFactorize(ctx, numeric.Uint64Arith{}, in.Value.Uint64(), factor.Config[uint64]{
			Strategy: strategy,
			P:        in.P,
			Exponent: in.Exponent,
			Tables:   tables,
			Logger:   log,
		})
	}
	return runFactorize(ctx, numeric.BigArith{}, new(big.Int).Set(in.Value), factor.Config[*big.Int]{
		Strategy: strategy,
		P:        in.P,
		Exponent: in.Exponent,
		Tables:   tables,
		Logger:   log,
	})
}

func runFactorize[T any](ctx context.Context, ar numeric.Arith[T], n T, cfg factor.Config[T]) (string, string, factor.Stats, error) {
	result, err := factor.Factorize(ctx, ar, n, cfg)
	if err != nil {
		return "", "", factor.Stats{}, err
	}
	return ar.Format(result.N()), result.String(), result.Stats(), nil
}
