package app

import (
	"math/big"
	"strconv"
	"strings"

	apperrors "github.com/primpoly/factorcalc/internal/errors"
)

// Input is one parsed command-line operand. Plain decimal integers are
// factored as-is; the form p^e denotes p^e - 1 and carries the (p, e) pair
// as a factor table hint.
type Input struct {
	Raw      string
	P        uint // 0 when the input is a plain integer
	Exponent uint
	Value    *big.Int
}

// maxTableExponent bounds e in p^e inputs; beyond it the value is
// astronomically large and the parse is almost certainly a typo.
const maxTableExponent = 10000

// ParseInput parses an operand.
//
// Parameters:
//   - raw: A decimal integer ("25852") or a p^e expression ("3^20").
//
// Returns:
//   - Input: The parsed operand with its value materialized.
//   - error: A ConfigError describing what was malformed.
func ParseInput(raw string) (Input, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Input{}, apperrors.NewConfigError("empty input")
	}

	if pStr, eStr, ok := strings.Cut(s, "^"); ok {
		p, err := strconv.ParseUint(pStr, 10, 32)
		if err != nil || p < 2 {
			return Input{}, apperrors.NewConfigError("bad base in %q: want an integer >= 2", raw)
		}
		e, err := strconv.ParseUint(eStr, 10, 32)
		if err != nil || e < 1 || e > maxTableExponent {
			return Input{}, apperrors.NewConfigError("bad exponent in %q: want an integer in [1, %d]", raw, maxTableExponent)
		}

		value := new(big.Int).Exp(big.NewInt(int64(p)), big.NewInt(int64(e)), nil)
		value.Sub(value, big.NewInt(1))
		return Input{Raw: raw, P: uint(p), Exponent: uint(e), Value: value}, nil
	}

	value, ok := new(big.Int).SetString(s, 10)
	if !ok || value.Sign() < 0 {
		return Input{}, apperrors.NewConfigError("%q is not a non-negative decimal integer", raw)
	}
	return Input{Raw: raw, Value: value}, nil
}
