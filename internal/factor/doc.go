// Package factor implements integer factorization over a generic numeric
// representation. Three algorithms with different cost/certainty trade-offs
// are available: exact lookup in precomputed factor tables of p^n - 1,
// Pollard's rho in Brent's variant (fast, may fail), and trial division on
// a 2-3 wheel (slow, always succeeds). The Factorize orchestrator selects
// among them by strategy; its Automatic chain degrades from table lookup
// through two rho attempts down to trial division, so it always produces a
// complete, verified factorization.
package factor
