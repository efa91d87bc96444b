// Package config defines the CLI configuration and its resolution chain:
// command-line flags take priority over FACTORCALC_* environment variables,
// which take priority over the built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"time"

	apperrors "github.com/primpoly/factorcalc/internal/errors"
)

// EnvPrefix is prepended to every environment variable the application
// reads.
const EnvPrefix = "FACTORCALC_"

// Strategy names accepted by the -strategy flag.
const (
	StrategyAuto  = "auto"
	StrategyTable = "table"
	StrategyRho   = "rho"
	StrategyTrial = "trial"
)

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// Inputs are the positional arguments: decimal integers or p^n
	// expressions denoting p^n - 1.
	Inputs []string

	// Strategy is one of the Strategy* names.
	Strategy string

	// TablesDir is the root directory searched recursively for factor
	// table files.
	TablesDir string

	// Timeout bounds the whole run.
	Timeout time.Duration

	// Concurrency is the number of inputs factored simultaneously.
	Concurrency int

	// MetricsAddr, when non-empty, starts the Prometheus endpoint on that
	// address.
	MetricsAddr string

	// ForceBig selects the arbitrary-precision representation even for
	// inputs that fit a machine word.
	ForceBig bool

	Verbose   bool
	Quiet     bool
	ShowStats bool
	NoColor   bool
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() AppConfig {
	return AppConfig{
		Strategy:    StrategyAuto,
		TablesDir:   ".",
		Timeout:     5 * time.Minute,
		Concurrency: runtime.NumCPU(),
	}
}

// ParseConfig parses command-line arguments into an AppConfig, applies
// environment overrides for flags not set explicitly, and validates the
// result.
//
// Parameters:
//   - programName: Used in usage output.
//   - args: The arguments after the program name.
//   - errWriter: Receives usage and flag errors.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when -h was given, or a *flag* / validation error.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] <n | p^e> ...\n\n", programName)
		fmt.Fprintf(errWriter, "Factors integers into primes. An input of the form p^e denotes p^e - 1,\n")
		fmt.Fprintf(errWriter, "which enables factor table lookup for covered bases.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "factoring strategy: auto, table, rho or trial")
	fs.StringVar(&cfg.TablesDir, "tables", cfg.TablesDir, "root directory searched for factor tables")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall run timeout")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "inputs factored simultaneously")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address (empty: disabled)")
	fs.BoolVar(&cfg.ForceBig, "big", cfg.ForceBig, "force arbitrary-precision arithmetic for all inputs")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "verbose output with statistics and resource usage")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "shorthand for -verbose")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "print only the factorizations")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "shorthand for -quiet")
	fs.BoolVar(&cfg.ShowStats, "stats", cfg.ShowStats, "print operation statistics per input")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	cfg.Inputs = fs.Args()
	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c AppConfig) Validate() error {
	switch c.Strategy {
	case StrategyAuto, StrategyTable, StrategyRho, StrategyTrial:
	default:
		return apperrors.NewConfigError("unknown strategy %q (want auto, table, rho or trial)", c.Strategy)
	}
	if len(c.Inputs) == 0 {
		return apperrors.NewConfigError("no inputs: pass at least one integer or p^e expression")
	}
	if c.Concurrency < 1 {
		return apperrors.NewConfigError("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("-quiet and -verbose are mutually exclusive")
	}
	return nil
}
