package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/primpoly/factorcalc/internal/cli"
	"github.com/primpoly/factorcalc/internal/config"
	apperrors "github.com/primpoly/factorcalc/internal/errors"
	"github.com/primpoly/factorcalc/internal/factor"
	"github.com/primpoly/factorcalc/internal/logging"
	"github.com/primpoly/factorcalc/internal/metrics"
	"github.com/primpoly/factorcalc/internal/server"
	"github.com/primpoly/factorcalc/internal/table"
)

// Application represents the factorcalc application instance.
type Application struct {
	Config    config.AppConfig
	Tables    table.Locator
	Log       logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLocator sets a custom table locator, used by tests to substitute
// in-memory fixtures for the filesystem search.
func WithLocator(loc table.Locator) AppOption {
	return func(a *Application) { a.Tables = loc }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "factorcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(errWriter, "%s: %v\n", programName, err)
		}
		return nil, err
	}

	app := &Application{
		Config:    cfg,
		ErrWriter: errWriter,
		Log:       logging.NewNopLogger(),
	}
	if cfg.Verbose {
		app.Log = logging.NewLogger(errWriter, "factorcalc")
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.Tables == nil {
		app.Tables = table.NewFSLocator(cfg.TablesDir)
	}
	return app, nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// outcome is the per-input result of the batch run.
type outcome struct {
	result   cli.Result
	strategy factor.Strategy
	err      error
}

// Run executes the batch: parse inputs, factor them concurrently, present
// the results, and return the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	presenter := cli.NewPresenter(out, cli.Options{
		Quiet:     a.Config.Quiet,
		Verbose:   a.Config.Verbose,
		ShowStats: a.Config.ShowStats,
		NoColor:   a.Config.NoColor,
	})

	var srvMetrics *server.Metrics
	var metricsServer *server.Server
	if a.Config.MetricsAddr != "" {
		srvMetrics = server.NewMetrics()
		metricsServer = server.New(a.Config.MetricsAddr, srvMetrics, server.DefaultSecurityConfig(), a.Log)
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil {
				a.Log.Error("metrics server stopped", err)
			}
		}()
	}

	memory := metrics.NewMemoryCollector()
	memBefore := memory.Snapshot()

	start := time.Now()
	outcomes := a.runBatch(ctx, srvMetrics)

	failed := 0
	for _, oc := range outcomes {
		if oc.err != nil {
			failed++
			presenter.Error(oc.result.Input, oc.err)
			continue
		}
		presenter.Result(oc.result)
	}
	presenter.Summary(len(outcomes), failed, time.Since(start))
	presenter.Memory(memory.Snapshot().Delta(memBefore))

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			a.Log.Error("metrics server shutdown", err)
		}
	}

	return a.exitCode(ctx, outcomes)
}

// runBatch factors every input, at most Concurrency at a time, preserving
// input order in the returned slice.
func (a *Application) runBatch(ctx context.Context, srvMetrics *server.Metrics) []outcome {
	var progress *cli.Progress
	if !a.Config.Quiet {
		progress = cli.StartProgress(a.ErrWriter, len(a.Config.Inputs))
	}

	outcomes := make([]outcome, len(a.Config.Inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Config.Concurrency)
	for i, raw := range a.Config.Inputs {
		i, raw := i, raw
		g.Go(func() error {
			outcomes[i] = a.factorOne(gctx, raw, srvMetrics)
			if progress != nil {
				progress.Done(raw)
			}
			return nil
		})
	}
	// Workers never return errors; failures live in their outcome slots.
	_ = g.Wait()

	if progress != nil {
		progress.Stop()
	}
	return outcomes
}

// factorOne parses and factors a single input.
func (a *Application) factorOne(ctx context.Context, raw string, srvMetrics *server.Metrics) outcome {
	oc := outcome{result: cli.Result{Input: raw}, strategy: a.strategy()}

	in, err := ParseInput(raw)
	if err != nil {
		oc.err = err
		return oc
	}

	start := time.Now()
	value, factors, stats, err := factorInput(ctx, in, a.strategy(), a.Tables, a.Log, a.Config.ForceBig)
	elapsed := time.Since(start)

	if err != nil {
		if srvMetrics != nil {
			srvMetrics.Engine.ObserveFailure(oc.strategy)
		}
		oc.err = err
		return oc
	}

	if srvMetrics != nil {
		srvMetrics.Engine.ObserveSuccess(oc.strategy, stats, elapsed)
	}
	oc.result = cli.Result{
		Input:    raw,
		Value:    value,
		Factors:  factors,
		Strategy: oc.strategy.String(),
		Stats:    stats,
		Duration: elapsed,
	}
	return oc
}

// strategy maps the configured strategy name to the engine enum.
func (a *Application) strategy() factor.Strategy {
	switch a.Config.Strategy {
	case config.StrategyTable:
		return factor.FactorTable
	case config.StrategyRho:
		return factor.PollardRho
	case config.StrategyTrial:
		return factor.TrialDivision
	default:
		return factor.Automatic
	}
}

// exitCode maps the batch outcomes to a process exit code. Cancellation
// dominates, then table integrity problems, then configuration mistakes.
func (a *Application) exitCode(ctx context.Context, outcomes []outcome) int {
	if ctx.Err() != nil {
		return apperrors.ExitErrorCancel
	}

	code := apperrors.ExitSuccess
	for _, oc := range outcomes {
		if oc.err == nil {
			continue
		}
		var missing *apperrors.MissingTableError
		var corrupt *apperrors.CorruptTableError
		var cfgErr apperrors.ConfigError
		switch {
		case errors.As(oc.err, &missing) || errors.As(oc.err, &corrupt):
			return apperrors.ExitErrorTable
		case errors.As(oc.err, &cfgErr):
			code = apperrors.ExitErrorConfig
		default:
			if code == apperrors.ExitSuccess {
				code = apperrors.ExitErrorGeneric
			}
		}
	}
	return code
}
