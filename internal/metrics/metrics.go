// Package metrics exposes the factorization engine's operation counters as
// Prometheus metrics and provides point-in-time memory readings.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/primpoly/factorcalc/internal/factor"
)

// Collector aggregates per-run factorization statistics into Prometheus
// metrics. All methods are safe for concurrent use.
type Collector struct {
	factorizations   *prometheus.CounterVec
	failures         *prometheus.CounterVec
	duration         prometheus.Histogram
	trialDivisions   prometheus.Counter
	gcdCalls         prometheus.Counter
	modularSquarings prometheus.Counter
	primalityTests   prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with the given
// registerer.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		factorizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "factorcalc_factorizations_total",
			Help: "Completed factorizations by strategy.",
		}, []string{"strategy"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "factorcalc_failures_total",
			Help: "Failed factorizations by strategy.",
		}, []string{"strategy"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "factorcalc_duration_seconds",
			Help:    "Wall time per factorization.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		trialDivisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "factorcalc_trial_divisions_total",
			Help: "Trial division operations across all runs.",
		}),
		gcdCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "factorcalc_gcd_calls_total",
			Help: "GCD evaluations in Pollard's rho across all runs.",
		}),
		modularSquarings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "factorcalc_modular_squarings_total",
			Help: "Rho recurrence steps across all runs.",
		}),
		primalityTests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "factorcalc_primality_tests_total",
			Help: "Almost-surely-prime checks across all runs.",
		}),
	}
	reg.MustRegister(
		c.factorizations, c.failures, c.duration,
		c.trialDivisions, c.gcdCalls, c.modularSquarings, c.primalityTests,
	)
	return c
}

// ObserveSuccess records one completed factorization.
func (c *Collector) ObserveSuccess(strategy factor.Strategy, stats factor.Stats, elapsed time.Duration) {
	c.factorizations.WithLabelValues(strategy.String()).Inc()
	c.duration.Observe(elapsed.Seconds())
	c.addStats(stats)
}

// ObserveFailure records one failed factorization attempt.
func (c *Collector) ObserveFailure(strategy factor.Strategy) {
	c.failures.WithLabelValues(strategy.String()).Inc()
}

func (c *Collector) addStats(s factor.Stats) {
	c.trialDivisions.Add(float64(s.TrialDivisions))
	c.gcdCalls.Add(float64(s.GCDCalls))
	c.modularSquarings.Add(float64(s.ModularSquarings))
	c.primalityTests.Add(float64(s.PrimalityTests))
}
