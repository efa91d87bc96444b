package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/primpoly/factorcalc/internal/factor"
	"github.com/primpoly/factorcalc/internal/metrics"
)

func sampleResult() Result {
	return Result{
		Input:    "25852",
		Value:    "25852",
		Factors:  "2^2.23.281",
		Strategy: "automatic",
		Stats:    factor.Stats{TrialDivisions: 4, GCDCalls: 9, ModularSquarings: 7, PrimalityTests: 3},
		Duration: 1500 * time.Microsecond,
	}
}

func TestPresenter_Result(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf, Options{NoColor: true})

	p.Result(sampleResult())

	out := buf.String()
	for _, want := range []string{"25852", "2^2.23.281", "automatic", "1ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q should contain %q", out, want)
		}
	}
	if strings.Contains(out, "stats:") {
		t.Error("stats must not appear without -stats or -verbose")
	}
}

func TestPresenter_QuietResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf, Options{Quiet: true, NoColor: true})

	p.Result(sampleResult())

	if got := buf.String(); got != "2^2.23.281\n" {
		t.Errorf("quiet output = %q, want just the factorization", got)
	}
}

func TestPresenter_Stats(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf, Options{ShowStats: true, NoColor: true})

	p.Result(sampleResult())

	out := buf.String()
	for _, want := range []string{"stats:", "trial divisions 4", "gcd calls 9", "primality tests 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q should contain %q", out, want)
		}
	}
}

func TestPresenter_Error(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf, Options{NoColor: true})

	p.Error("abc", errors.New("not a number"))

	out := buf.String()
	if !strings.Contains(out, "abc") || !strings.Contains(out, "not a number") {
		t.Errorf("output %q should name the input and the cause", out)
	}
}

func TestPresenter_Memory(t *testing.T) {
	delta := metrics.MemorySnapshot{HeapAlloc: 3 << 20, NumGC: 2, PauseTotalNs: 500000}

	t.Run("verbose mode reports the delta", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPresenter(&buf, Options{Verbose: true, NoColor: true})

		p.Memory(delta)

		out := buf.String()
		for _, want := range []string{"memory:", "3.0 MiB", "2 gc cycles"} {
			if !strings.Contains(out, want) {
				t.Errorf("output %q should contain %q", out, want)
			}
		}
	})

	t.Run("silent otherwise", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPresenter(&buf, Options{NoColor: true})

		p.Memory(delta)

		if buf.Len() != 0 {
			t.Errorf("memory output = %q, want none", buf.String())
		}
	})
}

func TestPresenter_Summary(t *testing.T) {
	t.Run("reports totals and failures", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPresenter(&buf, Options{NoColor: true})

		p.Summary(5, 2, 80*time.Millisecond)

		out := buf.String()
		if !strings.Contains(out, "5 input(s)") || !strings.Contains(out, "2 failed") {
			t.Errorf("summary = %q, want totals and failure count", out)
		}
	})

	t.Run("quiet mode suppresses the summary", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPresenter(&buf, Options{Quiet: true, NoColor: true})

		p.Summary(5, 0, time.Millisecond)

		if buf.Len() != 0 {
			t.Errorf("quiet summary output = %q, want none", buf.String())
		}
	})
}
