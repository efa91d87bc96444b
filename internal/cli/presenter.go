package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/primpoly/factorcalc/internal/factor"
	"github.com/primpoly/factorcalc/internal/metrics"
	"github.com/primpoly/factorcalc/internal/sysmon"
)

// Result is one presentable factorization outcome.
type Result struct {
	// Input is the argument as the user typed it.
	Input string
	// Value is the decimal value that was factored.
	Value string
	// Factors is the dot-notation factorization, e.g. "2^2.23.281".
	Factors string
	// Strategy names the strategy that produced the result.
	Strategy string
	// Stats are the engine's operation counters.
	Stats factor.Stats
	// Duration is the wall time of the run.
	Duration time.Duration
}

// Options controls the verbosity of the presenter.
type Options struct {
	Quiet     bool
	Verbose   bool
	ShowStats bool
	NoColor   bool
}

// Presenter renders factorization results to a writer. Styling degrades to
// plain text on non-terminal writers.
type Presenter struct {
	out  io.Writer
	opts Options

	value   lipgloss.Style
	factors lipgloss.Style
	label   lipgloss.Style
	errText lipgloss.Style
	dim     lipgloss.Style
}

// NewPresenter creates a Presenter writing to out.
func NewPresenter(out io.Writer, opts Options) *Presenter {
	r := lipgloss.NewRenderer(out)
	p := &Presenter{out: out, opts: opts}
	if opts.NoColor {
		plain := r.NewStyle()
		p.value, p.factors, p.label, p.errText, p.dim = plain, plain, plain, plain, plain
		return p
	}
	p.value = r.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	p.factors = r.NewStyle().Foreground(lipgloss.Color("82"))
	p.label = r.NewStyle().Foreground(lipgloss.Color("245"))
	p.errText = r.NewStyle().Foreground(lipgloss.Color("196"))
	p.dim = r.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	return p
}

// Result renders one factorization.
func (p *Presenter) Result(res Result) {
	if p.opts.Quiet {
		fmt.Fprintln(p.out, res.Factors)
		return
	}

	fmt.Fprintf(p.out, "%s = %s %s\n",
		p.value.Render(res.Value),
		p.factors.Render(res.Factors),
		p.dim.Render(fmt.Sprintf("(%s, %s)", res.Strategy, FormatExecutionDuration(res.Duration))))

	if p.opts.Verbose || p.opts.ShowStats {
		p.stats(res.Stats)
	}
}

func (p *Presenter) stats(s factor.Stats) {
	fmt.Fprintf(p.out, "  %s trial divisions %d, gcd calls %d, modular squarings %d, primality tests %d\n",
		p.label.Render("stats:"),
		s.TrialDivisions, s.GCDCalls, s.ModularSquarings, s.PrimalityTests)
}

// Error renders a per-input failure.
func (p *Presenter) Error(input string, err error) {
	fmt.Fprintf(p.out, "%s %s: %v\n", p.errText.Render("error:"), input, err)
}

// Memory renders the memory growth of a batch run. Only verbose mode shows
// it.
func (p *Presenter) Memory(delta metrics.MemorySnapshot) {
	if !p.opts.Verbose {
		return
	}
	fmt.Fprintf(p.out, "  %s %s\n", p.label.Render("memory:"), delta)
}

// Summary renders the closing line of a batch run. Verbose mode appends a
// system resource sample.
func (p *Presenter) Summary(total, failed int, elapsed time.Duration) {
	if p.opts.Quiet {
		return
	}
	line := fmt.Sprintf("%d input(s) in %s", total, FormatExecutionDuration(elapsed))
	if failed > 0 {
		line += fmt.Sprintf(", %d failed", failed)
	}
	if p.opts.Verbose {
		line += ", " + sysmon.Sample().String()
	}
	fmt.Fprintln(p.out, p.dim.Render(line))
}
