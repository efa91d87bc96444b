package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds
// for durations less than a second, and the default string representation
// otherwise. This approach provides a more human-readable output for short
// durations.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// ProgressRefreshRate defines the refresh frequency of the spinner.
const ProgressRefreshRate = 200 * time.Millisecond

// Spinner abstracts the behavior of a terminal spinner so Progress can be
// tested without driving a real terminal animation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts the spinner library to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// Progress shows a spinner with a completed/total counter while a batch of
// factorizations runs. The factoring algorithms expose no intermediate
// progress, so granularity is one whole input. Safe for concurrent Done
// calls.
type Progress struct {
	mu    sync.Mutex
	sp    Spinner
	total int
	done  int
}

// StartProgress starts a spinner for total inputs writing to out.
func StartProgress(out io.Writer, total int) *Progress {
	p := &Progress{sp: newSpinner(out), total: total}
	p.sp.UpdateSuffix(fmt.Sprintf(" factoring 0/%d", total))
	p.sp.Start()
	return p
}

// Done records one completed input and refreshes the counter.
func (p *Progress) Done(input string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	p.sp.UpdateSuffix(fmt.Sprintf(" factoring %d/%d (last: %s)", p.done, p.total, input))
}

// Stop halts the spinner.
func (p *Progress) Stop() {
	p.sp.Stop()
}
