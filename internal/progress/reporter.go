// Package progress reports per-genome results while study lists are
// prefetched.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Result is the outcome of fetching one genome's study list.
type Result struct {
	Genome  string
	Studies int
	Err     error
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: failed (%v)", r.Genome, r.Err)
	}
	return fmt.Sprintf("%s: %d studies", r.Genome, r.Studies)
}

// Reporter receives results as genomes finish. Record may be called from
// several goroutines.
type Reporter interface {
	Start(total int)
	Record(r Result)
	Finish()
}

// NewReporter returns a CIReporter on stderr when running under CI, and a
// TerminalReporter otherwise.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: os.Stderr}
	}
	return &TerminalReporter{}
}

// tally counts finished and failed genomes.
type tally struct {
	total  int
	done   int
	failed int
}

func (t *tally) add(r Result) {
	t.done++
	if r.Err != nil {
		t.failed++
	}
}

func (t tally) summary() string {
	if t.failed == 0 {
		return fmt.Sprintf("Fetched study lists for %d genomes", t.done)
	}
	return fmt.Sprintf("Fetched study lists for %d genomes, %d failed", t.done-t.failed, t.failed)
}

// TerminalReporter displays a progress bar described by the latest result.
type TerminalReporter struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
	t   tally
}

func (r *TerminalReporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.t = tally{total: total}
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Fetching eFP studies"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Record(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.t.add(res)
	if r.bar != nil {
		r.bar.Describe(res.String())
		_ = r.bar.Set(r.t.done)
	}
}

func (r *TerminalReporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	fmt.Fprintln(os.Stderr, r.t.summary())
}

// CIReporter prints one line per genome, suitable for CI logs.
type CIReporter struct {
	Out io.Writer

	mu sync.Mutex
	t  tally
}

func (r *CIReporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.t = tally{total: total}
	fmt.Fprintf(r.Out, "Fetching eFP studies for %d genomes\n", total)
}

func (r *CIReporter) Record(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.t.add(res)
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", r.t.done, r.t.total, res)
}

func (r *CIReporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.Out, r.t.summary())
}
