// Package progress provides progress reporting for long-running job
// tracking in the terminal.
package progress

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives progress updates while a job runs. Percent is the
// server-reported completion in [0, 100].
type Reporter interface {
	Start(description string)
	Update(percent float64, step string)
	Finish()
	Error(err error)
}

// CLIProgress renders a terminal progress bar on stderr.
type CLIProgress struct {
	bar *progressbar.ProgressBar
}

// NewCLIProgress creates a terminal progress reporter.
func NewCLIProgress() *CLIProgress {
	return &CLIProgress{}
}

// Start initializes the progress bar. Jobs report percentages, so the
// bar always runs 0 to 100.
func (p *CLIProgress) Start(description string) {
	p.bar = progressbar.NewOptions64(100,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Update moves the bar to the reported percentage and shows the
// current pipeline step as the description.
func (p *CLIProgress) Update(percent float64, step string) {
	if p.bar == nil {
		return
	}
	if step != "" {
		p.bar.Describe(step)
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	_ = p.bar.Set64(int64(percent))
}

// Finish completes the progress bar.
func (p *CLIProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// Error displays an error message below the bar.
func (p *CLIProgress) Error(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
	}
}

// NoOpProgress discards all updates. Used when output is not a
// terminal and in tests.
type NoOpProgress struct{}

// NewNoOpProgress creates a reporter that does nothing.
func NewNoOpProgress() *NoOpProgress {
	return &NoOpProgress{}
}

// Start does nothing.
func (p *NoOpProgress) Start(description string) {}

// Update does nothing.
func (p *NoOpProgress) Update(percent float64, step string) {}

// Finish does nothing.
func (p *NoOpProgress) Finish() {}

// Error does nothing.
func (p *NoOpProgress) Error(err error) {}
