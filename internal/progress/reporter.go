// Package progress shows that a request is in flight while the CLI waits
// on the StudyMate server.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter marks the start and end of one pending request.
type Reporter interface {
	Start(message string)
	Finish()
}

// NewReporter returns a spinner for interactive terminals and a plain line
// writer when CI is set.
func NewReporter(w io.Writer) Reporter {
	if w == nil {
		w = os.Stderr
	}
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{w: w}
	}
	return &SpinnerReporter{w: w}
}

// SpinnerReporter draws an indeterminate spinner until Finish.
type SpinnerReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (r *SpinnerReporter) Start(message string) {
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(message),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	_ = r.bar.RenderBlank()
}

func (r *SpinnerReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
}

// LineReporter prints the pending message once, suitable for CI logs.
type LineReporter struct {
	w io.Writer
}

func (r *LineReporter) Start(message string) {
	fmt.Fprintln(r.w, message)
}

func (r *LineReporter) Finish() {}
