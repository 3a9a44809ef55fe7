package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/aaronbrethorst/gh-review-queue/internal/service"
)

var brailleFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// StatusReporter shows a braille spinner while a stage is in progress and a
// completed-step line when it finishes. Output is purely cosmetic and goes
// to out (normally stderr) so it never pollutes piped report output.
type StatusReporter struct {
	out     io.Writer
	stop    chan struct{}
	stopped chan struct{}
}

// Ensure StatusReporter implements the engine's progress interface
var _ service.ProgressReporter = (*StatusReporter)(nil)

func NewStatusReporter(out io.Writer) *StatusReporter {
	return &StatusReporter{out: out}
}

// Start begins animating message. A previous stage still spinning is
// stopped first.
func (r *StatusReporter) Start(message string) {
	r.stopSpinner()

	r.stop = make(chan struct{})
	r.stopped = make(chan struct{})

	go func(stop, stopped chan struct{}) {
		defer close(stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-stop:
				// Clear the spinner line.
				fmt.Fprint(r.out, "\r\033[2K\r")
				return
			case <-ticker.C:
				fmt.Fprintf(r.out, "\r%c %s", brailleFrames[i%len(brailleFrames)], message)
				i++
			}
		}
	}(r.stop, r.stopped)
}

// Done stops the spinner and prints the completed-step status line.
func (r *StatusReporter) Done(message string) {
	r.stopSpinner()
	fmt.Fprintf(r.out, "  %s\n", message)
}

func (r *StatusReporter) stopSpinner() {
	if r.stop == nil {
		return
	}
	close(r.stop)
	<-r.stopped
	r.stop = nil
	r.stopped = nil
}
