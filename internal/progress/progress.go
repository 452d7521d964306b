// Package progress renders a rotating console indicator until signaled to stop.
package progress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"
)

// DefaultInterval is the default interval between two frames.
const DefaultInterval = 100 * time.Millisecond

const (
	// DefaultLabel is shown next to the rotating marker while running.
	DefaultLabel = "calculating..."
	// DefaultDone is shown once the reporter stops.
	DefaultDone = "done!"
)

// DefaultFrames is the 4-phase rotating marker.
//
//nolint:gochecknoglobals // Config constant
var DefaultFrames = []string{"|", "/", "-", `\`}

// ErrAlreadyStarted is returned when Run is called on a Reporter that is not idle.
var ErrAlreadyStarted = errors.New("progress reporter already started")

// State is the lifecycle state of a Reporter.
type State int32

const (
	// Idle means Run has not been called yet.
	Idle State = iota
	// Running means the reporter is drawing frames.
	Running
	// Stopped means the reporter printed its final line and returned.
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Reporter overwrites a single console line with a spinner until its context is done.
// The zero value writes nothing useful; set at least Writer.
type Reporter struct {
	// Writer receives the frames, usually stderr.
	Writer io.Writer
	// Interval between frames (0 = DefaultInterval).
	Interval time.Duration
	// Label is printed next to the marker (empty = DefaultLabel).
	Label string
	// Done is printed when stopping (empty = DefaultDone).
	Done string
	// Frames are cycled through on every tick (empty = DefaultFrames).
	Frames []string

	state atomic.Int32
}

// New creates a Reporter writing to w with default settings.
func New(w io.Writer) *Reporter {
	return &Reporter{Writer: w}
}

// State returns the current lifecycle state.
func (r *Reporter) State() State {
	return State(r.state.Load())
}

// Run draws frames until ctx is done, then prints the done line and returns.
// It blocks, so callers normally start it on its own goroutine and cancel
// ctx once the work it reports on has finished.
func (r *Reporter) Run(ctx context.Context) error {
	if !r.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return ErrAlreadyStarted
	}
	defer r.state.Store(int32(Stopped))

	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	frames := r.Frames
	if len(frames) == 0 {
		frames = DefaultFrames
	}

	label := r.Label
	if label == "" {
		label = DefaultLabel
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	width := 0

	for i := 0; ; i = (i + 1) % len(frames) {
		line := fmt.Sprintf("[%s %s]", label, frames[i])
		width = max(width, len(line))

		if _, err := fmt.Fprintf(r.Writer, "\r%s", line); err != nil {
			return fmt.Errorf("writing progress: %w", err)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return r.finish(width)
		}
	}
}

// finish overwrites the last frame with the done line, padded to cover it.
func (r *Reporter) finish(width int) error {
	done := r.Done
	if done == "" {
		done = DefaultDone
	}

	line := "[" + done + "]"
	if pad := width - len(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}

	if _, err := fmt.Fprintf(r.Writer, "\r%s\n", line); err != nil {
		return fmt.Errorf("writing progress: %w", err)
	}

	return nil
}
