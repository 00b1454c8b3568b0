package styles

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const spinnerInterval = 120 * time.Millisecond

// shades of gold the trophy pulses through
var pulse = []lipgloss.Color{"#f7b731", "#fed330", "#fff200", "#fed330", "#f7b731", "#fa8231"}

// Spinner draws a pulsing trophy, a label and the elapsed time on a single
// line while a fetch or an LLM request runs.
type Spinner struct {
	out   io.Writer
	label string

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSpinner(out io.Writer, label string) *Spinner {
	return &Spinner{out: out, label: label}
}

// Start draws the spinner until Stop. Starting a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx, s.done, time.Now())
}

func (s *Spinner) loop(ctx context.Context, done chan<- struct{}, started time.Time) {
	defer close(done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		s.draw(frame, time.Since(started))
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Spinner) draw(frame int, elapsed time.Duration) {
	glyph := lipgloss.NewStyle().Foreground(pulse[frame%len(pulse)]).Render("🏆")
	fmt.Fprintf(s.out, "\r  %s %s %s", glyph, s.label, DIM(elapsed.Truncate(time.Second).String()))
}

// Stop ends the animation and erases its line. Stopping an idle spinner
// writes nothing.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}

	s.cancel()
	<-s.done
	s.cancel = nil
	fmt.Fprint(s.out, "\r\033[K")
}
