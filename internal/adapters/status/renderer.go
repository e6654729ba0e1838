// Package status renders synchronization progress as a single status line
// that is redrawn in place on an interactive terminal.
package status

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/ui/output"
	"go.trai.ch/gbfsync/internal/ui/style"
)

// DefaultInterval is the redraw period of the spinner.
const DefaultInterval = 120 * time.Millisecond

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Renderer implements ports.Renderer with a live status line. Completed
// top-level spans are printed above it as permanent lines.
type Renderer struct {
	out      *termenv.Output
	interval time.Duration

	labelStyle    lipgloss.Style
	uploadStyle   lipgloss.Style
	dupeStyle     lipgloss.Style
	failStyle     lipgloss.Style
	currentStyle  lipgloss.Style
	finishedStyle lipgloss.Style

	mu       sync.Mutex
	progress domain.Progress
	spans    map[string]span
	frame    int
	drawn    bool

	done     chan struct{}
	stopOnce sync.Once
}

type span struct {
	name  string
	root  bool
	start time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithInterval sets the redraw period. A non-positive interval disables the
// spinner and redraws only on events.
func WithInterval(d time.Duration) Option {
	return func(r *Renderer) {
		r.interval = d
	}
}

// NewRenderer creates a Renderer writing to w, or os.Stderr when w is nil.
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	if w == nil {
		w = os.Stderr
	}
	out := output.New(w)
	lg := lipgloss.NewRenderer(w)
	lg.SetColorProfile(out.Profile)

	r := &Renderer{
		out:           out,
		interval:      DefaultInterval,
		labelStyle:    lg.NewStyle().Foreground(style.Iris).Bold(true),
		uploadStyle:   lg.NewStyle().Foreground(style.Green),
		dupeStyle:     lg.NewStyle().Foreground(style.Yellow),
		failStyle:     lg.NewStyle().Foreground(style.Red),
		currentStyle:  lg.NewStyle().Foreground(style.Slate),
		finishedStyle: lg.NewStyle().Foreground(style.Slate).Faint(true),
		spans:         make(map[string]span),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches the spinner until Stop is called or ctx is done.
func (r *Renderer) Start(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.mu.Lock()
				r.frame = (r.frame + 1) % len(frames)
				r.drawLocked()
				r.mu.Unlock()
			case <-ctx.Done():
				return
			case <-r.done:
				return
			}
		}
	}()
	return nil
}

// Wait blocks until Stop is called.
func (r *Renderer) Wait() error {
	<-r.done
	return nil
}

// Stop clears the status line and releases Wait. It is safe to call more
// than once.
func (r *Renderer) Stop() error {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		r.clearLocked()
		r.mu.Unlock()
		close(r.done)
	})
	return nil
}

// OnProgress redraws the status line from p.
func (r *Renderer) OnProgress(p domain.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress = p
	if p.Stage == domain.StageCompleted {
		r.printLocked(fmt.Sprintf("%s %s %d uploaded, %d duplicates, %d failed of %d",
			r.uploadStyle.Render(style.Check), r.labelStyle.Render(p.Label),
			p.Uploaded, p.Duplicates, p.Failed, p.Total))
		return
	}
	r.drawLocked()
}

// OnSpanStart tracks the span so its completion can be reported.
func (r *Renderer) OnSpanStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, nested := r.spans[parentID]
	r.spans[spanID] = span{name: name, root: !nested, start: startTime}
}

// OnSpanComplete prints failed spans and finished top-level spans.
func (r *Renderer) OnSpanComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.spans[spanID]
	if !ok {
		return
	}
	delete(r.spans, spanID)

	elapsed := endTime.Sub(s.start).Round(time.Second)
	switch {
	case err != nil:
		r.printLocked(fmt.Sprintf("%s %s %v", r.failStyle.Render(style.Cross), s.name, err))
	case s.root:
		r.printLocked(r.finishedStyle.Render(fmt.Sprintf("%s %s in %v", style.Dot, s.name, elapsed)))
	}
}

// Line returns the current status line without terminal control sequences.
func (r *Renderer) Line() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lineLocked()
}

func (r *Renderer) lineLocked() string {
	p := r.progress
	if p.Label == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(frames[r.frame])
	b.WriteByte(' ')
	b.WriteString(r.labelStyle.Render(p.Label))
	if p.Total > 0 {
		fmt.Fprintf(&b, " %d/%d", p.Processed, p.Total)
	}
	fmt.Fprintf(&b, " %s %s %s",
		r.uploadStyle.Render(fmt.Sprintf("%s%d", style.Arrow, p.Uploaded)),
		r.dupeStyle.Render(fmt.Sprintf("%s%d", style.Same, p.Duplicates)),
		r.failStyle.Render(fmt.Sprintf("%s%d", style.Cross, p.Failed)),
	)
	switch {
	case p.Current != "":
		b.WriteString(" " + r.currentStyle.Render(p.Current))
	case p.Stage != "":
		b.WriteString(" " + r.currentStyle.Render(p.Stage))
	}
	return b.String()
}

func (r *Renderer) drawLocked() {
	line := r.lineLocked()
	if line == "" {
		return
	}
	r.out.ClearLine()
	_, _ = fmt.Fprint(r.out, "\r"+line)
	r.drawn = true
}

func (r *Renderer) clearLocked() {
	if !r.drawn {
		return
	}
	r.out.ClearLine()
	_, _ = fmt.Fprint(r.out, "\r")
	r.drawn = false
}

// printLocked writes a permanent line above the status line.
func (r *Renderer) printLocked(line string) {
	r.clearLocked()
	_, _ = fmt.Fprintln(r.out, line)
	r.drawLocked()
}
