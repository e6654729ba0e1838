// Package linear provides a line-per-event renderer for CI environments and
// log files.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/ui/output"
	"go.trai.ch/gbfsync/internal/ui/style"
)

// Renderer implements ports.Renderer. Span lines go to stderr, indented by
// nesting depth; per-asset progress lines go to stdout.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu        sync.Mutex
	spans     map[string]*spanState
	processed map[string]int
}

type spanState struct {
	name      string
	depth     int
	startTime time.Time
}

// NewRenderer creates a Renderer. Nil writers default to os.Stdout and
// os.Stderr.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:    stdout,
		stderr:    stderr,
		output:    output.NewWithProfile(stderr, output.ColorProfileANSI),
		spans:     make(map[string]*spanState),
		processed: make(map[string]int),
	}
}

// Start is a no-op; the renderer writes synchronously.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Wait is a no-op; the renderer writes synchronously.
func (r *Renderer) Wait() error {
	return nil
}

// Stop reports spans that never completed.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, span := range r.spans {
		_, _ = fmt.Fprintf(r.stderr, "%s%s %s interrupted\n",
			indent(span.depth), r.prefix(span.name), style.Warning)
		delete(r.spans, id)
	}
	return nil
}

// OnSpanStart prints a start line for the span.
func (r *Renderer) OnSpanStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	depth := 0
	if parent, ok := r.spans[parentID]; ok {
		depth = parent.depth + 1
	}
	r.spans[spanID] = &spanState{name: name, depth: depth, startTime: startTime}

	_, _ = fmt.Fprintf(r.stderr, "%s%s Starting...\n", indent(depth), r.prefix(name))
}

// OnSpanComplete prints the completion status of the span.
func (r *Renderer) OnSpanComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	span, ok := r.spans[spanID]
	if !ok {
		return
	}
	delete(r.spans, spanID)

	duration := endTime.Sub(span.startTime).Round(time.Millisecond)
	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s%s %s Failed after %v: %v\n",
			indent(span.depth), r.prefix(span.name), symbol, duration, err)
		return
	}
	symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(r.stderr, "%s%s %s Completed in %v\n",
		indent(span.depth), r.prefix(span.name), symbol, duration)
}

// OnProgress prints a line whenever an asset finishes and a summary when a
// pass completes.
func (r *Renderer) OnProgress(p domain.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch p.Stage {
	case domain.StageDownloaded:
		_, _ = fmt.Fprintf(r.stdout, "[%s] downloaded %d/%d\n", p.Label, p.Downloaded, p.Total)
	case domain.StageProcessing:
		if p.Processed == r.processed[p.Label] {
			return
		}
		r.processed[p.Label] = p.Processed
		_, _ = fmt.Fprintf(r.stdout, "[%s] %d/%d %s\n", p.Label, p.Processed, p.Total, p.Current)
	case domain.StageCompleted:
		delete(r.processed, p.Label)
		_, _ = fmt.Fprintf(r.stdout, "[%s] done: %s\n", p.Label, Summary(p))
	}
}

func (r *Renderer) prefix(name string) string {
	return r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

// Summary formats the counters of p.
func Summary(p domain.Progress) string {
	return fmt.Sprintf("%d uploaded, %d duplicates, %d failed of %d",
		p.Uploaded, p.Duplicates, p.Failed, p.Total)
}
