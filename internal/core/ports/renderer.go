package ports

import (
	"context"
	"time"
)

// Renderer presents synchronization progress to the user.
// It receives driver progress snapshots and span lifecycle events from the
// tracing bridge, so the same event stream can drive a live status line or
// plain CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	ProgressSink

	// Start initializes the renderer.
	Start(ctx context.Context) error

	// Stop flushes any pending output and releases Wait.
	Stop() error

	// Wait blocks until the renderer has terminated.
	Wait() error

	// OnSpanStart is called when a page or task span begins.
	OnSpanStart(spanID, parentID, name string, startTime time.Time)

	// OnSpanComplete is called when a span ends. err is nil on success.
	OnSpanComplete(spanID string, endTime time.Time, err error)
}
