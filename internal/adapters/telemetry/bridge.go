package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/gbfsync/internal/core/ports"
)

// Bridge is an sdktrace.SpanProcessor that turns page and asset spans into
// renderer events, so the progress output shows which file is being resolved.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a Bridge feeding renderer. A nil renderer drops events.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart reports a page or asset span, with its parent page span if any.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil {
		return
	}
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var parentID string
	if p := trace.SpanFromContext(parent).SpanContext(); p.IsValid() {
		parentID = p.SpanID().String()
	}
	b.renderer.OnSpanStart(sc.SpanID().String(), parentID, s.Name(), s.StartTime())
}

// OnEnd reports the end of a span; a span marked failed by RecordError is
// reported with its description as the error.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil {
		return
	}
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "failed"
		}
		err = errors.New(desc)
	}
	b.renderer.OnSpanComplete(sc.SpanID().String(), s.EndTime(), err)
}

// ForceFlush does nothing; events are delivered synchronously.
func (b *Bridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing; the renderer is stopped by the app.
func (b *Bridge) Shutdown(context.Context) error {
	return nil
}
