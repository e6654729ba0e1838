package ports

import "context"

// Tracer starts spans around pages and asset tasks.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Start opens a span named name as a child of any span in ctx.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span is a unit of traced work.
type Span interface {
	End()
	RecordError(err error)
	SetAttribute(key string, value any)
}
