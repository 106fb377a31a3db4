package ports

import "context"

// SubjectAttribute is the span attribute naming what a span works on,
// such as a module id or a dependency coordinate.
const SubjectAttribute = "mvninspect.subject"

// Tracer starts spans around units of work.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Start creates a span and a context carrying it.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span is a unit of work started by a Tracer.
type Span interface {
	// End completes the span.
	End()
	// RecordError marks the span as failed.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}
