package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans around build jobs.
type Tracer interface {
	// Start creates a new span for the named unit of work.
	Start(ctx context.Context, name string) (context.Context, Span)
	// EmitPlan signals the set of targets selected for this run.
	EmitPlan(ctx context.Context, targets []string)
	// Close flushes any buffered output.
	Close() error
}

// Span represents one unit of work. Bytes written to the span are the
// job's own output stream.
type Span interface {
	io.Writer
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}
