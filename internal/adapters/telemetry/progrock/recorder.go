// Package progrock records build progress on a Progrock tape.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports"
)

// Recorder implements ports.Tracer using the progrock library. Each build
// job becomes one vertex on the tape.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a new Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start opens a vertex for the named job.
func (r *Recorder) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	return ctx, &Vertex{vertex: v}
}

// EmitPlan records the selected targets as an immediately completed vertex.
func (r *Recorder) EmitPlan(_ context.Context, targets []string) {
	v := r.rec.Vertex(digest.FromString("plan"), "plan")
	for _, t := range targets {
		_, _ = v.Stdout().Write([]byte(t + "\n"))
	}
	v.Done(nil)
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Ensure Recorder satisfies the interface.
var _ ports.Tracer = (*Recorder)(nil)
