// Package linear provides a synchronous tracer for CI environments. Each
// job's output is buffered and flushed as one labeled block, so concurrent
// jobs never interleave their output.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports"
)

const timeFormat = "2006-01-02 15:04:05"

// Recorder implements ports.Tracer with chronological, block-ordered output.
type Recorder struct {
	mu  sync.Mutex
	out io.Writer
}

// New creates a new Recorder. A nil writer defaults to stdout.
func New(out io.Writer) *Recorder {
	if out == nil {
		out = os.Stdout
	}
	return &Recorder{out: out}
}

// Start opens a span for one job. Output written to the span is held back
// until End.
func (r *Recorder) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	return ctx, &span{
		rec:     r,
		name:    name,
		started: time.Now(),
		attrs:   make(map[string]any),
	}
}

// EmitPlan prints the selected targets before dispatch begins.
func (r *Recorder) EmitPlan(_ context.Context, targets []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.out, "Building %d target(s):\n", len(targets))
	for _, t := range targets {
		_, _ = fmt.Fprintf(r.out, "  %s\n", t)
	}
}

// Close implements ports.Tracer. Spans flush on End, so there is nothing
// left to do.
func (r *Recorder) Close() error {
	return nil
}

type span struct {
	rec     *Recorder
	name    string
	started time.Time

	mu    sync.Mutex
	buf   bytes.Buffer
	err   error
	attrs map[string]any
}

// Write buffers the job's output stream.
func (s *span) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

// RecordError marks the span as failed.
func (s *span) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// SetAttribute adds a key-value pair rendered in the closing label.
func (s *span) SetAttribute(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs[key] = value
}

// End flushes the whole block atomically: opening label with the start
// timestamp, the job's raw output, and a closing label with the stop
// timestamp and elapsed time.
func (s *span) End() {
	stopped := time.Now()
	elapsed := stopped.Sub(s.started).Round(time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()

	status := "ok"
	if s.err != nil {
		status = "FAILED: " + s.err.Error()
	}

	var block strings.Builder
	fmt.Fprintf(&block, "=== %s started %s\n", s.name, s.started.Format(timeFormat))
	if s.buf.Len() > 0 {
		block.Write(s.buf.Bytes())
		if !bytes.HasSuffix(s.buf.Bytes(), []byte("\n")) {
			block.WriteByte('\n')
		}
	}
	fmt.Fprintf(&block, "=== %s finished %s (%s) %s\n",
		s.name, stopped.Format(timeFormat), elapsed, status)

	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	_, _ = io.WriteString(s.rec.out, block.String())
}

// Ensure the interfaces are satisfied.
var (
	_ ports.Tracer = (*Recorder)(nil)
	_ ports.Span   = (*span)(nil)
)
