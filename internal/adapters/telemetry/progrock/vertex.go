package progrock

import (
	"sync"

	"github.com/vito/progrock"

	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports"
)

// Vertex implements ports.Span wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder

	mu  sync.Mutex
	err error
}

// Write streams the job's output to the vertex.
func (v *Vertex) Write(p []byte) (n int, err error) {
	return v.vertex.Stdout().Write(p)
}

// RecordError stores the error reported for the vertex.
func (v *Vertex) RecordError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.err = err
}

// SetAttribute has no vertex-level slot in progrock; attributes are
// dropped.
func (v *Vertex) SetAttribute(_ string, _ any) {}

// End marks the vertex as finished with the recorded error, if any.
func (v *Vertex) End() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vertex.Done(v.err)
}

// Ensure Vertex satisfies the interface.
var _ ports.Span = (*Vertex)(nil)
