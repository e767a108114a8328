package logger

import (
	"context"
	"os"
	"slices"

	"github.com/grindlemire/graft"

	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports"
)

// NodeID is the unique identifier for the Logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			// Cobra parses flags after the component graph is built, so
			// the verbosity toggle is peeked from argv here.
			verbose := slices.Contains(os.Args, "-v") || slices.Contains(os.Args, "--verbose")
			return New(verbose), nil
		},
	})
}
