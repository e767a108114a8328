package dispatcher

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/tiiuae/ghaf-slim-demo/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/tiiuae/ghaf-slim-demo/internal/adapters/nix"       //nolint:depguard // Wired in engine wiring
	"github.com/tiiuae/ghaf-slim-demo/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports"
)

// NodeID is the unique identifier for the dispatcher Graft node.
const NodeID graft.ID = "engine.dispatcher"

func init() {
	graft.Register(graft.Node[*Dispatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			nix.BuilderNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Dispatcher, error) {
			builder, err := graft.Dep[ports.Builder](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(builder, tracer, log), nil
		},
	})
}
