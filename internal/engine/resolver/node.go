package resolver

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/tiiuae/ghaf-slim-demo/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"github.com/tiiuae/ghaf-slim-demo/internal/adapters/nix"    //nolint:depguard // Wired in engine wiring
	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			nix.ListerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			lister, err := graft.Dep[ports.OutputLister](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(lister, log), nil
		},
	})
}
