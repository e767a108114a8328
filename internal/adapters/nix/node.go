package nix

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/tiiuae/ghaf-slim-demo/internal/adapters/fs"
	"github.com/tiiuae/ghaf-slim-demo/internal/adapters/listing"
	"github.com/tiiuae/ghaf-slim-demo/internal/adapters/logger"
	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports"
)

const (
	// ListerNodeID is the unique identifier for the output lister Graft node.
	ListerNodeID graft.ID = "adapter.nix.lister"
	// BuilderNodeID is the unique identifier for the builder Graft node.
	BuilderNodeID graft.ID = "adapter.nix.builder"
)

func init() {
	// Output Lister Node
	graft.Register(graft.Node[ports.OutputLister]{
		ID:        ListerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID, listing.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.OutputLister, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ListingStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			// Locating nix is deferred to first use so that building
			// the component graph never depends on the environment.
			return NewLister("", hasher, store, log), nil
		},
	})

	// Builder Node
	graft.Register(graft.Node[ports.Builder]{
		ID:        BuilderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Builder, error) {
			return NewBuilder(""), nil
		},
	})
}
