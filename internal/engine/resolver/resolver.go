// Package resolver turns the user's selection into the concrete set of
// build targets.
package resolver

import (
	"context"
	"fmt"
	"slices"

	"go.trai.ch/zerr"

	"github.com/tiiuae/ghaf-slim-demo/internal/core/domain"
	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports"
)

// Resolver resolves a Selection against a flake's output graph.
type Resolver struct {
	lister ports.OutputLister
	logger ports.Logger
}

// New creates a Resolver backed by the given output lister.
func New(lister ports.OutputLister, logger ports.Logger) *Resolver {
	return &Resolver{lister: lister, logger: logger}
}

// Resolve returns the target set for the selection. Explicit targets pass
// through in the order the user gave them; a filter is matched against the
// flattened output graph, which requires enumerating the flake's outputs.
func (r *Resolver) Resolve(ctx context.Context, flakeRef string, sel domain.Selection) ([]domain.Target, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	if len(sel.Targets) > 0 {
		return slices.Clone(sel.Targets), nil
	}

	r.logger.Debug(fmt.Sprintf("enumerating outputs of %s", flakeRef))
	outputs, err := r.lister.ListOutputs(ctx, flakeRef)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to enumerate flake outputs")
	}

	targets, err := domain.NewTargetSetFromFilter(outputs, *sel.Filter)
	if err != nil {
		return nil, err
	}
	r.logger.Debug(fmt.Sprintf("filter %q matched %d of %d outputs", sel.Filter.Pattern(), len(targets), len(outputs)))
	return targets, nil
}
