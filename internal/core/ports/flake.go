// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/tiiuae/ghaf-slim-demo/internal/core/domain"
)

// OutputLister enumerates the buildable outputs of a flake.
//
//go:generate go run go.uber.org/mock/mockgen -source=flake.go -destination=mocks/mock_flake.go -package=mocks
type OutputLister interface {
	// ListOutputs returns the flake's output graph flattened to dotted
	// attribute paths, one per buildable leaf. The slice is sorted.
	//
	// Implementations own any intermediate artifacts they produce; none
	// may outlive the call.
	ListOutputs(ctx context.Context, flakeRef string) ([]domain.Target, error)
}
