package ports

import (
	"context"
	"io"

	"github.com/tiiuae/ghaf-slim-demo/internal/core/domain"
)

// Builder runs the external build tool for a single target.
//
//go:generate go run go.uber.org/mock/mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type Builder interface {
	// Build invokes one build for the given target. The invocation uses a
	// fixed set of non-interactive flags plus extraArgs, which is the
	// user-supplied passthrough and is never mutated.
	//
	// The build process's stdout and stderr are streamed to the given
	// writers. Returns an error carrying the exit code if the build fails.
	Build(ctx context.Context, flakeRef string, target domain.Target, extraArgs []string, stdout, stderr io.Writer) error

	// Eval evaluates the target's derivation without building it and
	// returns the derivation store path. Used to surface evaluation
	// errors before any build is dispatched.
	Eval(ctx context.Context, flakeRef string, target domain.Target) (string, error)
}
