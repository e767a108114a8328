// Package main is the entry point for the ghaf-build tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"github.com/tiiuae/ghaf-slim-demo/cmd/ghaf-build/commands"
	"github.com/tiiuae/ghaf-slim-demo/internal/app"
	"github.com/tiiuae/ghaf-slim-demo/internal/core/domain"
	_ "github.com/tiiuae/ghaf-slim-demo/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		var buildErr *domain.BuildError
		if errors.As(err, &buildErr) {
			// Per-job failures were already reported in their output
			// blocks; the aggregate count is the exit status.
			components.Logger.Error(buildErr)
			return buildErr.ExitCode()
		}
		// zerr prints a pretty error report with stack trace and metadata when using %+v
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}
	return 0
}
