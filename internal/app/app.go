// Package app implements the application layer for ghaf-build.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/zerr"

	"github.com/tiiuae/ghaf-slim-demo/internal/core/domain"
	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports"
	"github.com/tiiuae/ghaf-slim-demo/internal/engine/dispatcher"
	"github.com/tiiuae/ghaf-slim-demo/internal/engine/resolver"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	resolver     *resolver.Resolver
	dispatcher   *dispatcher.Dispatcher
	tracer       ports.Tracer
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	res *resolver.Resolver,
	disp *dispatcher.Dispatcher,
	tracer ports.Tracer,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		resolver:     res,
		dispatcher:   disp,
		tracer:       tracer,
		logger:       logger,
	}
}

// RunOptions carries the per-invocation settings from the CLI.
type RunOptions struct {
	// Targets is a whitespace-separated explicit target list. Mutually
	// exclusive with Filter.
	Targets string

	// Filter is a regular expression matched against the flake's flattened
	// output attribute paths.
	Filter string

	// BuildArgs are passed through to every build invocation, after the
	// fixed flags.
	BuildArgs []string

	// FlakeRef overrides the configured flake reference when non-empty.
	FlakeRef string

	// Parallelism overrides the configured job cap when positive.
	Parallelism int

	// MaxFailures overrides the configured halt threshold when positive.
	MaxFailures int
}

// Run resolves the selection and dispatches one build job per target.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}

	sel, err := selection(opts)
	if err != nil {
		return err
	}

	targets, err := a.resolver.Resolve(ctx, cfg.FlakeRef, sel)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := a.tracer.Close(); closeErr != nil {
			a.logger.Error(zerr.Wrap(closeErr, "failed to flush output"))
		}
	}()

	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.String()
	}
	a.tracer.EmitPlan(ctx, names)

	summary, err := a.dispatcher.Run(ctx, cfg, targets)
	a.logger.Info(fmt.Sprintf(
		"%d succeeded, %d failed, %d not started",
		summary.Succeeded(), summary.Failed(), len(summary.NotStarted),
	))
	return err
}

// ListTargets resolves and returns the target set without building. An
// empty filter lists every buildable output.
func (a *App) ListTargets(ctx context.Context, flakeRef, filter string) ([]domain.Target, error) {
	cfg, err := a.loadConfig(RunOptions{FlakeRef: flakeRef})
	if err != nil {
		return nil, err
	}

	if filter == "" {
		filter = ".*"
	}
	f, err := domain.NewFilter(filter)
	if err != nil {
		return nil, err
	}

	return a.resolver.Resolve(ctx, cfg.FlakeRef, domain.NewFilterSelection(f))
}

func (a *App) loadConfig(opts RunOptions) (domain.Config, error) {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.FlakeRef != "" {
		cfg.FlakeRef = opts.FlakeRef
	}
	if opts.Parallelism > 0 {
		cfg.Parallelism = opts.Parallelism
	}
	if opts.MaxFailures > 0 {
		cfg.MaxFailures = opts.MaxFailures
	}
	cfg.BuildArgs = append(cfg.BuildArgs, opts.BuildArgs...)

	return cfg.Normalize(), nil
}

func selection(opts RunOptions) (domain.Selection, error) {
	switch {
	case opts.Targets != "" && opts.Filter != "":
		return domain.Selection{}, domain.ErrConflictingSelection
	case opts.Targets != "":
		return domain.NewExplicitSelection(opts.Targets)
	case opts.Filter != "":
		f, err := domain.NewFilter(opts.Filter)
		if err != nil {
			return domain.Selection{}, err
		}
		return domain.NewFilterSelection(f), nil
	default:
		return domain.Selection{}, domain.ErrNoSelection
	}
}
