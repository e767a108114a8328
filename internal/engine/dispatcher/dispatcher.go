// Package dispatcher runs one build job per target under a concurrency cap
// with an early-halt failure threshold.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/zerr"

	"github.com/tiiuae/ghaf-slim-demo/internal/core/domain"
	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports"
)

// Dispatcher launches build jobs and tracks their lifecycle.
type Dispatcher struct {
	builder ports.Builder
	tracer  ports.Tracer
	logger  ports.Logger

	mu        sync.RWMutex
	jobStatus map[domain.Target]domain.JobStatus
}

// New creates a Dispatcher using the given builder and tracer.
func New(builder ports.Builder, tracer ports.Tracer, logger ports.Logger) *Dispatcher {
	return &Dispatcher{
		builder:   builder,
		tracer:    tracer,
		logger:    logger,
		jobStatus: make(map[domain.Target]domain.JobStatus),
	}
}

// Status returns the last observed status of the target's job.
func (d *Dispatcher) Status(t domain.Target) domain.JobStatus {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.jobStatus[t]
}

func (d *Dispatcher) updateStatus(t domain.Target, status domain.JobStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jobStatus[t] = status
}

// Run evaluates every target's derivation, then dispatches one build job per
// target. At most cfg.Parallelism jobs run at once. Once cfg.MaxFailures jobs
// have failed, no further jobs are launched; jobs already running are left to
// finish.
func (d *Dispatcher) Run(ctx context.Context, cfg domain.Config, targets []domain.Target) (domain.Summary, error) {
	cfg = cfg.Normalize()

	d.mu.Lock()
	for _, t := range targets {
		d.jobStatus[t] = domain.JobPending
	}
	d.mu.Unlock()

	if err := d.evaluate(ctx, cfg, targets); err != nil {
		return domain.Summary{NotStarted: targets}, err
	}

	state := d.newRunState(ctx, cfg, targets)

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			break
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	summary := domain.Summary{
		Results:    state.results,
		NotStarted: state.queue,
	}
	for _, t := range state.queue {
		// Never launched; pending is their terminal observation.
		d.updateStatus(t, domain.JobPending)
	}

	if failed := summary.Failed(); failed > 0 {
		return summary, &domain.BuildError{FailedJobs: failed, Errs: state.errs}
	}
	if err := ctx.Err(); err != nil {
		return summary, zerr.Wrap(err, "dispatch interrupted")
	}
	return summary, nil
}

// evaluate resolves every target's derivation before anything is built, so
// that an evaluation error in any target surfaces before the first job is
// dispatched.
func (d *Dispatcher) evaluate(ctx context.Context, cfg domain.Config, targets []domain.Target) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.EvalWorkers)

	for _, target := range targets {
		g.Go(func() error {
			drvPath, err := d.builder.Eval(ctx, cfg.FlakeRef, target)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrEvaluationFailed.Error()), "target", target.String())
			}
			d.logger.Debug(fmt.Sprintf("evaluated %s -> %s", target, drvPath))
			return nil
		})
	}

	return g.Wait()
}

type runState struct {
	queue     []domain.Target
	active    int
	failures  int
	resultsCh chan domain.JobResult
	results   []domain.JobResult
	errs      error
	ctx       context.Context
	cfg       domain.Config
	d         *Dispatcher
}

func (d *Dispatcher) newRunState(ctx context.Context, cfg domain.Config, targets []domain.Target) *runState {
	return &runState{
		queue:     targets,
		resultsCh: make(chan domain.JobResult, cfg.Parallelism),
		ctx:       ctx,
		cfg:       cfg,
		d:         d,
	}
}

func (state *runState) isDone() bool {
	if state.active > 0 {
		return false
	}
	return len(state.queue) == 0 || state.failures >= state.cfg.MaxFailures
}

func (state *runState) schedule() {
	for len(state.queue) > 0 &&
		state.active < state.cfg.Parallelism &&
		state.failures < state.cfg.MaxFailures &&
		state.ctx.Err() == nil {
		target := state.queue[0]
		state.queue = state.queue[1:]

		state.active++
		state.d.updateStatus(target, domain.JobRunning)

		go func() {
			state.resultsCh <- state.d.executeJob(state.ctx, state.cfg, target)
		}()
	}
}

// executeJob runs one build inside its own span. The span is ended before
// the result is reported so that the job's output block is flushed before
// its outcome is accounted for.
func (d *Dispatcher) executeJob(ctx context.Context, cfg domain.Config, target domain.Target) domain.JobResult {
	ctx, span := d.tracer.Start(ctx, target.String())

	startedAt := time.Now()
	err := d.builder.Build(ctx, cfg.FlakeRef, target, cfg.BuildArgs, span, span)
	elapsed := time.Since(startedAt)

	res := domain.JobResult{
		Target:    target,
		Status:    domain.JobSucceeded,
		StartedAt: startedAt,
		Elapsed:   elapsed,
	}
	if err != nil {
		res.Status = domain.JobFailed
		res.ExitCode = exitCode(err)
		res.Err = err
		span.RecordError(err)
	}
	span.SetAttribute("exit_code", res.ExitCode)
	span.End()

	return res
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

func (state *runState) handleResult(res domain.JobResult) {
	state.active--
	state.results = append(state.results, res)
	state.d.updateStatus(res.Target, res.Status)

	if res.Status == domain.JobFailed {
		state.failures++
		wrappedErr := zerr.With(zerr.Wrap(res.Err, domain.ErrBuildFailed.Error()), "target", res.Target.String())
		state.errs = errors.Join(state.errs, wrappedErr)
	}
}
