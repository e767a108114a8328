package dispatcher_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tiiuae/ghaf-slim-demo/internal/adapters/telemetry"
	"github.com/tiiuae/ghaf-slim-demo/internal/core/domain"
	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports/mocks"
	"github.com/tiiuae/ghaf-slim-demo/internal/engine/dispatcher"
)

func newDispatcher(t *testing.T) (*dispatcher.Dispatcher, *mocks.MockBuilder) {
	t.Helper()
	ctrl := gomock.NewController(t)
	builder := mocks.NewMockBuilder(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return dispatcher.New(builder, telemetry.NewNoOpTracer(), logger), builder
}

func expectEvalAll(builder *mocks.MockBuilder) {
	builder.EXPECT().
		Eval(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, target domain.Target) (string, error) {
			return "/nix/store/aaaa-" + target.String() + ".drv", nil
		}).
		AnyTimes()
}

func TestDispatcher_Run_AllSucceed(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, builder := newDispatcher(t)
		expectEvalAll(builder)

		targets := []domain.Target{"doc", "generic-x86_64-debug", "nvidia-jetson-orin-agx-debug"}
		builder.EXPECT().
			Build(gomock.Any(), ".", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			Times(len(targets))

		cfg := domain.Config{FlakeRef: ".", Parallelism: 2, MaxFailures: 2, EvalWorkers: 2}
		summary, err := d.Run(context.Background(), cfg, targets)
		require.NoError(t, err)

		assert.Equal(t, len(targets), summary.Succeeded())
		assert.Zero(t, summary.Failed())
		assert.Empty(t, summary.NotStarted)
		for _, target := range targets {
			assert.Equal(t, domain.JobSucceeded, d.Status(target))
		}
	})
}

func TestDispatcher_Run_ParallelismCap(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, builder := newDispatcher(t)
		expectEvalAll(builder)

		var mu sync.Mutex
		running, peak := 0, 0

		builder.EXPECT().
			Build(gomock.Any(), ".", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ domain.Target, _ []string, _, _ io.Writer) error {
				mu.Lock()
				running++
				if running > peak {
					peak = running
				}
				mu.Unlock()

				time.Sleep(time.Second)

				mu.Lock()
				running--
				mu.Unlock()
				return nil
			}).
			Times(8)

		targets := make([]domain.Target, 8)
		for i := range targets {
			targets[i] = domain.Target(string(rune('a' + i)))
		}

		cfg := domain.Config{FlakeRef: ".", Parallelism: 3, MaxFailures: 2, EvalWorkers: 2}
		summary, err := d.Run(context.Background(), cfg, targets)
		require.NoError(t, err)

		assert.Equal(t, 8, summary.Succeeded())
		assert.Equal(t, 3, peak)
	})
}

func TestDispatcher_Run_HaltsAfterMaxFailures(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, builder := newDispatcher(t)
		expectEvalAll(builder)

		// With a single worker the first two jobs fail sequentially and the
		// remaining three must never be launched.
		builder.EXPECT().
			Build(gomock.Any(), ".", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("builder for 'x' failed with exit code 1")).
			Times(2)

		targets := []domain.Target{"a", "b", "c", "d", "e"}
		cfg := domain.Config{FlakeRef: ".", Parallelism: 1, MaxFailures: 2, EvalWorkers: 2}
		summary, err := d.Run(context.Background(), cfg, targets)

		var buildErr *domain.BuildError
		require.ErrorAs(t, err, &buildErr)
		assert.Equal(t, 2, buildErr.FailedJobs)
		assert.Equal(t, 2, buildErr.ExitCode())

		assert.Equal(t, 2, summary.Failed())
		assert.Equal(t, []domain.Target{"c", "d", "e"}, summary.NotStarted)
		assert.Equal(t, domain.JobFailed, d.Status("a"))
		assert.Equal(t, domain.JobFailed, d.Status("b"))
		assert.Equal(t, domain.JobPending, d.Status("c"))
	})
}

func TestDispatcher_Run_RunningJobsFinishAfterHalt(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, builder := newDispatcher(t)
		expectEvalAll(builder)

		// Three jobs launch together; "b" fails immediately, which crosses
		// the threshold before "a" and "c" finish. They must still run to
		// completion, while "d" must never start.
		builder.EXPECT().
			Build(gomock.Any(), ".", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, target domain.Target, _ []string, _, _ io.Writer) error {
				if target == "b" {
					return errors.New("exit status 1")
				}
				time.Sleep(time.Second)
				return nil
			}).
			Times(3)

		targets := []domain.Target{"a", "b", "c", "d"}
		cfg := domain.Config{FlakeRef: ".", Parallelism: 3, MaxFailures: 1, EvalWorkers: 2}
		summary, err := d.Run(context.Background(), cfg, targets)

		var buildErr *domain.BuildError
		require.ErrorAs(t, err, &buildErr)
		assert.Equal(t, 1, buildErr.FailedJobs)

		assert.Len(t, summary.Results, 3)
		assert.Equal(t, 2, summary.Succeeded())
		assert.Equal(t, []domain.Target{"d"}, summary.NotStarted)
		assert.Equal(t, domain.JobSucceeded, d.Status("a"))
		assert.Equal(t, domain.JobSucceeded, d.Status("c"))
	})
}

func TestDispatcher_Run_EvalFailureAbortsDispatch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, builder := newDispatcher(t)

		evalErr := errors.New("attribute 'doc' missing")
		builder.EXPECT().
			Eval(gomock.Any(), ".", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, target domain.Target) (string, error) {
				if target == "doc" {
					return "", evalErr
				}
				return "/nix/store/aaaa.drv", nil
			}).
			AnyTimes()
		builder.EXPECT().
			Build(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Times(0)

		targets := []domain.Target{"doc", "generic-x86_64-debug"}
		cfg := domain.Config{FlakeRef: ".", Parallelism: 2, MaxFailures: 2, EvalWorkers: 2}
		summary, err := d.Run(context.Background(), cfg, targets)

		require.Error(t, err)
		assert.ErrorIs(t, err, evalErr)
		assert.Empty(t, summary.Results)
		assert.Equal(t, targets, summary.NotStarted)
	})
}

func TestDispatcher_Run_FailedJobCarriesExitCode(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d, builder := newDispatcher(t)
		expectEvalAll(builder)

		builder.EXPECT().
			Build(gomock.Any(), ".", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("builder failed")).
			Times(1)

		cfg := domain.Config{FlakeRef: ".", Parallelism: 1, MaxFailures: 2, EvalWorkers: 1}
		summary, err := d.Run(context.Background(), cfg, []domain.Target{"doc"})
		require.Error(t, err)

		require.Len(t, summary.Results, 1)
		res := summary.Results[0]
		assert.Equal(t, domain.JobFailed, res.Status)
		assert.Equal(t, 1, res.ExitCode)
		assert.Error(t, res.Err)
	})
}
