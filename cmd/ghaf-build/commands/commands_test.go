package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiiuae/ghaf-slim-demo/cmd/ghaf-build/commands"
	"github.com/tiiuae/ghaf-slim-demo/internal/app"
	"github.com/tiiuae/ghaf-slim-demo/internal/core/domain"
)

// fakeApp records the options the CLI hands to the app layer.
type fakeApp struct {
	runOpts      *app.RunOptions
	runErr       error
	targets      []domain.Target
	listedRef    string
	listedFilter string
}

func (f *fakeApp) Run(_ context.Context, opts app.RunOptions) error {
	f.runOpts = &opts
	return f.runErr
}

func (f *fakeApp) ListTargets(_ context.Context, flakeRef, filter string) ([]domain.Target, error) {
	f.listedRef = flakeRef
	f.listedFilter = filter
	return f.targets, nil
}

func execute(t *testing.T, fake *fakeApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(fake)
	var out bytes.Buffer
	cli.SetOut(&out)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestBuild_RequiresSelection(t *testing.T) {
	fake := &fakeApp{}
	_, err := execute(t, fake, "build")
	require.Error(t, err)
	assert.Nil(t, fake.runOpts, "app must not run without a selection")
}

func TestBuild_RejectsConflictingSelection(t *testing.T) {
	fake := &fakeApp{}
	_, err := execute(t, fake, "build", "-t", "doc", "-f", "^packages")
	require.Error(t, err)
	assert.Nil(t, fake.runOpts, "app must not run with both selection modes")
}

func TestBuild_MapsFlagsToOptions(t *testing.T) {
	fake := &fakeApp{}
	_, err := execute(t, fake,
		"build",
		"-t", "doc generic-x86_64-debug",
		"-o", "--show-trace -L",
		"-j", "3",
		"--max-failures", "4",
		"--flake", "github:tiiuae/ghaf",
	)
	require.NoError(t, err)

	require.NotNil(t, fake.runOpts)
	assert.Equal(t, "doc generic-x86_64-debug", fake.runOpts.Targets)
	assert.Empty(t, fake.runOpts.Filter)
	assert.Equal(t, []string{"--show-trace", "-L"}, fake.runOpts.BuildArgs)
	assert.Equal(t, 3, fake.runOpts.Parallelism)
	assert.Equal(t, 4, fake.runOpts.MaxFailures)
	assert.Equal(t, "github:tiiuae/ghaf", fake.runOpts.FlakeRef)
}

func TestBuild_FilterSelection(t *testing.T) {
	fake := &fakeApp{}
	_, err := execute(t, fake, "build", "-f", `^packages\.x86_64-linux\.`)
	require.NoError(t, err)

	require.NotNil(t, fake.runOpts)
	assert.Equal(t, `^packages\.x86_64-linux\.`, fake.runOpts.Filter)
	assert.Empty(t, fake.runOpts.Targets)
}

func TestBuild_PropagatesAppError(t *testing.T) {
	fake := &fakeApp{runErr: &domain.BuildError{FailedJobs: 2}}
	_, err := execute(t, fake, "build", "-t", "doc")

	var buildErr *domain.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, 2, buildErr.ExitCode())
}

func TestTargets_ListsResolvedTargets(t *testing.T) {
	fake := &fakeApp{targets: []domain.Target{
		"packages.x86_64-linux.doc",
		"packages.x86_64-linux.generic-x86_64-debug",
	}}
	out, err := execute(t, fake, "targets", "--flake", "github:tiiuae/ghaf", "-f", `^packages\.`)
	require.NoError(t, err)

	assert.Equal(t, "github:tiiuae/ghaf", fake.listedRef)
	assert.Equal(t, `^packages\.`, fake.listedFilter)
	assert.Contains(t, out, "packages.x86_64-linux.doc\n")
	assert.Contains(t, out, "packages.x86_64-linux.generic-x86_64-debug\n")
}
