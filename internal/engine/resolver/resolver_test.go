package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tiiuae/ghaf-slim-demo/internal/core/domain"
	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports/mocks"
	"github.com/tiiuae/ghaf-slim-demo/internal/engine/resolver"
)

func newResolver(t *testing.T) (*resolver.Resolver, *mocks.MockOutputLister) {
	t.Helper()
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockOutputLister(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return resolver.New(lister, logger), lister
}

func TestResolve_ExplicitTargetsPassThrough(t *testing.T) {
	r, lister := newResolver(t)
	// The output graph is never enumerated for an explicit list.
	lister.EXPECT().ListOutputs(gomock.Any(), gomock.Any()).Times(0)

	sel, err := domain.NewExplicitSelection("lenovo-x1-carbon-gen11-debug doc")
	require.NoError(t, err)

	targets, err := r.Resolve(context.Background(), ".", sel)
	require.NoError(t, err)
	// User-given order is preserved.
	assert.Equal(t, []domain.Target{"lenovo-x1-carbon-gen11-debug", "doc"}, targets)
}

func TestResolve_FilterMatchesOutputs(t *testing.T) {
	r, lister := newResolver(t)
	lister.EXPECT().ListOutputs(gomock.Any(), ".").Return([]domain.Target{
		"packages.x86_64-linux.doc",
		"packages.x86_64-linux.generic-x86_64-debug",
		"packages.aarch64-linux.doc",
	}, nil)

	f, err := domain.NewFilter(`^packages\.x86_64-linux\.`)
	require.NoError(t, err)

	targets, err := r.Resolve(context.Background(), ".", domain.NewFilterSelection(f))
	require.NoError(t, err)
	assert.Equal(t, []domain.Target{
		"packages.x86_64-linux.doc",
		"packages.x86_64-linux.generic-x86_64-debug",
	}, targets)
}

func TestResolve_FilterMatchesNothing(t *testing.T) {
	r, lister := newResolver(t)
	lister.EXPECT().ListOutputs(gomock.Any(), ".").Return([]domain.Target{
		"packages.x86_64-linux.doc",
	}, nil)

	f, err := domain.NewFilter(`^checks\.`)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), ".", domain.NewFilterSelection(f))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoTargetsMatched)
}

func TestResolve_ListerFailurePropagates(t *testing.T) {
	r, lister := newResolver(t)
	listErr := errors.New("nix flake show exited 1")
	lister.EXPECT().ListOutputs(gomock.Any(), ".").Return(nil, listErr)

	f, err := domain.NewFilter(`doc`)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), ".", domain.NewFilterSelection(f))
	require.Error(t, err)
	assert.ErrorIs(t, err, listErr)
}

func TestResolve_InvalidSelection(t *testing.T) {
	r, _ := newResolver(t)

	f, err := domain.NewFilter(`doc`)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), ".", domain.Selection{
		Targets: []domain.Target{"doc"},
		Filter:  &f,
	})
	assert.ErrorIs(t, err, domain.ErrConflictingSelection)

	_, err = r.Resolve(context.Background(), ".", domain.Selection{})
	assert.ErrorIs(t, err, domain.ErrNoSelection)
}
