package nix

import (
	"context"
	"io"
	"os/exec"
	"strings"
	"sync"

	"go.trai.ch/zerr"

	"github.com/tiiuae/ghaf-slim-demo/internal/core/domain"
	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports"
)

// fixedBuildArgs are appended to every build invocation: non-interactive
// log output, no result symlink, and no lock-file mutation.
var fixedBuildArgs = []string{
	"--log-format", "raw",
	"--no-link",
	"--no-update-lock-file",
}

// Builder implements ports.Builder by shelling out to `nix build`.
type Builder struct {
	nix func() (string, error)
}

// NewBuilder creates a new Builder using the given nix binary. An empty
// path defers locating nix until the first invocation, so constructing the
// component never touches the environment.
func NewBuilder(nixPath string) *Builder {
	return &Builder{nix: locator(nixPath)}
}

// locator resolves the nix binary once, on first use.
func locator(nixPath string) func() (string, error) {
	return sync.OnceValues(func() (string, error) {
		if nixPath != "" {
			return nixPath, nil
		}
		return LocateNix()
	})
}

// Build runs one `nix build` for the target. The process's stdout and
// stderr are streamed to the given writers; its exit code is attached to
// the returned error on failure.
func (b *Builder) Build(
	ctx context.Context,
	flakeRef string,
	target domain.Target,
	extraArgs []string,
	stdout, stderr io.Writer,
) error {
	nixPath, err := b.nix()
	if err != nil {
		return err
	}

	args := []string{"build", installable(flakeRef, target),
		"--extra-experimental-features", experimentalFeatures}
	args = append(args, fixedBuildArgs...)
	args = append(args, extraArgs...)

	//nolint:gosec // nixPath comes from LookPath, the rest from the user
	cmd := exec.CommandContext(ctx, nixPath, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()),
			"exit_code", exitCode),
			"target", target.String(),
		)
	}

	return nil
}

// Eval evaluates the target's derivation path without building. Used to
// fail fast on evaluation errors before any build job starts.
func (b *Builder) Eval(ctx context.Context, flakeRef string, target domain.Target) (string, error) {
	nixPath, err := b.nix()
	if err != nil {
		return "", err
	}

	//nolint:gosec // nixPath comes from LookPath, the rest from the user
	cmd := exec.CommandContext(ctx, nixPath, "eval",
		"--extra-experimental-features", experimentalFeatures,
		"--raw", installable(flakeRef, target)+".drvPath")
	output, err := cmd.Output()
	if err != nil {
		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		return "", zerr.With(zerr.With(zerr.Wrap(err, domain.ErrEvaluationFailed.Error()),
			"stderr", stderr),
			"target", target.String(),
		)
	}
	return strings.TrimSpace(string(output)), nil
}

// installable renders the flake installable for a dotted target path.
func installable(flakeRef string, target domain.Target) string {
	return flakeRef + "#" + target.String()
}

// Ensure Builder satisfies the interface.
var _ ports.Builder = (*Builder)(nil)
