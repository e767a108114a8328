// Package nix adapts the nix CLI: output-graph listing and build dispatch.
package nix

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.trai.ch/zerr"

	"github.com/tiiuae/ghaf-slim-demo/internal/core/domain"
	"github.com/tiiuae/ghaf-slim-demo/internal/core/ports"
)

const (
	filePerm = 0o600

	// experimentalFeatures is passed to every nix invocation so the tool
	// works on installations that have not enabled flakes globally.
	experimentalFeatures = "nix-command flakes"
)

// LocateNix resolves the nix binary on the PATH. Absence is a fatal
// precondition, reported before any work starts.
func LocateNix() (string, error) {
	path, err := exec.LookPath("nix")
	if err != nil {
		return "", domain.ErrNixNotFound
	}
	return path, nil
}

// Lister implements ports.OutputLister by querying the flake's output
// graph with `nix flake show --json` and flattening it to dotted paths.
type Lister struct {
	nix    func() (string, error)
	hasher ports.Hasher
	store  ports.ListingStore
	logger ports.Logger
}

// NewLister creates a new Lister using the given nix binary. An empty path
// defers locating nix until the first listing.
func NewLister(nixPath string, hasher ports.Hasher, store ports.ListingStore, logger ports.Logger) *Lister {
	return &Lister{
		nix:    locator(nixPath),
		hasher: hasher,
		store:  store,
		logger: logger,
	}
}

// ListOutputs returns the flattened output graph of the flake.
//
// Intermediate listings are written to a scoped temporary directory that is
// removed on every return path. Results are cached keyed by the hash of the
// flake's lock file; a flake without a lock file bypasses the cache.
func (l *Lister) ListOutputs(ctx context.Context, flakeRef string) ([]domain.Target, error) {
	lockHash := l.lockFingerprint(flakeRef)

	if lockHash != "" {
		if cached, err := l.store.Get(lockHash); err == nil && cached != nil {
			l.logger.Debug("output graph listing served from cache")
			return cached.Targets, nil
		}
	}

	tmpDir, err := os.MkdirTemp("", "ghaf-build-")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create listing workspace")
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	raw, err := l.showOutputs(ctx, flakeRef)
	if err != nil {
		return nil, err
	}

	// Keep the raw document next to the parsed result while we work on it.
	// The whole directory is discarded on return.
	if err := os.WriteFile(filepath.Join(tmpDir, "outputs.json"), raw, filePerm); err != nil {
		return nil, zerr.Wrap(err, "failed to write intermediate listing")
	}

	var root outputNode
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, zerr.Wrap(err, "failed to parse output graph")
	}

	targets := flattenOutputs(root)
	if len(targets) == 0 {
		return nil, zerr.With(domain.ErrEmptyOutputGraph, "flake", flakeRef)
	}

	if lockHash != "" {
		if err := l.store.Put(domain.Listing{
			LockHash:   lockHash,
			Targets:    targets,
			ResolvedAt: time.Now(),
		}); err != nil {
			// A stale or unwritable cache must not fail resolution.
			l.logger.Debug("failed to update listing cache: " + err.Error())
		}
	}

	return targets, nil
}

// showOutputs runs `nix flake show --json` and returns the raw document.
func (l *Lister) showOutputs(ctx context.Context, flakeRef string) ([]byte, error) {
	nixPath, err := l.nix()
	if err != nil {
		return nil, err
	}

	//nolint:gosec // nixPath comes from LookPath, flakeRef from the user
	cmd := exec.CommandContext(ctx, nixPath, "flake", "show",
		"--extra-experimental-features", experimentalFeatures,
		"--json", flakeRef)
	output, err := cmd.Output()
	if err != nil {
		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		return nil, zerr.With(zerr.With(zerr.Wrap(err, "nix flake show failed"),
			"stderr", stderr),
			"flake", flakeRef,
		)
	}
	return output, nil
}

// lockFingerprint hashes the flake's lock file if the flake reference is a
// local directory containing one. Returns "" when no fingerprint is
// available.
func (l *Lister) lockFingerprint(flakeRef string) string {
	lockPath := filepath.Join(flakeRef, "flake.lock")
	if info, err := os.Stat(lockPath); err != nil || info.IsDir() {
		return ""
	}
	hash, err := l.hasher.ComputeFileHash(lockPath)
	if err != nil {
		return ""
	}
	return hash
}

// Ensure Lister satisfies the interface.
var _ ports.OutputLister = (*Lister)(nil)
