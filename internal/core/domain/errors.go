package domain

import "go.trai.ch/zerr"

var (
	// ErrConflictingSelection is returned when both an explicit target list
	// and a filter are supplied.
	ErrConflictingSelection = zerr.New("targets and filter are mutually exclusive")

	// ErrNoSelection is returned when neither targets nor a filter are supplied.
	ErrNoSelection = zerr.New("no targets or filter specified")

	// ErrInvalidFilter is returned when the filter pattern does not compile.
	ErrInvalidFilter = zerr.New("invalid filter pattern")

	// ErrNoTargetsMatched is returned when a filter matches no output.
	ErrNoTargetsMatched = zerr.New("filter matched no outputs")

	// ErrEmptyOutputGraph is returned when the flake exposes no buildable outputs.
	ErrEmptyOutputGraph = zerr.New("flake exposes no buildable outputs")

	// ErrNixNotFound is returned when the nix binary is not on the PATH.
	ErrNixNotFound = zerr.New("nix binary not found in PATH")

	// ErrEvaluationFailed is returned when a target's derivation cannot be evaluated.
	ErrEvaluationFailed = zerr.New("derivation evaluation failed")

	// ErrBuildFailed is returned when one or more build jobs failed.
	ErrBuildFailed = zerr.New("build job failed")
)
