package domain

import "runtime"

// Policy defaults. These come from the established CI workflow and carry no
// deeper rationale, so they are defaults rather than invariants; the config
// file and CLI flags may override them.
const (
	// DefaultParallelism is the maximum number of concurrent build jobs.
	DefaultParallelism = 5
	// DefaultMaxFailures is the number of failed jobs after which no
	// further jobs are launched.
	DefaultMaxFailures = 2
	// DefaultFlakeRef is the flake reference to resolve outputs from.
	DefaultFlakeRef = "."
)

// Config holds the dispatch policy and build invocation settings.
type Config struct {
	// FlakeRef is the flake whose outputs are resolved and built.
	FlakeRef string

	// Parallelism caps the number of simultaneously running build jobs.
	Parallelism int

	// MaxFailures is the early-halt threshold: once this many jobs have
	// failed, unstarted jobs are not launched. Running jobs still finish.
	MaxFailures int

	// EvalWorkers bounds the concurrent derivation evaluations performed
	// before dispatch.
	EvalWorkers int

	// BuildArgs are extra arguments appended to every build invocation.
	BuildArgs []string
}

// DefaultConfig returns a Config populated with the policy defaults.
func DefaultConfig() Config {
	return Config{
		FlakeRef:    DefaultFlakeRef,
		Parallelism: DefaultParallelism,
		MaxFailures: DefaultMaxFailures,
		EvalWorkers: runtime.NumCPU(),
	}
}

// Normalize replaces zero or negative values with the defaults.
func (c Config) Normalize() Config {
	if c.FlakeRef == "" {
		c.FlakeRef = DefaultFlakeRef
	}
	if c.Parallelism <= 0 {
		c.Parallelism = DefaultParallelism
	}
	if c.MaxFailures <= 0 {
		c.MaxFailures = DefaultMaxFailures
	}
	if c.EvalWorkers <= 0 {
		c.EvalWorkers = runtime.NumCPU()
	}
	return c
}
