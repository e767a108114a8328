package domain

import (
	"fmt"
	"time"
)

// JobStatus represents the lifecycle state of one dispatched build job.
type JobStatus string

const (
	// JobPending indicates the job has not been launched.
	JobPending JobStatus = "pending"
	// JobRunning indicates the job's build process is executing.
	JobRunning JobStatus = "running"
	// JobSucceeded indicates the build process exited with status zero.
	JobSucceeded JobStatus = "succeeded"
	// JobFailed indicates the build process exited with a non-zero status.
	JobFailed JobStatus = "failed"
)

// Terminal reports whether the status is a terminal state. There are no
// retries: a job that reached succeeded or failed never transitions again.
func (s JobStatus) Terminal() bool {
	return s == JobSucceeded || s == JobFailed
}

// JobResult pairs a target with the outcome of its build invocation.
type JobResult struct {
	Target    Target
	Status    JobStatus
	ExitCode  int
	Err       error
	StartedAt time.Time
	Elapsed   time.Duration
}

// Summary aggregates the outcome of one dispatch run.
type Summary struct {
	Results []JobResult

	// NotStarted holds targets that were never launched because the
	// failure threshold was crossed first. They remain pending.
	NotStarted []Target
}

// Failed returns the number of failed jobs.
func (s Summary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if r.Status == JobFailed {
			n++
		}
	}
	return n
}

// Succeeded returns the number of successful jobs.
func (s Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Status == JobSucceeded {
			n++
		}
	}
	return n
}

// maxAggregateExit caps the aggregate exit status so it stays within the
// range a shell can represent. Mirrors the convention of parallel job
// runners that report "more than 100 jobs failed" as 101.
const maxAggregateExit = 101

// BuildError is the aggregate failure of a dispatch run. Its exit code is
// the number of failed jobs, capped.
type BuildError struct {
	FailedJobs int
	Errs       error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("%d build job(s) failed", e.FailedJobs)
}

// Unwrap exposes the joined per-job errors.
func (e *BuildError) Unwrap() error {
	return e.Errs
}

// ExitCode returns the process exit status for this failure.
func (e *BuildError) ExitCode() int {
	if e.FailedJobs > maxAggregateExit-1 {
		return maxAggregateExit
	}
	return e.FailedJobs
}
