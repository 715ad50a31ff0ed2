// Package background provides the task runner used for fire-and-forget
// side effects: platform delivery sync and push notification fanout.
// The triggering request hands the work to a Runner and returns without
// waiting; there is no retry, backoff or timeout by contract. Injecting
// the runner lets tests substitute a synchronous one and assert that
// collaborator failures never affect the caller.
package background

// Runner executes a task without the caller awaiting its outcome.
type Runner interface {
	Go(task func())
}

// GoRunner runs each task on its own goroutine. This is the production
// runner; tasks are expected to recover nothing and log their own errors.
type GoRunner struct{}

// NewGoRunner creates the goroutine-backed runner.
func NewGoRunner() GoRunner {
	return GoRunner{}
}

// Go launches the task on a new goroutine and returns immediately.
func (GoRunner) Go(task func()) {
	go task()
}

// SyncRunner executes tasks inline on the caller's goroutine.
// Intended for tests that need deterministic ordering.
type SyncRunner struct{}

// NewSyncRunner creates the inline runner.
func NewSyncRunner() SyncRunner {
	return SyncRunner{}
}

// Go runs the task before returning.
func (SyncRunner) Go(task func()) {
	task()
}
