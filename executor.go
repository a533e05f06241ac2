package multiwork

import "context"

// Executor is the strategy behind a [Worker]. Exactly two implementations
// exist: [ThreadPoolExecutor] runs work on shared fixed-width pools, and
// [InlineExecutor] runs the same operations synchronously on the calling
// goroutine. The two are interchangeable from a caller's point of view; only
// timing and parallelism differ.
type Executor interface {
	// Go schedules fn to run as a detached task. A pooled executor returns
	// without waiting for fn; an inline executor runs fn to completion first.
	Go(fn func())

	// Scope runs fn within a fork-join region on the calling goroutine,
	// passing it a [Spawner] for submitting sub-tasks. Scope returns only
	// after fn and every sub-task spawned within the region, recursively,
	// have completed.
	Scope(ctx context.Context, fn func(context.Context, *Spawner))

	// NumCPU reports the executor's parallelism width. It is constant for
	// the life of the executor and always at least 1.
	NumCPU() int
}
