/*
Package multiwork dispatches the work of CPU-bound kernels either across a
shared pool of goroutines or inline on the calling goroutine, behind a single
strategy-agnostic interface.

A [Worker] is a cheap, copyable capability for submitting work. [Compute]
schedules a closure as a detached task and returns a pollable [Pending] handle
for its eventual result. [Scope] opens a fork-join region: the closure runs on
the calling goroutine and may spawn sub-tasks, recursively, through a
[Spawner]; Scope returns only once every sub-task has completed.

Which strategy a Worker uses is fixed by the [Executor] it was built with.
[ThreadPoolExecutor] runs work on fixed-width pools sized to the effective CPU
count, while [InlineExecutor] runs everything synchronously with no
concurrency at all. Both expose identical behavior to callers, so kernels
written against a Worker need not know whether parallelism is available.
*/
package multiwork

import (
	"sync"

	"go.alexhamlin.co/multiwork/internal/cpuinfo"
)

// Worker submits work to the [Executor] strategy it was built with. Workers
// are stateless values: copying one is free, and every copy dispatches to the
// same executor. The zero Worker is not valid; obtain one from [New] or
// [Default].
type Worker struct {
	exec Executor
}

// New returns a [Worker] that dispatches work to exec.
func New(exec Executor) Worker {
	return Worker{exec: exec}
}

// LogNumCPUs returns the floor of the base-2 logarithm of the worker's
// parallelism width: the depth to which a divide-and-conquer kernel can split
// before it outnumbers the underlying execution units. It is 0 for workers
// whose executor provides no parallelism.
func (w Worker) LogNumCPUs() int {
	return Log2Floor(w.exec.NumCPU())
}

var defaultWorker = sync.OnceValue(func() Worker {
	return New(NewThreadPoolExecutor(cpuinfo.Count()))
})

// Default returns the process-wide [Worker], creating it on first use. Its
// pools are sized to the effective CPU count as resolved by that first call;
// see [go.alexhamlin.co/multiwork/internal/cpuinfo] for the environment
// override. Every subsequent call returns the same Worker.
func Default() Worker {
	return defaultWorker()
}
