package multiwork

import "context"

// InlineExecutor is the no-concurrency strategy: every operation runs
// synchronously on the calling goroutine. It substitutes for
// [ThreadPoolExecutor] wherever parallelism is unwanted or unavailable, with
// no change to calling code.
//
// The zero InlineExecutor is ready to use.
type InlineExecutor struct{}

// NumCPU reports 1: inline execution has a single parallel unit, the calling
// goroutine itself.
func (InlineExecutor) NumCPU() int { return 1 }

// Go runs fn to completion before returning.
func (InlineExecutor) Go(fn func()) { fn() }

// Scope runs fn directly on the calling goroutine with a [Spawner] whose
// Spawn likewise runs each sub-task to completion before returning. Nothing
// is ever outstanding, so the join barrier is trivially satisfied by the time
// fn returns.
func (InlineExecutor) Scope(ctx context.Context, fn func(context.Context, *Spawner)) {
	sp := &Spawner{}
	sp.spawn = func(task func(context.Context, *Spawner)) {
		task(ctx, sp)
	}
	fn(ctx, sp)
}
