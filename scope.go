package multiwork

import "context"

// Scope runs fn on the calling goroutine within a fork-join region, then
// returns its result once every sub-task spawned within the region has
// completed.
//
// fn receives a [Spawner] bound to the region and a chunk size: the number of
// elements each parallel unit should take so that elements splits evenly
// across the worker's parallelism width. The final partition is the caller's
// to size; it may be larger than the chunk size to absorb the remainder of
// the division. An inline worker reports a width of 1, so fn sees a chunk
// size equal to elements and no partitioning takes place.
//
// Scope is the only operation that blocks the calling goroutine. Sub-tasks
// spawned within the region run in no guaranteed order relative to their
// siblings; the only guarantee is that all of them complete before Scope
// returns.
func Scope[R any](ctx context.Context, w Worker, elements int, fn func(ctx context.Context, sp *Spawner, chunkSize int) R) R {
	var result R
	chunk := chunkSize(elements, w.exec.NumCPU())
	w.exec.Scope(ctx, func(ctx context.Context, sp *Spawner) {
		result = fn(ctx, sp, chunk)
	})
	return result
}

// chunkSize splits elements across width parallel units, flooring at one
// element per unit when there are fewer elements than units. The product of
// the chunk size and width never exceeds elements when elements >= width.
func chunkSize(elements, width int) int {
	if elements < width {
		return 1
	}
	return elements / width
}

// Spawner submits sub-tasks to the fork-join region that created it. It is
// valid only within that region: spawning is permitted from the region's
// closure and, recursively, from any sub-task, since every spawned closure
// receives the Spawner again alongside its context.
type Spawner struct {
	spawn func(func(context.Context, *Spawner))
}

// Spawn submits fn as a sub-task of the region. Under a pooled worker fn runs
// on a pool goroutine and Spawn returns without waiting for it; under an
// inline worker fn runs to completion before Spawn returns. Either way the
// region's join barrier holds fn's completion.
func (sp *Spawner) Spawn(fn func(context.Context, *Spawner)) {
	sp.spawn(fn)
}
