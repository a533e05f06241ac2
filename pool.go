package multiwork

import (
	"context"
	"sync"

	"github.com/gammazero/deque"

	"go.alexhamlin.co/multiwork/internal/log"
)

// ThreadPoolExecutor runs work on two independent fixed-width pools sized to
// the same CPU count: one dedicated to [Executor.Scope] regions and one to
// detached [Executor.Go] tasks, so that a flood of async tasks can never
// starve fork-join work or vice versa. The pools live as long as the executor
// and are shared by every [Worker] built on it.
type ThreadPoolExecutor struct {
	numCPU int
	scopes *pool
	tasks  *pool
}

// NewThreadPoolExecutor creates a [ThreadPoolExecutor] whose pools each run
// up to width tasks concurrently. Widths below 1 are raised to 1.
func NewThreadPoolExecutor(width int) *ThreadPoolExecutor {
	width = max(1, width)
	log.Verbosef("multiwork: sizing thread pools to %d", width)
	return &ThreadPoolExecutor{
		numCPU: width,
		scopes: newPool(width),
		tasks:  newPool(width),
	}
}

// NumCPU reports the width the executor's pools were created with.
func (e *ThreadPoolExecutor) NumCPU() int {
	return e.numCPU
}

// Go schedules fn on the detached task pool and returns without waiting
// for it.
func (e *ThreadPoolExecutor) Go(fn func()) {
	e.tasks.submit(func(context.Context) { fn() })
}

// Scope runs fn on the calling goroutine within a fork-join region bound to
// the scope pool, then blocks until every sub-task spawned within the region
// has completed.
//
// When the calling goroutine is itself a pool task (a sub-task opening a
// nested region), the join relinquishes the caller's work grant for the
// duration of the wait, so that a pool whose every slot is blocked in a join
// can still execute the sub-tasks those joins are waiting on.
func (e *ThreadPoolExecutor) Scope(ctx context.Context, fn func(context.Context, *Spawner)) {
	var wg sync.WaitGroup
	sp := &Spawner{}
	sp.spawn = func(task func(context.Context, *Spawner)) {
		wg.Add(1)
		e.scopes.submit(func(taskCtx context.Context) {
			defer wg.Done()
			task(taskCtx, sp)
		})
	}

	fn(ctx, sp)
	joinDetached(ctx, &wg)
}

// joinDetached waits for wg. If ctx belongs to a pool task, the task's work
// grant is handed back to the pool before blocking and reacquired after, so
// the wait never withholds an execution slot from the very work it awaits.
func joinDetached(ctx context.Context, wg *sync.WaitGroup) {
	tc, _ := ctx.Value(taskContextKey{}).(*taskContext)
	if tc == nil {
		wg.Wait()
		return
	}
	detached := tc.detach()
	wg.Wait()
	if detached {
		tc.attach()
	}
}

// pool is a fixed-width execution engine. Tasks submitted beyond the width
// wait in an unbounded injector queue until a running task finishes or
// detaches.
type pool struct {
	state    workState
	stateMu  sync.Mutex
	reattach reattachQueue
}

// workState tracks a pool's queued tasks, along with the "work grants" that
// control how many of them run concurrently.
//
// A work grant is an abstract resource that both permits and obligates its
// holder to execute the pool's pending tasks. Work grants are issued
// (incrementing grants), retired (decrementing grants), and transferred
// between goroutines to maintain the following invariants:
//
//   - One work grant is outstanding for every submitted but unfinished task,
//     up to grantLimit.
//   - No goroutine holds more than one work grant.
//   - Any work grant holder is either executing a task or maintaining these
//     invariants.
//
// A task blocked in a join barrier relinquishes its work grant so the pool
// can keep executing tasks. When the join completes, the reattaching task
// takes priority over queued tasks in re-obtaining a grant.
type workState struct {
	grants      int
	grantLimit  int
	reattachers int
	tasks       deque.Deque[func(context.Context)]
}

// reattachQueue defines the protocol by which a goroutine transfers its work
// grant to a reattaching task. Counterintuitively, the grantee _sends_ into
// the unbuffered channel to obtain the grant, while the grantor _receives_
// from the channel to unblock them: Go defines channels as FIFO queues, so
// queueing reattachers on the sending side resumes them in FIFO order.
type reattachQueue chan struct{}

func (rq reattachQueue) SendGrant()    { <-rq }
func (rq reattachQueue) ReceiveGrant() { rq <- struct{}{} }

func newPool(width int) *pool {
	p := &pool{reattach: make(reattachQueue)}
	p.state.grantLimit = max(1, width)
	return p
}

// submit schedules fn to run on the pool. If the pool is below its width,
// submit issues itself a fresh work grant and transfers it to a new worker
// goroutine; otherwise fn waits at the back of the injector queue.
func (p *pool) submit(fn func(context.Context)) {
	var immediate bool

	p.stateMu.Lock()
	if p.state.grants < p.state.grantLimit {
		p.state.grants++
		immediate = true
	} else {
		p.state.tasks.PushBack(fn)
	}
	p.stateMu.Unlock()

	if immediate {
		go p.work(fn)
	}
}

// work, when invoked in a new goroutine, accepts ownership of a work grant
// and fulfills all duties associated with it: executing the initial task if
// provided, then draining queued tasks until the grant is retired or
// transferred.
func (p *pool) work(initial func(context.Context)) {
	// Precondition: we hold a single work grant.
	for {
		fn := initial
		initial = nil
		if fn == nil {
			var ok bool
			if fn, ok = p.tryGetQueuedTask(); !ok {
				return // We no longer have a work grant; see tryGetQueuedTask.
			}
		}
		if detached := p.runTask(fn); detached {
			return // The task kept our work grant detached past its end.
		}
	}
}

// runTask executes fn under a fresh task context carrying the pool's
// detach and reattach hooks.
func (p *pool) runTask(fn func(context.Context)) (detached bool) {
	tc := &taskContext{pool: p}
	ctx := context.WithValue(context.Background(), taskContextKey{}, tc)
	fn(ctx)
	return tc.finish()
}

// tryGetQueuedTask, when called with a work grant held, either relinquishes
// the work grant (returning ok == false) or returns a task (ok == true) that
// the caller must execute.
func (p *pool) tryGetQueuedTask() (fn func(context.Context), ok bool) {
	var mustSendGrant bool

	p.stateMu.Lock()
	switch {
	case p.state.reattachers > 0:
		// We can transfer our work grant to a reattacher; see handleReattach.
		p.state.reattachers--
		mustSendGrant = true

	case p.state.tasks.Len() == 0:
		// With no reattachers and no tasks, we must retire the work grant.
		p.state.grants--

	default:
		fn = p.state.tasks.PopFront()
		ok = true
	}
	p.stateMu.Unlock()

	if mustSendGrant {
		p.reattach.SendGrant()
	}
	return
}

// handleDetach relinquishes a work grant held by its caller. If the pool has
// pending work, the grant transfers to a new worker goroutine; otherwise it
// retires.
func (p *pool) handleDetach() {
	if fn, ok := p.tryGetQueuedTask(); ok {
		go p.work(fn)
	}
}

// handleReattach obtains a work grant to replace one previously relinquished
// by [pool.handleDetach], blocking until the pool has capacity or an existing
// holder transfers theirs.
func (p *pool) handleReattach() {
	var mustReceiveGrant bool

	p.stateMu.Lock()
	if p.state.grants < p.state.grantLimit {
		// There is capacity for a new work grant, so we must issue one.
		p.state.grants++
	} else {
		// There is no capacity for a new work grant, so we must inform an
		// existing worker that a reattacher is ready to take theirs.
		p.state.reattachers++
		mustReceiveGrant = true
	}
	p.stateMu.Unlock()

	if mustReceiveGrant {
		p.reattach.ReceiveGrant()
	}
}

type taskContextKey struct{}

// taskContext tracks whether the goroutine running a pool task still holds
// the work grant it was loaned. mu protects the invariant that the task holds
// a grant iff !detached && !finished.
type taskContext struct {
	pool *pool

	mu       sync.Mutex
	detached bool
	finished bool
}

// detach relinquishes the task's work grant. It reports whether this call
// detached the task; a task already detached or finished is left alone.
func (tc *taskContext) detach() bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.finished || tc.detached {
		return false
	}
	tc.pool.handleDetach()
	tc.detached = true
	return true
}

// attach blocks until the task re-obtains a work grant, taking priority over
// queued tasks. It has no effect unless the task is currently detached.
func (tc *taskContext) attach() {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.finished || !tc.detached {
		return
	}
	tc.pool.handleReattach()
	tc.detached = false
}

// finish marks the task's end and reports whether it gave up its work grant,
// in which case the worker that loaned it must not reuse the grant.
func (tc *taskContext) finish() (wasDetached bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	tc.finished = true
	return tc.detached
}
