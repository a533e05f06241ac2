package multiwork

// Compute schedules fn as a detached task on the worker's executor and
// returns a [Pending] handle to its eventual result. Under a pooled worker
// Compute never blocks; under an inline worker it runs fn first and returns
// an already-resolved handle. Any error from fn surfaces only through the
// handle.
func Compute[T any](w Worker, fn func() (T, error)) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}
	w.exec.Go(func() {
		p.value, p.err = fn()
		close(p.done)
	})
	return p
}

// Pending is the handle to the eventual result of a [Compute] call. Once the
// result is in, it stays in: [Pending.Ready] keeps reporting true and
// [Pending.Wait] keeps returning the same value and error, however many times
// they are called.
type Pending[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Ready reports whether the result is in, without blocking.
func (p *Pending[T]) Ready() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed once the result is in, for callers
// that select across several pending results.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the result is in and returns it.
func (p *Pending[T]) Wait() (T, error) {
	<-p.done
	return p.value, p.err
}
