package cerebro

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Deferred is a value loaded at most once, on demand.
//
// The load does not begin until Start is called. There is no retry: if the
// load fails, every Wait returns the same error for the life of the handle.
type Deferred[T any] struct {
	load    func(context.Context) (T, error)
	once    sync.Once
	started atomic.Bool
	done    chan struct{}
	value   T
	err     error
}

// NewDeferred returns a handle that will call load once Start is invoked.
func NewDeferred[T any](load func(ctx context.Context) (T, error)) *Deferred[T] {
	return &Deferred[T]{
		load: load,
		done: make(chan struct{}),
	}
}

// Start begins the load in the background. Only the first call has any
// effect. The load is detached from ctx's cancellation so an abandoned
// request does not poison the shared result; ctx values are preserved.
func (d *Deferred[T]) Start(ctx context.Context) {
	d.once.Do(func() {
		d.started.Store(true)
		ctx := context.WithoutCancel(ctx)
		go func() {
			defer close(d.done)
			defer func() {
				if r := recover(); r != nil {
					d.err = fmt.Errorf("%w: panic: %v", ErrLoadFailed, r)
				}
			}()
			d.value, d.err = d.load(ctx)
		}()
	})
}

// Wait blocks until the load resolves or ctx is done. Calling Wait before
// Start blocks until ctx is done.
func (d *Deferred[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.value, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Started reports whether Start has been called.
func (d *Deferred[T]) Started() bool {
	return d.started.Load()
}

// Resolved reports whether the load has finished, successfully or not.
func (d *Deferred[T]) Resolved() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}
