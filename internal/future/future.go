// Package future provides a single-assignment, context-aware future.
package future

import (
	"context"
	"sync"
	"sync/atomic"
)

type Promise[T any] interface {
	// Complete settles the future with a value. It reports whether this call
	// settled it.
	Complete(T) bool
	// Error settles the future with an error. It reports whether this call
	// settled it.
	Error(error) bool
}

type Future[T any] interface {
	// Get blocks until the future settles or ctx is done.
	Get(context.Context) (T, error)
	// Done is closed once the future settles.
	Done() <-chan struct{}
}

type CompletableFuture[T any] interface {
	Future[T]
	Promise[T]
}

type result[T any] struct {
	value T
	err   error
}

type future[T any] struct {
	done   chan struct{}
	result atomic.Pointer[result[T]]
	once   sync.Once
}

func New[T any]() CompletableFuture[T] {
	return &future[T]{
		done: make(chan struct{}),
	}
}

func (f *future[T]) Get(ctx context.Context) (T, error) {
	if res := f.result.Load(); res != nil {
		return res.value, res.err
	}

	select {
	case <-f.done:
		res := f.result.Load()
		return res.value, res.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *future[T]) Done() <-chan struct{} {
	return f.done
}

func (f *future[T]) Complete(value T) bool {
	return f.settle(&result[T]{value: value})
}

func (f *future[T]) Error(err error) bool {
	return f.settle(&result[T]{err: err})
}

func (f *future[T]) settle(res *result[T]) bool {
	settled := false
	f.once.Do(func() {
		f.result.Store(res)
		close(f.done)
		settled = true
	})
	return settled
}
