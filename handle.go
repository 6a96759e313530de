package storywriter

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gdoct/ai-storywriter-sub001/internal/future"
	"github.com/google/uuid"
)

// ErrCancelled is returned by Handle.Get after the task was cancelled.
var ErrCancelled = errors.New("generation cancelled")

// State is the lifecycle stage of a generation task.
type State int32

const (
	StatePending State = iota
	StateStreaming
	StateResolved
	StateRejected
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateStreaming:
		return "streaming"
	case StateResolved:
		return "resolved"
	case StateRejected:
		return "rejected"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s >= StateResolved
}

// ProgressFunc receives the current value of a running task: the cumulative
// text, or the answer extracted from it for structured tasks.
type ProgressFunc func(string)

// Handle is the caller's view of a running generation task.
type Handle[T any] struct {
	id     uuid.UUID
	state  atomic.Int32
	result future.CompletableFuture[T]
	cancel context.CancelFunc

	// mu is held while progress is delivered; deliverer is the goroutine
	// running the callback, zero when idle.
	mu        sync.Mutex
	deliverer atomic.Int64
}

func newHandle[T any](id uuid.UUID, cancel context.CancelFunc) *Handle[T] {
	return &Handle[T]{
		id:     id,
		result: future.New[T](),
		cancel: cancel,
	}
}

func (h *Handle[T]) ID() uuid.UUID {
	return h.id
}

func (h *Handle[T]) State() State {
	return State(h.state.Load())
}

// Get blocks until the task settles or ctx is done. A cancelled task yields
// ErrCancelled, a rejected one the error that rejected it.
func (h *Handle[T]) Get(ctx context.Context) (T, error) {
	return h.result.Get(ctx)
}

// Done is closed once the task reaches a terminal state.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.result.Done()
}

// Cancel stops the task. It is a no-op once the task has settled. Cancel
// waits for a progress callback that is already running; after it returns
// no callback runs or starts and Get never yields a value. Cancel may also be
// called from inside the progress callback, in which case it returns
// without waiting for that callback.
func (h *Handle[T]) Cancel() {
	if !h.finish(StateCancelled) {
		return
	}
	h.result.Error(ErrCancelled)
	h.cancel()

	if h.deliverer.Load() == goroutineID() {
		// called from inside the progress callback
		return
	}
	// wait out a delivery that passed its state check before the transition
	h.mu.Lock()
	h.mu.Unlock()
}

// deliver runs fn unless the task has settled.
func (h *Handle[T]) deliver(fn func()) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.active() {
		return false
	}
	h.deliverer.Store(goroutineID())
	defer h.deliverer.Store(0)
	fn()
	return true
}

func (h *Handle[T]) start() bool {
	return h.state.CompareAndSwap(int32(StatePending), int32(StateStreaming))
}

func (h *Handle[T]) active() bool {
	return !h.State().Terminal()
}

func (h *Handle[T]) resolve(value T) bool {
	if !h.finish(StateResolved) {
		return false
	}
	h.result.Complete(value)
	return true
}

func (h *Handle[T]) reject(err error) bool {
	if !h.finish(StateRejected) {
		return false
	}
	h.result.Error(err)
	return true
}

func (h *Handle[T]) finish(to State) bool {
	for {
		cur := h.state.Load()
		if State(cur).Terminal() {
			return false
		}
		if h.state.CompareAndSwap(cur, int32(to)) {
			return true
		}
	}
}

// goroutineID reads the id of the calling goroutine from its stack header,
// "goroutine 42 [running]:".
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	field, _, _ := bytes.Cut(bytes.TrimPrefix(buf[:n], []byte("goroutine ")), []byte(" "))
	id, err := strconv.ParseInt(string(field), 10, 64)
	if err != nil {
		return -1
	}
	return id
}
