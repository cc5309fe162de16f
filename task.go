package gphoto2

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/maxicarlos08/gphoto2-go/internal/callback"
	"github.com/maxicarlos08/gphoto2-go/internal/executor"
)

// Task is the caller-facing handle for one closure submitted to the camera
// thread. It is created not-yet-started: the closure is enqueued on the first
// call to Wait, Poll or Detach, so a task that is built but never observed
// never burdens the camera thread.
//
// A task moves through three states — not started, running, completed — and
// never backwards. Completion happens exactly once, on the camera thread.
//
// Wait and Poll are the two consumption modes. They are mutually exclusive
// per task: pick one and stick with it. (Poll followed by Wait once Poll
// reported ready is fine; that is how poll-based consumers collect the
// value.)
type Task[T any] struct {
	// id is a trace id carried through the task lifecycle logs.
	id string

	startOnce sync.Once

	// fn is consumed by the start transition and never touched again.
	fn       func() (T, error)
	ctx      *Context
	reporter ProgressReporter

	cancelled atomic.Bool

	// ready is closed after res is written. It is the single-delivery
	// channel both consumption modes block on.
	ready chan struct{}

	mu   sync.Mutex
	done bool
	res  taskResult[T]
	wake func()
}

type taskResult[T any] struct {
	value T
	err   error
}

// NewTask wraps a closure into a task. The closure is not enqueued yet;
// execution starts lazily on the first Wait, Poll or Detach.
//
// The closure runs on the camera thread. Raw native handles it captures are
// moved, not shared, across the goroutine boundary — see ThreadBound for the
// wrapper that documents this contract.
func NewTask[T any](fn func() (T, error), opts ...TaskOption) *Task[T] {
	o := defaultTaskOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Task[T]{
		id:       uuid.NewString(),
		fn:       fn,
		ctx:      o.ctx,
		reporter: o.reporter,
		ready:    make(chan struct{}),
	}
}

// Wait starts the task if necessary, blocks until the closure's result is
// delivered, and returns it. The returned values are exactly what the
// closure produced; a native-call failure travels inside err as an ordinary
// value. ErrTaskAborted is returned only when the closure terminated without
// producing anything at all.
func (t *Task[T]) Wait() (T, error) {
	t.start()
	<-t.ready

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.res.value, t.res.err
}

// Poll starts the task if necessary and attempts to consume the result
// without blocking. If the result is available it is returned with ok=true
// and wake is never invoked. Otherwise ok is false and wake (if non-nil) is
// registered to be called exactly once, from the camera thread, when the
// result is delivered; a later Poll or Wait then collects it.
//
// A second Poll replaces a previously registered wake.
func (t *Task[T]) Poll(wake func()) (value T, err error, ok bool) {
	t.start()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return t.res.value, t.res.err, true
	}
	t.wake = wake
	var zero T
	return zero, nil, false
}

// Cancel requests cooperative cancellation. It may be called from any
// goroutine, any number of times, before or after completion; once the task
// has completed it has no effect. The flag is only observed through the
// cancel predicate the native library polls during long operations, so a
// closure with no polling checkpoints runs to completion regardless.
func (t *Task[T]) Cancel() {
	t.cancelled.Store(true)
}

// Detach forces the start transition with no observer: fire and forget.
// Useful for background effects whose result nobody collects, such as
// releasing a native handle.
func (t *Task[T]) Detach() {
	t.start()
}

func (t *Task[T]) start() {
	t.startOnce.Do(func() {
		fn := t.fn
		t.fn = nil

		Logger().Debug("task enqueued", "task", t.id)
		start := time.Now()

		executor.Spawn(func() {
			unbind := t.bindCallbacks()
			completed := false
			defer func() {
				unbind()
				if !completed {
					// The closure panicked mid-flight; the camera thread
					// recovers and logs, we surface the lost result.
					var zero T
					t.deliver(taskResult[T]{value: zero, err: ErrTaskAborted})
				}
			}()

			value, err := fn()
			completed = true
			t.deliver(taskResult[T]{value: value, err: err})
			Logger().Debug("task completed",
				"task", t.id,
				"duration", time.Since(start),
				"failed", err != nil)
		})
	})
}

// bindCallbacks attaches this task's progress reporter and cancel predicate
// to the bound context's native callback slot. The returned unbind restores
// a neutral slot; it must run on every exit path of the closure so a stale
// trampoline pointer never outlives its handlers.
func (t *Task[T]) bindCallbacks() func() {
	if t.ctx == nil {
		return func() {}
	}

	h := callback.Handlers{Cancelled: t.cancelled.Load}
	if t.reporter != nil {
		h.Progress = callback.ProgressFuncs{
			Start:  t.reporter.Start,
			Update: t.reporter.Update,
			Stop:   t.reporter.Stop,
		}
	}
	return callback.Bind(t.ctx.slot(), h)
}

// deliver publishes the result and fires the registered wake, exactly once.
func (t *Task[T]) deliver(r taskResult[T]) {
	t.mu.Lock()
	t.res = r
	t.done = true
	wake := t.wake
	t.wake = nil
	t.mu.Unlock()

	close(t.ready)
	if wake != nil {
		wake()
	}
}
