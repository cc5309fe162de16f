// Package executor owns the single camera thread.
//
// libgphoto2 is neither reentrant nor safe to call from two threads, so every
// native call in this library is funneled through exactly one worker
// goroutine, pinned to its OS thread for the lifetime of the process. Other
// goroutines only ever enqueue closures; the worker drains them strictly in
// submission order. Exclusion is structural — there are no locks around the
// native handles because there is nothing to race against.
package executor

import (
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

var (
	startOnce sync.Once
	global    *queue

	// workerStarts counts worker loop launches. It can only ever reach 1;
	// the startup tests assert exactly that.
	workerStarts atomic.Int32
)

// queue is an unbounded FIFO drained by the camera thread.
type queue struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	pending  []func()
}

// EnsureStarted guarantees the camera thread exists. The first caller creates
// it; every later or concurrent caller is a no-op. Safe from any goroutine.
func EnsureStarted() {
	startOnce.Do(func() {
		q := &queue{}
		q.nonEmpty = sync.NewCond(&q.mu)
		global = q
		go q.run()
	})
}

// Spawn enqueues fn for execution on the camera thread and returns
// immediately. Closures run in FIFO order relative to all other Spawn calls,
// no matter which goroutine enqueued them. There is no bound on the queue and
// no guarantee on start time: a long-running closure (a multi-second wait for
// a camera event, say) delays everything enqueued after it.
func Spawn(fn func()) {
	EnsureStarted()
	q := global
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
	q.nonEmpty.Signal()
}

func (q *queue) run() {
	// Some port drivers keep per-thread state, so the camera thread must map
	// to one OS thread for its whole life.
	runtime.LockOSThread()
	workerStarts.Add(1)

	for {
		q.mu.Lock()
		for len(q.pending) == 0 {
			q.nonEmpty.Wait()
		}
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()

		for _, fn := range batch {
			runOne(fn)
		}
	}
}

// runOne executes a single closure, keeping the camera thread alive when a
// closure panics. The task layer turns the missing result into a distinct
// error, so a panicking closure is fatal to its own task only.
func runOne(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger().Warn("camera thread: closure panicked",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}
