// Package gphoto2 provides typed Go bindings to libgphoto2.
//
// # Overview
//
// libgphoto2 is a C library for controlling digital cameras over USB and
// serial ports. It is neither reentrant nor safe to call from more than one
// thread. This package wraps it behind a task-based API: every native call
// is expressed as a closure, submitted to a single dedicated camera thread,
// and observed through a Task handle that supports blocking waits,
// non-blocking polls with a wake callback, and cooperative cancellation.
//
// # Quick Start
//
//	import gphoto2 "github.com/maxicarlos08/gphoto2-go"
//
//	// Open a session with the native library.
//	ctx, err := gphoto2.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	// Run device-touching work on the camera thread.
//	task := gphoto2.NewTask(func() (string, error) {
//		// ... native calls here ...
//		return "done", nil
//	}, gphoto2.WithContext(ctx))
//
//	result, err := task.Wait()
//
// # Threading Model
//
// Exactly one worker thread exists per process. Closures execute strictly in
// submission order; a long-running closure delays everything submitted after
// it. This is deliberate: serialization is what makes the native library safe
// to use at all. See Task for the consumption modes and Context for session
// lifetime.
//
// # Progress and Cancellation
//
// libgphoto2 reports progress and polls for cancellation through a single
// pair of callback slots per session. Bind a ProgressReporter to a task with
// WithProgress; the slots are installed just before the task's closure runs
// and detached afterwards on every path, so concurrently pending tasks never
// see each other's callbacks. Cancellation is cooperative: Cancel flips a
// flag that the native library polls during long operations, and an
// operation with no polling checkpoints runs to completion regardless.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Context, Task, ProgressReporter, error types
//   - internal/executor: the camera thread and its FIFO queue
//   - internal/callback: per-task binding of the native callback slots
//   - internal/native: the cgo boundary (trampolines, GPContext, logging)
package gphoto2
