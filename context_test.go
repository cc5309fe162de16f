package gphoto2

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestCloseReleasesHandle(t *testing.T) {
	h := &fakeHandle{}
	ctx := newContext(h)

	if err := ctx.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	flushCameraThread()

	if got := h.freeCalls.Load(); got != 1 {
		t.Fatalf("Free called %d times, want 1", got)
	}
}

func TestCloseIsIdempotentPerHandle(t *testing.T) {
	h := &fakeHandle{}
	ctx := newContext(h)

	for range 3 {
		if err := ctx.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}
	flushCameraThread()

	if got := h.freeCalls.Load(); got != 1 {
		t.Fatalf("Free called %d times after repeated Close, want 1", got)
	}
}

func TestCloneKeepsSessionAlive(t *testing.T) {
	h := &fakeHandle{}
	ctx := newContext(h)
	clone := ctx.Clone()

	if err := ctx.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	flushCameraThread()
	if got := h.freeCalls.Load(); got != 0 {
		t.Fatal("session released while a clone still holds a reference")
	}

	// The surviving clone still exposes a working callback slot.
	task := NewTask(func() (bool, error) {
		return h.installedProgress() != nil, nil
	}, WithContext(clone), WithProgress(NewProgressTracker(nil)))
	bound, err := task.Wait()
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if !bound {
		t.Fatal("clone's callback slot was not bound during the task")
	}

	if err := clone.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	flushCameraThread()
	if got := h.freeCalls.Load(); got != 1 {
		t.Fatalf("Free called %d times after last reference dropped, want 1", got)
	}
}

func TestReleaseOrderedAfterEarlierTasks(t *testing.T) {
	var taskDone atomic.Bool
	var freedBeforeTask atomic.Bool

	h := &fakeHandle{}
	h.onFree = func() {
		freedBeforeTask.Store(!taskDone.Load())
	}
	ctx := newContext(h)

	// Task A is submitted first and still uses the handle; the release
	// submitted by Close must serialize after it.
	a := NewTask(func() (struct{}, error) {
		time.Sleep(30 * time.Millisecond)
		taskDone.Store(true)
		return struct{}{}, nil
	}, WithContext(ctx))
	a.Detach()

	if err := ctx.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := a.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	flushCameraThread()

	if got := h.freeCalls.Load(); got != 1 {
		t.Fatalf("Free called %d times, want 1", got)
	}
	if freedBeforeTask.Load() {
		t.Fatal("native release ran before an earlier-submitted task completed")
	}
}

func TestCloseReturnsWithoutWaitingForRelease(t *testing.T) {
	released := make(chan struct{})
	h := &fakeHandle{onFree: func() { <-released }}
	ctx := newContext(h)

	done := make(chan struct{})
	go func() {
		_ = ctx.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close blocked on the native release")
	}
	close(released)
	flushCameraThread()
}
