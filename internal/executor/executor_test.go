package executor

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// flush blocks until everything enqueued before it has run.
func flush() {
	done := make(chan struct{})
	Spawn(func() { close(done) })
	<-done
}

func TestEnsureStartedIdempotent(t *testing.T) {
	const callers = 64

	var wg sync.WaitGroup
	wg.Add(callers)
	start := make(chan struct{})
	for range callers {
		go func() {
			defer wg.Done()
			<-start
			EnsureStarted()
		}()
	}
	close(start)
	wg.Wait()
	flush()

	if got := workerStarts.Load(); got != 1 {
		t.Fatalf("worker loop started %d times, want 1", got)
	}
}

func TestSpawnImpliesStart(t *testing.T) {
	done := make(chan struct{})
	Spawn(func() { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("closure never ran")
	}
}

func TestFIFOOrdering(t *testing.T) {
	const n = 100

	var mu sync.Mutex
	var order []int
	for i := range n {
		Spawn(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}
	flush()

	if len(order) != n {
		t.Fatalf("ran %d closures, want %d", len(order), n)
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("order[%d] = %d, closures ran out of submission order", i, got)
		}
	}
}

func TestFIFOAcrossProducers(t *testing.T) {
	// Submission order is defined per Spawn call, even with many producers:
	// serialize the Spawn calls, run the producers only to exercise the
	// enqueue path from multiple goroutines.
	const producers = 8
	const perProducer = 25

	var spawnMu sync.Mutex
	seq := 0
	var mu sync.Mutex
	var order []int

	var wg sync.WaitGroup
	wg.Add(producers)
	for range producers {
		go func() {
			defer wg.Done()
			for range perProducer {
				spawnMu.Lock()
				i := seq
				seq++
				Spawn(func() {
					mu.Lock()
					order = append(order, i)
					mu.Unlock()
				})
				spawnMu.Unlock()
			}
		}()
	}
	wg.Wait()
	flush()

	for i, got := range order {
		if got != i {
			t.Fatalf("order[%d] = %d, want %d", i, got, i)
		}
	}
}

func TestMutualExclusion(t *testing.T) {
	const n = 50

	var active atomic.Int32
	var maxSeen atomic.Int32
	for range n {
		Spawn(func() {
			cur := active.Add(1)
			for {
				max := maxSeen.Load()
				if cur <= max || maxSeen.CompareAndSwap(max, cur) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			active.Add(-1)
		})
	}
	flush()

	if got := maxSeen.Load(); got != 1 {
		t.Fatalf("observed %d closures running concurrently, want exactly 1", got)
	}
}

func TestClosureRunsToCompletionBeforeNext(t *testing.T) {
	var first atomic.Bool
	var sawFirstDone atomic.Bool

	Spawn(func() {
		time.Sleep(20 * time.Millisecond)
		first.Store(true)
	})
	Spawn(func() {
		sawFirstDone.Store(first.Load())
	})
	flush()

	if !sawFirstDone.Load() {
		t.Fatal("second closure started before the first completed")
	}
}

func TestPanicDoesNotKillWorker(t *testing.T) {
	Spawn(func() { panic("camera exploded") })

	done := make(chan struct{})
	Spawn(func() { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not survive a panicking closure")
	}
}
