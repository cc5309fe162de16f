package gphoto2

import "sync"

// ProgressReporter receives progress events from the native library while a
// task bound to it executes. Start is called when an operation with a known
// total begins and returns an id; Update and Stop reference that id. Ids are
// assigned by the reporter and need only be unique within one task's
// execution — the native library does not guarantee anything more.
//
// Start, Update and Stop are invoked from the camera thread. Implementations
// that expose state to other goroutines must lock accordingly.
type ProgressReporter interface {
	Start(target float64, message string) uint32
	Update(id uint32, current float64)
	Stop(id uint32)
}

// Progress is one in-flight operation as seen by a ProgressTracker.
type Progress struct {
	Message string
	Target  float64
	Current float64
}

// Fraction converts the progress to 0..1. Returns 0 when the target is
// unknown (zero).
func (p Progress) Fraction() float64 {
	if p.Target == 0 {
		return 0
	}
	return p.Current / p.Target
}

// ProgressTracker is a ready-made ProgressReporter that keeps every active
// operation in a map keyed by id. Safe for concurrent use: the camera thread
// mutates it through the reporter methods while other goroutines read
// snapshots.
type ProgressTracker struct {
	mu       sync.Mutex
	nextID   uint32
	active   map[uint32]Progress
	onChange func(map[uint32]Progress)
}

// NewProgressTracker creates a tracker. onChange, if non-nil, is invoked
// with a snapshot of all active operations after every Start, Update and
// Stop, from the camera thread — keep it cheap, it runs in the middle of a
// native call.
func NewProgressTracker(onChange func(map[uint32]Progress)) *ProgressTracker {
	return &ProgressTracker{
		active:   make(map[uint32]Progress),
		onChange: onChange,
	}
}

// Start registers a new operation and returns its id.
func (t *ProgressTracker) Start(target float64, message string) uint32 {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.active[id] = Progress{Message: message, Target: target}
	t.mu.Unlock()

	t.changed()
	return id
}

// Update records the current position of an operation. Unknown ids are
// ignored.
func (t *ProgressTracker) Update(id uint32, current float64) {
	t.mu.Lock()
	if p, ok := t.active[id]; ok {
		p.Current = current
		t.active[id] = p
	}
	t.mu.Unlock()

	t.changed()
}

// Stop removes an operation.
func (t *ProgressTracker) Stop(id uint32) {
	t.mu.Lock()
	delete(t.active, id)
	t.mu.Unlock()

	t.changed()
}

// Snapshot returns a copy of all active operations.
func (t *ProgressTracker) Snapshot() map[uint32]Progress {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[uint32]Progress, len(t.active))
	for id, p := range t.active {
		out[id] = p
	}
	return out
}

func (t *ProgressTracker) changed() {
	if t.onChange != nil {
		t.onChange(t.Snapshot())
	}
}
