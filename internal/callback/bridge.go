// Package callback binds per-task handlers to a context's single native
// callback slot.
//
// libgphoto2 exposes exactly one progress-function triple and one cancel
// predicate per GPContext. This package scopes those global slots to one
// task at a time: Bind installs the handlers right before a task's closure
// runs on the camera thread and the returned unbind restores a neutral slot
// afterwards, success or failure. Because the camera thread runs one closure
// at a time, two tasks' handlers can never be installed at once, and the
// trampolines need no synchronization against teardown.
package callback

// ProgressFuncs is the progress-function triple a slot accepts.
//
// Start reports a new operation with a total target and a display message
// and returns an id; Update and Stop reference that id. Ids are assigned by
// the receiving handler and are only meaningful within the execution of the
// one task whose handlers are installed.
type ProgressFuncs struct {
	Start  func(target float64, message string) uint32
	Update func(id uint32, current float64)
	Stop   func(id uint32)
}

// Slot is the mutable callback surface of one native context. The production
// implementation is the cgo context handle; tests substitute a recorder.
type Slot interface {
	// SetProgressFuncs installs the progress triple. All three funcs are
	// non-nil when called.
	SetProgressFuncs(ProgressFuncs)

	// SetCancelFunc installs the predicate the native library polls during
	// long operations. Returning true asks the current operation to abort.
	SetCancelFunc(func() bool)

	// ClearFuncs detaches everything previously installed, restoring the
	// neutral state. Must be safe to call when nothing is installed.
	ClearFuncs()
}

// Handlers carries what one task wants attached for the duration of its
// closure. Nil fields are simply not installed.
type Handlers struct {
	Progress  ProgressFuncs // installed only if Start is non-nil
	Cancelled func() bool
}

// Bind attaches h to slot and returns the unbind function. Callers must run
// unbind after the task's closure returns, on every path; a stale trampoline
// pointer must never outlive its handler. Bind with nothing to install still
// returns a valid no-op unbind.
func Bind(slot Slot, h Handlers) (unbind func()) {
	installed := false

	if h.Progress.Start != nil {
		p := h.Progress
		if p.Update == nil {
			p.Update = func(uint32, float64) {}
		}
		if p.Stop == nil {
			p.Stop = func(uint32) {}
		}
		slot.SetProgressFuncs(p)
		installed = true
	}

	if h.Cancelled != nil {
		slot.SetCancelFunc(h.Cancelled)
		installed = true
	}

	if !installed {
		return func() {}
	}
	return slot.ClearFuncs
}
