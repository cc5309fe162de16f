package gphoto2

import (
	"sync/atomic"

	"github.com/maxicarlos08/gphoto2-go/internal/callback"
	"github.com/maxicarlos08/gphoto2-go/internal/executor"
	"github.com/maxicarlos08/gphoto2-go/internal/native"
)

// contextHandle is the surface of a native session handle the core needs:
// the mutable callback slot plus release of the native reference. The
// production implementation is native.Context; tests substitute fakes.
type contextHandle interface {
	callback.Slot
	Free()
}

// Context is a session with the native library. Multiple camera and file
// objects may share one session, so Context handles are reference counted:
// Clone hands out another counted reference and Close drops one. The native
// resource is released only when the last reference is gone, and the release
// itself runs as a closure on the camera thread — never inline — so it
// serializes after every earlier-submitted task that may still use the
// handle.
//
// Context handles may be cloned and closed from any goroutine.
type Context struct {
	s      *session
	closed atomic.Bool
}

// session is the shared, counted state behind one or more Context handles.
type session struct {
	refs   atomic.Int32
	handle contextHandle
}

// New opens a session with the native library. The allocation runs on the
// camera thread like every other native call.
func New() (*Context, error) {
	t := NewTask(func() (*native.Context, error) {
		return native.NewContext()
	})
	h, err := t.Wait()
	if err != nil {
		return nil, NewError(CodeNoMemory, "allocating context")
	}

	Logger().Info("gphoto2 session opened")
	return newContext(h), nil
}

// newContext wraps a handle into a fresh session with one reference.
func newContext(h contextHandle) *Context {
	s := &session{handle: h}
	s.refs.Store(1)
	return &Context{s: s}
}

// Clone returns a new counted reference to the same session. The clone must
// be closed independently.
func (c *Context) Clone() *Context {
	c.s.refs.Add(1)
	return &Context{s: c.s}
}

// Close drops this handle's reference. Closing the same handle twice is a
// no-op. When the last reference is dropped the native release is submitted
// to the camera thread and this call returns without waiting for it.
func (c *Context) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	if c.s.refs.Add(-1) == 0 {
		h := c.s.handle
		executor.Spawn(func() {
			h.Free()
		})
		Logger().Info("gphoto2 session released")
	}
	return nil
}

// slot exposes the session's native callback slot to the bridge.
func (c *Context) slot() callback.Slot {
	return c.s.handle
}
