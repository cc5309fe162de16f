package gphoto2

// ThreadBound carries a value that is only safe to touch on the camera
// thread — typically a raw native handle captured by a task closure.
//
// Go happily lets any value cross a goroutine boundary; for libgphoto2
// handles that crossing is only sound because every dereference happens on
// the one camera thread. ThreadBound exists to make that contract visible in
// signatures instead of leaving it as an ambient assumption: constructing
// one is the documented assertion "this value moves to the camera thread and
// is never dereferenced anywhere else".
//
//	handle := gphoto2.BindToCameraThread(rawCamera)
//	t := gphoto2.NewTask(func() (int, error) {
//		cam := handle.Get() // camera thread only
//		...
//	}, gphoto2.WithContext(ctx))
type ThreadBound[T any] struct {
	v T
}

// BindToCameraThread wraps v, asserting it will only be used on the camera
// thread from now on.
func BindToCameraThread[T any](v T) ThreadBound[T] {
	return ThreadBound[T]{v: v}
}

// Get returns the wrapped value. Must only be called from a task closure
// running on the camera thread.
func (b ThreadBound[T]) Get() T {
	return b.v
}
