// Package native is the cgo boundary to libgphoto2.
//
// It owns the GPContext allocation, the trampoline function pointers wired
// into the context's callback slots, and the routing of libgphoto2's own log
// stream into the library logger. Everything here relies on the camera-thread
// invariant: slot mutation and trampoline invocation both happen on the one
// worker thread, so the handler bundles are swapped without locks.
package native

/*
#cgo pkg-config: libgphoto2
#include <stdlib.h>
#include <gphoto2/gphoto2-context.h>
#include <gphoto2/gphoto2-port-log.h>

extern unsigned int gpgoProgressStart(GPContext *context, float target, char *text, void *data);
extern void gpgoProgressUpdate(GPContext *context, unsigned int id, float current, void *data);
extern void gpgoProgressStop(GPContext *context, unsigned int id, void *data);
extern GPContextFeedback gpgoCancel(GPContext *context, void *data);
extern void gpgoContextError(GPContext *context, char *text, void *data);
extern void gpgoContextStatus(GPContext *context, char *text, void *data);
extern void gpgoContextMessage(GPContext *context, char *text, void *data);
extern void gpgoLog(GPLogLevel level, char *domain, char *str, void *data);

static void gpgo_install_progress(GPContext *ctx, void *data) {
	gp_context_set_progress_funcs(ctx,
		(GPContextProgressStartFunc) gpgoProgressStart,
		(GPContextProgressUpdateFunc) gpgoProgressUpdate,
		(GPContextProgressStopFunc) gpgoProgressStop,
		data);
}

static void gpgo_clear_progress(GPContext *ctx) {
	gp_context_set_progress_funcs(ctx, NULL, NULL, NULL, NULL);
}

static void gpgo_install_cancel(GPContext *ctx, void *data) {
	gp_context_set_cancel_func(ctx, (GPContextCancelFunc) gpgoCancel, data);
}

static void gpgo_clear_cancel(GPContext *ctx) {
	gp_context_set_cancel_func(ctx, NULL, NULL);
}

static void gpgo_install_reporting(GPContext *ctx, void *data) {
	gp_context_set_error_func(ctx, (GPContextErrorFunc) gpgoContextError, data);
	gp_context_set_status_func(ctx, (GPContextStatusFunc) gpgoContextStatus, data);
	gp_context_set_message_func(ctx, (GPContextMessageFunc) gpgoContextMessage, data);
}

static void gpgo_clear_reporting(GPContext *ctx) {
	gp_context_set_error_func(ctx, NULL, NULL);
	gp_context_set_status_func(ctx, NULL, NULL);
	gp_context_set_message_func(ctx, NULL, NULL);
}

static int gpgo_add_log_func(void *data) {
	return gp_log_add_func(GP_LOG_DEBUG, (GPLogFunc) gpgoLog, data);
}
*/
import "C"

import (
	"errors"
	"sync"
	"unsafe"

	pointer "github.com/mattn/go-pointer"

	"github.com/maxicarlos08/gphoto2-go/internal/callback"
)

// Context wraps one *C.GPContext. The Go-side reference counting lives in the
// root package; this type holds exactly one native reference, released by
// Free. All methods except NewContext must run on the camera thread.
type Context struct {
	ptr *C.GPContext

	// Opaque user-data pointers currently installed in the native slots.
	// Released on clear so the handler bundles can be collected.
	progressData unsafe.Pointer
	cancelData   unsafe.Pointer
}

// NewContext allocates a GPContext and attaches the error/status/message
// reporting funcs that feed the library logger. The first call also hooks
// libgphoto2's log stream.
func NewContext() (*Context, error) {
	installLogFunc()

	ptr := C.gp_context_new()
	if ptr == nil {
		return nil, errors.New("native: gp_context_new returned NULL")
	}

	c := &Context{ptr: ptr}
	// The reporting trampolines route straight to the library logger and
	// carry no per-context state.
	C.gpgo_install_reporting(ptr, nil)
	return c, nil
}

// SetProgressFuncs installs the progress trampolines carrying p.
func (c *Context) SetProgressFuncs(p callback.ProgressFuncs) {
	if c.progressData != nil {
		C.gpgo_clear_progress(c.ptr)
		pointer.Unref(c.progressData)
	}
	c.progressData = pointer.Save(&p)
	C.gpgo_install_progress(c.ptr, c.progressData)
}

// SetCancelFunc installs the cancel trampoline polling cancelled.
func (c *Context) SetCancelFunc(cancelled func() bool) {
	if c.cancelData != nil {
		C.gpgo_clear_cancel(c.ptr)
		pointer.Unref(c.cancelData)
	}
	c.cancelData = pointer.Save(cancelled)
	C.gpgo_install_cancel(c.ptr, c.cancelData)
}

// ClearFuncs detaches the progress and cancel trampolines and drops their
// handler bundles. Reporting funcs stay: they belong to the context, not to
// any one task.
func (c *Context) ClearFuncs() {
	if c.progressData != nil {
		C.gpgo_clear_progress(c.ptr)
		pointer.Unref(c.progressData)
		c.progressData = nil
	}
	if c.cancelData != nil {
		C.gpgo_clear_cancel(c.ptr)
		pointer.Unref(c.cancelData)
		c.cancelData = nil
	}
}

// Free releases the native reference. The root package routes this through
// the camera thread so it can never interleave with a task still using the
// handle.
func (c *Context) Free() {
	c.ClearFuncs()
	C.gpgo_clear_reporting(c.ptr)
	C.gp_context_unref(c.ptr)
	c.ptr = nil
}

var logOnce sync.Once

func installLogFunc() {
	logOnce.Do(func() {
		// The id returned by gp_log_add_func is only needed to remove the
		// hook again; ours lives for the whole process.
		C.gpgo_add_log_func(nil)
	})
}
