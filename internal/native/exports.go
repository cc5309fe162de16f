package native

/*
#include <gphoto2/gphoto2-context.h>
#include <gphoto2/gphoto2-port-log.h>
*/
import "C"

import (
	"context"
	"log/slog"
	"unsafe"

	pointer "github.com/mattn/go-pointer"

	"github.com/maxicarlos08/gphoto2-go/internal/callback"
)

// The exported functions below are the trampolines libgphoto2 calls back
// into. They run on the camera thread, in the middle of the one closure that
// installed them, so restoring the opaque pointer needs no synchronization
// against teardown.

//export gpgoProgressStart
func gpgoProgressStart(_ *C.GPContext, target C.float, text *C.char, data unsafe.Pointer) C.uint {
	p := pointer.Restore(data).(*callback.ProgressFuncs)
	return C.uint(p.Start(float64(target), C.GoString(text)))
}

//export gpgoProgressUpdate
func gpgoProgressUpdate(_ *C.GPContext, id C.uint, current C.float, data unsafe.Pointer) {
	p := pointer.Restore(data).(*callback.ProgressFuncs)
	p.Update(uint32(id), float64(current))
}

//export gpgoProgressStop
func gpgoProgressStop(_ *C.GPContext, id C.uint, data unsafe.Pointer) {
	p := pointer.Restore(data).(*callback.ProgressFuncs)
	p.Stop(uint32(id))
}

//export gpgoCancel
func gpgoCancel(_ *C.GPContext, data unsafe.Pointer) C.GPContextFeedback {
	cancelled := pointer.Restore(data).(func() bool)
	if cancelled() {
		return C.GP_CONTEXT_FEEDBACK_CANCEL
	}
	return C.GP_CONTEXT_FEEDBACK_OK
}

//export gpgoContextError
func gpgoContextError(_ *C.GPContext, text *C.char, _ unsafe.Pointer) {
	logger().Warn("libgphoto2 error", "text", C.GoString(text))
}

//export gpgoContextStatus
func gpgoContextStatus(_ *C.GPContext, text *C.char, _ unsafe.Pointer) {
	logger().Info("libgphoto2 status", "text", C.GoString(text))
}

//export gpgoContextMessage
func gpgoContextMessage(_ *C.GPContext, text *C.char, _ unsafe.Pointer) {
	logger().Info("libgphoto2 message", "text", C.GoString(text))
}

//export gpgoLog
func gpgoLog(level C.GPLogLevel, domain *C.char, str *C.char, _ unsafe.Pointer) {
	lvl := slog.LevelDebug
	if level == C.GP_LOG_ERROR {
		lvl = slog.LevelWarn
	}
	logger().Log(context.Background(), lvl, "libgphoto2",
		"domain", C.GoString(domain),
		"text", C.GoString(str))
}
