package gphoto2

import (
	"errors"
	"fmt"
)

// Package errors for the task machinery.
var (
	// ErrTaskAborted is returned by Task.Wait and Task.Poll when the task's
	// closure terminated without delivering a result (it panicked on the
	// camera thread). The camera thread itself survives; only the one task
	// is lost.
	ErrTaskAborted = errors.New("gphoto2: task aborted without delivering a result")
)

// Code is a libgphoto2 result code. The numeric values are part of the
// library's stable ABI; negative values are errors, GP_OK is zero.
type Code int

// Result codes from gphoto2-port-result.h.
const (
	CodeOK                 Code = 0
	CodeError              Code = -1
	CodeBadParameters      Code = -2
	CodeNoMemory           Code = -3
	CodeLibrary            Code = -4
	CodeUnknownPort        Code = -5
	CodeNotSupported       Code = -6
	CodeIO                 Code = -7
	CodeFixedLimitExceeded Code = -8
	CodeTimeout            Code = -10
)

// Result codes from gphoto2-result.h.
const (
	CodeCorruptedData     Code = -102
	CodeFileExists        Code = -103
	CodeModelNotFound     Code = -105
	CodeDirectoryNotFound Code = -107
	CodeFileNotFound      Code = -108
	CodeDirectoryExists   Code = -109
	CodeCameraBusy        Code = -110
	CodePathNotAbsolute   Code = -111
	CodeCancel            Code = -112
	CodeCameraError       Code = -113
	CodeOSFailure         Code = -114
	CodeNoSpace           Code = -115
)

// Kind classifies a result code into a coarse error category, for callers
// that want to branch without tracking raw codes.
type Kind int

const (
	// KindOther covers GP_ERROR and any code without a dedicated kind.
	KindOther Kind = iota
	KindBadParameters
	KindCameraBusy
	KindCameraError
	KindCancelled
	KindCorruptedData
	KindDirectoryExists
	KindDirectoryNotFound
	KindFileExists
	KindFileNotFound
	KindFixedLimitExceeded
	KindIO
	KindModelNotFound
	KindNoMemory
	KindNoSpace
	KindNotSupported
	KindOSFailure
	KindPathNotAbsolute
	KindTimeout
	KindUnknownPort
)

// Error is a failure reported by the native library: a result code plus
// optional detail describing the operation that failed.
type Error struct {
	code   Code
	detail string
}

// NewError builds an Error from a native result code. detail may be empty.
func NewError(code Code, detail string) *Error {
	return &Error{code: code, detail: detail}
}

// Code returns the raw libgphoto2 result code.
func (e *Error) Code() Code { return e.code }

// Kind classifies the error.
func (e *Error) Kind() Kind {
	switch e.code {
	case CodeBadParameters:
		return KindBadParameters
	case CodeCameraBusy:
		return KindCameraBusy
	case CodeCameraError:
		return KindCameraError
	case CodeCancel:
		return KindCancelled
	case CodeCorruptedData:
		return KindCorruptedData
	case CodeDirectoryExists:
		return KindDirectoryExists
	case CodeDirectoryNotFound:
		return KindDirectoryNotFound
	case CodeFileExists:
		return KindFileExists
	case CodeFileNotFound:
		return KindFileNotFound
	case CodeFixedLimitExceeded:
		return KindFixedLimitExceeded
	case CodeIO:
		return KindIO
	case CodeModelNotFound:
		return KindModelNotFound
	case CodeNoMemory:
		return KindNoMemory
	case CodeNoSpace:
		return KindNoSpace
	case CodeNotSupported:
		return KindNotSupported
	case CodeOSFailure:
		return KindOSFailure
	case CodePathNotAbsolute:
		return KindPathNotAbsolute
	case CodeTimeout:
		return KindTimeout
	case CodeUnknownPort:
		return KindUnknownPort
	default:
		return KindOther
	}
}

func (e *Error) Error() string {
	if e.detail != "" {
		return fmt.Sprintf("gphoto2: %s: %s", e.detail, e.code)
	}
	return fmt.Sprintf("gphoto2: %s", e.code)
}

// String returns the canonical description of the result code.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "no error" // GP_OK
	case CodeError:
		return "unspecified error"
	case CodeBadParameters:
		return "bad parameters"
	case CodeNoMemory:
		return "out of memory"
	case CodeLibrary:
		return "error in the camera driver"
	case CodeUnknownPort:
		return "unknown port"
	case CodeNotSupported:
		return "operation not supported"
	case CodeIO:
		return "I/O problem"
	case CodeFixedLimitExceeded:
		return "fixed limit exceeded"
	case CodeTimeout:
		return "timeout"
	case CodeCorruptedData:
		return "corrupted data received"
	case CodeFileExists:
		return "file already exists"
	case CodeModelNotFound:
		return "camera model not found"
	case CodeDirectoryNotFound:
		return "directory not found"
	case CodeFileNotFound:
		return "file not found"
	case CodeDirectoryExists:
		return "directory already exists"
	case CodeCameraBusy:
		return "the camera is busy"
	case CodePathNotAbsolute:
		return "path is not absolute"
	case CodeCancel:
		return "operation cancelled"
	case CodeCameraError:
		return "the camera reported an error"
	case CodeOSFailure:
		return "operating system error"
	case CodeNoSpace:
		return "not enough space"
	default:
		return fmt.Sprintf("result code %d", int(c))
	}
}
