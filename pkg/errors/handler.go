package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// handlerSlot boxes the installed handler so it can be swapped atomically.
type handlerSlot struct {
	h ErrorHandler
}

var current atomic.Pointer[handlerSlot]

func init() {
	current.Store(&handlerSlot{h: &LogHandler{}})
}

// SetHandler installs h as the process-wide handler and returns the one it
// replaces. Pass nil to restore a LogHandler writing to stderr.
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	return current.Swap(&handlerSlot{h: h}).h
}

// Handler returns the process-wide handler.
func Handler() ErrorHandler {
	return current.Load().h
}

// KindOf classifies an operation name of the form "package.Function":
// plugin installation, instance initialization, lifecycle hooks, and
// definition or configuration handling.
func KindOf(op string) ErrorKind {
	pkg, fn, _ := strings.Cut(op, ".")
	switch {
	case op == "weave.Use":
		return KindPlugin
	case op == "core.CallHook":
		return KindHook
	case pkg == "core" && (strings.HasPrefix(fn, "init") || fn == "Mount" || fn == "Instantiate"):
		return KindInit
	case pkg == "loader", op == "core.Extend", op == "weave.Component", op == "weave.SetConfig", op == "weave.New":
		return KindConfig
	}
	return KindUnknown
}

// NewWarning builds a Warning classified by KindOf(op).
func NewWarning(op, component, message string) *Warning {
	return &Warning{
		Op:        op,
		Kind:      KindOf(op),
		Component: component,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Report sends err to the handler, stamping it when Timestamp is zero.
func Report(err *WeaveError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic sends a recovered panic to the handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	Handler().HandlePanic(err)
}

// ReportHookError sends a failed lifecycle hook to the handler.
func ReportHookError(err *HookError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleHookError(err)
}

// Warn sends an advisory diagnostic to the handler. An unclassified
// warning is classified by its Op.
func Warn(w *Warning) {
	if w == nil {
		return
	}
	if w.Kind == KindUnknown {
		w.Kind = KindOf(w.Op)
	}
	if w.Timestamp.IsZero() {
		w.Timestamp = time.Now()
	}
	Handler().HandleWarning(w)
}

// Recover reports a panic raised by code the runtime calls on a user's
// behalf, such as a plugin's install function. It must be deferred:
//
//	defer errors.Recover("weave.Use")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{
			Op:         op,
			Kind:       KindOf(op),
			Value:      r,
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		})
	}
}

// CaptureStack returns the calling goroutine's stack. Frames of the Go
// runtime and of this package are left out, so the first frame is the
// user code that failed.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if !internalFrame(frame.Function) {
			sb.WriteString(frame.Function)
			sb.WriteString("\n\t")
			sb.WriteString(frame.File)
			sb.WriteString(":")
			sb.WriteString(strconv.Itoa(frame.Line))
			sb.WriteString("\n")
		}
		if !more {
			break
		}
	}
	return sb.String()
}

const packagePath = "github.com/go-drift/weave/pkg/errors."

func internalFrame(fn string) bool {
	return strings.HasPrefix(fn, "runtime.") || strings.HasPrefix(fn, packagePath)
}
