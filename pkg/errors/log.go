package errors

import (
	"os"

	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that writes structured log events.
// The zero value logs JSON to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Logger receives the events. A zero Logger writes to stderr.
	Logger *zerolog.Logger
}

// NewLogHandler creates a LogHandler writing to logger.
func NewLogHandler(logger zerolog.Logger, verbose bool) *LogHandler {
	return &LogHandler{Verbose: verbose, Logger: &logger}
}

var stderrLogger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "weave").Logger()

func (h *LogHandler) logger() *zerolog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return &stderrLogger
}

// HandleError logs a WeaveError at error level.
func (h *LogHandler) HandleError(err *WeaveError) {
	if err == nil {
		return
	}
	ev := h.logger().Error().
		Str("op", err.Op).
		Str("kind", err.Kind.String()).
		Err(err.Err)
	if err.Component != "" {
		ev = ev.Str("vm", err.Component)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("weave error")
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := h.logger().Error().
		Interface("value", err.Value).
		Str("kind", err.Kind.String())
	if err.Op != "" {
		ev = ev.Str("op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("weave panic")
}

// HandleHookError logs a HookError at error level.
func (h *LogHandler) HandleHookError(err *HookError) {
	if err == nil {
		return
	}
	ev := h.logger().Error().
		Str("hook", err.Hook).
		Str("vm", err.Component)
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg(err.Error())
}

// HandleWarning logs a Warning at warn level.
func (h *LogHandler) HandleWarning(w *Warning) {
	if w == nil {
		return
	}
	ev := h.logger().Warn().
		Str("op", w.Op).
		Str("kind", w.Kind.String())
	if w.Component != "" {
		ev = ev.Str("vm", w.Component)
	}
	ev.Msg(w.Message)
}
