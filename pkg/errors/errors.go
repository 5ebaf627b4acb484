// Package errors provides structured error handling for the weave runtime.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a configuration loading or validation failure.
	KindConfig
	// KindPlugin indicates a plugin installation failure.
	KindPlugin
	// KindInit indicates an instance initialization error.
	KindInit
	// KindHook indicates a lifecycle hook failure.
	KindHook
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindPlugin:
		return "plugin"
	case KindInit:
		return "init"
	case KindHook:
		return "hook"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// WeaveError represents a structured error in the weave runtime.
type WeaveError struct {
	// Op is the operation that failed (e.g., "loader.LoadConfig").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Component is the formatted component name, if applicable.
	Component string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *WeaveError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s [%s] component=%s: %v", e.Op, e.Kind, e.Component, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *WeaveError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "weave.Use").
	Op string
	// Kind classifies Op.
	Kind ErrorKind
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// HookError represents a failure inside a lifecycle hook.
type HookError struct {
	// Hook is the lifecycle hook name (created, mounted, ...).
	Hook string
	// Component is the formatted name of the instance's component.
	Component string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *HookError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s hook of %s: %v", e.Hook, e.Component, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s hook of %s: %v", e.Hook, e.Component, e.Err)
	}
	return fmt.Sprintf("unknown error in %s hook of %s", e.Hook, e.Component)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// Warning is an advisory diagnostic. Execution always continues after a
// warning is reported.
type Warning struct {
	// Op is the operation that produced the warning.
	Op string
	// Kind classifies Op.
	Kind ErrorKind
	// Component is the formatted component name, if applicable.
	Component string
	// Message describes the problem.
	Message string
	// Timestamp is when the warning was reported.
	Timestamp time.Time
}

func (w *Warning) Error() string {
	if w.Component != "" {
		return fmt.Sprintf("%s (found in %s)", w.Message, w.Component)
	}
	return w.Message
}

// ErrorHandler receives errors reported by the weave runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *WeaveError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleHookError is called when a lifecycle hook fails.
	HandleHookError(err *HookError)
	// HandleWarning is called for advisory diagnostics.
	HandleWarning(w *Warning)
}
