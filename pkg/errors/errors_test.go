package errors

import (
	"bytes"
	stderrors "errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeaveErrorString(t *testing.T) {
	err := &WeaveError{
		Op:   "loader.LoadConfig",
		Kind: KindConfig,
		Err:  stderrors.New("bad yaml"),
	}
	assert.Equal(t, "loader.LoadConfig [config]: bad yaml", err.Error())
}

func TestWeaveErrorWithComponent(t *testing.T) {
	err := &WeaveError{
		Op:        "core.Instantiate",
		Kind:      KindInit,
		Component: "<Card>",
		Err:       stderrors.New("boom"),
	}
	assert.Contains(t, err.Error(), "component=<Card>")
}

func TestWeaveErrorUnwrap(t *testing.T) {
	inner := stderrors.New("inner")
	err := &WeaveError{Op: "x", Err: inner}
	assert.True(t, stderrors.Is(err, inner))
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindPlugin, "plugin"},
		{KindInit, "init"},
		{KindHook, "hook"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String(), "ErrorKind(%d)", tt.kind)
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	assert.Equal(t, "panic: test panic", err.Error())

	err.Op = "weave.Use"
	assert.Equal(t, "panic in weave.Use: test panic", err.Error())
}

func TestHookErrorString(t *testing.T) {
	err := &HookError{Hook: "created", Component: "<Card>", Recovered: "nil map"}
	assert.Equal(t, "panic in created hook of <Card>: nil map", err.Error())

	err2 := &HookError{Hook: "mounted", Component: "<Root>", Err: stderrors.New("failed")}
	assert.Equal(t, "error in mounted hook of <Root>: failed", err2.Error())

	err3 := &HookError{Hook: "mounted", Component: "<Root>"}
	assert.Equal(t, "unknown error in mounted hook of <Root>", err3.Error())
}

func TestWarningString(t *testing.T) {
	w := &Warning{Message: "invalid component name"}
	assert.Equal(t, "invalid component name", w.Error())
	w.Component = "<Card>"
	assert.Equal(t, "invalid component name (found in <Card>)", w.Error())
}

func TestReport(t *testing.T) {
	var captured *WeaveError
	handler := &testHandler{onError: func(err *WeaveError) { captured = err }}
	SetHandler(handler)
	defer SetHandler(nil)

	Report(&WeaveError{Op: "test.op", Kind: KindInit, Err: stderrors.New("x")})

	require.NotNil(t, captured)
	assert.Equal(t, "test.op", captured.Op)
	assert.False(t, captured.Timestamp.IsZero())
}

func TestReportNil(t *testing.T) {
	handler := &testHandler{onError: func(*WeaveError) { t.Fatal("nil error should not be reported") }}
	SetHandler(handler)
	defer SetHandler(nil)
	Report(nil)
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	handler := &testHandler{onPanic: func(err *PanicError) { captured = err }}
	SetHandler(handler)
	defer SetHandler(nil)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	require.NotNil(t, captured)
	assert.Equal(t, "intentional test panic", captured.Value)
	assert.Equal(t, "test.recover", captured.Op)
	assert.NotEmpty(t, captured.StackTrace)
	assert.NotContains(t, captured.StackTrace, "runtime.gopanic")
}

func TestRecoverClassifiesPluginPanics(t *testing.T) {
	var captured *PanicError
	SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(nil)

	func() {
		defer Recover("weave.Use")
		panic("install failed")
	}()

	require.NotNil(t, captured)
	assert.Equal(t, KindPlugin, captured.Kind)
}

func TestKindOf(t *testing.T) {
	tests := map[string]ErrorKind{
		"weave.Use":           KindPlugin,
		"core.CallHook":       KindHook,
		"core.initInjections": KindInit,
		"core.initData":       KindInit,
		"core.Mount":          KindInit,
		"core.Extend":         KindConfig,
		"weave.Component":     KindConfig,
		"weave.SetConfig":     KindConfig,
		"loader.Build":        KindConfig,
		"other.Thing":         KindUnknown,
		"":                    KindUnknown,
	}
	for op, want := range tests {
		assert.Equal(t, want, KindOf(op), "KindOf(%q)", op)
	}
}

func TestNewWarning(t *testing.T) {
	w := NewWarning("core.initProps", "<Card>", `missing required prop: "title"`)
	assert.Equal(t, KindInit, w.Kind)
	assert.False(t, w.Timestamp.IsZero())
	assert.Equal(t, `missing required prop: "title" (found in <Card>)`, w.Error())
}

func TestReportHookErrorAndWarn(t *testing.T) {
	var hookErr *HookError
	var warning *Warning
	SetHandler(&testHandler{
		onHookError: func(err *HookError) { hookErr = err },
		onWarning:   func(w *Warning) { warning = w },
	})
	defer SetHandler(nil)

	ReportHookError(&HookError{Hook: "created", Component: "<Anonymous>", Recovered: "x"})
	Warn(&Warning{Op: "weave.SetConfig", Message: "do not replace the config object"})

	require.NotNil(t, hookErr)
	assert.False(t, hookErr.Timestamp.IsZero())
	require.NotNil(t, warning)
	assert.Equal(t, "weave.SetConfig", warning.Op)
	assert.Equal(t, KindConfig, warning.Kind)
	assert.False(t, warning.Timestamp.IsZero())
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	assert.Contains(t, stack, "testing.tRunner")
	assert.NotContains(t, stack, "CaptureStack")
	assert.NotContains(t, stack, "runtime.goexit")
}

func TestSetHandlerReturnsPrevious(t *testing.T) {
	h := &testHandler{}
	SetHandler(nil)
	prev := SetHandler(h)
	_, ok := prev.(*LogHandler)
	assert.True(t, ok, "previous handler = %T, want *LogHandler", prev)
	assert.Same(t, h, Handler())

	SetHandler(nil)
	_, ok = Handler().(*LogHandler)
	assert.True(t, ok, "SetHandler(nil) should restore LogHandler, got %T", Handler())
}

func TestLogHandlerWritesStructuredEvents(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHandler(zerolog.New(&buf), false)

	h.HandleWarning(&Warning{Op: "core.Extend", Component: "<1bad>", Message: "invalid component name"})
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"op":"core.Extend"`)
	assert.Contains(t, buf.String(), `"kind":"unknown"`)
	assert.Contains(t, buf.String(), "invalid component name")

	buf.Reset()
	h.HandleError(&WeaveError{Op: "loader.Parse", Kind: KindConfig, Err: stderrors.New("bad")})
	assert.Contains(t, buf.String(), `"kind":"config"`)
	assert.Contains(t, buf.String(), `"error":"bad"`)
}

type testHandler struct {
	onError     func(*WeaveError)
	onPanic     func(*PanicError)
	onHookError func(*HookError)
	onWarning   func(*Warning)
}

func (h *testHandler) HandleError(err *WeaveError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func (h *testHandler) HandleHookError(err *HookError) {
	if h.onHookError != nil {
		h.onHookError(err)
	}
}

func (h *testHandler) HandleWarning(w *Warning) {
	if h.onWarning != nil {
		h.onWarning(w)
	}
}
