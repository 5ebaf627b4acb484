package core

import (
	"time"

	"github.com/go-drift/weave/pkg/errors"
	"github.com/go-drift/weave/pkg/options"
)

// Hook is a lifecycle hook entry. Hooks are compared by pointer, so the
// same *Hook mixed in at several levels of a hierarchy runs once.
type Hook struct {
	name string
	fn   func(vm *Instance)
}

// NewHook creates a hook. name is used in diagnostics only.
func NewHook(name string, fn func(vm *Instance)) *Hook {
	return &Hook{name: name, fn: fn}
}

// Name returns the diagnostic name of the hook.
func (h *Hook) Name() string {
	return h.name
}

// Call runs the hook against vm.
func (h *Hook) Call(vm *Instance) {
	if h != nil && h.fn != nil {
		h.fn(vm)
	}
}

// HookSet maps hook names to hooks, for configurations that refer to
// hooks by name.
type HookSet map[string]*Hook

// Add registers fn under name and returns the new hook.
func (s HookSet) Add(name string, fn func(vm *Instance)) *Hook {
	h := NewHook(name, fn)
	s[name] = h
	return h
}

// HookDispatcher runs the hook chain registered for a lifecycle event.
type HookDispatcher interface {
	CallHook(vm *Instance, hook string)
}

// StateInitializer populates an instance's local state (props, data).
type StateInitializer interface {
	InitState(vm *Instance)
}

// Mounter attaches an instance to a host target.
type Mounter interface {
	Mount(vm *Instance, target any)
}

// Collaborators are the lifecycle stages Instantiate delegates to.
// Nil fields use DefaultHookDispatcher, PlainState and RecordingMounter.
type Collaborators struct {
	Hooks   HookDispatcher
	State   StateInitializer
	Mounter Mounter
}

func (c Collaborators) withDefaults() Collaborators {
	if c.Hooks == nil {
		c.Hooks = DefaultHookDispatcher{}
	}
	if c.State == nil {
		c.State = PlainState{}
	}
	if c.Mounter == nil {
		c.Mounter = RecordingMounter{}
	}
	return c
}

// DefaultHookDispatcher calls every entry of the hook's chain in order.
// A panicking hook is reported as an errors.HookError and the remaining
// entries still run. Listeners registered for "hook:<name>" are emitted
// afterwards.
type DefaultHookDispatcher struct{}

// CallHook runs the chain registered on vm's options for hook.
func (DefaultHookDispatcher) CallHook(vm *Instance, hook string) {
	for _, entry := range options.ToSequence(vm.Options.Value(hook)) {
		invokeHook(vm, hook, entry)
	}
	if vm.hasHookEvent {
		vm.Emit("hook:" + hook)
	}
}

func invokeHook(vm *Instance, hook string, entry any) {
	defer func() {
		if r := recover(); r != nil {
			errors.ReportHookError(&errors.HookError{
				Hook:       hook,
				Component:  vm.Name(),
				Recovered:  r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
		}
	}()
	switch fn := entry.(type) {
	case *Hook:
		fn.Call(vm)
	case func(*Instance):
		fn(vm)
	case nil:
	default:
		vm.lineage().warn("core.CallHook", vm.Name(), "ignoring "+hook+" hook entry that is not a *core.Hook")
	}
}

// CallHook runs hook on vm through the hierarchy's HookDispatcher.
func (vm *Instance) CallHook(hook string) {
	if !vm.checkCreated("core.CallHook") {
		return
	}
	vm.Node.lin.env.Collaborators.Hooks.CallHook(vm, hook)
}

// RecordingMounter records the target and runs the mount hooks without
// touching any host tree.
type RecordingMounter struct{}

// Mount marks vm as mounted on target.
func (RecordingMounter) Mount(vm *Instance, target any) {
	vm.MountTarget = target
	vm.CallHook("beforeMount")
	vm.IsMounted = true
	vm.CallHook("mounted")
}

// Mount attaches vm to target through the hierarchy's Mounter.
func (vm *Instance) Mount(target any) *Instance {
	if !vm.checkCreated("core.Mount") {
		return vm
	}
	vm.Node.lin.env.Collaborators.Mounter.Mount(vm, target)
	return vm
}
