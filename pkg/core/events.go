package core

import "strings"

// Listener handles an event emitted by an instance.
type Listener func(args ...any)

// initEvents sets up the event registry and attaches the listeners the
// parent declared on this instance's placeholder.
func (vm *Instance) initEvents() {
	vm.events = make(map[string][]Listener)
	vm.hasHookEvent = false
	listeners, _ := vm.Options.Value(KeyParentListeners).(map[string]any)
	for event, handler := range listeners {
		for _, l := range toListeners(handler) {
			vm.On(event, l)
		}
	}
}

func toListeners(v any) []Listener {
	switch h := v.(type) {
	case Listener:
		return []Listener{h}
	case func(...any):
		return []Listener{h}
	case []Listener:
		return h
	case []any:
		var out []Listener
		for _, e := range h {
			out = append(out, toListeners(e)...)
		}
		return out
	}
	return nil
}

// On registers l for event.
func (vm *Instance) On(event string, l Listener) *Instance {
	if vm.events == nil {
		vm.events = make(map[string][]Listener)
	}
	vm.events[event] = append(vm.events[event], l)
	if strings.HasPrefix(event, "hook:") {
		vm.hasHookEvent = true
	}
	return vm
}

// Off removes every listener for event. An empty event removes all
// listeners.
func (vm *Instance) Off(event string) *Instance {
	if event == "" {
		vm.events = make(map[string][]Listener)
		return vm
	}
	delete(vm.events, event)
	return vm
}

// Emit calls the listeners registered for event in registration order.
func (vm *Instance) Emit(event string, args ...any) *Instance {
	for _, l := range vm.events[event] {
		l(args...)
	}
	return vm
}

// ListenerCount returns the number of listeners registered for event.
func (vm *Instance) ListenerCount(event string) int {
	return len(vm.events[event])
}
