package core

import (
	"github.com/go-drift/weave/pkg/options"
)

// Prop declares a component property.
type Prop struct {
	Default  any
	Required bool
}

// PlainState fills Props from the placeholder's prop values and Data from
// the "data" option. Values are plain maps with no change tracking.
type PlainState struct{}

// InitState populates vm.Props and vm.Data.
func (PlainState) InitState(vm *Instance) {
	vm.initProps()
	vm.initData()
}

func (vm *Instance) initProps() {
	vm.Props = make(map[string]any)
	declared, ok := vm.Options.Get("props")
	if !ok || declared == nil {
		return
	}
	propsData, _ := vm.Options.Value(KeyPropsData).(map[string]any)
	for key, prop := range normalizeProps(declared) {
		if v, ok := propsData[key]; ok {
			vm.Props[key] = v
			continue
		}
		if prop.Required {
			vm.lineage().warn("core.initProps", vm.Name(), `missing required prop: "`+key+`"`)
		}
		if def, ok := prop.Default.(func() any); ok {
			vm.Props[key] = def()
		} else if prop.Default != nil {
			vm.Props[key] = prop.Default
		}
	}
}

func normalizeProps(declared any) map[string]Prop {
	out := make(map[string]Prop)
	add := func(key string, v any) {
		switch p := v.(type) {
		case Prop:
			out[key] = p
		case *Prop:
			out[key] = *p
		default:
			out[key] = Prop{}
		}
	}
	switch d := declared.(type) {
	case *options.Options:
		for _, key := range d.Keys() {
			add(key, d.Value(key))
		}
	case map[string]any:
		for key, v := range d {
			add(key, v)
		}
	case []string:
		for _, key := range d {
			add(key, nil)
		}
	default:
		for _, e := range options.ToSequence(declared) {
			if key, ok := e.(string); ok {
				add(key, nil)
			}
		}
	}
	return out
}

// initData evaluates the "data" option. Subclass definitions must use a
// function so each instance gets its own map; a shared map is copied and
// reported.
func (vm *Instance) initData() {
	vm.Data = make(map[string]any)
	switch d := vm.Options.Value("data").(type) {
	case nil:
	case func(*Instance) map[string]any:
		for k, v := range d(vm) {
			vm.Data[k] = v
		}
	case map[string]any:
		if vm.Node != nil && !vm.Node.IsRoot() {
			vm.lineage().warn("core.initData", vm.Name(),
				`the "data" option should be a function that returns a per-instance value in component definitions`)
		}
		for k, v := range d {
			vm.Data[k] = v
		}
	default:
		vm.lineage().warn("core.initData", vm.Name(), "data functions should return a map")
	}
}
