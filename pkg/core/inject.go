package core

import (
	"maps"

	"github.com/go-drift/weave/pkg/options"
)

// Inject describes one injected key: the provided key it reads from and
// the value used when no ancestor provides it.
type Inject struct {
	From    string
	Default any
}

// initInjections resolves the "inject" option against the values provided
// by vm's ancestors. Missing keys without a default are reported.
func (vm *Instance) initInjections() {
	vm.Injected = make(map[string]any)
	spec, ok := vm.Options.Get("inject")
	if !ok || spec == nil {
		return
	}
	for key, inj := range normalizeInject(spec) {
		if v, found := vm.lookupProvided(inj.From); found {
			vm.Injected[key] = v
			continue
		}
		if inj.Default != nil {
			vm.Injected[key] = inj.Default
			continue
		}
		vm.lineage().warn("core.initInjections", vm.Name(), `injection "`+key+`" not found`)
	}
}

// lookupProvided searches the ancestors of vm, nearest first.
func (vm *Instance) lookupProvided(key string) (any, bool) {
	for cur := vm.Parent; cur != nil; cur = cur.Parent {
		if v, ok := cur.Provided[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// normalizeInject accepts a list of names, a map or an Options whose values
// are nil, a string alias, or an Inject.
func normalizeInject(spec any) map[string]Inject {
	out := make(map[string]Inject)
	add := func(key string, v any) {
		switch t := v.(type) {
		case Inject:
			if t.From == "" {
				t.From = key
			}
			out[key] = t
		case *Inject:
			inj := *t
			if inj.From == "" {
				inj.From = key
			}
			out[key] = inj
		case string:
			out[key] = Inject{From: t}
		default:
			out[key] = Inject{From: key}
		}
	}
	switch s := spec.(type) {
	case *options.Options:
		for _, key := range s.Keys() {
			add(key, s.Value(key))
		}
	case map[string]any:
		for key, v := range s {
			add(key, v)
		}
	case []string:
		for _, key := range s {
			add(key, nil)
		}
	default:
		for _, e := range options.ToSequence(spec) {
			if key, ok := e.(string); ok {
				add(key, nil)
			}
		}
	}
	return out
}

// initProvide evaluates the "provide" option after local state exists, so
// provider functions can read props and data.
func (vm *Instance) initProvide() {
	vm.Provided = nil
	switch p := vm.Options.Value("provide").(type) {
	case func(*Instance) map[string]any:
		vm.Provided = p(vm)
	case map[string]any:
		vm.Provided = maps.Clone(p)
	case *options.Options:
		vm.Provided = p.Map()
	}
}
