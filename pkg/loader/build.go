package loader

import (
	"fmt"

	"github.com/go-drift/weave/pkg/core"
	"github.com/go-drift/weave/pkg/options"
	"github.com/go-drift/weave/pkg/weave"
)

// Build applies doc to rt and returns the built nodes by name.
//
// Components are built parents first: a component's extends target and its
// local components must be defined in doc or already registered with rt.
// The whole document is checked before rt is touched, so a rejected
// document applies no mixin and registers nothing.
func Build(rt *weave.Runtime, doc *Document, hooks core.HookSet) (map[string]*core.Node, error) {
	if doc == nil {
		return map[string]*core.Node{}, nil
	}
	defs := make(map[string]*Definition, len(doc.Components))
	for i := range doc.Components {
		def := &doc.Components[i]
		if _, dup := defs[def.Name]; dup {
			return nil, configError("loader.Build", def.Name, fmt.Errorf("component defined twice"))
		}
		defs[def.Name] = def
	}

	order, err := buildOrder(rt, doc.Components, defs)
	if err != nil {
		return nil, err
	}

	var partial *options.Options
	if doc.Mixin != nil {
		if partial, err = doc.Mixin.Options(hooks); err != nil {
			return nil, configError("loader.Build", "", err)
		}
	}
	fragments := make([]*options.Options, len(order))
	for i, def := range order {
		if fragments[i], err = def.Fragment.Options(hooks); err != nil {
			return nil, configError("loader.Build", def.Name, err)
		}
	}

	if partial != nil {
		rt.Mixin(partial)
	}
	built := make(map[string]*core.Node, len(order))
	for i, def := range order {
		opts := fragments[i]
		opts.Set("name", def.Name)
		if len(def.Components) > 0 {
			local := options.New(nil)
			for _, name := range def.Components {
				local.Set(name, lookupNode(rt, built, name))
			}
			opts.Set("components", local)
		}

		parent := rt.Root()
		if def.Extends != "" {
			parent = lookupNode(rt, built, def.Extends)
		}
		node := parent.Extend(opts)
		built[def.Name] = node
		if def.Global {
			rt.Component(def.Name, node)
		}
		rt.Logger().Zerolog().Debug().
			Str("component", def.Name).
			Str("extends", def.Extends).
			Int("cid", node.CID()).
			Msg("component built")
	}
	return built, nil
}

// buildOrder sorts definitions so every dependency precedes its
// dependents, keeping file order otherwise.
func buildOrder(rt *weave.Runtime, list []Definition, defs map[string]*Definition) ([]*Definition, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(defs))
	order := make([]*Definition, 0, len(defs))

	var visit func(def *Definition, path []string) error
	visit = func(def *Definition, path []string) error {
		switch state[def.Name] {
		case done:
			return nil
		case visiting:
			return configError("loader.Build", def.Name, fmt.Errorf("cyclic dependency: %v", append(path, def.Name)))
		}
		state[def.Name] = visiting
		deps := def.Components
		if def.Extends != "" {
			deps = append([]string{def.Extends}, deps...)
		}
		for _, dep := range deps {
			if d, ok := defs[dep]; ok {
				if err := visit(d, append(path, def.Name)); err != nil {
					return err
				}
				continue
			}
			if _, ok := registered(rt, dep); !ok {
				return configError("loader.Build", def.Name, fmt.Errorf("undefined component %q", dep))
			}
		}
		state[def.Name] = done
		order = append(order, def)
		return nil
	}

	for i := range list {
		if err := visit(defs[list[i].Name], nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func lookupNode(rt *weave.Runtime, built map[string]*core.Node, name string) *core.Node {
	if n, ok := built[name]; ok {
		return n
	}
	n, _ := registered(rt, name)
	return n
}

func registered(rt *weave.Runtime, name string) (*core.Node, bool) {
	v, ok := rt.Lookup("components", name)
	if !ok {
		return nil, false
	}
	n, ok := v.(*core.Node)
	return n, ok
}
