package weave

import (
	"github.com/go-drift/weave/pkg/core"
	"github.com/go-drift/weave/pkg/options"
)

// Component registers a global component under name and returns its
// definition. def may be an existing *core.Node, or an *options.Options
// that is extended from the root (its name defaults to name). Registered
// components are visible to every definition through its components map.
func (rt *Runtime) Component(name string, def any) *core.Node {
	if err := core.ValidateComponentName(name); err != nil {
		rt.warn("weave.Component", "", err.Error())
	}
	var node *core.Node
	switch d := def.(type) {
	case *core.Node:
		node = d
	case *options.Options:
		if d.String("name") == "" {
			d.Set("name", name)
		}
		node = rt.root.Extend(d)
	case map[string]any:
		raw := options.New(d)
		if raw.String("name") == "" {
			raw.Set("name", name)
		}
		node = rt.root.Extend(raw)
	default:
		rt.warn("weave.Component", "", "component definition must be a *core.Node or options")
		return nil
	}
	rt.register("components", name, node)
	return node
}

// Directive registers a global directive definition.
func (rt *Runtime) Directive(name string, def any) {
	rt.register("directives", name, def)
}

// Filter registers a global filter.
func (rt *Runtime) Filter(name string, def any) {
	rt.register("filters", name, def)
}

// Lookup returns the global asset registered under name.
func (rt *Runtime) Lookup(assetType, name string) (any, bool) {
	return rt.root.Asset(assetType, name)
}

func (rt *Runtime) register(assetType, name string, def any) {
	if rt.root.RegisterAsset(assetType, name, def) {
		rt.logger.Zerolog().Debug().Str("asset", assetType).Str("name", name).Msg("global asset registered")
	}
}
