// Package loader reads runtime configuration and declarative component
// definitions from files.
//
// Runtime configuration is YAML or TOML, chosen by file extension:
//
//	cfg, err := loader.LoadConfig("weave.yaml")
//	rt, err := weave.New(weave.WithConfig(cfg))
//
// Component definitions are YAML documents. Hooks are Go functions, so a
// definition refers to them by name and [Build] resolves the names against
// a [core.HookSet]:
//
//	hooks := core.HookSet{}
//	hooks.Add("track", track)
//	doc, err := loader.LoadDefinitions("components.yaml")
//	nodes, err := loader.Build(rt, doc, hooks)
package loader
