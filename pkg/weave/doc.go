// Package weave is the global registration facade of the component runtime.
//
// A [Runtime] owns the root component definition, the process-wide
// [Config] and the installed-plugin registry:
//
//	rt := weave.MustNew()
//	rt.Use(router, routes)              // installed once, however often called
//	rt.Mixin(options.New(map[string]any{
//	    "created": core.NewHook("audit", audit),
//	}))
//	card := rt.Extend(options.New(map[string]any{"name": "card"}))
//	vm := card.Instantiate(options.New(map[string]any{"el": "#app"}), nil)
//
// Mixin is the only way the root configuration changes after definitions
// have been derived from it. Derived definitions notice the change the next
// time they are resolved and recompute their configuration without
// duplicating inherited hooks.
//
// Plugins are values implementing [Plugin] or functions adapted with
// [PluginFunc]. [Runtime.UseAny] accepts values whose shape is only known at
// run time and records unrecognized values without side effects.
package weave
