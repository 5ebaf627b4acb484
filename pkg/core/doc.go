// Package core provides component definitions, their configuration
// inheritance, and instance construction.
//
// # Nodes
//
// A [Node] is a component definition. The root node is created with
// [NewRoot] and every other node with [Node.Extend], which merges the
// parent's configuration with the extend options:
//
//	root := core.NewRoot(options.New(nil), core.Env{})
//	card := root.Extend(options.New(map[string]any{
//	    "name":    "card",
//	    "created": core.NewHook("track", track),
//	}))
//
// A node's effective configuration is cached. [Node.Resolve] returns the
// cached object until an ancestor's configuration changes, which only
// happens through [Node.Mixin]. A stale node recomputes on its next
// resolution and removes accumulated entries, such as hook chains, that it
// would otherwise inherit twice.
//
// # Instances
//
// [Node.Instantiate] builds an [Instance]. Directly requested instances
// take the full path, merging the resolved configuration with the caller's
// options. Children created by a rendering pipeline pass an
// [InternalRequest] and take the fast path: their options read through to
// the node's cached configuration and only the per-instance fields are set.
//
// Both paths run the same initialization sequence: lifecycle bookkeeping,
// events, render state, the beforeCreate hook, injections, local state,
// provided values, and the created hook. Hook dispatch, state population
// and mounting are delegated to [Collaborators].
//
// # Concurrency
//
// All nodes of one hierarchy share a mutex guarding their options, so
// Extend, Mixin and Resolve may be called from several goroutines. Hooks
// and state initialization run outside the lock and an Instance is not
// safe for concurrent use.
package core
