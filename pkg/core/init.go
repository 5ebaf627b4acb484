package core

import (
	"time"

	"github.com/go-drift/weave/pkg/options"
	"github.com/go-drift/weave/pkg/telemetry"
)

// InternalRequest is what the rendering pipeline supplies when it creates
// a child instance for a placeholder in its parent's tree.
type InternalRequest struct {
	Parent          *Instance
	ParentVnode     *Placeholder
	Render          any
	StaticRenderFns any
}

// Instantiate builds a runtime instance of n.
//
// With a nil req the instance is built on the full path: n's options are
// resolved and merged with opts using the hierarchy's strategy table. With
// a non-nil req the instance is an internal child and opts is ignored: its
// options read through to n's cached options and only the per-instance
// fields carried by req are set, with no strategy applied.
//
// Initialization then runs in a fixed order: lifecycle bookkeeping, events,
// render state, beforeCreate, injections, local state, provided values,
// created. When the options carry an "el" target the instance is mounted.
func (n *Node) Instantiate(opts *options.Options, req *InternalRequest) *Instance {
	env := n.lin.env
	var start time.Time
	timed := env.Performance != nil && env.Performance()
	if timed {
		start = time.Now()
	}

	vm := &Instance{
		UID:  uid.Add(1),
		Node: n,
	}
	if req != nil {
		vm.Internal = true
		n.initInternal(vm, req)
		env.Metrics.RecordInstance(telemetry.PathInternal)
	} else {
		vm.Options = env.Merger.Merge(n.Resolve(), opts)
		env.Metrics.RecordInstance(telemetry.PathFull)
	}

	vm.initLifecycle()
	vm.initEvents()
	vm.initRender()
	vm.CallHook("beforeCreate")
	vm.initInjections()
	env.Collaborators.State.InitState(vm)
	vm.initProvide()
	vm.CallHook("created")

	if timed {
		env.Metrics.ObserveInit(time.Since(start))
		env.Logger.Zerolog().Debug().
			Int64("uid", vm.UID).
			Str("vm", vm.Name()).
			Dur("elapsed", time.Since(start)).
			Msg("instance initialized")
	}

	if el, ok := vm.Options.Get(KeyEl); ok && el != nil {
		vm.Mount(el)
	}
	return vm
}

// initInternal is the fast path: the instance's options delegate to the
// node's cached options and only per-instance fields are written.
func (n *Node) initInternal(vm *Instance, req *InternalRequest) {
	opts := options.Inherit(n.Options())
	opts.Set(KeyParent, req.Parent)
	opts.Set(KeyParentVnode, req.ParentVnode)
	if vnode := req.ParentVnode; vnode != nil {
		opts.Set(KeyPropsData, vnode.PropsData)
		opts.Set(KeyParentListeners, vnode.Listeners)
		opts.Set(KeyRenderChildren, vnode.Children)
		opts.Set(KeyComponentTag, vnode.Tag)
	}
	if req.Render != nil {
		opts.Set(KeyRender, req.Render)
		opts.Set(KeyStaticRenderFns, req.StaticRenderFns)
	}
	vm.Options = opts
}

// initLifecycle links vm into its parent's children, skipping abstract
// parents, and resets the lifecycle flags.
func (vm *Instance) initLifecycle() {
	parent, _ := vm.Options.Value(KeyParent).(*Instance)
	abstract, _ := vm.Options.Value("abstract").(bool)
	if parent != nil && !abstract {
		for parent.Parent != nil && parent.isAbstract() {
			parent = parent.Parent
		}
		parent.Children = append(parent.Children, vm)
	}

	vm.Parent = parent
	if parent != nil {
		vm.Root = parent.Root
	} else {
		vm.Root = vm
	}
	vm.Children = nil
	vm.Refs = make(map[string]any)
	vm.IsMounted = false
	vm.IsDestroyed = false
	vm.IsBeingDestroyed = false
	vm.Inactive = false
}

func (vm *Instance) isAbstract() bool {
	abstract, _ := vm.Options.Value("abstract").(bool)
	return abstract
}

// SlotNamer is implemented by render children that target a named slot.
type SlotNamer interface {
	SlotName() string
}

// initRender records the placeholder and groups render children by slot.
func (vm *Instance) initRender() {
	vm.Vnode, _ = vm.Options.Value(KeyParentVnode).(*Placeholder)
	vm.Render = vm.Options.Value(KeyRender)
	vm.Slots = make(map[string][]any)
	children, _ := vm.Options.Value(KeyRenderChildren).([]any)
	for _, child := range children {
		name := "default"
		if named, ok := child.(SlotNamer); ok && named.SlotName() != "" {
			name = named.SlotName()
		}
		vm.Slots[name] = append(vm.Slots[name], child)
	}
}
