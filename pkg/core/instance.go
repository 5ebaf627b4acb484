package core

import (
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/go-drift/weave/pkg/options"
)

// Option keys written by the internal construction path.
const (
	KeyParent          = "parent"
	KeyParentVnode     = "_parentVnode"
	KeyPropsData       = "propsData"
	KeyParentListeners = "_parentListeners"
	KeyRenderChildren  = "_renderChildren"
	KeyComponentTag    = "_componentTag"
	KeyRender          = "render"
	KeyStaticRenderFns = "staticRenderFns"
	KeyEl              = "el"
)

// uid numbers instances across every hierarchy in the process.
var uid atomic.Int64

// Placeholder is the parent-side description of a child component: the
// node the rendering pipeline created where the child will appear.
type Placeholder struct {
	Tag       string
	PropsData map[string]any
	// Listeners maps event names to a Listener or a slice of them.
	Listeners map[string]any
	Children  []any
}

// Instance is a runtime component built from a Node.
//
// Instances must be created through Node.Instantiate; a zero Instance has
// UID 0 and lifecycle entry points warn when called on it.
type Instance struct {
	// UID is unique and increases with every instantiation, starting at 1.
	UID int64
	// Node is the component definition the instance was built from.
	Node *Node
	// Options is the instance's effective configuration.
	Options *options.Options
	// Internal is set when the instance was created for a parent's
	// placeholder rather than requested directly.
	Internal bool

	Parent           *Instance
	Root             *Instance
	Children         []*Instance
	Refs             map[string]any
	IsMounted        bool
	IsDestroyed      bool
	IsBeingDestroyed bool
	Inactive         bool
	MountTarget      any

	Vnode  *Placeholder
	Slots  map[string][]any
	Render any

	Injected map[string]any
	Props    map[string]any
	Data     map[string]any
	Provided map[string]any

	events       map[string][]Listener
	hasHookEvent bool
}

// Name returns the formatted component name used in diagnostics:
// <Root> for the root instance, <Name> for named components and
// <Anonymous> otherwise.
func (vm *Instance) Name() string {
	if vm == nil {
		return "<Anonymous>"
	}
	if vm.Root == vm && vm.Parent == nil {
		return "<Root>"
	}
	name := ""
	if vm.Options != nil {
		name = vm.Options.String("name")
		if name == "" {
			name = vm.Options.String(KeyComponentTag)
		}
	}
	if name == "" {
		return "<Anonymous>"
	}
	return formatName(name)
}

// formatName renders a component name as <PascalCase>.
func formatName(name string) string {
	var b strings.Builder
	b.WriteByte('<')
	upper := true
	for _, r := range name {
		if r == '-' || r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	b.WriteByte('>')
	return b.String()
}

// lineage returns the hierarchy state of vm's node. Instances that did not
// come from Instantiate get a detached lineage reporting through
// errors.Warn.
func (vm *Instance) lineage() *lineage {
	if vm == nil || vm.Node == nil {
		return &lineage{}
	}
	return vm.Node.lin
}

// checkCreated warns when vm did not come from Instantiate.
func (vm *Instance) checkCreated(op string) bool {
	if vm.UID != 0 && vm.Node != nil {
		return true
	}
	vm.lineage().warn(op, vm.Name(), "component instances must be created through Node.Instantiate")
	return false
}
