package core

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/go-drift/weave/pkg/errors"
	"github.com/go-drift/weave/pkg/options"
	"github.com/go-drift/weave/pkg/telemetry"
)

// Env carries the collaborators shared by every node of one hierarchy.
type Env struct {
	// Merger combines configurations. Nil uses options.DefaultStrategies.
	Merger *options.Merger
	// Logger receives debug events about resolution. Nil discards them.
	Logger *telemetry.Logger
	// Metrics records resolution and instantiation counters. Nil disables them.
	Metrics *telemetry.Metrics
	// Collaborators are the lifecycle stages consumed by Instantiate.
	Collaborators Collaborators
	// Warn reports advisory diagnostics. Nil reports through errors.Warn.
	Warn func(w *errors.Warning)
	// Performance reports whether instance initialization is timed.
	Performance func() bool
}

// lineage is the state shared by a root node and all of its subclasses.
// mu serializes every write to node options and every cache check.
type lineage struct {
	mu      sync.Mutex
	env     Env
	nextCID atomic.Int64

	// queued holds warnings raised while mu is held. They are reported by
	// unlock, so a warning handler may call back into the hierarchy.
	queued []*errors.Warning
}

// unlock releases mu and then reports the queued warnings.
func (l *lineage) unlock() {
	queued := l.queued
	l.queued = nil
	l.mu.Unlock()
	for _, w := range queued {
		l.report(w)
	}
}

// queueWarning records a warning to report once mu is released. The
// caller must hold mu.
func (l *lineage) queueWarning(op, component, msg string) {
	l.queued = append(l.queued, errors.NewWarning(op, component, msg))
}

func (l *lineage) warn(op, component, msg string) {
	l.report(errors.NewWarning(op, component, msg))
}

func (l *lineage) report(w *errors.Warning) {
	l.env.Metrics.RecordWarning(w.Op)
	if l.env.Warn != nil {
		l.env.Warn(w)
		return
	}
	errors.Warn(w)
}

// Node is a component definition: one per declared component class.
//
// A node holds its current options view, the options it was extended with,
// and the snapshots used to detect that an ancestor changed after the node
// was derived from it. Nodes are created by NewRoot and Extend and are never
// destroyed; the super link is set once, so nodes form a forest.
type Node struct {
	cid int
	lin *lineage

	super *Node

	// options is the canonical configuration for a root and the last
	// resolved configuration for a subclass.
	options *options.Options
	// superOptions is the ancestor configuration options was merged from.
	// Its pointer is compared, never its contents.
	superOptions *options.Options
	// extendOptions is a copy of the raw options given to Extend, plus any
	// fields later attached to this node directly.
	extendOptions *options.Options
	// sealedOptions is a flat copy of options taken at creation.
	sealedOptions *options.Options

	// subclasses caches nodes extended from this one by raw options identity.
	subclasses map[*options.Options]*Node
}

// NewRoot creates the root of a component hierarchy. The asset maps
// (components, directives, filters) are created when missing so that
// global registrations have somewhere to live.
func NewRoot(opts *options.Options, env Env) *Node {
	if env.Merger == nil {
		env.Merger = options.NewMerger(nil)
	}
	if env.Logger == nil {
		env.Logger = telemetry.Nop()
	}
	env.Collaborators = env.Collaborators.withDefaults()

	root := opts.Clone()
	for _, asset := range options.AssetTypes {
		if existing, ok := root.Get(asset); !ok || existing == nil {
			root.Set(asset, options.New(nil))
		}
	}

	lin := &lineage{env: env}
	return &Node{
		cid:        int(lin.nextCID.Add(1)) - 1,
		lin:        lin,
		options:    root,
		subclasses: make(map[*options.Options]*Node),
	}
}

// CID returns the node's class id. The root is 0; subclasses count up in
// creation order.
func (n *Node) CID() int {
	return n.cid
}

// Super returns the parent node, or nil for the root.
func (n *Node) Super() *Node {
	return n.super
}

// IsRoot reports whether n has no parent node.
func (n *Node) IsRoot() bool {
	return n.super == nil
}

// Root returns the root of n's hierarchy.
func (n *Node) Root() *Node {
	cur := n
	for cur.super != nil {
		cur = cur.super
	}
	return cur
}

// Depth returns the number of super links between n and its root.
func (n *Node) Depth() int {
	depth := 0
	for cur := n.super; cur != nil; cur = cur.super {
		depth++
	}
	return depth
}

// Name returns the declared component name, if any.
func (n *Node) Name() string {
	return n.Options().String("name")
}

// Options returns the node's current options view without checking
// ancestors for changes. Use Resolve for the up-to-date configuration.
func (n *Node) Options() *options.Options {
	n.lin.mu.Lock()
	defer n.lin.unlock()
	return n.options
}

// ExtendOptions returns the node's own extend-time configuration.
func (n *Node) ExtendOptions() *options.Options {
	n.lin.mu.Lock()
	defer n.lin.unlock()
	return n.extendOptions
}

// SealedOptions returns the flat snapshot taken when the node was created.
func (n *Node) SealedOptions() *options.Options {
	return n.sealedOptions
}

func (n *Node) String() string {
	if name := n.Name(); name != "" {
		return fmt.Sprintf("Node(%d %s)", n.cid, name)
	}
	return fmt.Sprintf("Node(%d)", n.cid)
}

// Extend creates a subclass of n configured by raw.
//
// The subclass is resolved eagerly and is usable immediately. Extending the
// same raw options from the same node twice returns the first subclass.
// When the subclass has a name it registers itself in its own components
// map, so a component can refer to itself recursively.
func (n *Node) Extend(raw *options.Options) *Node {
	if raw == nil {
		raw = options.New(nil)
	}

	n.lin.mu.Lock()
	defer n.lin.unlock()

	if cached, ok := n.subclasses[raw]; ok {
		return cached
	}

	superOptions := n.resolveLocked()
	name := raw.String("name")
	if name == "" {
		name = superOptions.String("name")
	}
	if name != "" {
		if err := ValidateComponentName(name); err != nil {
			n.lin.queueWarning("core.Extend", formatName(name), err.Error())
		}
	}

	sub := &Node{
		cid:           int(n.lin.nextCID.Add(1)) - 1,
		lin:           n.lin,
		super:         n,
		superOptions:  superOptions,
		extendOptions: raw.Clone(),
		subclasses:    make(map[*options.Options]*Node),
	}
	sub.options = n.lin.env.Merger.Merge(superOptions, sub.extendOptions)
	if name != "" {
		sub.registerSelf(sub.options, name)
	}
	sub.sealedOptions = sub.options.Clone()

	n.subclasses[raw] = sub
	n.lin.env.Metrics.RecordNode()
	n.lin.env.Logger.Zerolog().Debug().
		Int("cid", sub.cid).
		Int("super", n.cid).
		Str("name", name).
		Msg("node extended")
	return sub
}

// Mixin merges partial into n's options after creation.
//
// On the root this is a global mixin: every subclass becomes stale and
// recomputes on its next resolution. On a subclass the mixed-in fields are
// late modifications: they are folded into the node's extend options the
// next time an ancestor changes, so they survive the re-merge.
func (n *Node) Mixin(partial *options.Options) *Node {
	n.lin.mu.Lock()
	defer n.lin.unlock()

	current := n.resolveLocked()
	n.options = n.lin.env.Merger.Merge(current, partial)
	n.lin.env.Logger.Zerolog().Debug().
		Int("cid", n.cid).
		Strs("fields", partial.Keys()).
		Msg("options mixed in")
	return n
}

// registerSelf adds n to the components map of opts under name. The map is
// layered rather than written in place so a shared parent map is never
// modified.
func (n *Node) registerSelf(opts *options.Options, name string) {
	var parent *options.Options
	if existing, ok := opts.Value("components").(*options.Options); ok {
		parent = existing
	}
	components := options.Inherit(parent)
	components.Set(name, n)
	opts.Set("components", components)
}

var componentNameRE = regexp.MustCompile(`^[a-zA-Z][-.0-9_a-zA-Z\x{00B7}\x{00C0}-\x{00D6}\x{00D8}-\x{00F6}\x{00F8}-\x{037D}\x{037F}-\x{1FFF}\x{200C}-\x{200D}\x{203F}-\x{2040}\x{2070}-\x{218F}\x{2C00}-\x{2FEF}\x{3001}-\x{D7FF}\x{F900}-\x{FDCF}\x{FDF0}-\x{FFFD}]*$`)

var reservedNames = map[string]bool{
	"slot":      true,
	"component": true,
}

// ValidateComponentName reports whether name can identify a component.
func ValidateComponentName(name string) error {
	if !componentNameRE.MatchString(name) {
		return fmt.Errorf("invalid component name %q: component names should start with a letter and contain only letters, digits, '-', '.' or '_'", name)
	}
	if reservedNames[name] {
		return fmt.Errorf("do not use built-in or reserved names as component id: %q", name)
	}
	return nil
}

// RegisterAsset writes def into n's asset map for assetType (components,
// directives or filters) in place. The options keep their identity, so no
// subclass becomes stale; subclasses see the entry through their asset
// maps' fallback chain.
func (n *Node) RegisterAsset(assetType, name string, def any) bool {
	n.lin.mu.Lock()
	defer n.lin.unlock()
	assets, ok := n.options.Value(assetType).(*options.Options)
	if !ok {
		return false
	}
	assets.Set(name, def)
	return true
}

// Asset looks up name in n's asset map for assetType. Like template tags,
// kebab-case names also match camelCase and PascalCase registrations.
func (n *Node) Asset(assetType, name string) (any, bool) {
	n.lin.mu.Lock()
	defer n.lin.unlock()
	assets, ok := n.options.Value(assetType).(*options.Options)
	if !ok {
		return nil, false
	}
	camel := camelize(name)
	for _, candidate := range []string{name, camel, capitalize(camel)} {
		if v, ok := assets.Get(candidate); ok {
			return v, true
		}
	}
	return nil, false
}

func camelize(s string) string {
	var b strings.Builder
	upper := false
	for _, r := range s {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
