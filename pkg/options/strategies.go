package options

// Strategy combines a parent and a child value for one field. A nil
// argument means the field is undefined on that side.
type Strategy func(parent, child any) any

// StrategyTable resolves the strategy applied to a field.
type StrategyTable interface {
	Strategy(key string) Strategy
}

// Strategies is a StrategyTable backed by a map. Fields without an entry
// use DefaultStrategy.
type Strategies map[string]Strategy

// Strategy returns the strategy registered for key, or DefaultStrategy.
func (s Strategies) Strategy(key string) Strategy {
	if fn, ok := s[key]; ok && fn != nil {
		return fn
	}
	return DefaultStrategy
}

// With returns a copy of s with the entries of overrides applied on top.
func (s Strategies) With(overrides Strategies) Strategies {
	out := make(Strategies, len(s)+len(overrides))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// LifecycleHooks lists the fields that accumulate hook chains.
var LifecycleHooks = []string{
	"beforeCreate",
	"created",
	"beforeMount",
	"mounted",
	"beforeUpdate",
	"updated",
	"beforeDestroy",
	"destroyed",
	"activated",
	"deactivated",
	"errorCaptured",
	"serverPrefetch",
}

// AssetTypes lists the registry fields whose entries chain to the parent.
var AssetTypes = []string{"components", "directives", "filters"}

// DefaultStrategy lets the child win when it defines the field.
func DefaultStrategy(parent, child any) any {
	if child == nil {
		return parent
	}
	return child
}

// DefaultStrategies returns the strategy table used by components.
func DefaultStrategies() Strategies {
	s := Strategies{
		"props":    MergeKeyed,
		"methods":  MergeKeyed,
		"inject":   MergeKeyed,
		"computed": MergeKeyed,
		"watch":    MergeWatch,
	}
	for _, hook := range LifecycleHooks {
		s[hook] = MergeHook
	}
	for _, asset := range AssetTypes {
		s[asset] = MergeAssets
	}
	return s
}

// MergeHook concatenates parent and child hook chains. Scalars are treated
// as singletons and an entry already present keeps its first position.
func MergeHook(parent, child any) any {
	if child == nil {
		if parent == nil {
			return nil
		}
		return ToSequence(parent)
	}
	if parent == nil {
		return ToSequence(child).Unique()
	}
	return append(ToSequence(parent), ToSequence(child)...).Unique()
}

// MergeAssets chains the child's asset map to the parent's: lookups that
// miss the child's own entries fall through to the parent registry. Only
// the child's own entries are copied, so a child registry that itself
// chains to an older parent does not pin that parent's entries.
func MergeAssets(parent, child any) any {
	res := Inherit(asOptions(parent))
	if c := asOptions(child); c != nil {
		res.ExtendOwn(c)
	}
	return res
}

// MergeKeyed merges two keyed collections flatly, child keys winning.
func MergeKeyed(parent, child any) any {
	if parent == nil {
		return child
	}
	if child == nil {
		return parent
	}
	res := New(nil)
	res.Extend(asOptions(parent))
	res.Extend(asOptions(child))
	return res
}

// MergeWatch merges watcher maps so that watchers on the same key from the
// parent and child both run, parent first.
func MergeWatch(parent, child any) any {
	if child == nil {
		return parent
	}
	if parent == nil {
		return child
	}
	p, c := asOptions(parent), asOptions(child)
	res := New(nil)
	res.Extend(p)
	for _, key := range c.Keys() {
		cv, _ := c.Get(key)
		if pv, ok := p.Get(key); ok {
			res.Set(key, append(ToSequence(pv), ToSequence(cv)...))
		} else {
			res.Set(key, ToSequence(cv))
		}
	}
	return res
}

// asOptions views a keyed field value as Options. Plain maps are copied,
// sequences of names become keys with nil values.
func asOptions(v any) *Options {
	switch t := v.(type) {
	case nil:
		return nil
	case *Options:
		return t
	case map[string]any:
		return New(t)
	case []string:
		o := New(nil)
		for _, name := range t {
			o.Set(name, nil)
		}
		return o
	}
	if IsSequence(v) {
		o := New(nil)
		for _, e := range ToSequence(v) {
			if name, ok := e.(string); ok {
				o.Set(name, nil)
			}
		}
		return o
	}
	return nil
}
