package options

// Merger applies a StrategyTable to combine two configurations.
type Merger struct {
	table StrategyTable
}

// NewMerger creates a Merger using table. A nil table uses
// DefaultStrategies.
func NewMerger(table StrategyTable) *Merger {
	if table == nil {
		table = DefaultStrategies()
	}
	return &Merger{table: table}
}

// Table returns the strategy table in use.
func (m *Merger) Table() StrategyTable {
	return m.table
}

// Merge combines parent and child into a new Options. Neither input is
// modified. A child's "extends" and "mixins" fields are folded into the
// parent first, so their contents merge with the same strategies as the
// child's own fields.
func (m *Merger) Merge(parent, child *Options) *Options {
	if parent == nil {
		parent = New(nil)
	}
	if child == nil {
		child = New(nil)
	}

	if ext, ok := child.Value("extends").(*Options); ok && ext != nil {
		parent = m.Merge(parent, ext)
	}
	if mixins, ok := child.Get("mixins"); ok {
		for _, mixin := range ToSequence(mixins) {
			if mo, ok := mixin.(*Options); ok && mo != nil {
				parent = m.Merge(parent, mo)
			}
		}
	}

	out := New(nil)
	for _, key := range parent.Keys() {
		m.mergeField(out, key, parent, child)
	}
	for _, key := range child.Keys() {
		if !parent.Has(key) {
			m.mergeField(out, key, parent, child)
		}
	}
	return out
}

func (m *Merger) mergeField(out *Options, key string, parent, child *Options) {
	pv, _ := parent.Get(key)
	cv, _ := child.Get(key)
	if v := m.table.Strategy(key)(pv, cv); v != nil {
		out.Set(key, v)
	}
}
