// Package options provides the configuration value shared by components and
// the engine that merges two configurations into one.
//
// An [Options] is identified by its pointer. Callers that cache a merged
// result compare pointers, never contents, to decide whether the cache is
// still valid. Each Options may carry a fallback Options consulted for keys
// it does not hold itself:
//
//	base := options.New(map[string]any{"name": "card"})
//	view := options.Inherit(base)
//	view.Set("tag", "x-card")
//	view.Get("name") // "card", read through the fallback
//
// # Merging
//
// A [Merger] combines a parent and a child configuration field by field,
// looking up a [Strategy] for each key in a [StrategyTable]. The default
// strategy lets the child win whenever it defines the field.
// [DefaultStrategies] adds the field-specific behavior components rely on:
// lifecycle hooks accumulate into a [Sequence], asset maps chain to their
// parent, and keyed fields such as props merge flatly.
//
//	m := options.NewMerger(options.DefaultStrategies())
//	merged := m.Merge(parent, child)
//
// Merge never mutates its inputs.
package options
