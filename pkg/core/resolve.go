package core

import (
	"github.com/go-drift/weave/pkg/options"
	"github.com/go-drift/weave/pkg/telemetry"
)

// Resolve returns the node's effective configuration: its ancestors'
// resolved options merged with its own extend options.
//
// The result is cached. Ancestors are resolved first; when an ancestor's
// result is the same object this node last merged with, the cached options
// are returned unchanged, so repeated calls return the same pointer. When
// the ancestor changed (a mixin was applied to it), the node recomputes:
// fields attached to the node after creation are folded into its extend
// options, with accumulated entries already inherited from ancestors
// removed, and the merge is redone.
func (n *Node) Resolve() *options.Options {
	n.lin.mu.Lock()
	defer n.lin.unlock()
	return n.resolveLocked()
}

func (n *Node) resolveLocked() *options.Options {
	metrics := n.lin.env.Metrics
	if n.super == nil {
		metrics.RecordResolution(telemetry.ResolutionRoot)
		return n.options
	}

	superOptions := n.super.resolveLocked()
	if superOptions == n.superOptions {
		metrics.RecordResolution(telemetry.ResolutionCached)
		return n.options
	}

	inherited := n.superOptions
	n.superOptions = superOptions
	modified := n.resolveModified(inherited)
	if modified.Len() > 0 {
		n.extendOptions.Extend(modified)
	}
	n.options = n.lin.env.Merger.Merge(superOptions, n.extendOptions)
	if name := n.options.String("name"); name != "" {
		n.registerSelf(n.options, name)
	}

	metrics.RecordResolution(telemetry.ResolutionRecomputed)
	n.lin.env.Logger.Zerolog().Debug().
		Int("cid", n.cid).
		Str("name", n.options.String("name")).
		Strs("modified", modified.Keys()).
		Msg("options recomputed")
	return n.options
}

// resolveModified collects the fields of the current options view that no
// longer match the creation snapshot. inherited is the ancestor
// configuration the view was last merged from.
func (n *Node) resolveModified(inherited *options.Options) *options.Options {
	modified := options.New(nil)
	dropped := 0
	for _, key := range n.options.Keys() {
		latest, _ := n.options.Get(key)
		sealed, _ := n.sealedOptions.Get(key)
		if options.Same(latest, sealed) {
			continue
		}
		extended, _ := n.extendOptions.Get(key)
		var fromSuper any
		if inherited != nil {
			fromSuper, _ = inherited.Get(key)
		}
		value, d := dedupe(latest, extended, sealed, fromSuper)
		modified.Set(key, value)
		dropped += d
	}
	n.lin.env.Metrics.RecordDedupeDropped(dropped)
	return modified
}

// dedupe keeps the entries of an accumulated field that belong to this
// node: those introduced by its own extend options, and those attached
// after creation that came from neither the creation snapshot nor the
// ancestor configuration. Anything else would be merged in again from the
// ancestor and appear twice. Non-sequence values are returned unchanged.
// The second result is the number of entries removed.
func dedupe(latest, extended, sealed, inherited any) (any, int) {
	if !options.IsSequence(latest) {
		return latest, 0
	}
	entries := options.ToSequence(latest)
	own := options.ToSequence(extended)
	atCreation := options.ToSequence(sealed)
	fromSuper := options.ToSequence(inherited)

	res := make(options.Sequence, 0, len(entries))
	for _, e := range entries {
		if own.Contains(e) || (!atCreation.Contains(e) && !fromSuper.Contains(e)) {
			res = append(res, e)
		}
	}
	return res, len(entries) - len(res)
}
