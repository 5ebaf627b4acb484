package options

import (
	"maps"
	"slices"
)

// Options is a component configuration object.
//
// Fields are looked up in the own field map first and then in the fallback
// chain. Writes always go to the own map. The pointer is the identity of
// the configuration: two Options with equal contents are still different
// configurations.
type Options struct {
	values map[string]any
	proto  *Options
}

// New creates an Options holding a shallow copy of values.
func New(values map[string]any) *Options {
	o := &Options{values: make(map[string]any, len(values))}
	maps.Copy(o.values, values)
	return o
}

// Inherit creates an empty Options that reads through to proto for any
// field it does not define itself.
func Inherit(proto *Options) *Options {
	return &Options{
		values: make(map[string]any),
		proto:  proto,
	}
}

// Proto returns the fallback Options, or nil.
func (o *Options) Proto() *Options {
	if o == nil {
		return nil
	}
	return o.proto
}

// Get returns the value of key, consulting the fallback chain.
func (o *Options) Get(key string) (any, bool) {
	for cur := o; cur != nil; cur = cur.proto {
		if v, ok := cur.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Value returns the value of key or nil when undefined.
func (o *Options) Value(key string) any {
	v, _ := o.Get(key)
	return v
}

// String returns the value of key when it is a string.
func (o *Options) String(key string) string {
	s, _ := o.Value(key).(string)
	return s
}

// Own returns the value of key without consulting the fallback chain.
func (o *Options) Own(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is defined on o or its fallback chain.
func (o *Options) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set defines key on o's own field map.
func (o *Options) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	o.values[key] = value
}

// Delete removes key from o's own field map. Inherited values remain visible.
func (o *Options) Delete(key string) {
	if o == nil {
		return
	}
	delete(o.values, key)
}

// Keys returns the sorted union of own and inherited keys.
func (o *Options) Keys() []string {
	seen := make(map[string]struct{})
	for cur := o; cur != nil; cur = cur.proto {
		for k := range cur.values {
			seen[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// OwnKeys returns the sorted keys defined directly on o.
func (o *Options) OwnKeys() []string {
	if o == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(o.values))
}

// Len returns the number of distinct keys visible through o.
func (o *Options) Len() int {
	return len(o.Keys())
}

// Clone returns a flat shallow copy: every field visible through o, own or
// inherited, becomes an own field of the copy. Field values are shared.
func (o *Options) Clone() *Options {
	out := &Options{values: make(map[string]any)}
	if o == nil {
		return out
	}
	for _, k := range o.Keys() {
		out.values[k], _ = o.Get(k)
	}
	return out
}

// Extend copies every field visible through src onto o, in place.
func (o *Options) Extend(src *Options) *Options {
	if src == nil {
		return o
	}
	for _, k := range src.Keys() {
		v, _ := src.Get(k)
		o.Set(k, v)
	}
	return o
}

// ExtendOwn copies only the fields defined directly on src into o.
func (o *Options) ExtendOwn(src *Options) *Options {
	if src == nil {
		return o
	}
	for k, v := range src.values {
		o.Set(k, v)
	}
	return o
}

// Map returns a flat copy of the visible fields.
func (o *Options) Map() map[string]any {
	return o.Clone().values
}
