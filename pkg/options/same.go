package options

import "reflect"

// Same reports whether a and b are the same value by identity.
//
// Pointers, maps, channels and functions compare by address, slices by
// backing array and length, and any other comparable value by ==. Function
// addresses identify code, not closures: two closures created from the same
// literal may compare equal. Use a pointer type such as core.Hook when
// distinct identities matter.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return false
}

// Index returns the position of v in seq by identity, or -1.
func Index(seq Sequence, v any) int {
	for i, e := range seq {
		if Same(e, v) {
			return i
		}
	}
	return -1
}
