package options

import "reflect"

// Sequence is the value of an accumulating field, such as a lifecycle hook
// chain. Elements are compared by identity.
type Sequence []any

// IsSequence reports whether v is a Sequence or any other slice.
// Byte slices are treated as scalars.
func IsSequence(v any) bool {
	switch v.(type) {
	case Sequence, []any:
		return true
	case []byte:
		return false
	case nil:
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Slice
}

// ToSequence normalizes v into a Sequence. A nil value yields an empty
// sequence, a scalar yields a singleton, and a typed slice is converted
// element by element. The result never aliases v's backing array.
func ToSequence(v any) Sequence {
	switch s := v.(type) {
	case nil:
		return Sequence{}
	case Sequence:
		return append(Sequence{}, s...)
	case []any:
		return append(Sequence{}, s...)
	case []byte:
		return Sequence{s}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return Sequence{v}
	}
	out := make(Sequence, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// Contains reports whether seq holds v by identity.
func (s Sequence) Contains(v any) bool {
	return Index(s, v) >= 0
}

// Unique returns the elements of s with identity duplicates removed,
// keeping each element at its first position.
func (s Sequence) Unique() Sequence {
	out := make(Sequence, 0, len(s))
	for _, e := range s {
		if !out.Contains(e) {
			out = append(out, e)
		}
	}
	return out
}
