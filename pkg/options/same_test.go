package options

import "testing"

type token struct{ id int }

func TestSame(t *testing.T) {
	a, b := &token{1}, &token{1}
	s := Sequence{1, 2}
	m := map[string]any{}
	fn := func() {}

	tests := []struct {
		name string
		x, y any
		want bool
	}{
		{"nil nil", nil, nil, true},
		{"nil value", nil, 1, false},
		{"same pointer", a, a, true},
		{"equal pointees", a, b, false},
		{"same slice", s, s, true},
		{"reslice", s, s[:1], false},
		{"copied slice", s, append(Sequence{}, s...), false},
		{"same map", m, m, true},
		{"same func", fn, fn, true},
		{"ints", 3, 3, true},
		{"strings", "x", "x", true},
		{"different types", 1, int64(1), false},
	}
	for _, tt := range tests {
		if got := Same(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: Same() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIndex(t *testing.T) {
	a, b := &token{1}, &token{2}
	seq := Sequence{a, b}
	if Index(seq, b) != 1 {
		t.Errorf("Index(b) = %d, want 1", Index(seq, b))
	}
	if Index(seq, &token{1}) != -1 {
		t.Error("equal but distinct pointer should not be found")
	}
}
