package runtime

import "testing"

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set(StringValue{Val: "b"}, IntNumber(1))
	m.Set(StringValue{Val: "a"}, IntNumber(2))
	m.Set(IntNumber(7), IntNumber(3))

	keys := m.Keys()
	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(keys))
	}
	if keys[0].(StringValue).Val != "b" || keys[1].(StringValue).Val != "a" {
		t.Fatalf("unexpected key order: %#v", keys)
	}
	if keys[2].(NumberValue).Int != 7 {
		t.Fatalf("expected integer key last, got %#v", keys[2])
	}
}

func TestMapOverwriteKeepsPosition(t *testing.T) {
	m := NewMap()
	m.Set(StringValue{Val: "a"}, IntNumber(1))
	m.Set(StringValue{Val: "b"}, IntNumber(2))
	m.Set(StringValue{Val: "a"}, IntNumber(9))

	if m.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", m.Len())
	}
	if m.Keys()[0].(StringValue).Val != "a" {
		t.Fatalf("overwrite moved the key: %#v", m.Keys())
	}
	val, _ := m.Get(StringValue{Val: "a"})
	if val.(NumberValue).Int != 9 {
		t.Fatalf("expected updated value 9, got %#v", val)
	}
}

func TestMapKeysDistinguishKinds(t *testing.T) {
	m := NewMap()
	m.Set(IntNumber(1), StringValue{Val: "number"})
	m.Set(StringValue{Val: "1"}, StringValue{Val: "string"})

	if m.Len() != 2 {
		t.Fatalf("expected distinct keys for 1 and '1', got %d entries", m.Len())
	}
	val, ok := m.Get(IntNumber(1))
	if !ok || val.(StringValue).Val != "number" {
		t.Fatalf("expected number entry, got %#v", val)
	}
}

func TestHashable(t *testing.T) {
	cases := []struct {
		value Value
		want  bool
	}{
		{StringValue{Val: "key"}, true},
		{IntNumber(3), true},
		{FloatNumber(3.5), false},
		{BoolValue{Val: true}, false},
		{NoneValue{}, false},
		{NewList(nil), false},
	}
	for _, c := range cases {
		if got := Hashable(c.value); got != c.want {
			t.Fatalf("Hashable(%#v) = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestRangeCount(t *testing.T) {
	cases := []struct {
		rng  RangeValue
		want int64
	}{
		{RangeValue{Start: 1, End: 5}, 4},
		{RangeValue{Start: 1, End: 5, Inclusive: true}, 5},
		{RangeValue{Start: 3, End: 3}, 0},
		{RangeValue{Start: 3, End: 3, Inclusive: true}, 1},
		{RangeValue{Start: 5, End: 1}, 0},
		{RangeValue{Start: 5, End: 1, Inclusive: true}, 0},
	}
	for _, c := range cases {
		if got := c.rng.Count(); got != c.want {
			t.Fatalf("Count(%#v) = %d, want %d", c.rng, got, c.want)
		}
	}
}

func TestNumberHelpers(t *testing.T) {
	n := IntNumber(4)
	if !n.IsInt || n.Int != 4 || n.AsFloat() != 4.0 {
		t.Fatalf("unexpected integer number %#v", n)
	}
	f := FloatNumber(0.5)
	if f.IsInt || f.AsFloat() != 0.5 {
		t.Fatalf("unexpected float number %#v", f)
	}
	if !IntNumber(0).IsZero() || !FloatNumber(0).IsZero() || IntNumber(1).IsZero() {
		t.Fatal("IsZero misclassified a number")
	}
}

func TestKindNames(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{IntNumber(1), "number"},
		{StringValue{}, "string"},
		{BoolValue{}, "boolean"},
		{NewList(nil), "list"},
		{NewMap(), "map"},
		{RangeValue{}, "range"},
		{&FunctionValue{}, "function"},
		{BuiltinValue{}, "builtin"},
		{NoneValue{}, "none"},
	}
	for _, c := range cases {
		if got := c.value.Kind().String(); got != c.want {
			t.Fatalf("Kind of %#v = %q, want %q", c.value, got, c.want)
		}
	}
}
