package stats

import "testing"

func TestValueString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Number(15), "15"},
		{Number(3.5), "3.5"},
		{Number(0), "0"},
		{Text("VP9"), "VP9"},
		{Text(""), ""},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Fatalf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestValueEquality(t *testing.T) {
	if Number(15) != Number(15) {
		t.Fatal("equal numbers must compare equal")
	}
	if Text("15") == Number(15) {
		t.Fatal("a text value must not equal a number with the same rendering")
	}

	// Comparable as a map key: duplicates collapse.
	set := make(map[Value]struct{})
	for _, v := range []Value{Number(1), Number(1), Text("ok"), Text("ok")} {
		set[v] = struct{}{}
	}
	if len(set) != 2 {
		t.Fatalf("set size = %d, want 2", len(set))
	}
}
