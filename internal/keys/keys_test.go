package keys

import "testing"

// TestCommutativeOrderIndependence verifies every permutation of the same
// children derives the same key.
func TestCommutativeOrderIndependence(t *testing.T) {
	perms := [][]string{
		{"a", "b", "c"},
		{"c", "b", "a"},
		{"b", "c", "a"},
	}
	want := Commutative("inter", perms[0])
	for _, p := range perms[1:] {
		if got := Commutative("inter", p); got != want {
			t.Fatalf("Commutative(%v) = %q, want %q", p, got, want)
		}
	}
}

func TestCommutativeTagSeparation(t *testing.T) {
	children := []string{"a", "b"}
	if Commutative("inter", children) == Commutative("zinter", children) {
		t.Fatal("distinct tags must not derive the same key")
	}
}

func TestCommutativeChildSensitivity(t *testing.T) {
	if Commutative("union", []string{"a", "b"}) == Commutative("union", []string{"a", "c"}) {
		t.Fatal("different children must derive different keys")
	}
}

// TestLeftFixedMinuendSensitivity: permuting the tail leaves the key
// unchanged, swapping the head changes it.
func TestLeftFixedMinuendSensitivity(t *testing.T) {
	k1 := LeftFixed("diff", "a", []string{"b", "c"})
	k2 := LeftFixed("diff", "a", []string{"c", "b"})
	k3 := LeftFixed("diff", "b", []string{"c", "a"})

	if k1 != k2 {
		t.Fatalf("tail permutation changed key: %q vs %q", k1, k2)
	}
	if k1 == k3 {
		t.Fatalf("head swap did not change key: %q", k1)
	}
}

func TestExtraComponents(t *testing.T) {
	children := []string{"a", "b"}
	sum := Commutative("zunion", children, "aggregate=SUM")
	min := Commutative("zunion", children, "aggregate=MIN")
	if sum == min {
		t.Fatal("extra components must participate in the key")
	}
}

// A child key that happens to contain the joining boundary must not collide
// with a differently-split child list.
func TestSeparatorAmbiguity(t *testing.T) {
	if Commutative("union", []string{"ab", "c"}) == Commutative("union", []string{"a", "bc"}) {
		t.Fatal("child boundaries must be unambiguous")
	}
}
