package rediset

import (
	"context"
	"errors"
	"testing"
)

func addScored(t *testing.T, s *SortedSet[string], entries ...Scored[string]) {
	t.Helper()
	if err := s.Add(context.Background(), entries...); err != nil {
		t.Fatalf("Add: %v", err)
	}
}

func abc(t *testing.T, rs *Rediset[string]) *SortedSet[string] {
	t.Helper()
	s := rs.SortedSet("key")
	addScored(t, s,
		Scored[string]{Value: "a", Score: 1},
		Scored[string]{Value: "b", Score: 2},
		Scored[string]{Value: "c", Score: 3},
	)
	return s
}

func TestSortedSetBasics(t *testing.T) {
	ctx := context.Background()
	rs := newTestRediset(t, nil)
	s := abc(t, rs)

	if n, err := s.Cardinality(ctx); err != nil || n != 3 {
		t.Fatalf("Cardinality = %d, %v; want 3", n, err)
	}

	members, err := s.Members(ctx)
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if len(members) != 3 || members[0] != "a" || members[1] != "b" || members[2] != "c" {
		t.Fatalf("Members = %v, want [a b c] in score order", members)
	}

	if ok, err := s.Contains(ctx, "a"); err != nil || !ok {
		t.Fatalf("Contains(a) = %v, %v; want true", ok, err)
	}
	if ok, _ := s.Contains(ctx, "d"); ok {
		t.Fatal("Contains(d) should be false")
	}

	if err := s.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if ok, _ := s.Contains(ctx, "a"); ok {
		t.Fatal("a should be gone")
	}
	if err := s.Remove(ctx, "b", "c"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if n, _ := s.Cardinality(ctx); n != 0 {
		t.Fatalf("Cardinality = %d, want 0", n)
	}
}

func TestSortedSetMembersWithScores(t *testing.T) {
	ctx := context.Background()
	rs := newTestRediset(t, nil)
	s := abc(t, rs)

	got, err := s.MembersWithScores(ctx)
	if err != nil {
		t.Fatalf("MembersWithScores: %v", err)
	}
	want := []Scored[string]{{"a", 1}, {"b", 2}, {"c", 3}}
	if len(got) != len(want) {
		t.Fatalf("MembersWithScores = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MembersWithScores = %v, want %v", got, want)
		}
	}
}

// TestSortedSetIndexing covers the dual access modes: the safe accessor
// signals out-of-range with ok=false, the strict one with an error.
func TestSortedSetIndexing(t *testing.T) {
	ctx := context.Background()
	rs := newTestRediset(t, nil)
	s := abc(t, rs)

	if v, ok, err := s.Get(ctx, 0); err != nil || !ok || v != "a" {
		t.Fatalf("Get(0) = %q, %v, %v; want a", v, ok, err)
	}
	if v, ok, err := s.Get(ctx, 2); err != nil || !ok || v != "c" {
		t.Fatalf("Get(2) = %q, %v, %v; want c", v, ok, err)
	}
	if _, ok, err := s.Get(ctx, 3); err != nil || ok {
		t.Fatalf("Get(3) should miss, got ok=%v err=%v", ok, err)
	}

	if v, err := s.At(ctx, 0); err != nil || v != "a" {
		t.Fatalf("At(0) = %q, %v; want a", v, err)
	}
	if _, err := s.At(ctx, 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("At(3) should return ErrIndexOutOfRange, got %v", err)
	}

	// negative indices count from the end
	if v, err := s.At(ctx, -1); err != nil || v != "c" {
		t.Fatalf("At(-1) = %q, %v; want c", v, err)
	}
}

func TestSortedSetRange(t *testing.T) {
	ctx := context.Background()
	rs := newTestRediset(t, nil)
	s := abc(t, rs)

	check := func(start, stop int64, want ...string) {
		t.Helper()
		got, err := s.Range(ctx, start, stop)
		if err != nil {
			t.Fatalf("Range(%d, %d): %v", start, stop, err)
		}
		if len(got) != len(want) {
			t.Fatalf("Range(%d, %d) = %v, want %v", start, stop, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("Range(%d, %d) = %v, want %v", start, stop, got, want)
			}
		}
	}

	check(0, 1, "a", "b")
	check(1, 2, "b", "c")
	check(2, 10, "c") // clamps, no error
	check(0, -1, "a", "b", "c")
	check(5, 10) // empty window

	withScores, err := s.RangeWithScores(ctx, 0, 1)
	if err != nil {
		t.Fatalf("RangeWithScores: %v", err)
	}
	if len(withScores) != 2 || withScores[0] != (Scored[string]{"a", 1}) {
		t.Fatalf("RangeWithScores = %v", withScores)
	}
}

func TestSortedSetScoreMutation(t *testing.T) {
	ctx := context.Background()
	rs := newTestRediset(t, nil)
	s := abc(t, rs)

	if v, err := s.IncrementScore(ctx, "a", 2); err != nil || v != 3 {
		t.Fatalf("IncrementScore = %v, %v; want 3", v, err)
	}
	if v, err := s.DecrementScore(ctx, "a", 1); err != nil || v != 2 {
		t.Fatalf("DecrementScore = %v, %v; want 2", v, err)
	}
	if v, ok, err := s.Score(ctx, "a"); err != nil || !ok || v != 2 {
		t.Fatalf("Score(a) = %v, %v, %v; want 2", v, ok, err)
	}
	if _, ok, err := s.Score(ctx, "nope"); err != nil || ok {
		t.Fatalf("Score(nope) should miss, got ok=%v err=%v", ok, err)
	}
}

func TestSortedSetRemoveRanges(t *testing.T) {
	ctx := context.Background()
	rs := newTestRediset(t, nil)
	s := abc(t, rs)

	n, err := s.RemoveRangeByRank(ctx, 0, 0)
	if err != nil || n != 1 {
		t.Fatalf("RemoveRangeByRank = %d, %v; want 1", n, err)
	}
	if ok, _ := s.Contains(ctx, "a"); ok {
		t.Fatal("a should be gone")
	}

	n, err = s.RemoveRangeByScore(ctx, 3, 10)
	if err != nil || n != 1 {
		t.Fatalf("RemoveRangeByScore = %d, %v; want 1", n, err)
	}
	if ok, _ := s.Contains(ctx, "c"); ok {
		t.Fatal("c should be gone")
	}
	if card, _ := s.Cardinality(ctx); card != 1 {
		t.Fatalf("Cardinality = %d, want 1", card)
	}
}

func TestSortedSetIteration(t *testing.T) {
	ctx := context.Background()
	rs := newTestRediset(t, nil)
	s := abc(t, rs)

	var got []string
	for v, err := range s.All(ctx) {
		if err != nil {
			t.Fatalf("All: %v", err)
		}
		got = append(got, v)
	}
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("All = %v, want score order [a b c]", got)
	}
}
