package memory

import (
	"context"
	"testing"
	"time"

	"github.com/semargal/rediset/store"
)

func TestCombineSetsEmptyResultRemovesDest(t *testing.T) {
	ctx := context.Background()
	m := New()
	if err := m.AddMembers(ctx, "a", "x"); err != nil {
		t.Fatalf("AddMembers: %v", err)
	}
	if err := m.AddMembers(ctx, "b", "y"); err != nil {
		t.Fatalf("AddMembers: %v", err)
	}
	if err := m.AddMembers(ctx, "dest", "stale"); err != nil {
		t.Fatalf("AddMembers: %v", err)
	}

	if err := m.CombineSets(ctx, store.Intersect, "dest", []string{"a", "b"}); err != nil {
		t.Fatalf("CombineSets: %v", err)
	}
	ok, err := m.Exists(ctx, "dest")
	if err != nil || ok {
		t.Fatalf("empty combine should remove dest, got ok=%v err=%v", ok, err)
	}
}

func TestExpiryReaping(t *testing.T) {
	ctx := context.Background()
	m := New()
	if err := m.AddMembers(ctx, "k", "a"); err != nil {
		t.Fatalf("AddMembers: %v", err)
	}
	if err := m.Expire(ctx, "k", 30*time.Millisecond); err != nil {
		t.Fatalf("Expire: %v", err)
	}
	if ok, _ := m.Exists(ctx, "k"); !ok {
		t.Fatal("k should still be live")
	}
	time.Sleep(50 * time.Millisecond)
	if ok, _ := m.Exists(ctx, "k"); ok {
		t.Fatal("k should have expired")
	}
	if n, _ := m.Cardinality(ctx, "k"); n != 0 {
		t.Fatalf("Cardinality = %d, want 0 after expiry", n)
	}
}

func TestRangeNegativeIndices(t *testing.T) {
	ctx := context.Background()
	m := New()
	err := m.AddScored(ctx, "z",
		store.ScoredEntry{Member: "a", Score: 1},
		store.ScoredEntry{Member: "b", Score: 2},
		store.ScoredEntry{Member: "c", Score: 3},
	)
	if err != nil {
		t.Fatalf("AddScored: %v", err)
	}

	got, err := m.RangeByRank(ctx, "z", -2, -1)
	if err != nil {
		t.Fatalf("RangeByRank: %v", err)
	}
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("RangeByRank(-2, -1) = %v, want [b c]", got)
	}

	got, err = m.RangeByRank(ctx, "z", 0, -1)
	if err != nil {
		t.Fatalf("RangeByRank: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("RangeByRank(0, -1) = %v, want all three", got)
	}

	got, err = m.RangeByRank(ctx, "z", 5, 10)
	if err != nil || len(got) != 0 {
		t.Fatalf("RangeByRank(5, 10) = %v, %v; want empty", got, err)
	}

	// ZRANGE pins only the start to the front after negative adjustment, so a
	// window wholly below -cardinality normalizes to start > stop and is empty.
	got, err = m.RangeByRank(ctx, "z", -5, -4)
	if err != nil || len(got) != 0 {
		t.Fatalf("RangeByRank(-5, -4) = %v, %v; want empty", got, err)
	}

	got, err = m.RangeByRank(ctx, "z", -10, 1)
	if err != nil {
		t.Fatalf("RangeByRank: %v", err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("RangeByRank(-10, 1) = %v, want [a b]", got)
	}
}

func TestCombineScoredTreatsPlainSourcesAsScoreOne(t *testing.T) {
	ctx := context.Background()
	m := New()
	if err := m.AddMembers(ctx, "p", "b"); err != nil {
		t.Fatalf("AddMembers: %v", err)
	}
	if err := m.AddScored(ctx, "z", store.ScoredEntry{Member: "b", Score: 2}); err != nil {
		t.Fatalf("AddScored: %v", err)
	}

	if err := m.CombineScored(ctx, store.Intersect, "dest", []string{"p", "z"}, store.AggregateSum); err != nil {
		t.Fatalf("CombineScored: %v", err)
	}
	score, ok, err := m.Score(ctx, "dest", "b")
	if err != nil || !ok || score != 3 {
		t.Fatalf("Score = %v, %v, %v; want 3", score, ok, err)
	}
}
