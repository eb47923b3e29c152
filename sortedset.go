package rediset

import (
	"context"

	"github.com/semargal/rediset/store"
)

// SortedSet is a leaf node over a sorted set the caller manages directly.
// Like Set it is a handle to existing store data, with rank-aware reads and
// score mutation on top.
type SortedSet[V any] struct {
	orderedReads[V]
	key string
}

var _ OrderedNode[string] = (*SortedSet[string])(nil)

func newSortedSet[V any](rs *Rediset[V], key string) *SortedSet[V] {
	s := &SortedSet[V]{key: key}
	s.rs = rs
	s.self = s
	return s
}

func (s *SortedSet[V]) Key() string { return s.key }

func (s *SortedSet[V]) Kind() Kind { return KindOrdered }

func (s *SortedSet[V]) materialize(context.Context) error { return nil }

func (s *SortedSet[V]) Add(ctx context.Context, entries ...Scored[V]) error {
	raw := make([]store.ScoredEntry, len(entries))
	for i, e := range entries {
		m, err := s.rs.encode(e.Value)
		if err != nil {
			return err
		}
		raw[i] = store.ScoredEntry{Member: m, Score: e.Score}
	}
	return s.rs.store.AddScored(ctx, s.rs.prefixed(s.key), raw...)
}

func (s *SortedSet[V]) Remove(ctx context.Context, values ...V) error {
	members, err := s.rs.encodeAll(values)
	if err != nil {
		return err
	}
	return s.rs.store.RemoveScored(ctx, s.rs.prefixed(s.key), members...)
}

// IncrementScore adds delta to value's score, creating the member at delta if
// absent, and returns the new score.
func (s *SortedSet[V]) IncrementScore(ctx context.Context, value V, delta float64) (float64, error) {
	m, err := s.rs.encode(value)
	if err != nil {
		return 0, err
	}
	return s.rs.store.IncrementScore(ctx, s.rs.prefixed(s.key), m, delta)
}

func (s *SortedSet[V]) DecrementScore(ctx context.Context, value V, delta float64) (float64, error) {
	return s.IncrementScore(ctx, value, -delta)
}

// RemoveRangeByRank deletes the members between the start and stop ranks,
// inclusive, and returns how many were removed.
func (s *SortedSet[V]) RemoveRangeByRank(ctx context.Context, start, stop int64) (int64, error) {
	return s.rs.store.RemoveRangeByRank(ctx, s.rs.prefixed(s.key), start, stop)
}

// RemoveRangeByScore deletes the members whose scores fall in [min, max] and
// returns how many were removed.
func (s *SortedSet[V]) RemoveRangeByScore(ctx context.Context, min, max float64) (int64, error) {
	return s.rs.store.RemoveRangeByScore(ctx, s.rs.prefixed(s.key), min, max)
}
