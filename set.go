package rediset

import "context"

// Set is a leaf node over a plain set the caller manages directly. It is a
// handle, not a container: a non-existent key and an empty set are the same
// thing in the store, so constructing a Set never touches the store and Add
// and Remove operate on whatever is (or is not) there.
type Set[V any] struct {
	plainReads[V]
	key string
}

var _ Node[string] = (*Set[string])(nil)

func newSet[V any](rs *Rediset[V], key string) *Set[V] {
	s := &Set[V]{key: key}
	s.rs = rs
	s.self = s
	return s
}

func (s *Set[V]) Key() string { return s.key }

func (s *Set[V]) Kind() Kind { return KindPlain }

// Leaf data is caller-owned and always live.
func (s *Set[V]) materialize(context.Context) error { return nil }

func (s *Set[V]) Add(ctx context.Context, values ...V) error {
	members, err := s.rs.encodeAll(values)
	if err != nil {
		return err
	}
	return s.rs.store.AddMembers(ctx, s.rs.prefixed(s.key), members...)
}

func (s *Set[V]) Remove(ctx context.Context, values ...V) error {
	members, err := s.rs.encodeAll(values)
	if err != nil {
		return err
	}
	return s.rs.store.RemoveMembers(ctx, s.rs.prefixed(s.key), members...)
}
