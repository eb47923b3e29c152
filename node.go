package rediset

import (
	"context"
	"iter"
)

// Kind tags a node's value family. Every node carries exactly one of the two
// tags; the factory picks operation variants off a uniformity check over the
// children's tags.
type Kind uint8

const (
	KindPlain Kind = iota
	KindOrdered
)

// Node is a read-only handle on a set in the backing store: either a leaf the
// caller mutates directly or the lazily materialized result of an operation
// over other nodes. Nodes are immutable once constructed and cheap to build;
// no store traffic happens until a read.
type Node[V any] interface {
	// Key is the node's identity, unprefixed. Leaves return the caller-given
	// key; operations return a key derived deterministically from their
	// structure.
	Key() string

	Kind() Kind

	Cardinality(ctx context.Context) (int64, error)
	Contains(ctx context.Context, value V) (bool, error)
	Members(ctx context.Context) ([]V, error)

	// All yields the members lazily: nothing is fetched until the first
	// pull, and every restart of the sequence re-triggers evaluation under
	// the same caching rules.
	All(ctx context.Context) iter.Seq2[V, error]

	// Fluent composition: n.Intersection(x, y) is rs.Intersection(n, x, y).
	Intersection(items ...any) (Node[V], error)
	Union(items ...any) (Node[V], error)
	Difference(items ...any) (Node[V], error)

	// materialize recursively ensures the node's key holds live data.
	// Leaves are always live; operations combine-then-expire as needed.
	materialize(ctx context.Context) error
}

// Scored pairs a member value with its score.
type Scored[V any] struct {
	Value V
	Score float64
}

// OrderedNode extends Node with rank-aware reads. Intersections and unions
// with at least one sorted-set child satisfy it, as do SortedSet leaves.
type OrderedNode[V any] interface {
	Node[V]

	MembersWithScores(ctx context.Context) ([]Scored[V], error)
	Range(ctx context.Context, start, stop int64) ([]V, error)
	RangeWithScores(ctx context.Context, start, stop int64) ([]Scored[V], error)

	// Get is the safe accessor: out-of-range indices return ok=false.
	Get(ctx context.Context, index int64) (V, bool, error)

	// At is the strict accessor: out-of-range indices return
	// ErrIndexOutOfRange.
	At(ctx context.Context, index int64) (V, error)

	Score(ctx context.Context, value V) (float64, bool, error)
}

// reads carries what every node's read methods need: the owning instance and
// a self reference for materialization and fluent composition.
type reads[V any] struct {
	rs   *Rediset[V]
	self Node[V]
}

func (r *reads[V]) Intersection(items ...any) (Node[V], error) {
	return r.rs.Intersection(prepend(r.self, items)...)
}

func (r *reads[V]) Union(items ...any) (Node[V], error) {
	return r.rs.Union(prepend(r.self, items)...)
}

func (r *reads[V]) Difference(items ...any) (Node[V], error) {
	return r.rs.Difference(prepend(r.self, items)...)
}

func prepend[V any](n Node[V], items []any) []any {
	out := make([]any, 0, len(items)+1)
	out = append(out, n)
	return append(out, items...)
}

// plainReads implements the Node read surface over plain-set commands.
type plainReads[V any] struct {
	reads[V]
}

func (p *plainReads[V]) Cardinality(ctx context.Context) (int64, error) {
	if err := p.self.materialize(ctx); err != nil {
		return 0, err
	}
	return p.rs.store.Cardinality(ctx, p.rs.prefixed(p.self.Key()))
}

func (p *plainReads[V]) Contains(ctx context.Context, value V) (bool, error) {
	if err := p.self.materialize(ctx); err != nil {
		return false, err
	}
	m, err := p.rs.encode(value)
	if err != nil {
		return false, err
	}
	return p.rs.store.IsMember(ctx, p.rs.prefixed(p.self.Key()), m)
}

func (p *plainReads[V]) Members(ctx context.Context) ([]V, error) {
	if err := p.self.materialize(ctx); err != nil {
		return nil, err
	}
	raw, err := p.rs.store.Members(ctx, p.rs.prefixed(p.self.Key()))
	if err != nil {
		return nil, err
	}
	return p.rs.decodeAll(raw)
}

func (p *plainReads[V]) All(ctx context.Context) iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		members, err := p.Members(ctx)
		if err != nil {
			var zero V
			yield(zero, err)
			return
		}
		for _, v := range members {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// orderedReads implements the OrderedNode read surface over sorted-set
// commands.
type orderedReads[V any] struct {
	reads[V]
}

func (o *orderedReads[V]) Cardinality(ctx context.Context) (int64, error) {
	if err := o.self.materialize(ctx); err != nil {
		return 0, err
	}
	return o.rs.store.ScoredCardinality(ctx, o.rs.prefixed(o.self.Key()))
}

// Contains goes through Score: the store has no direct membership command for
// sorted sets.
func (o *orderedReads[V]) Contains(ctx context.Context, value V) (bool, error) {
	_, ok, err := o.Score(ctx, value)
	return ok, err
}

func (o *orderedReads[V]) Score(ctx context.Context, value V) (float64, bool, error) {
	if err := o.self.materialize(ctx); err != nil {
		return 0, false, err
	}
	m, err := o.rs.encode(value)
	if err != nil {
		return 0, false, err
	}
	return o.rs.store.Score(ctx, o.rs.prefixed(o.self.Key()), m)
}

func (o *orderedReads[V]) Members(ctx context.Context) ([]V, error) {
	return o.Range(ctx, 0, -1)
}

func (o *orderedReads[V]) MembersWithScores(ctx context.Context) ([]Scored[V], error) {
	return o.RangeWithScores(ctx, 0, -1)
}

func (o *orderedReads[V]) Range(ctx context.Context, start, stop int64) ([]V, error) {
	if err := o.self.materialize(ctx); err != nil {
		return nil, err
	}
	raw, err := o.rs.store.RangeByRank(ctx, o.rs.prefixed(o.self.Key()), start, stop)
	if err != nil {
		return nil, err
	}
	return o.rs.decodeAll(raw)
}

func (o *orderedReads[V]) RangeWithScores(ctx context.Context, start, stop int64) ([]Scored[V], error) {
	if err := o.self.materialize(ctx); err != nil {
		return nil, err
	}
	entries, err := o.rs.store.RangeByRankWithScores(ctx, o.rs.prefixed(o.self.Key()), start, stop)
	if err != nil {
		return nil, err
	}
	out := make([]Scored[V], len(entries))
	for i, e := range entries {
		v, err := o.rs.decode(e.Member)
		if err != nil {
			return nil, err
		}
		out[i] = Scored[V]{Value: v, Score: e.Score}
	}
	return out, nil
}

func (o *orderedReads[V]) Get(ctx context.Context, index int64) (V, bool, error) {
	var zero V
	res, err := o.Range(ctx, index, index)
	if err != nil {
		return zero, false, err
	}
	if len(res) == 0 {
		return zero, false, nil
	}
	return res[0], true, nil
}

func (o *orderedReads[V]) At(ctx context.Context, index int64) (V, error) {
	v, ok, err := o.Get(ctx, index)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, ErrIndexOutOfRange
	}
	return v, nil
}

func (o *orderedReads[V]) All(ctx context.Context) iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		members, err := o.Members(ctx)
		if err != nil {
			var zero V
			yield(zero, err)
			return
		}
		for _, v := range members {
			if !yield(v, nil) {
				return
			}
		}
	}
}
