package rediset

import (
	"context"
	"fmt"
	"time"

	"github.com/semargal/rediset/codec"
	"github.com/semargal/rediset/store"
)

// Options tune a Rediset instance. Only Store is required; Codec defaults to
// the identity codec when V is string and must be supplied otherwise.
type Options[V any] struct {
	// Store is the backing key-value store adapter. Required.
	Store store.Store

	// KeyPrefix namespaces every key this instance touches, leaves and
	// derived materializations alike. Empty means no prefix.
	KeyPrefix string

	// DefaultCacheTTL is the cache lifetime inherited by every operation
	// node unless overridden per call with WithCacheTTL. Zero disables
	// caching: combines run on every read and results carry no expiry.
	DefaultCacheTTL time.Duration

	// Codec encodes member values to store members. Must be deterministic;
	// see the codec package.
	Codec codec.Codec[V]

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// Rediset builds set and sorted-set handles and composes them into lazily
// evaluated operation trees. Construct with New; the zero value is not usable.
type Rediset[V any] struct {
	store      store.Store
	prefix     string
	defaultTTL time.Duration
	codec      codec.Codec[V]
	log        Logger
	hooks      Hooks
}

func New[V any](opts Options[V]) (*Rediset[V], error) {
	if opts.Store == nil {
		return nil, ErrNilStore
	}
	cd := opts.Codec
	if cd == nil {
		if cd = stringCodec[V](); cd == nil {
			return nil, ErrNilCodec
		}
	}
	r := &Rediset[V]{
		store:      opts.Store,
		prefix:     opts.KeyPrefix,
		defaultTTL: opts.DefaultCacheTTL,
		codec:      cd,
	}
	r.log = coalesce[Logger](opts.Logger, NopLogger{})
	r.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	return r, nil
}

// Close releases the store adapter.
func (r *Rediset[V]) Close(ctx context.Context) error {
	return r.store.Close(ctx)
}

// Set returns a handle on the plain set stored under key.
func (r *Rediset[V]) Set(key string) *Set[V] {
	return newSet(r, key)
}

// SortedSet returns a handle on the sorted set stored under key.
func (r *Rediset[V]) SortedSet(key string) *SortedSet[V] {
	return newSortedSet(r, key)
}

// Intersection composes the given sets into a lazily evaluated intersection.
// Items may be nodes, raw key strings (resolved to plain Set handles) and
// trailing options. A single set is returned as-is: intersecting one set is
// that set. The result satisfies OrderedNode when any child is sorted.
func (r *Rediset[V]) Intersection(items ...any) (Node[V], error) {
	return r.compose(store.Intersect, items)
}

// Union composes the given sets into a lazily evaluated union, under the same
// rules as Intersection.
func (r *Rediset[V]) Union(items ...any) (Node[V], error) {
	return r.compose(store.Union, items)
}

// Difference composes the given sets into a lazily evaluated difference: the
// first set minus the union of the rest. The first ("minuend") position is
// significant; the remaining sets are interchangeable. Sorted-set children
// are rejected with ErrOrderedDifference.
func (r *Rediset[V]) Difference(items ...any) (Node[V], error) {
	return r.compose(store.Difference, items)
}

func (r *Rediset[V]) compose(op store.Op, items []any) (Node[V], error) {
	children, cfg, err := r.resolve(items)
	if err != nil {
		return nil, err
	}
	if len(children) == 1 {
		return children[0], nil
	}
	ordered := false
	for _, ch := range children {
		if ch.Kind() == KindOrdered {
			ordered = true
			break
		}
	}
	if ordered {
		if op == store.Difference {
			return nil, ErrOrderedDifference
		}
		return newSortedOperation(r, op, children, cfg), nil
	}
	return newSetOperation(r, op, children, cfg), nil
}

// OpOption tunes a single composition call.
type OpOption func(*opSettings)

type opSettings struct {
	ttl time.Duration
	agg store.Aggregate
}

// WithCacheTTL overrides the instance-wide default cache lifetime for one
// composition. Zero disables caching for that node.
func WithCacheTTL(d time.Duration) OpOption {
	return func(s *opSettings) { s.ttl = d }
}

// WithAggregate selects how a sorted combine folds the scores of members
// present in several children. Plain-set compositions ignore it.
func WithAggregate(a store.Aggregate) OpOption {
	return func(s *opSettings) { s.agg = a }
}

// resolve converts the variadic argument list into child nodes, turning raw
// key strings into plain Set handles and collecting trailing options. String
// resolution never infers sortedness.
func (r *Rediset[V]) resolve(items []any) ([]Node[V], opSettings, error) {
	cfg := opSettings{ttl: r.defaultTTL, agg: store.AggregateSum}
	children := make([]Node[V], 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case Node[V]:
			children = append(children, it)
		case string:
			children = append(children, r.Set(it))
		case OpOption:
			it(&cfg)
		default:
			return nil, cfg, fmt.Errorf("%w, got %T", ErrBadItem, item)
		}
	}
	if len(children) == 0 {
		return nil, cfg, ErrNoItems
	}
	return children, cfg, nil
}

func (r *Rediset[V]) prefixed(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

func (r *Rediset[V]) encode(v V) (string, error) {
	b, err := r.codec.Encode(v)
	if err != nil {
		return "", fmt.Errorf("rediset: encode member: %w", err)
	}
	return string(b), nil
}

func (r *Rediset[V]) encodeAll(vs []V) ([]string, error) {
	out := make([]string, len(vs))
	for i, v := range vs {
		m, err := r.encode(v)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

func (r *Rediset[V]) decode(m string) (V, error) {
	v, err := r.codec.Decode([]byte(m))
	if err != nil {
		return v, fmt.Errorf("rediset: decode member: %w", err)
	}
	return v, nil
}

func (r *Rediset[V]) decodeAll(ms []string) ([]V, error) {
	out := make([]V, len(ms))
	for i, m := range ms {
		v, err := r.decode(m)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// stringCodec returns the identity codec when V is string, nil otherwise.
func stringCodec[V any]() codec.Codec[V] {
	if c, ok := any(codec.String{}).(codec.Codec[V]); ok {
		return c
	}
	return nil
}
