package rediset

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/semargal/rediset/internal/keys"
	"github.com/semargal/rediset/store"
)

// opCore holds the state every operation node shares: the instance, the
// combination op, the derived key, the fixed child list and the cache
// lifetime. Nodes are immutable after construction.
type opCore[V any] struct {
	rs       *Rediset[V]
	op       store.Op
	key      string
	children []Node[V]
	ttl      time.Duration
}

func (c *opCore[V]) sourceKeys() []string {
	out := make([]string, len(c.children))
	for i, ch := range c.children {
		out[i] = c.rs.prefixed(ch.Key())
	}
	return out
}

// ensure runs the materialize protocol: short-circuit while a previous
// materialization is still live, otherwise materialize every child
// (independent children in parallel), combine, then set the expiry.
//
// Readers racing on a cold key may combine redundantly; each combine is
// atomic at the store, so they all converge on the same result.
func (c *opCore[V]) ensure(ctx context.Context, combine func(context.Context, string) error) error {
	dest := c.rs.prefixed(c.key)
	if c.ttl > 0 {
		live, err := c.rs.store.Exists(ctx, dest)
		if err != nil {
			return err
		}
		if live {
			c.rs.hooks.CacheHit(c.key)
			c.rs.log.Debug("cache warm, combine skipped", Fields{"key": c.key, "op": string(c.op)})
			return nil
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, child := range c.children {
		g.Go(func() error { return child.materialize(gctx) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := combine(ctx, dest); err != nil {
		c.rs.hooks.CombineFailed(c.key, c.op, err)
		return fmt.Errorf("rediset: %s combine: %w", c.op, err)
	}
	c.rs.hooks.Materialized(c.key, c.op, len(c.children))
	c.rs.log.Debug("combine performed", Fields{"key": c.key, "op": string(c.op), "sources": len(c.children)})

	if c.ttl > 0 {
		if err := c.rs.store.Expire(ctx, dest, c.ttl); err != nil {
			return err
		}
	}
	return nil
}

// setOperation is the plain-set variant of an operation node.
type setOperation[V any] struct {
	plainReads[V]
	core opCore[V]
}

var _ Node[string] = (*setOperation[string])(nil)

func newSetOperation[V any](rs *Rediset[V], op store.Op, children []Node[V], cfg opSettings) *setOperation[V] {
	childKeys := identities(children)
	var key string
	if op == store.Difference {
		key = keys.LeftFixed(opTag(op, false), childKeys[0], childKeys[1:])
	} else {
		key = keys.Commutative(opTag(op, false), childKeys)
	}
	o := &setOperation[V]{core: opCore[V]{rs: rs, op: op, key: key, children: children, ttl: cfg.ttl}}
	o.rs = rs
	o.self = o
	return o
}

func (o *setOperation[V]) Key() string { return o.core.key }

func (o *setOperation[V]) Kind() Kind { return KindPlain }

func (o *setOperation[V]) materialize(ctx context.Context) error {
	return o.core.ensure(ctx, func(ctx context.Context, dest string) error {
		return o.rs.store.CombineSets(ctx, o.core.op, dest, o.core.sourceKeys())
	})
}

// sortedOperation is the sorted-set-aware variant. Plain children are valid
// sources; the store counts their members with score 1.
type sortedOperation[V any] struct {
	orderedReads[V]
	core opCore[V]
	agg  store.Aggregate
}

var _ OrderedNode[string] = (*sortedOperation[string])(nil)

func newSortedOperation[V any](rs *Rediset[V], op store.Op, children []Node[V], cfg opSettings) *sortedOperation[V] {
	childKeys := identities(children)
	key := keys.Commutative(opTag(op, true), childKeys, "aggregate="+string(cfg.agg))
	o := &sortedOperation[V]{
		core: opCore[V]{rs: rs, op: op, key: key, children: children, ttl: cfg.ttl},
		agg:  cfg.agg,
	}
	o.rs = rs
	o.self = o
	return o
}

func (o *sortedOperation[V]) Key() string { return o.core.key }

func (o *sortedOperation[V]) Kind() Kind { return KindOrdered }

func (o *sortedOperation[V]) materialize(ctx context.Context) error {
	return o.core.ensure(ctx, func(ctx context.Context, dest string) error {
		return o.rs.store.CombineScored(ctx, o.core.op, dest, o.core.sourceKeys(), o.agg)
	})
}

func identities[V any](children []Node[V]) []string {
	out := make([]string, len(children))
	for i, ch := range children {
		out[i] = ch.Key()
	}
	return out
}

// opTag namespaces derived keys so plain and sorted results of structurally
// similar trees never collide.
func opTag(op store.Op, ordered bool) string {
	switch op {
	case store.Intersect:
		if ordered {
			return "zinter"
		}
		return "inter"
	case store.Union:
		if ordered {
			return "zunion"
		}
		return "union"
	default:
		return "diff"
	}
}
