// Package store defines the key-value store boundary used by rediset.
//
// Implementations are thin pass-throughs to the backing store's native
// collection commands. They perform no retries, no batching and no composition
// logic; every call is a single synchronous round trip, and every error comes
// back unchanged from the underlying client.
//
// Combine commands MUST be atomic at the store level: readers of the
// destination key observe either the previous contents or the full result,
// never a partial write. A failed combine leaves the destination untouched.
package store

import (
	"context"
	"time"
)

// Op identifies a native store-combination command.
type Op string

const (
	Intersect  Op = "intersect"
	Union      Op = "union"
	Difference Op = "difference"
)

// Aggregate selects how scored combines fold the scores of members present in
// more than one source.
type Aggregate string

const (
	AggregateSum Aggregate = "SUM"
	AggregateMin Aggregate = "MIN"
	AggregateMax Aggregate = "MAX"
)

// ScoredEntry pairs a raw (already encoded) member with its score.
type ScoredEntry struct {
	Member string
	Score  float64
}

// Store is the exact command surface rediset needs. Implementations must be
// safe for concurrent use.
//
// Rank-based reads use the store's index conventions: zero-based, inclusive on
// both ends, with negative indices counting from the end (-1 is the last
// member). Out-of-range bounds are never errors: a start past the front pins
// to the first member, a stop past the back pins to the last, and a window
// that normalizes to start > stop yields an empty result.
type Store interface {
	// Exists reports whether key currently holds a live value.
	Exists(ctx context.Context, key string) (bool, error)

	// Expire sets a time-to-live on key. The key frees itself when it elapses.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Delete removes keys (best-effort, idempotent).
	Delete(ctx context.Context, keys ...string) error

	// Plain sets.
	AddMembers(ctx context.Context, key string, members ...string) error
	RemoveMembers(ctx context.Context, key string, members ...string) error
	Cardinality(ctx context.Context, key string) (int64, error)
	IsMember(ctx context.Context, key, member string) (bool, error)
	Members(ctx context.Context, key string) ([]string, error)

	// CombineSets runs the plain-set combination op over sources and stores
	// the result at dest, replacing any previous value there.
	CombineSets(ctx context.Context, op Op, dest string, sources []string) error

	// Sorted sets.
	AddScored(ctx context.Context, key string, entries ...ScoredEntry) error
	RemoveScored(ctx context.Context, key string, members ...string) error
	ScoredCardinality(ctx context.Context, key string) (int64, error)

	// Score returns (score, true, nil) when member is present and
	// (0, false, nil) when it is not.
	Score(ctx context.Context, key, member string) (float64, bool, error)

	RangeByRank(ctx context.Context, key string, start, stop int64) ([]string, error)
	RangeByRankWithScores(ctx context.Context, key string, start, stop int64) ([]ScoredEntry, error)
	IncrementScore(ctx context.Context, key, member string, delta float64) (float64, error)
	RemoveRangeByRank(ctx context.Context, key string, start, stop int64) (int64, error)
	RemoveRangeByScore(ctx context.Context, key string, min, max float64) (int64, error)

	// CombineScored runs the sorted-set combination op over sources and stores
	// the result at dest. Plain-set sources participate with every member
	// scored 1. Difference is not a scored combine and must be rejected.
	CombineScored(ctx context.Context, op Op, dest string, sources []string, agg Aggregate) error

	// Close releases resources held by the adapter.
	Close(ctx context.Context) error
}
