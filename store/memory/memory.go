// Package memory provides an in-process implementation of the rediset store
// boundary, including combine and expiry semantics. It exists for tests and
// examples; production deployments share materializations through a real
// backing store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/semargal/rediset/store"
)

// Memory holds plain and scored sets in process memory.
// Expired keys are reaped lazily on access.
type Memory struct {
	mu     sync.Mutex
	sets   map[string]map[string]struct{}
	scored map[string]map[string]float64
	expiry map[string]time.Time
}

var _ store.Store = (*Memory)(nil)

func New() *Memory {
	return &Memory{
		sets:   make(map[string]map[string]struct{}),
		scored: make(map[string]map[string]float64),
		expiry: make(map[string]time.Time),
	}
}

// reap drops key if its TTL elapsed. Caller must hold mu.
func (m *Memory) reap(key string) {
	exp, ok := m.expiry[key]
	if ok && time.Now().After(exp) {
		m.drop(key)
	}
}

func (m *Memory) drop(key string) {
	delete(m.sets, key)
	delete(m.scored, key)
	delete(m.expiry, key)
}

func (m *Memory) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reap(key)
	_, inSets := m.sets[key]
	_, inScored := m.scored[key]
	return inSets || inScored, nil
}

func (m *Memory) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reap(key)
	_, inSets := m.sets[key]
	_, inScored := m.scored[key]
	if inSets || inScored {
		m.expiry[key] = time.Now().Add(ttl)
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		m.drop(k)
	}
	return nil
}

func (m *Memory) AddMembers(_ context.Context, key string, members ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reap(key)
	s, ok := m.sets[key]
	if !ok {
		s = make(map[string]struct{})
		m.sets[key] = s
	}
	for _, v := range members {
		s[v] = struct{}{}
	}
	return nil
}

func (m *Memory) RemoveMembers(_ context.Context, key string, members ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reap(key)
	s := m.sets[key]
	for _, v := range members {
		delete(s, v)
	}
	if len(s) == 0 {
		delete(m.sets, key)
	}
	return nil
}

func (m *Memory) Cardinality(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reap(key)
	return int64(len(m.sets[key])), nil
}

func (m *Memory) IsMember(_ context.Context, key, member string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reap(key)
	_, ok := m.sets[key][member]
	return ok, nil
}

func (m *Memory) Members(_ context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reap(key)
	out := make([]string, 0, len(m.sets[key]))
	for v := range m.sets[key] {
		out = append(out, v)
	}
	return out, nil
}

func (m *Memory) CombineSets(_ context.Context, op store.Op, dest string, sources []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	srcs := make([]map[string]struct{}, len(sources))
	for i, k := range sources {
		m.reap(k)
		srcs[i] = m.sets[k]
	}

	result := make(map[string]struct{})
	switch op {
	case store.Intersect:
		for v := range first(srcs) {
			if inAll(v, srcs[1:]) {
				result[v] = struct{}{}
			}
		}
	case store.Union:
		for _, s := range srcs {
			for v := range s {
				result[v] = struct{}{}
			}
		}
	case store.Difference:
		for v := range first(srcs) {
			if !inAny(v, srcs[1:]) {
				result[v] = struct{}{}
			}
		}
	default:
		return fmt.Errorf("memory store: unknown combine op %q", op)
	}

	// an empty combine result removes the destination, matching SINTERSTORE
	// and friends
	m.drop(dest)
	if len(result) > 0 {
		m.sets[dest] = result
	}
	return nil
}

func (m *Memory) AddScored(_ context.Context, key string, entries ...store.ScoredEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reap(key)
	z, ok := m.scored[key]
	if !ok {
		z = make(map[string]float64)
		m.scored[key] = z
	}
	for _, e := range entries {
		z[e.Member] = e.Score
	}
	return nil
}

func (m *Memory) RemoveScored(_ context.Context, key string, members ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reap(key)
	z := m.scored[key]
	for _, v := range members {
		delete(z, v)
	}
	if len(z) == 0 {
		delete(m.scored, key)
	}
	return nil
}

func (m *Memory) ScoredCardinality(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reap(key)
	return int64(len(m.scored[key])), nil
}

func (m *Memory) Score(_ context.Context, key, member string) (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reap(key)
	v, ok := m.scored[key][member]
	return v, ok, nil
}

func (m *Memory) RangeByRank(ctx context.Context, key string, start, stop int64) ([]string, error) {
	entries, err := m.RangeByRankWithScores(ctx, key, start, stop)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Member
	}
	return out, nil
}

func (m *Memory) RangeByRankWithScores(_ context.Context, key string, start, stop int64) ([]store.ScoredEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reap(key)
	all := sortedEntries(m.scored[key])
	lo, hi, ok := clampRange(start, stop, int64(len(all)))
	if !ok {
		return nil, nil
	}
	return all[lo : hi+1], nil
}

func (m *Memory) IncrementScore(_ context.Context, key, member string, delta float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reap(key)
	z, ok := m.scored[key]
	if !ok {
		z = make(map[string]float64)
		m.scored[key] = z
	}
	z[member] += delta
	return z[member], nil
}

func (m *Memory) RemoveRangeByRank(_ context.Context, key string, start, stop int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reap(key)
	z := m.scored[key]
	all := sortedEntries(z)
	lo, hi, ok := clampRange(start, stop, int64(len(all)))
	if !ok {
		return 0, nil
	}
	for _, e := range all[lo : hi+1] {
		delete(z, e.Member)
	}
	if len(z) == 0 {
		delete(m.scored, key)
	}
	return hi - lo + 1, nil
}

func (m *Memory) RemoveRangeByScore(_ context.Context, key string, min, max float64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reap(key)
	z := m.scored[key]
	var removed int64
	for v, score := range z {
		if score >= min && score <= max {
			delete(z, v)
			removed++
		}
	}
	if len(z) == 0 {
		delete(m.scored, key)
	}
	return removed, nil
}

func (m *Memory) CombineScored(_ context.Context, op store.Op, dest string, sources []string, agg store.Aggregate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	srcs := make([]map[string]float64, len(sources))
	for i, k := range sources {
		m.reap(k)
		srcs[i] = m.scoredView(k)
	}

	result := make(map[string]float64)
	switch op {
	case store.Intersect:
		for v, score := range firstScored(srcs) {
			acc, present := score, true
			for _, s := range srcs[1:] {
				other, ok := s[v]
				if !ok {
					present = false
					break
				}
				acc = fold(agg, acc, other)
			}
			if present {
				result[v] = acc
			}
		}
	case store.Union:
		for _, s := range srcs {
			for v, score := range s {
				if acc, ok := result[v]; ok {
					result[v] = fold(agg, acc, score)
				} else {
					result[v] = score
				}
			}
		}
	default:
		return fmt.Errorf("memory store: %q is not a scored combine", op)
	}

	m.drop(dest)
	if len(result) > 0 {
		m.scored[dest] = result
	}
	return nil
}

func (m *Memory) Close(context.Context) error { return nil }

// scoredView returns key's members with scores; plain-set members count with
// score 1, the way scored combines treat plain sources.
func (m *Memory) scoredView(key string) map[string]float64 {
	if z, ok := m.scored[key]; ok {
		return z
	}
	s, ok := m.sets[key]
	if !ok {
		return nil
	}
	z := make(map[string]float64, len(s))
	for v := range s {
		z[v] = 1
	}
	return z
}

func fold(agg store.Aggregate, a, b float64) float64 {
	switch agg {
	case store.AggregateMin:
		if b < a {
			return b
		}
		return a
	case store.AggregateMax:
		if b > a {
			return b
		}
		return a
	default:
		return a + b
	}
}

func first[T any](srcs []T) T {
	var zero T
	if len(srcs) == 0 {
		return zero
	}
	return srcs[0]
}

func firstScored(srcs []map[string]float64) map[string]float64 {
	if len(srcs) == 0 {
		return nil
	}
	return srcs[0]
}

func inAll(v string, srcs []map[string]struct{}) bool {
	for _, s := range srcs {
		if _, ok := s[v]; !ok {
			return false
		}
	}
	return true
}

func inAny(v string, srcs []map[string]struct{}) bool {
	for _, s := range srcs {
		if _, ok := s[v]; ok {
			return true
		}
	}
	return false
}

// sortedEntries orders by score, with member as the tiebreak.
func sortedEntries(z map[string]float64) []store.ScoredEntry {
	out := make([]store.ScoredEntry, 0, len(z))
	for v, score := range z {
		out = append(out, store.ScoredEntry{Member: v, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		return out[i].Member < out[j].Member
	})
	return out
}

// clampRange converts inclusive, possibly negative rank bounds into slice
// offsets over n elements. ok is false when the window is empty.
func clampRange(start, stop, n int64) (lo, hi int64, ok bool) {
	if n == 0 {
		return 0, 0, false
	}
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	// ZRANGE index normalization: only start is pinned to 0 after the
	// negative adjustment; a stop still below 0 leaves start > stop and the
	// window comes back empty.
	if start < 0 {
		start = 0
	}
	if start > stop || start >= n {
		return 0, 0, false
	}
	if stop >= n {
		stop = n - 1
	}
	return start, stop, true
}
