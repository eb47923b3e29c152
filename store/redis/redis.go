// Package redis adapts a go-redis client to the rediset store boundary.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/semargal/rediset/store"
)

var ErrNilClient = errors.New("redis store: nil client")

// Redis forwards every store call to a single Redis command.
type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ store.Store = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this adapter exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func (s *Redis) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Redis) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.rdb.Expire(ctx, key, ttl).Err()
}

func (s *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

func (s *Redis) AddMembers(ctx context.Context, key string, members ...string) error {
	return s.rdb.SAdd(ctx, key, toAny(members)...).Err()
}

func (s *Redis) RemoveMembers(ctx context.Context, key string, members ...string) error {
	return s.rdb.SRem(ctx, key, toAny(members)...).Err()
}

func (s *Redis) Cardinality(ctx context.Context, key string) (int64, error) {
	return s.rdb.SCard(ctx, key).Result()
}

func (s *Redis) IsMember(ctx context.Context, key, member string) (bool, error) {
	return s.rdb.SIsMember(ctx, key, member).Result()
}

func (s *Redis) Members(ctx context.Context, key string) ([]string, error) {
	return s.rdb.SMembers(ctx, key).Result()
}

func (s *Redis) CombineSets(ctx context.Context, op store.Op, dest string, sources []string) error {
	switch op {
	case store.Intersect:
		return s.rdb.SInterStore(ctx, dest, sources...).Err()
	case store.Union:
		return s.rdb.SUnionStore(ctx, dest, sources...).Err()
	case store.Difference:
		return s.rdb.SDiffStore(ctx, dest, sources...).Err()
	default:
		return fmt.Errorf("redis store: unknown combine op %q", op)
	}
}

func (s *Redis) AddScored(ctx context.Context, key string, entries ...store.ScoredEntry) error {
	zs := make([]goredis.Z, len(entries))
	for i, e := range entries {
		zs[i] = goredis.Z{Member: e.Member, Score: e.Score}
	}
	return s.rdb.ZAdd(ctx, key, zs...).Err()
}

func (s *Redis) RemoveScored(ctx context.Context, key string, members ...string) error {
	return s.rdb.ZRem(ctx, key, toAny(members)...).Err()
}

func (s *Redis) ScoredCardinality(ctx context.Context, key string) (int64, error) {
	return s.rdb.ZCard(ctx, key).Result()
}

func (s *Redis) Score(ctx context.Context, key, member string) (float64, bool, error) {
	v, err := s.rdb.ZScore(ctx, key, member).Result()
	if err == goredis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func (s *Redis) RangeByRank(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return s.rdb.ZRange(ctx, key, start, stop).Result()
}

func (s *Redis) RangeByRankWithScores(ctx context.Context, key string, start, stop int64) ([]store.ScoredEntry, error) {
	zs, err := s.rdb.ZRangeWithScores(ctx, key, start, stop).Result()
	if err != nil {
		return nil, err
	}
	out := make([]store.ScoredEntry, len(zs))
	for i, z := range zs {
		m, ok := z.Member.(string)
		if !ok {
			m = fmt.Sprint(z.Member)
		}
		out[i] = store.ScoredEntry{Member: m, Score: z.Score}
	}
	return out, nil
}

func (s *Redis) IncrementScore(ctx context.Context, key, member string, delta float64) (float64, error) {
	return s.rdb.ZIncrBy(ctx, key, delta, member).Result()
}

func (s *Redis) RemoveRangeByRank(ctx context.Context, key string, start, stop int64) (int64, error) {
	return s.rdb.ZRemRangeByRank(ctx, key, start, stop).Result()
}

func (s *Redis) RemoveRangeByScore(ctx context.Context, key string, min, max float64) (int64, error) {
	return s.rdb.ZRemRangeByScore(ctx, key, formatScore(min), formatScore(max)).Result()
}

func (s *Redis) CombineScored(ctx context.Context, op store.Op, dest string, sources []string, agg store.Aggregate) error {
	z := &goredis.ZStore{Keys: sources, Aggregate: string(agg)}
	switch op {
	case store.Intersect:
		return s.rdb.ZInterStore(ctx, dest, z).Err()
	case store.Union:
		return s.rdb.ZUnionStore(ctx, dest, z).Err()
	default:
		return fmt.Errorf("redis store: %q is not a scored combine", op)
	}
}

// Close releases the underlying client only when this adapter owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Redis) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}

func toAny(members []string) []interface{} {
	out := make([]interface{}, len(members))
	for i, m := range members {
		out[i] = m
	}
	return out
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
