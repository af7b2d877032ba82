// Package redis implements the typedis store contract on top of go-redis.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/typedis/store"
)

var ErrNilClient = errors.New("redis store: nil client")

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ store.Store = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this store exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func (s *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", false, nil // miss
	}
	if err != nil {
		return "", false, err // transport/server error
	}
	return v, true, nil
}

func (s *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0 // treat negative TTLs as "no expiry" per store contract
	}
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *Redis) HSet(ctx context.Context, key, field, value string) error {
	return s.rdb.HSet(ctx, key, field, value).Err()
}

func (s *Redis) HSetAll(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return s.rdb.HSet(ctx, key, fields).Err()
}

func (s *Redis) HGet(ctx context.Context, key, field string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, key, field).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Redis) HMGet(ctx context.Context, key string, fields ...string) ([]store.Value, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	raw, err := s.rdb.HMGet(ctx, key, fields...).Result()
	if err != nil {
		return nil, err
	}
	out := make([]store.Value, len(raw))
	for i, v := range raw {
		switch vv := v.(type) {
		case nil:
			// missing field
		case string:
			out[i] = store.Value{Val: vv, OK: true}
		case []byte:
			out[i] = store.Value{Val: string(vv), OK: true}
		}
	}
	return out, nil
}

func (s *Redis) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return s.rdb.HGetAll(ctx, key).Result()
}

func (s *Redis) HDel(ctx context.Context, key string, fields ...string) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	return s.rdb.HDel(ctx, key, fields...).Result()
}

func (s *Redis) HExists(ctx context.Context, key, field string) (bool, error) {
	return s.rdb.HExists(ctx, key, field).Result()
}

func (s *Redis) SAdd(ctx context.Context, key string, members ...string) (int64, error) {
	if len(members) == 0 {
		return 0, nil
	}
	return s.rdb.SAdd(ctx, key, toAny(members)...).Result()
}

func (s *Redis) SRem(ctx context.Context, key string, members ...string) (int64, error) {
	if len(members) == 0 {
		return 0, nil
	}
	return s.rdb.SRem(ctx, key, toAny(members)...).Result()
}

func (s *Redis) SMembers(ctx context.Context, key string) ([]string, error) {
	return s.rdb.SMembers(ctx, key).Result()
}

func (s *Redis) ZAdd(ctx context.Context, key string, members ...store.ScoredMember) (int64, error) {
	if len(members) == 0 {
		return 0, nil
	}
	zs := make([]goredis.Z, len(members))
	for i, m := range members {
		zs[i] = goredis.Z{Score: m.Score, Member: m.Member}
	}
	return s.rdb.ZAdd(ctx, key, zs...).Result()
}

func (s *Redis) ZRem(ctx context.Context, key string, members ...string) (int64, error) {
	if len(members) == 0 {
		return 0, nil
	}
	return s.rdb.ZRem(ctx, key, toAny(members)...).Result()
}

func (s *Redis) RPush(ctx context.Context, key string, values ...string) (int64, error) {
	if len(values) == 0 {
		return 0, nil
	}
	return s.rdb.RPush(ctx, key, toAny(values)...).Result()
}

func (s *Redis) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return s.rdb.LRange(ctx, key, start, stop).Result()
}

func (s *Redis) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Redis) Del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return s.rdb.Del(ctx, keys...).Result()
}

func (s *Redis) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.rdb.Expire(ctx, key, ttl).Result()
}

// Close releases the underlying redis client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Redis) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
