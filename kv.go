package typedis

import (
	"context"
	"time"

	"github.com/unkn0wn-root/typedis/store"
)

type kv struct {
	st  store.Store
	log Logger

	defaultTTL time.Duration
}

func newKV(opts Options) (*kv, error) {
	if opts.Store == nil {
		return nil, ErrNilStore
	}
	return &kv{
		st:         opts.Store,
		log:        coalesce[Logger](opts.Logger, NopLogger{}),
		defaultTTL: opts.DefaultTTL,
	}, nil
}

func (k *kv) SetValue(ctx context.Context, key, value string) error {
	return k.st.Set(ctx, key, value, k.defaultTTL)
}

func (k *kv) SetValueTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	return k.st.Set(ctx, key, value, ttl)
}

func (k *kv) GetValue(ctx context.Context, key string) (string, bool, error) {
	return k.st.Get(ctx, key)
}

func (k *kv) HashPut(ctx context.Context, key, field, value string) error {
	return k.st.HSet(ctx, key, field, value)
}

func (k *kv) HashPutAll(ctx context.Context, key string, fields map[string]string) error {
	return k.st.HSetAll(ctx, key, fields)
}

func (k *kv) HashGet(ctx context.Context, key, field string) (string, bool, error) {
	return k.st.HGet(ctx, key, field)
}

// HashMultiGet coerces missing fields to "" so callers index the result by
// position without nil checks.
func (k *kv) HashMultiGet(ctx context.Context, key string, fields ...string) ([]string, error) {
	vals, err := k.st.HMGet(ctx, key, fields...)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(fields))
	missing := 0
	for i, v := range vals {
		if v.OK {
			out[i] = v.Val
		} else {
			missing++
		}
	}
	if missing > 0 {
		k.log.Debug("typedis.multi_get_coerced", Fields{"key": key, "missing": missing})
	}
	return out, nil
}

func (k *kv) HashGetAll(ctx context.Context, key string) (map[string]string, error) {
	m, err := k.st.HGetAll(ctx, key)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

func (k *kv) HashDeleteField(ctx context.Context, key string, fields ...string) (int64, error) {
	return k.st.HDel(ctx, key, fields...)
}

func (k *kv) SetAdd(ctx context.Context, key string, members ...string) (int64, error) {
	return k.st.SAdd(ctx, key, members...)
}

func (k *kv) SetDelete(ctx context.Context, key string, members ...string) (int64, error) {
	return k.st.SRem(ctx, key, members...)
}

func (k *kv) SetGetAll(ctx context.Context, key string) ([]string, error) {
	ms, err := k.st.SMembers(ctx, key)
	if err != nil {
		return nil, err
	}
	if ms == nil {
		ms = []string{}
	}
	return ms, nil
}

func (k *kv) ZSetAdd(ctx context.Context, key string, members ...store.ScoredMember) (int64, error) {
	return k.st.ZAdd(ctx, key, members...)
}

func (k *kv) ZSetDelete(ctx context.Context, key string, members ...string) (int64, error) {
	return k.st.ZRem(ctx, key, members...)
}

func (k *kv) ListPush(ctx context.Context, key, value string) (int64, error) {
	return k.st.RPush(ctx, key, value)
}

func (k *kv) ListPushAll(ctx context.Context, key string, values ...string) (int64, error) {
	return k.st.RPush(ctx, key, values...)
}

func (k *kv) ListRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	vs, err := k.st.LRange(ctx, key, start, stop)
	if err != nil {
		return nil, err
	}
	if vs == nil {
		vs = []string{}
	}
	return vs, nil
}

func (k *kv) ListGetAll(ctx context.Context, key string) ([]string, error) {
	return k.ListRange(ctx, key, 0, -1)
}

func (k *kv) HasKey(ctx context.Context, key string) (bool, error) {
	return k.st.Exists(ctx, key)
}

func (k *kv) HasField(ctx context.Context, key, field string) (bool, error) {
	return k.st.HExists(ctx, key, field)
}

func (k *kv) Delete(ctx context.Context, key string) (bool, error) {
	n, err := k.st.Del(ctx, key)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (k *kv) DeleteKeys(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return k.st.Del(ctx, keys...)
}

func (k *kv) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return k.st.Expire(ctx, key, ttl)
}

func (k *kv) Close(ctx context.Context) error {
	return k.st.Close(ctx)
}
