package typedis

import (
	"context"
	"time"

	"github.com/unkn0wn-root/typedis/codec"
)

// SetValueAs encodes v with c and stores it under key. ttl <= 0 means no
// expiry. The encoded form is stored as a plain scalar, so GetValue on the
// same key returns the raw encoding.
func SetValueAs[V any](ctx context.Context, kv KV, key string, v V, c codec.Codec[V], ttl time.Duration) error {
	b, err := c.Encode(v)
	if err != nil {
		return err
	}
	return kv.SetValueTTL(ctx, key, string(b), ttl)
}

// GetValueAs returns the scalar stored under key decoded into V.
// Absent keys yield (zero, false, nil). A value that does not decode into V
// yields a *TypeMismatchError; the stored value is left as-is.
func GetValueAs[V any](ctx context.Context, kv KV, key string, c codec.Codec[V]) (V, bool, error) {
	var zero V
	raw, ok, err := kv.GetValue(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := c.Decode([]byte(raw))
	if err != nil {
		return zero, false, &TypeMismatchError{Key: key, Err: err}
	}
	return v, true, nil
}
