package local

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/unkn0wn-root/typedis/store"
)

func TestScalarMissVsEmpty(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "k", "", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, err := s.Get(ctx, "k"); err != nil || !ok || v != "" {
		t.Fatalf("empty-but-present: v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestWrongType(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := s.SAdd(ctx, "k", "m"); !errors.Is(err, ErrWrongType) {
		t.Fatalf("SAdd on scalar: %v", err)
	}
	if err := s.HSetAll(ctx, "k", map[string]string{"f": "v"}); !errors.Is(err, ErrWrongType) {
		t.Fatalf("HSetAll on scalar: %v", err)
	}
	if _, err := s.RPush(ctx, "k", "v"); !errors.Is(err, ErrWrongType) {
		t.Fatalf("RPush on scalar: %v", err)
	}
}

func TestHashAtomicVisibilityAndDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.HSetAll(ctx, "h", map[string]string{"a": "1", "b": "2"}); err != nil {
		t.Fatalf("HSetAll: %v", err)
	}
	m, err := s.HGetAll(ctx, "h")
	if err != nil || len(m) != 2 || m["a"] != "1" || m["b"] != "2" {
		t.Fatalf("HGetAll: %v err=%v", m, err)
	}

	vals, err := s.HMGet(ctx, "h", "a", "missing")
	if err != nil || !vals[0].OK || vals[0].Val != "1" || vals[1].OK {
		t.Fatalf("HMGet: %v err=%v", vals, err)
	}

	// Removing the last field drops the key entirely, like redis.
	if n, err := s.HDel(ctx, "h", "a", "b", "missing"); err != nil || n != 2 {
		t.Fatalf("HDel: n=%d err=%v", n, err)
	}
	if ok, _ := s.Exists(ctx, "h"); ok {
		t.Fatalf("empty hash should be dropped")
	}
}

func TestSetAndZSetCounts(t *testing.T) {
	ctx := context.Background()
	s := New()

	if n, _ := s.SAdd(ctx, "s", "a", "a", "b"); n != 2 {
		t.Fatalf("SAdd count = %d", n)
	}
	if n, _ := s.SRem(ctx, "s", "a", "x"); n != 1 {
		t.Fatalf("SRem count = %d", n)
	}
	ms, _ := s.SMembers(ctx, "s")
	if len(ms) != 1 || ms[0] != "b" {
		t.Fatalf("SMembers: %v", ms)
	}

	if n, _ := s.ZAdd(ctx, "z", store.ScoredMember{Member: "m", Score: 1}); n != 1 {
		t.Fatalf("ZAdd count = %d", n)
	}
	// Rescoring an existing member does not count as an add.
	if n, _ := s.ZAdd(ctx, "z", store.ScoredMember{Member: "m", Score: 2}); n != 0 {
		t.Fatalf("ZAdd rescore count = %d", n)
	}
	if n, _ := s.ZRem(ctx, "z", "m", "x"); n != 1 {
		t.Fatalf("ZRem count = %d", n)
	}
}

func TestListRangeBounds(t *testing.T) {
	ctx := context.Background()
	s := New()

	if n, _ := s.RPush(ctx, "l", "a", "b", "c", "d"); n != 4 {
		t.Fatalf("RPush length = %d", n)
	}

	for _, tc := range []struct {
		name        string
		start, stop int64
		want        []string
	}{
		{"all", 0, -1, []string{"a", "b", "c", "d"}},
		{"middle", 1, 2, []string{"b", "c"}},
		{"negative_start", -2, -1, []string{"c", "d"}},
		{"stop_past_end", 2, 99, []string{"c", "d"}},
		{"inverted", 3, 1, []string{}},
		{"start_past_end", 9, 12, []string{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.LRange(ctx, "l", tc.start, tc.stop)
			if err != nil {
				t.Fatalf("LRange: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("LRange(%d,%d) = %v, want %v", tc.start, tc.stop, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("LRange(%d,%d) = %v, want %v", tc.start, tc.stop, got, tc.want)
				}
			}
		})
	}
}

func TestExpiryLazyAndSweep(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.Set(ctx, "short", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "long", "v", time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	// Lazy expiry on read.
	if _, ok, _ := s.Get(ctx, "short"); ok {
		t.Fatalf("expired key should miss")
	}
	if ok, _ := s.Exists(ctx, "short"); ok {
		t.Fatalf("expired key should not exist")
	}

	// Expire refresh and clear.
	if ok, _ := s.Expire(ctx, "long", 10*time.Millisecond); !ok {
		t.Fatalf("Expire on live key should report true")
	}
	time.Sleep(25 * time.Millisecond)
	s.Cleanup()
	if ok, _ := s.Exists(ctx, "long"); ok {
		t.Fatalf("swept key should not exist")
	}

	if ok, _ := s.Expire(ctx, "gone", time.Minute); ok {
		t.Fatalf("Expire on absent key should report false")
	}
}

func TestSweepLoopClose(t *testing.T) {
	ctx := context.Background()
	s := NewWithSweep(5 * time.Millisecond)

	if err := s.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(40 * time.Millisecond)
	if ok, _ := s.Exists(ctx, "k"); ok {
		t.Fatalf("sweep loop should have pruned the key")
	}

	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Close is idempotent.
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close repeat: %v", err)
	}
}

func TestDelCounts(t *testing.T) {
	ctx := context.Background()
	s := New()

	_ = s.Set(ctx, "a", "v", 0)
	_ = s.Set(ctx, "b", "v", 0)
	if n, _ := s.Del(ctx, "a", "b", "missing"); n != 2 {
		t.Fatalf("Del count = %d", n)
	}
	if n, _ := s.Del(ctx, "a"); n != 0 {
		t.Fatalf("Del repeat count = %d", n)
	}
}

func TestSMembersIsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, _ = s.SAdd(ctx, "s", "b", "a")
	got, _ := s.SMembers(ctx, "s")
	sort.Strings(got)
	got[0] = "mutated"

	again, _ := s.SMembers(ctx, "s")
	sort.Strings(again)
	if again[0] != "a" || again[1] != "b" {
		t.Fatalf("internal state leaked through SMembers: %v", again)
	}
}
