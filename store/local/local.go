// Package local implements the typedis store contract in process memory.
//
// It is intended for tests and single-process deployments. Semantics follow
// Redis where observable: absent keys are distinguishable from empty ones,
// structure operations against a key holding a different kind fail with
// ErrWrongType, and expired keys behave as absent.
package local

import (
	"context"
	"sync"
	"time"

	"github.com/unkn0wn-root/typedis/store"
)

type kind uint8

const (
	kindScalar kind = iota + 1
	kindHash
	kindSet
	kindZSet
	kindList
)

type entry struct {
	kind   kind
	scalar string
	hash   map[string]string
	set    map[string]struct{}
	zset   map[string]float64
	list   []string
	exp    time.Time // zero => no TTL
}

func (e *entry) expired(now time.Time) bool {
	return !e.exp.IsZero() && now.After(e.exp)
}

// Local keeps all data under a single lock so multi-field hash writes are
// visible atomically, as the store contract requires.
// Optional sweep loop prunes expired entries; reads also expire lazily.
type Local struct {
	mu   sync.RWMutex
	data map[string]*entry

	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup
}

var _ store.Store = (*Local)(nil)

// New creates a store without a background sweep. Expired entries are still
// invisible to readers; they are just not reclaimed until accessed.
func New() *Local {
	return &Local{data: make(map[string]*entry)}
}

// NewWithSweep creates a store that prunes expired entries every interval.
func NewWithSweep(interval time.Duration) *Local {
	s := New()
	if interval > 0 {
		s.ticker = time.NewTicker(interval)
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-s.ticker.C:
					s.Cleanup()
				case <-s.stopCh:
					return
				}
			}
		}()
	}
	return s
}

// live returns the entry for key if present, not expired, and of the wanted
// kind. Expired entries are deleted in place; callers must hold mu for write
// when deleteExpired is true.
func (s *Local) live(key string, want kind, deleteExpired bool) (*entry, error) {
	e, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	if e.expired(time.Now()) {
		if deleteExpired {
			delete(s.data, key)
		}
		return nil, nil
	}
	if e.kind != want {
		return nil, ErrWrongType
	}
	return e, nil
}

func (s *Local) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	e, err := s.live(key, kindScalar, false)
	s.mu.RUnlock()
	if err != nil || e == nil {
		return "", false, err
	}
	return e.scalar, true, nil
}

func (s *Local) Set(_ context.Context, key, value string, ttl time.Duration) error {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.data[key] = &entry{kind: kindScalar, scalar: value, exp: exp}
	s.mu.Unlock()
	return nil
}

func (s *Local) HSet(ctx context.Context, key, field, value string) error {
	return s.HSetAll(ctx, key, map[string]string{field: value})
}

func (s *Local) HSetAll(_ context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.live(key, kindHash, true)
	if err != nil {
		return err
	}
	if e == nil {
		e = &entry{kind: kindHash, hash: make(map[string]string, len(fields))}
		s.data[key] = e
	}
	for f, v := range fields {
		e.hash[f] = v
	}
	return nil
}

func (s *Local) HGet(_ context.Context, key, field string) (string, bool, error) {
	s.mu.RLock()
	e, err := s.live(key, kindHash, false)
	s.mu.RUnlock()
	if err != nil || e == nil {
		return "", false, err
	}
	v, ok := e.hash[field]
	return v, ok, nil
}

func (s *Local) HMGet(_ context.Context, key string, fields ...string) ([]store.Value, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	e, err := s.live(key, kindHash, false)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	out := make([]store.Value, len(fields))
	if e == nil {
		return out, nil
	}
	for i, f := range fields {
		if v, ok := e.hash[f]; ok {
			out[i] = store.Value{Val: v, OK: true}
		}
	}
	return out, nil
}

func (s *Local) HGetAll(_ context.Context, key string) (map[string]string, error) {
	s.mu.RLock()
	e, err := s.live(key, kindHash, false)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string)
	if e == nil {
		return out, nil
	}
	for f, v := range e.hash {
		out[f] = v
	}
	return out, nil
}

func (s *Local) HDel(_ context.Context, key string, fields ...string) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.live(key, kindHash, true)
	if err != nil || e == nil {
		return 0, err
	}
	var n int64
	for _, f := range fields {
		if _, ok := e.hash[f]; ok {
			delete(e.hash, f)
			n++
		}
	}
	if len(e.hash) == 0 {
		delete(s.data, key) // redis drops empty hashes
	}
	return n, nil
}

func (s *Local) HExists(_ context.Context, key, field string) (bool, error) {
	s.mu.RLock()
	e, err := s.live(key, kindHash, false)
	s.mu.RUnlock()
	if err != nil || e == nil {
		return false, err
	}
	_, ok := e.hash[field]
	return ok, nil
}

func (s *Local) SAdd(_ context.Context, key string, members ...string) (int64, error) {
	if len(members) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.live(key, kindSet, true)
	if err != nil {
		return 0, err
	}
	if e == nil {
		e = &entry{kind: kindSet, set: make(map[string]struct{}, len(members))}
		s.data[key] = e
	}
	var n int64
	for _, m := range members {
		if _, ok := e.set[m]; !ok {
			e.set[m] = struct{}{}
			n++
		}
	}
	return n, nil
}

func (s *Local) SRem(_ context.Context, key string, members ...string) (int64, error) {
	if len(members) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.live(key, kindSet, true)
	if err != nil || e == nil {
		return 0, err
	}
	var n int64
	for _, m := range members {
		if _, ok := e.set[m]; ok {
			delete(e.set, m)
			n++
		}
	}
	if len(e.set) == 0 {
		delete(s.data, key)
	}
	return n, nil
}

func (s *Local) SMembers(_ context.Context, key string) ([]string, error) {
	s.mu.RLock()
	e, err := s.live(key, kindSet, false)
	s.mu.RUnlock()
	if err != nil || e == nil {
		return []string{}, err
	}
	out := make([]string, 0, len(e.set))
	for m := range e.set {
		out = append(out, m)
	}
	return out, nil
}

func (s *Local) ZAdd(_ context.Context, key string, members ...store.ScoredMember) (int64, error) {
	if len(members) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.live(key, kindZSet, true)
	if err != nil {
		return 0, err
	}
	if e == nil {
		e = &entry{kind: kindZSet, zset: make(map[string]float64, len(members))}
		s.data[key] = e
	}
	var n int64
	for _, m := range members {
		if _, ok := e.zset[m.Member]; !ok {
			n++
		}
		e.zset[m.Member] = m.Score
	}
	return n, nil
}

func (s *Local) ZRem(_ context.Context, key string, members ...string) (int64, error) {
	if len(members) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.live(key, kindZSet, true)
	if err != nil || e == nil {
		return 0, err
	}
	var n int64
	for _, m := range members {
		if _, ok := e.zset[m]; ok {
			delete(e.zset, m)
			n++
		}
	}
	if len(e.zset) == 0 {
		delete(s.data, key)
	}
	return n, nil
}

func (s *Local) RPush(_ context.Context, key string, values ...string) (int64, error) {
	if len(values) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.live(key, kindList, true)
	if err != nil {
		return 0, err
	}
	if e == nil {
		e = &entry{kind: kindList}
		s.data[key] = e
	}
	e.list = append(e.list, values...)
	return int64(len(e.list)), nil
}

func (s *Local) LRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	s.mu.RLock()
	e, err := s.live(key, kindList, false)
	s.mu.RUnlock()
	if err != nil || e == nil {
		return []string{}, err
	}
	n := int64(len(e.list))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return []string{}, nil
	}
	out := make([]string, stop-start+1)
	copy(out, e.list[start:stop+1])
	return out, nil
}

func (s *Local) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[key]
	if !ok || e.expired(time.Now()) {
		return false, nil
	}
	return true, nil
}

func (s *Local) Del(_ context.Context, keys ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	var n int64
	for _, k := range keys {
		if e, ok := s.data[k]; ok {
			if !e.expired(now) {
				n++
			}
			delete(s.data, k)
		}
	}
	return n, nil
}

func (s *Local) Expire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[key]
	if !ok || e.expired(time.Now()) {
		return false, nil
	}
	if ttl > 0 {
		e.exp = time.Now().Add(ttl)
	} else {
		e.exp = time.Time{}
	}
	return true, nil
}

// Cleanup removes all expired entries.
func (s *Local) Cleanup() {
	now := time.Now()
	s.mu.Lock()
	for k, e := range s.data {
		if e.expired(now) {
			delete(s.data, k)
		}
	}
	s.mu.Unlock()
}

func (s *Local) Close(_ context.Context) error {
	if s.stopCh != nil {
		close(s.stopCh)
		if s.ticker != nil {
			s.ticker.Stop() // stop ticker before waiting
		}
		s.wg.Wait()
		s.stopCh = nil
	}
	return nil
}
