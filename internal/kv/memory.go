package kv

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// memoryStore is the in-process fallback used when no Redis connection is
// configured. ttlcache enforces per-key expiry, so the fallback honours the
// same TTL semantics as the remote backend instead of retaining keys forever.
type memoryStore struct {
	mu    sync.Mutex
	cache *ttlcache.Cache[string, string]
}

// NewMemory creates an in-process store with automatic expired-key cleanup.
func NewMemory() Store {
	cache := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, string](),
	)
	go cache.Start()
	return &memoryStore{cache: cache}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	item := s.cache.Get(key)
	if item == nil {
		return "", ErrNotFound
	}
	return item.Value(), nil
}

func (s *memoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	s.cache.Set(key, value, ttl)
	return nil
}

// Incr serializes read-modify-write with a mutex. That is enough here: unlike
// the remote backend this store is only ever shared between goroutines of a
// single process.
func (s *memoryStore) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	if item := s.cache.Get(key); item != nil {
		parsed, err := strconv.ParseInt(item.Value(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("kv: incr %s: non-integer value %q", key, item.Value())
		}
		n = parsed
	}
	n++
	s.cache.Set(key, strconv.FormatInt(n, 10), ttlcache.NoTTL)
	return n, nil
}

// Keys re-checks each candidate through Get so that entries past their TTL but
// not yet collected by the cleanup loop are never reported as live.
func (s *memoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for _, key := range s.cache.Keys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if s.cache.Get(key) == nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *memoryStore) Close() error {
	s.cache.Stop()
	return nil
}
