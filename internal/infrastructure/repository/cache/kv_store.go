package cache

import (
	"context"
	"errors"
	"time"

	"github.com/riskibarqy/dietpop-lineup/internal/platform/kvstore"
	basecache "github.com/riskibarqy/dietpop-lineup/internal/platform/cache"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/resilience"
)

type cachedEntry struct {
	value []byte
	found bool
}

// KVStore is a read-through, write-through cache in front of a remote store.
// Calls to next pass through an optional circuit breaker; an open circuit
// surfaces as kvstore.ErrUnavailable.
type KVStore struct {
	next    kvstore.Store
	cache   *basecache.Store[cachedEntry]
	breaker *resilience.Breaker
}

// NewBreaker builds the breaker for a remote store. Only kvstore.ErrUnavailable
// counts as a failure, so misses and rejected writes never open the circuit.
func NewBreaker(cfg resilience.BreakerConfig, opts ...resilience.Option) *resilience.Breaker {
	return resilience.NewBreaker(cfg, kvstore.IsUnavailable, opts...)
}

// NewKVStore caches values, including misses, for ttl. A nil breaker disables
// circuit breaking.
func NewKVStore(next kvstore.Store, ttl time.Duration, breaker *resilience.Breaker) *KVStore {
	return &KVStore{
		next:    next,
		cache:   basecache.NewStore[cachedEntry](ttl),
		breaker: breaker,
	}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (cachedEntry, error) {
		var loaded cachedEntry
		err := s.guard(func() error {
			value, found, err := s.next.Get(ctx, key)
			loaded = cachedEntry{value: value, found: found}
			return err
		})
		return loaded, err
	})
	if err != nil {
		return nil, false, err
	}
	if !entry.found {
		return nil, false, nil
	}
	return append([]byte(nil), entry.value...), true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.guard(func() error { return s.next.Set(ctx, key, value) }); err != nil {
		s.cache.Delete(ctx, key)
		return err
	}
	s.cache.Set(ctx, key, cachedEntry{value: append([]byte(nil), value...), found: true})
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	s.cache.Delete(ctx, key)
	return s.guard(func() error { return s.next.Delete(ctx, key) })
}

func (s *KVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.guard(func() error {
		var err error
		keys, err = s.next.Keys(ctx, prefix)
		return err
	})
	return keys, err
}

func (s *KVStore) Ping(ctx context.Context) error {
	if p, ok := s.next.(kvstore.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *KVStore) guard(fn func() error) error {
	err := s.breaker.Run(fn)
	if errors.Is(err, resilience.ErrOpen) {
		return kvstore.Unavailable(err, "kv store circuit")
	}
	return err
}
